package noise

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTypes = []Type{OpenSimplex2, Perlin, Cellular}

func sampleGrid(g *Generator) []float64 {
	var out []float64
	for i := -20; i < 20; i++ {
		for j := -20; j < 20; j++ {
			x, y := float64(i)*13.7+0.31, float64(j)*9.1-0.77
			out = append(out, g.Noise2(x, y), g.Noise3(x, y, x-y))
		}
	}
	return out
}

func TestRange(t *testing.T) {
	for _, typ := range allTypes {
		g := NewGenerator(typ, DefaultSeed, 0.37)
		for _, v := range sampleGrid(g) {
			require.False(t, math.IsNaN(v), typ.String())
			require.GreaterOrEqual(t, v, -1.0, typ.String())
			require.LessOrEqual(t, v, 1.0, typ.String())
		}
	}
}

func TestDeterministic(t *testing.T) {
	for _, typ := range allTypes {
		a := sampleGrid(NewSeeded(typ, 42))
		b := sampleGrid(NewSeeded(typ, 42))
		assert.Equal(t, a, b, typ.String())
	}
}

func TestSeedChangesOutput(t *testing.T) {
	for _, typ := range allTypes {
		a := sampleGrid(NewGenerator(typ, 1, 0.37))
		b := sampleGrid(NewGenerator(typ, 2, 0.37))
		assert.NotEqual(t, a, b, typ.String())
	}
}

func TestNotConstant(t *testing.T) {
	for _, typ := range allTypes {
		vals := sampleGrid(NewGenerator(typ, DefaultSeed, 0.37))
		lo, hi := vals[0], vals[0]
		for _, v := range vals {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		assert.Greater(t, hi-lo, 0.5, typ.String())
	}
}

func TestFrequencyScalesInput(t *testing.T) {
	for _, typ := range allTypes {
		g1 := NewGenerator(typ, DefaultSeed, 1)
		g2 := NewGenerator(typ, DefaultSeed, 2)
		assert.Equal(t, g1.Noise2(3.5, -1.25), g2.Noise2(1.75, -0.625), typ.String())
		assert.Equal(t, g1.Noise3(3.5, -1.25, 0.5), g2.Noise3(1.75, -0.625, 0.25), typ.String())
	}
}

func TestDefaults(t *testing.T) {
	g := New(Perlin)
	assert.Equal(t, DefaultSeed, g.Seed)
	assert.Equal(t, DefaultFrequency, g.Frequency)
	assert.Equal(t, NewSeeded(Perlin, DefaultSeed).Noise2(123, 456), g.Noise2(123, 456))
}

func TestPerlinLattice(t *testing.T) {
	g := NewGenerator(Perlin, 7, 1)
	for i := -3; i <= 3; i++ {
		for j := -3; j <= 3; j++ {
			assert.Zero(t, g.Noise2(float64(i), float64(j)))
			assert.Zero(t, g.Noise3(float64(i), float64(j), float64(i+j)))
		}
	}
}

func TestContinuity(t *testing.T) {
	for _, typ := range []Type{OpenSimplex2, Perlin} {
		g := NewGenerator(typ, DefaultSeed, 1)
		for i := 0; i < 50; i++ {
			x, y := float64(i)*0.173, float64(i)*0.291
			d := math.Abs(g.Noise2(x, y) - g.Noise2(x+1e-6, y))
			assert.Less(t, d, 1e-3, typ.String())
		}
	}
}

func TestParseType(t *testing.T) {
	for _, typ := range allTypes {
		got, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, got)
	}
	_, err := ParseType("value")
	assert.Error(t, err)
}
