// Package noise provides deterministic coherent noise for procedural shading.
//
// Every generator is a pure function of (type, seed, frequency, coordinates):
// there is no per-call randomness, so a shaded surface is stable from frame
// to frame unless the caller varies its inputs.
package noise

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Type selects the noise algorithm
type Type uint8

const (
	OpenSimplex2 Type = iota // simplex-like
	Perlin                   // gradient noise on a cubic lattice
	Cellular                 // distance to nearest jittered feature point
)

func (t Type) String() string {
	switch t {
	case OpenSimplex2:
		return "opensimplex2"
	case Perlin:
		return "perlin"
	case Cellular:
		return "cellular"
	}
	return fmt.Sprintf("noise.Type(%d)", uint8(t))
}

// ParseType is the inverse of Type.String
func ParseType(s string) (Type, error) {
	for _, t := range []Type{OpenSimplex2, Perlin, Cellular} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown noise type %q", s)
}

const (
	DefaultSeed      uint64 = 1337
	DefaultFrequency        = 0.01
)

// Source is what shaders sample. Both methods return values in [-1, 1].
type Source interface {
	Noise2(x, y float64) float64
	Noise3(x, y, z float64) float64
}

// Generator is a Source for one algorithm, seed and frequency
type Generator struct {
	Type      Type
	Frequency float64
	Seed      uint64

	perm *[512]uint8
}

// New returns a generator with the default seed and frequency
func New(t Type) *Generator {
	return NewSeeded(t, DefaultSeed)
}

// NewSeeded returns a generator with the default frequency
func NewSeeded(t Type, seed uint64) *Generator {
	return &Generator{
		Type:      t,
		Frequency: DefaultFrequency,
		Seed:      seed,
		perm:      permutation(seed),
	}
}

// NewGenerator returns a fully specified generator
func NewGenerator(t Type, seed uint64, frequency float64) *Generator {
	g := NewSeeded(t, seed)
	g.Frequency = frequency
	return g
}

// Noise2 samples 2D noise at (x, y) scaled by the frequency
func (g *Generator) Noise2(x, y float64) float64 {
	x *= g.Frequency
	y *= g.Frequency
	var v float64
	switch g.Type {
	case Perlin:
		v = g.perlin2(x, y)
	case Cellular:
		v = g.cellular2(x, y)
	default:
		v = g.simplex2(x, y)
	}
	return clampUnit(v)
}

// Noise3 samples 3D noise at (x, y, z) scaled by the frequency
func (g *Generator) Noise3(x, y, z float64) float64 {
	x *= g.Frequency
	y *= g.Frequency
	z *= g.Frequency
	var v float64
	switch g.Type {
	case Perlin:
		v = g.perlin3(x, y, z)
	case Cellular:
		v = g.cellular3(x, y, z)
	default:
		v = g.simplex3(x, y, z)
	}
	return clampUnit(v)
}

func permutation(seed uint64) *[512]uint8 {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var p [512]uint8
	for i, v := range rng.Perm(256) {
		p[i] = uint8(v)
		p[i+256] = uint8(v)
	}
	return &p
}

// hash2 and hash3 index the doubled permutation table; coordinates wrap at 256
func (g *Generator) hash2(x, y int) int {
	return int(g.perm[int(g.perm[y&255])+(x&255)])
}

func (g *Generator) hash3(x, y, z int) int {
	return int(g.perm[int(g.perm[int(g.perm[z&255])+(y&255)])+(x&255)])
}

func fastFloor(v float64) int {
	return int(math.Floor(v))
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
