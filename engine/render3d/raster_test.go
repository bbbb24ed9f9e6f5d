package render3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenVertex(x, y, z float64) Vertex {
	return Vertex{
		Position:         V3(x, y, z),
		Normal:           V3(0, 0, 1),
		OriginalPosition: V3(x, y, z),
		WorldPosition:    V3(x, y, z),
	}
}

func TestBarycentric(t *testing.T) {
	a, b, c := V3(0, 0, 0), V3(10, 0, 0), V3(0, 10, 0)

	w0, w1, w2, ok := Barycentric(a, b, c, 0, 0)
	require.True(t, ok)
	assert.InDelta(t, 1, w0, 1e-12)
	assert.InDelta(t, 0, w1, 1e-12)
	assert.InDelta(t, 0, w2, 1e-12)

	for _, p := range [][2]float64{{1, 1}, {2.5, 3.5}, {9, 0.5}, {-4, 7}} {
		w0, w1, w2, ok := Barycentric(a, b, c, p[0], p[1])
		require.True(t, ok)
		assert.InDelta(t, 1, w0+w1+w2, 1e-9, "%v", p)
		q := Interpolate3(a, b, c, w0, w1, w2)
		assert.InDelta(t, p[0], q[0], 1e-9)
		assert.InDelta(t, p[1], q[1], 1e-9)
	}

	_, _, _, ok = Barycentric(a, V3(5, 5, 0), V3(10, 10, 0), 1, 1)
	assert.False(t, ok)
}

func TestRasterizeTriangleCoverage(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	r := NewRasterizer(fb)

	frags := r.RasterizeTriangle(screenVertex(0, 0, 0), screenVertex(10, 0, 0), screenVertex(0, 10, 0))
	// pixel centres with x+y <= 9
	assert.Len(t, frags, 55)
	for _, f := range frags {
		assert.LessOrEqual(t, f.X+f.Y, 9)
		assert.InDelta(t, 1.0, f.Intensity, 1e-9)
		assert.InDelta(t, float64(f.X)+0.5, f.OriginalPos[0], 1e-9)
		assert.InDelta(t, float64(f.Y)+0.5, f.OriginalPos[1], 1e-9)
		assert.False(t, f.Overlay)
	}

	// same triangle, opposite winding
	rev := r.RasterizeTriangle(screenVertex(0, 0, 0), screenVertex(0, 10, 0), screenVertex(10, 0, 0))
	assert.Len(t, rev, 55)
}

func TestRasterizeTrianglePartition(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	r := NewRasterizer(fb)

	covered := map[[2]int]bool{}
	for _, tri := range [][3]Vertex{
		{screenVertex(0, 0, 0), screenVertex(10, 0, 0), screenVertex(10, 10, 0)},
		{screenVertex(0, 0, 0), screenVertex(10, 10, 0), screenVertex(0, 10, 0)},
	} {
		for _, f := range r.RasterizeTriangle(tri[0], tri[1], tri[2]) {
			covered[[2]int{f.X, f.Y}] = true
		}
	}
	assert.Len(t, covered, 100)
}

func TestRasterizeTriangleDegenerate(t *testing.T) {
	r := NewRasterizer(NewFramebuffer(20, 20))

	assert.Empty(t, r.RasterizeTriangle(screenVertex(0, 0, 0), screenVertex(5, 5, 0), screenVertex(10, 10, 0)))
	assert.Empty(t, r.RasterizeTriangle(screenVertex(3, 3, 0), screenVertex(3, 3, 0), screenVertex(3, 3, 0)))

	nan := screenVertex(math.NaN(), 0, 0)
	inf := screenVertex(math.Inf(1), 0, 0)
	assert.Empty(t, r.RasterizeTriangle(nan, screenVertex(10, 0, 0), screenVertex(0, 10, 0)))
	assert.Empty(t, r.RasterizeTriangle(inf, screenVertex(10, 0, 0), screenVertex(0, 10, 0)))
}

func TestRasterizeTriangleClipsToScreen(t *testing.T) {
	r := NewRasterizer(NewFramebuffer(8, 8))
	frags := r.RasterizeTriangle(screenVertex(-50, -50, 0), screenVertex(50, -50, 0), screenVertex(0, 50, 0))
	assert.NotEmpty(t, frags)
	for _, f := range frags {
		assert.True(t, f.X >= 0 && f.X < 8 && f.Y >= 0 && f.Y < 8)
	}

	assert.Empty(t, r.RasterizeTriangle(screenVertex(100, 100, 0), screenVertex(110, 100, 0), screenVertex(100, 110, 0)))
}

func TestRasterizeTriangleHugeCoordinates(t *testing.T) {
	r := NewRasterizer(NewFramebuffer(800, 600))

	// finite but far beyond int range; must return without walking the box
	assert.Empty(t, r.RasterizeTriangle(screenVertex(1e19, 10, 0), screenVertex(2e19, 10, 0), screenVertex(1e19, 1e19, 0)))
	assert.Empty(t, r.RasterizeTriangle(screenVertex(-2e19, -1e19, 0), screenVertex(-1e19, -1e19, 0), screenVertex(-1e19, -2e19, 0)))

	// covers the whole screen from far outside
	frags := r.RasterizeTriangle(screenVertex(-1e19, -1e19, 0), screenVertex(1e19, -1e19, 0), screenVertex(0, 1e19, 0))
	for _, f := range frags {
		require.True(t, f.X >= 0 && f.X < 800 && f.Y >= 0 && f.Y < 600)
	}
	assert.LessOrEqual(t, len(frags), 800*600)
}

func TestRasterizeTriangleEarlyDepth(t *testing.T) {
	fb := NewFramebuffer(20, 20)
	r := NewRasterizer(fb)

	near := r.RasterizeTriangle(screenVertex(0, 0, 0.2), screenVertex(10, 0, 0.2), screenVertex(0, 10, 0.2))
	for _, f := range near {
		f.Color = White
		require.True(t, fb.WritePoint(f))
	}

	// fully hidden behind the first triangle
	assert.Empty(t, r.RasterizeTriangle(screenVertex(0, 0, 0.5), screenVertex(10, 0, 0.5), screenVertex(0, 10, 0.5)))

	// in front: every pixel comes back
	assert.Len(t, r.RasterizeTriangle(screenVertex(0, 0, 0.1), screenVertex(10, 0, 0.1), screenVertex(0, 10, 0.1)), len(near))
}

func TestRasterizeTriangleDepthInterpolation(t *testing.T) {
	r := NewRasterizer(NewFramebuffer(20, 20))
	r.Depth = nil

	frags := r.RasterizeTriangle(screenVertex(0, 0, 0), screenVertex(10, 0, 1), screenVertex(0, 10, 0))
	require.NotEmpty(t, frags)
	for _, f := range frags {
		assert.InDelta(t, (float64(f.X)+0.5)/10, f.Depth, 1e-9)
	}
}

func TestRasterizeTriangleLighting(t *testing.T) {
	r := NewRasterizer(NewFramebuffer(20, 20))
	v0, v1, v2 := screenVertex(0, 0, 0), screenVertex(10, 0, 0), screenVertex(0, 10, 0)
	for _, v := range []*Vertex{&v0, &v1, &v2} {
		v.Normal = V3(0, 0, -1)
	}
	for _, f := range r.RasterizeTriangle(v0, v1, v2) {
		assert.Equal(t, r.Light.Ambient, f.Intensity)
	}
}

func TestRasterizeLine(t *testing.T) {
	r := NewRasterizer(NewFramebuffer(10, 10))

	frags := r.RasterizeLine(V3(0, 0, 0), V3(5, 0, 0), White)
	require.Len(t, frags, 6)
	for i, f := range frags {
		assert.Equal(t, i, f.X)
		assert.Equal(t, 0, f.Y)
		assert.True(t, f.Overlay)
		assert.Equal(t, White, f.Color)
	}

	diag := r.RasterizeLine(V3(3, 3, 0), V3(0, 0, 0), White)
	require.Len(t, diag, 4)
	for i, f := range diag {
		assert.Equal(t, 3-i, f.X)
		assert.Equal(t, f.X, f.Y)
	}

	steep := r.RasterizeLine(V3(0, 0, 0), V3(2, 7, 0), White)
	assert.Len(t, steep, 8)
	assert.Equal(t, 2, steep[len(steep)-1].X)
	assert.Equal(t, 7, steep[len(steep)-1].Y)

	assert.Len(t, r.RasterizeLine(V3(4, 4, 0), V3(4, 4, 0), White), 1)
	assert.Empty(t, r.RasterizeLine(V3(math.NaN(), 0, 0), V3(4, 4, 0), White))
}

func TestRasterizeLineClipsToScreen(t *testing.T) {
	r := NewRasterizer(NewFramebuffer(800, 600))

	frags := r.RasterizeLine(V3(400, 300, 0), V3(4e6, 300, 0), White)
	require.Len(t, frags, 400)
	assert.Equal(t, 400, frags[0].X)
	assert.Equal(t, 799, frags[len(frags)-1].X)
	for _, f := range frags {
		assert.Equal(t, 300, f.Y)
	}

	// both ends off screen, crossing it vertically
	cross := r.RasterizeLine(V3(10, -1e9, 0), V3(10, 1e9, 0), White)
	require.Len(t, cross, 600)
	assert.Equal(t, 0, cross[0].Y)
	assert.Equal(t, 599, cross[len(cross)-1].Y)

	assert.Empty(t, r.RasterizeLine(V3(-100, -5, 0), V3(-1e7, 900, 0), White))
	assert.Empty(t, r.RasterizeLine(V3(900, 0, 0), V3(900, 500, 0), White))
}

func TestTransformVertex(t *testing.T) {
	u := Uniforms{
		Model:      mgl64.Ident4(),
		View:       mgl64.Ident4(),
		Projection: mgl64.Ident4(),
		Viewport:   ViewportMatrix(800, 600),
	}

	v := TransformVertex(Vertex{Position: V3(0, 0, 0), Normal: V3(0, 0, 2)}, u)
	assert.InDeltaSlice(t, []float64{400, 300, 0.5}, v.Position[:], 1e-9)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, v.Normal[:], 1e-9)

	v = TransformVertex(Vertex{Position: V3(1, 1, 1)}, u)
	assert.InDeltaSlice(t, []float64{800, 0, 1}, v.Position[:], 1e-9)

	u.Model = mgl64.Translate3D(0.5, 0, 0)
	v = TransformVertex(Vertex{Position: V3(-1, -1, -1), Normal: V3(1, 0, 0)}, u)
	assert.InDeltaSlice(t, []float64{200, 600, 0}, v.Position[:], 1e-9)
	assert.InDeltaSlice(t, []float64{-0.5, -1, -1}, v.WorldPosition[:], 1e-9)
	assert.Equal(t, V3(-1, -1, -1), v.OriginalPosition)
	assert.InDeltaSlice(t, []float64{1, 0, 0}, v.Normal[:], 1e-9)
}

func TestVertexBuffer(t *testing.T) {
	vbo := make([]mgl64.Vec3, 9)
	vs, err := VerticesFromBuffer(vbo)
	require.NoError(t, err)
	assert.Len(t, vs, 3)

	tris, err := AssembleTriangles(vs)
	require.NoError(t, err)
	assert.Len(t, tris, 1)

	_, err = VerticesFromBuffer(make([]mgl64.Vec3, 4))
	assert.ErrorIs(t, err, ErrMalformedMesh)

	_, err = AssembleTriangles(make([]Vertex, 4))
	assert.ErrorIs(t, err, ErrMalformedMesh)
}

func TestObjectTypeNames(t *testing.T) {
	for tt := ObjectStar; tt <= ObjectBanded; tt++ {
		got, err := ParseObjectType(tt.String())
		require.NoError(t, err)
		assert.Equal(t, tt, got)
	}
	_, err := ParseObjectType("gas-giant")
	assert.Error(t, err)
	assert.Equal(t, "object(200)", ObjectType(200).String())
}

func TestLightIntensity(t *testing.T) {
	l := DefaultLight()
	assert.InDelta(t, 1.0, l.Intensity(V3(0, 0, 5)), 1e-9)
	assert.Equal(t, 0.1, l.Intensity(V3(0, 0, -1)))
	assert.Equal(t, 0.1, l.Intensity(V3(1, 0, 0)))
	assert.InDelta(t, math.Sqrt(0.5), l.Intensity(V3(1, 0, 1)), 1e-9)

	l = NewLight(V3(0, 0, 3), 2)
	assert.InDeltaSlice(t, []float64{0, 0, 1}, l.Direction[:], 1e-12)
	assert.Equal(t, 1.0, l.Ambient)
}

func TestColor(t *testing.T) {
	c := RGB(100, 200, 300)
	assert.Equal(t, Color{100, 200, 255, 255}, c)
	assert.Equal(t, Color{200, 255, 255, 255}, c.Scale(2))
	assert.Equal(t, Color{0, 0, 0, 255}, c.Scale(-1))
	assert.Equal(t, Color{0, 0, 0, 255}, c.Scale(math.NaN()))
	assert.Equal(t, RGB(255, 128, 0), RGBf(1, 0.5, 0))
	assert.Equal(t, Color{50, 100, 128, 255}, RGB(0, 0, 0).Lerp(RGB(100, 200, 300), 0.5))
	assert.Equal(t, White, RGB(200, 200, 200).Add(RGB(100, 100, 100)))

	r, g, b, a := RGB(255, 0, 0).RGBA()
	assert.Equal(t, []uint32{0xffff, 0, 0, 0xffff}, []uint32{r, g, b, a})
}
