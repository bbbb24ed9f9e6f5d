package render3d

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flatShader struct {
	frames []uint64
	err    error
}

func (s *flatShader) ShadeFragment(f Fragment, _ ObjectType, frame uint64) (Fragment, error) {
	if s.err != nil {
		return f, s.err
	}
	s.frames = append(s.frames, frame)
	f.Color = White.Scale(f.Intensity)
	return f, nil
}

func sphereScene(t *testing.T, w, h int) (*Renderer, Uniforms, []mgl64.Vec3) {
	t.Helper()
	r := NewRenderer(w, h, &flatShader{})
	cam := NewCamera3D(w, h)
	u := cam.Uniforms(mgl64.Scale3D(0.5, 0.5, 0.5), ObjectStar)
	return r, u, MakeSphere(12, 16).VBO()
}

func TestDrawMeshSphere(t *testing.T) {
	r, u, vbo := sphereScene(t, 64, 48)

	st, err := r.DrawMesh(vbo, u, 7)
	require.NoError(t, err)
	assert.Equal(t, len(vbo)/9, st.Triangles)
	assert.Positive(t, st.Written)
	assert.LessOrEqual(t, st.Written, st.Fragments)

	// the centre faces the camera and the light
	c := r.FB.ColorAt(32, 24)
	assert.Greater(t, c.R, uint8(200))
	assert.Less(t, r.FB.DepthAt(32, 24), 1.0)

	// corners stay background
	assert.Equal(t, Black, r.FB.ColorAt(0, 0))
	assert.Equal(t, Black, r.FB.ColorAt(63, 47))

	for _, f := range r.Shaders.(*flatShader).frames {
		assert.Equal(t, uint64(7), f)
	}
}

func TestDrawMeshDepthStable(t *testing.T) {
	r, u, vbo := sphereScene(t, 32, 32)

	_, err := r.DrawMesh(vbo, u, 0)
	require.NoError(t, err)
	first := bytes.Clone(r.FB.Pixels())

	// redrawing into the same frame cannot pass the depth test anywhere
	st, err := r.DrawMesh(vbo, u, 0)
	require.NoError(t, err)
	assert.Zero(t, st.Written)
	assert.Equal(t, first, r.FB.Pixels())

	// a fresh frame reproduces the same image
	r.BeginFrame()
	_, err = r.DrawMesh(vbo, u, 0)
	require.NoError(t, err)
	assert.Equal(t, first, r.FB.Pixels())
}

func TestDrawMeshMalformed(t *testing.T) {
	r, u, _ := sphereScene(t, 16, 16)

	_, err := r.DrawMesh(make([]mgl64.Vec3, 4), u, 0)
	assert.ErrorIs(t, err, ErrMalformedMesh)

	// two whole vertices, no whole triangle
	_, err = r.DrawMesh(make([]mgl64.Vec3, 6), u, 0)
	assert.ErrorIs(t, err, ErrMalformedMesh)

	for _, b := range r.FB.Pixels() {
		if b != 0 && b != 255 {
			t.Fatalf("framebuffer written by a rejected draw")
		}
	}
}

func TestDrawMeshShaderError(t *testing.T) {
	boom := errors.New("boom")
	r, u, vbo := sphereScene(t, 32, 32)
	r.Shaders = &flatShader{err: boom}

	_, err := r.DrawMesh(vbo, u, 0)
	assert.ErrorIs(t, err, boom)
	assert.True(t, strings.Contains(err.Error(), "star"))
}

func TestDrawStarfield(t *testing.T) {
	r := NewRenderer(40, 30, &flatShader{})
	rng := rand.New(rand.NewPCG(1, 2))

	n := r.DrawStarfield(rng, 500)
	assert.Less(t, n, 500)

	lit := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if r.FB.ColorAt(x, y) == White {
				lit++
			}
		}
	}
	assert.LessOrEqual(t, lit, n)
	assert.Equal(t, n > 0, lit > 0)
	assert.Zero(t, r.DrawStarfield(rng, 0))
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera3D(800, 600)

	sx, sy, ok := cam.Project3DToScreen(V3(0, 0, 0))
	require.True(t, ok)
	assert.InDelta(t, 400, sx, 1e-9)
	assert.InDelta(t, 300, sy, 1e-9)

	sx, sy, ok = cam.Project3DToScreen(V3(0.1, 0.1, 0))
	require.True(t, ok)
	assert.Greater(t, sx, 400.0)
	assert.Less(t, sy, 300.0)

	_, _, ok = cam.Project3DToScreen(V3(0, 0, 3))
	assert.False(t, ok)

	cam.Move(1, 0, -1)
	assert.InDeltaSlice(t, []float64{0.1, 0, 1.4}, cam.Position[:], 1e-12)
}

func TestOrbitTrail(t *testing.T) {
	tr := NewOrbitTrail(3)
	assert.Equal(t, 3, tr.Cap())
	assert.Zero(t, tr.Len())

	for i := 0; i < 5; i++ {
		tr.Push(mgl64.Vec2{float64(i), 0})
		assert.LessOrEqual(t, tr.Len(), tr.Cap())
	}
	assert.Equal(t, 3, tr.Len())
	for i := 0; i < 3; i++ {
		assert.Equal(t, mgl64.Vec2{float64(i + 2), 0}, tr.At(i))
	}

	tr.Reset()
	assert.Zero(t, tr.Len())
	assert.Equal(t, DefaultTrailCapacity, NewOrbitTrail(0).Cap())
}

func TestOrbitTrailDraw(t *testing.T) {
	fb := NewFramebuffer(10, 10)
	r := NewRasterizer(fb)
	require.True(t, fb.WritePoint(Fragment{X: 2, Y: 0, Depth: 0.1, Color: RGB(255, 0, 0)}))

	tr := NewOrbitTrail(4)
	tr.Push(mgl64.Vec2{0, 0})
	assert.Zero(t, tr.Draw(r, fb))

	tr.Push(mgl64.Vec2{4, 0})
	assert.Equal(t, 5, tr.Draw(r, fb))
	for x := 0; x <= 4; x++ {
		assert.Equal(t, White, fb.ColorAt(x, 0))
	}
	// trails never touch depth
	assert.Equal(t, 0.1, fb.DepthAt(2, 0))
}

func TestMakeSphere(t *testing.T) {
	m := MakeSphere(4, 6)
	// caps are one triangle per slice, the rest two
	assert.Len(t, m.Triangles, 2*6+2*6*2)
	for _, tri := range m.Triangles {
		for _, v := range tri.V {
			assert.InDelta(t, 1, v.Pos.Len(), 1e-9)
			assert.Equal(t, v.Pos, v.Normal)
		}
	}
	assert.Len(t, m.VBO(), len(m.Triangles)*9)
}

const quadOBJ = `# unit quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
vt 0 0
vt 1 0
vt 1 1
vt 0 1
vn 0 0 1
f 1/1/1 2/2/1 3/3/1 4/4/1
f -4//-1 -3//-1 -2//-1
`

func TestLoadOBJ(t *testing.T) {
	m, err := LoadOBJ(strings.NewReader(quadOBJ))
	require.NoError(t, err)
	require.Len(t, m.Triangles, 3)

	first := m.Triangles[0].V
	assert.Equal(t, V3(0, 0, 0), first[0].Pos)
	assert.Equal(t, V3(1, 0, 0), first[1].Pos)
	assert.Equal(t, V3(1, 1, 0), first[2].Pos)
	assert.Equal(t, V3(1, 1, 0), first[2].Tex)
	assert.Equal(t, V3(0, 0, 1), first[2].Normal)

	second := m.Triangles[1].V
	assert.Equal(t, V3(0, 1, 0), second[2].Pos)

	neg := m.Triangles[2].V
	assert.Equal(t, V3(0, 0, 0), neg[0].Pos)
	assert.Equal(t, mgl64.Vec3{}, neg[0].Tex)
	assert.Equal(t, V3(0, 0, 1), neg[0].Normal)

	assert.Len(t, m.VBO(), 27)
}

func TestLoadOBJMalformed(t *testing.T) {
	for name, src := range map[string]string{
		"short vertex": "v 1 2\n",
		"bad number":   "v 1 x 3\n",
		"short face":   "v 0 0 0\nv 1 0 0\nf 1 2\n",
		"out of range": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 4\n",
		"bad index":    "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 a\n",
		"missing norm": "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1//1 2//1 3//1\n",
	} {
		_, err := LoadOBJ(strings.NewReader(src))
		assert.ErrorIs(t, err, ErrMalformedMesh, name)
	}
}

func TestSetLogger(t *testing.T) {
	SetLogger(nil)
	require.NotNil(t, Logger())
	assert.False(t, Logger().Enabled(t.Context(), 0))
}
