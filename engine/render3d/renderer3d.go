package render3d

import (
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
)

// FragmentShader colors fragments for a given object type. frame is the
// frame counter of the calling loop, for time-varying shaders.
type FragmentShader interface {
	ShadeFragment(f Fragment, t ObjectType, frame uint64) (Fragment, error)
}

// DrawStats counts what one draw call produced
type DrawStats struct {
	Triangles int
	Fragments int // emitted by the rasterizer
	Written   int // survived the final depth test
}

// Renderer runs the vertex -> raster -> shade -> write pipeline against
// one framebuffer.
type Renderer struct {
	FB      *Framebuffer
	Raster  *Rasterizer
	Shaders FragmentShader
}

// NewRenderer creates a renderer with its own w x h framebuffer
func NewRenderer(w, h int, shaders FragmentShader) *Renderer {
	fb := NewFramebuffer(w, h)
	return &Renderer{
		FB:      fb,
		Raster:  NewRasterizer(fb),
		Shaders: shaders,
	}
}

// BeginFrame clears color and depth
func (r *Renderer) BeginFrame() {
	r.FB.Clear()
}

// DrawMesh draws a flat (position, normal, texcoord) vertex buffer with the
// given transform set. Malformed buffers are rejected before anything is
// written.
func (r *Renderer) DrawMesh(vbo []mgl64.Vec3, u Uniforms, frame uint64) (DrawStats, error) {
	var stats DrawStats

	verts, err := VerticesFromBuffer(vbo)
	if err != nil {
		return stats, err
	}
	if len(verts)%3 != 0 {
		return stats, fmt.Errorf("%w: %d vertices do not form whole triangles", ErrMalformedMesh, len(verts))
	}

	for i := range verts {
		verts[i] = TransformVertex(verts[i], u)
	}
	tris, err := AssembleTriangles(verts)
	if err != nil {
		return stats, err
	}

	for _, tri := range tris {
		stats.Triangles++
		// Per triangle, so later triangles see the depth written by earlier ones.
		for _, f := range r.Raster.RasterizeTriangle(tri[0], tri[1], tri[2]) {
			stats.Fragments++
			shaded, err := r.Shaders.ShadeFragment(f, u.ObjectType, frame)
			if err != nil {
				return stats, fmt.Errorf("shade %s: %w", u.ObjectType, err)
			}
			if r.FB.WritePoint(shaded) {
				stats.Written++
			}
		}
	}

	Logger().Debug("draw mesh",
		slog.String("object", u.ObjectType.String()),
		slog.Int("triangles", stats.Triangles),
		slog.Int("fragments", stats.Fragments),
		slog.Int("written", stats.Written))
	return stats, nil
}

// DrawStarfield scatters up to maxStars white overlay points
func (r *Renderer) DrawStarfield(rng *rand.Rand, maxStars int) int {
	if maxStars <= 0 {
		return 0
	}
	n := rng.IntN(maxStars)
	for i := 0; i < n; i++ {
		r.FB.WritePoint(Fragment{
			X:       rng.IntN(r.FB.Width),
			Y:       rng.IntN(r.FB.Height),
			Color:   White,
			Overlay: true,
		})
	}
	return n
}
