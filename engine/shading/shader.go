// Package shading colors rasterized fragments with procedural, noise-driven
// planet surfaces.
package shading

import (
	"errors"
	"fmt"
	"math"

	"github.com/1siamBot/solar-raster/engine/render3d"
	"github.com/go-gl/mathgl/mgl64"
)

// ErrUnknownObject is returned for object types with no registered shader
var ErrUnknownObject = errors.New("shading: no shader for object type")

// Clock is the time input threaded from the frame loop
type Clock struct {
	Frame uint64
}

// Shader computes the final color of a fragment, intensity included.
// Implementations must be deterministic in (fragment, clock).
type Shader interface {
	Shade(f render3d.Fragment, clk Clock) render3d.Color
}

// ShaderFunc adapts a plain function to Shader
type ShaderFunc func(f render3d.Fragment, clk Clock) render3d.Color

func (fn ShaderFunc) Shade(f render3d.Fragment, clk Clock) render3d.Color { return fn(f, clk) }

// Registry maps object types to shaders
type Registry struct {
	shaders map[render3d.ObjectType]Shader
}

func NewRegistry() *Registry {
	return &Registry{shaders: make(map[render3d.ObjectType]Shader)}
}

// Register installs s for t, replacing any previous shader
func (r *Registry) Register(t render3d.ObjectType, s Shader) {
	r.shaders[t] = s
}

// Lookup returns the shader for t
func (r *Registry) Lookup(t render3d.ObjectType) (Shader, bool) {
	s, ok := r.shaders[t]
	return s, ok
}

// Shade colors f with the shader registered for t
func (r *Registry) Shade(f render3d.Fragment, t render3d.ObjectType, clk Clock) (render3d.Fragment, error) {
	s, ok := r.shaders[t]
	if !ok {
		return f, fmt.Errorf("%w: %s", ErrUnknownObject, t)
	}
	f.Color = s.Shade(f, clk)
	return f, nil
}

// ShadeFragment implements render3d.FragmentShader
func (r *Registry) ShadeFragment(f render3d.Fragment, t render3d.ObjectType, frame uint64) (render3d.Fragment, error) {
	return r.Shade(f, t, Clock{Frame: frame})
}

// DefaultRegistry registers every built-in surface, all sampling noise
// seeded with seed.
func DefaultRegistry(seed uint64) *Registry {
	r := NewRegistry()
	r.Register(render3d.ObjectStar, NewStar(seed))
	r.Register(render3d.ObjectRockyRed, NewRockyRed(seed))
	r.Register(render3d.ObjectPaleYellow, NewPaleYellow(seed))
	r.Register(render3d.ObjectRingedGiant, NewRingedGiant(seed))
	r.Register(render3d.ObjectWaterLand, NewWaterLand(seed))
	r.Register(render3d.ObjectMolten, NewMolten(seed))
	r.Register(render3d.ObjectBanded, NewBanded())
	return r
}

// spherical reparameterizes p as (longitude, colatitude, radius)
func spherical(p mgl64.Vec3) mgl64.Vec3 {
	r := p.Len()
	if r < 1e-12 {
		return mgl64.Vec3{}
	}
	return mgl64.Vec3{
		math.Atan2(p[0], p[2]),
		math.Acos(clampf(p[1]/r, -1, 1)),
		r,
	}
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
