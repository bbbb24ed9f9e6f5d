package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera3D is a perspective look-at camera
type Camera3D struct {
	Position mgl64.Vec3
	Target   mgl64.Vec3
	Up       mgl64.Vec3

	FovY      float64 // degrees
	Near, Far float64

	// Screen dimensions
	ScreenW, ScreenH int

	// Step applied by Move, world units
	Speed float64
}

// NewCamera3D creates a camera 1.5 units in front of the origin
func NewCamera3D(screenW, screenH int) *Camera3D {
	return &Camera3D{
		Position: V3(0, 0, 1.5),
		Target:   V3(0, 0, 0),
		Up:       V3(0, 1, 0),
		FovY:     45,
		Near:     0.1,
		Far:      100,
		ScreenW:  screenW,
		ScreenH:  screenH,
		Speed:    0.1,
	}
}

// Move shifts the eye by (dx, dy, dz) steps; the target stays put
func (c *Camera3D) Move(dx, dy, dz float64) {
	c.Position = c.Position.Add(V3(dx, dy, dz).Mul(c.Speed))
}

// View returns the look-at matrix
func (c *Camera3D) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Position, c.Target, c.Up)
}

// Projection returns the perspective matrix for the screen aspect
func (c *Camera3D) Projection() mgl64.Mat4 {
	aspect := float64(c.ScreenW) / float64(c.ScreenH)
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), aspect, c.Near, c.Far)
}

// Viewport returns the NDC -> pixel matrix for the screen
func (c *Camera3D) Viewport() mgl64.Mat4 {
	return ViewportMatrix(c.ScreenW, c.ScreenH)
}

// Uniforms assembles the transform set for one object
func (c *Camera3D) Uniforms(model mgl64.Mat4, t ObjectType) Uniforms {
	return Uniforms{
		Model:      model,
		View:       c.View(),
		Projection: c.Projection(),
		Viewport:   c.Viewport(),
		ObjectType: t,
	}
}

// Project3DToScreen converts a world point to pixel coordinates. ok is false
// when the point is behind the eye.
func (c *Camera3D) Project3DToScreen(p mgl64.Vec3) (sx, sy float64, ok bool) {
	clip := c.Projection().Mul4(c.View()).Mul4x1(p.Vec4(1))
	if clip.W() <= 1e-9 {
		return 0, 0, false
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	s := TransformPoint(c.Viewport(), ndc)
	if math.IsNaN(s[0]) || math.IsNaN(s[1]) {
		return 0, 0, false
	}
	return s[0], s[1], true
}
