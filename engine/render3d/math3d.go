package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// V3 is shorthand for an mgl64.Vec3
func V3(x, y, z float64) mgl64.Vec3 { return mgl64.Vec3{x, y, z} }

// Normalize returns v scaled to unit length, or the zero vector when v is
// too short to have a direction.
func Normalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-10 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// ViewportMatrix maps NDC to pixel space. x covers [0,w], y is flipped so
// image rows grow downwards, z is remapped from [-1,1] to [0,1].
func ViewportMatrix(w, h int) mgl64.Mat4 {
	hw, hh := float64(w)/2, float64(h)/2
	m := mgl64.Ident4()
	m[0] = hw
	m[5] = -hh
	m[10] = 0.5
	m[12] = hw
	m[13] = hh
	m[14] = 0.5
	return m
}

// TransformPoint multiplies (p,1) by m and returns xyz without dividing by w
func TransformPoint(m mgl64.Mat4, p mgl64.Vec3) mgl64.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

// edge returns twice the signed area of triangle (a, b, p)
func edge(ax, ay, bx, by, px, py float64) float64 {
	return (bx-ax)*(py-ay) - (by-ay)*(px-ax)
}

// Barycentric returns the weights of p relative to triangle (a, b, c) using
// the signed-area method. ok is false for a degenerate triangle.
func Barycentric(a, b, c mgl64.Vec3, px, py float64) (w0, w1, w2 float64, ok bool) {
	area := edge(a[0], a[1], b[0], b[1], c[0], c[1])
	if math.Abs(area) < 1e-12 {
		return 0, 0, 0, false
	}
	w0 = edge(b[0], b[1], c[0], c[1], px, py) / area
	w1 = edge(c[0], c[1], a[0], a[1], px, py) / area
	w2 = edge(a[0], a[1], b[0], b[1], px, py) / area
	return w0, w1, w2, true
}

// Interpolate3 blends three vectors by barycentric weight
func Interpolate3(a, b, c mgl64.Vec3, w0, w1, w2 float64) mgl64.Vec3 {
	return mgl64.Vec3{
		a[0]*w0 + b[0]*w1 + c[0]*w2,
		a[1]*w0 + b[1]*w1 + c[1]*w2,
		a[2]*w0 + b[2]*w1 + c[2]*w2,
	}
}

// finite is false when a perspective divide by w = 0 left Inf or NaN behind
func finite(v mgl64.Vec3) bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func min3(a, b, c float64) float64 { return math.Min(a, math.Min(b, c)) }
func max3(a, b, c float64) float64 { return math.Max(a, math.Max(b, c)) }

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
