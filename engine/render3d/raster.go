package render3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// baryEpsilon absorbs rounding on shared edges
const baryEpsilon = 1e-9

// Fragment is a candidate pixel write produced by rasterization
type Fragment struct {
	X, Y        int
	Depth       float64
	Color       Color
	Intensity   float64    // lighting factor in [0,1]
	OriginalPos mgl64.Vec3 // interpolated model-space position
	WorldPos    mgl64.Vec3 // interpolated world-space position
	Overlay     bool       // bypasses the depth test (orbit lines, stars)
}

// Rasterizer turns screen-space triangles and lines into fragments
type Rasterizer struct {
	Width, Height int
	Light         Light
	Depth         DepthReader // optional early depth test
}

// NewRasterizer creates a rasterizer bound to fb's size and depth buffer
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	return &Rasterizer{
		Width:  fb.Width,
		Height: fb.Height,
		Light:  DefaultLight(),
		Depth:  fb,
	}
}

// RasterizeTriangle returns one fragment per covered pixel centre that is
// nearer than the current depth buffer. The buffer itself is not touched,
// WritePoint repeats the test when fragments are committed.
func (r *Rasterizer) RasterizeTriangle(v0, v1, v2 Vertex) []Fragment {
	p0, p1, p2 := v0.Position, v1.Position, v2.Position
	if !finite(p0) || !finite(p1) || !finite(p2) {
		return nil
	}

	// bounds stay in float space until clamped; huge coordinates overflow int
	w, h := float64(r.Width-1), float64(r.Height-1)
	lx, hx := math.Floor(min3(p0[0], p1[0], p2[0])), math.Ceil(max3(p0[0], p1[0], p2[0]))
	ly, hy := math.Floor(min3(p0[1], p1[1], p2[1])), math.Ceil(max3(p0[1], p1[1], p2[1]))
	if lx > w || hx < 0 || ly > h || hy < 0 {
		return nil
	}
	minX, maxX := int(clampf(lx, 0, w)), int(clampf(hx, 0, w))
	minY, maxY := int(clampf(ly, 0, h)), int(clampf(hy, 0, h))
	if _, _, _, ok := Barycentric(p0, p1, p2, 0, 0); !ok {
		return nil
	}

	var frags []Fragment
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			w0, w1, w2, _ := Barycentric(p0, p1, p2, px, py)
			if !inside(w0, w1, w2) {
				continue
			}

			z := p0[2]*w0 + p1[2]*w1 + p2[2]*w2
			if r.Depth != nil && !(z < r.Depth.DepthAt(x, y)) {
				continue
			}

			normal := Interpolate3(v0.Normal, v1.Normal, v2.Normal, w0, w1, w2)
			frags = append(frags, Fragment{
				X:           x,
				Y:           y,
				Depth:       z,
				Intensity:   r.Light.Intensity(normal),
				OriginalPos: Interpolate3(v0.OriginalPosition, v1.OriginalPosition, v2.OriginalPosition, w0, w1, w2),
				WorldPos:    Interpolate3(v0.WorldPosition, v1.WorldPosition, v2.WorldPosition, w0, w1, w2),
			})
		}
	}
	return frags
}

func inside(w0, w1, w2 float64) bool {
	in := func(w float64) bool { return w >= -baryEpsilon && w <= 1+baryEpsilon }
	return in(w0) && in(w1) && in(w2) && math.Abs(w0+w1+w2-1) <= 1e-6
}

// RasterizeLine walks p0 -> p1 with Bresenham stepping and returns overlay
// fragments at depth 0 in color c. The segment is clipped to the buffer
// first, so only on-screen pixels are produced.
func (r *Rasterizer) RasterizeLine(p0, p1 mgl64.Vec3, c Color) []Fragment {
	if !finite(p0) || !finite(p1) {
		return nil
	}
	ax, ay, bx, by, ok := clipSegment(p0[0], p0[1], p1[0], p1[1], float64(r.Width-1), float64(r.Height-1))
	if !ok {
		return nil
	}
	x0, y0 := int(math.Round(ax)), int(math.Round(ay))
	x1, y1 := int(math.Round(bx)), int(math.Round(by))

	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	frags := make([]Fragment, 0, max(dx, -dy)+1)
	err := dx + dy
	for {
		frags = append(frags, Fragment{X: x0, Y: y0, Color: c, Intensity: 1, Overlay: true})
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
	return frags
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// clipSegment clips (x0,y0)-(x1,y1) to [0,w]x[0,h] (Liang-Barsky).
// ok is false when nothing of the segment is inside.
func clipSegment(x0, y0, x1, y1, w, h float64) (ax, ay, bx, by float64, ok bool) {
	if w < 0 || h < 0 {
		return 0, 0, 0, 0, false
	}
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0},
		{dx, w - x0},
		{-dy, y0},
		{dy, h - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = math.Min(t1, t)
		}
	}
	ax, ay = clampf(x0+t0*dx, 0, w), clampf(y0+t0*dy, 0, h)
	bx, by = clampf(x0+t1*dx, 0, w), clampf(y0+t1*dy, 0, h)
	return ax, ay, bx, by, true
}

func clampf(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
