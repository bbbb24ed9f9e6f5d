package render3d

import "github.com/go-gl/mathgl/mgl64"

// DefaultTrailCapacity bounds an OrbitTrail when no capacity is given
const DefaultTrailCapacity = 1000

// OrbitTrail is a fixed-capacity ring of screen-space points. It always
// holds at most the Cap() most recent points.
type OrbitTrail struct {
	pts   []mgl64.Vec2
	start int
	n     int
	Color Color
}

// NewOrbitTrail allocates a trail holding up to capacity points
func NewOrbitTrail(capacity int) *OrbitTrail {
	if capacity <= 0 {
		capacity = DefaultTrailCapacity
	}
	return &OrbitTrail{pts: make([]mgl64.Vec2, capacity), Color: White}
}

func (t *OrbitTrail) Cap() int { return len(t.pts) }
func (t *OrbitTrail) Len() int { return t.n }

// Push appends p, evicting the oldest point when full
func (t *OrbitTrail) Push(p mgl64.Vec2) {
	if t.n < len(t.pts) {
		t.pts[(t.start+t.n)%len(t.pts)] = p
		t.n++
		return
	}
	t.pts[t.start] = p
	t.start = (t.start + 1) % len(t.pts)
}

// At returns the i-th point, oldest first
func (t *OrbitTrail) At(i int) mgl64.Vec2 {
	return t.pts[(t.start+i)%len(t.pts)]
}

// Reset forgets every point
func (t *OrbitTrail) Reset() {
	t.start, t.n = 0, 0
}

// Draw connects consecutive points with lines written straight to fb
func (t *OrbitTrail) Draw(r *Rasterizer, fb *Framebuffer) int {
	written := 0
	for i := 0; i+1 < t.n; i++ {
		a, b := t.At(i), t.At(i+1)
		for _, f := range r.RasterizeLine(V3(a[0], a[1], 0), V3(b[0], b[1], 0), t.Color) {
			if fb.WritePoint(f) {
				written++
			}
		}
	}
	return written
}
