package render3d

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// DepthReader gives read access to a depth buffer. Smaller is nearer.
type DepthReader interface {
	DepthAt(x, y int) float64
}

// Framebuffer is a color buffer plus a parallel depth buffer
type Framebuffer struct {
	Width, Height int
	Background    Color

	color *image.RGBA
	depth []float64
}

// NewFramebuffer allocates a cleared w x h framebuffer
func NewFramebuffer(w, h int) *Framebuffer {
	fb := &Framebuffer{
		Width:      w,
		Height:     h,
		Background: Black,
		color:      image.NewRGBA(image.Rect(0, 0, w, h)),
		depth:      make([]float64, w*h),
	}
	fb.Clear()
	return fb
}

// Clear resets every pixel to the background color and every depth to the
// farthest value. Call once per frame before any writes.
func (fb *Framebuffer) Clear() {
	pix := fb.color.Pix
	if len(pix) > 0 {
		bg := fb.Background
		pix[0], pix[1], pix[2], pix[3] = bg.R, bg.G, bg.B, bg.A
		for i := 4; i < len(pix); i *= 2 {
			copy(pix[i:], pix[:i])
		}
	}
	if n := len(fb.depth); n > 0 {
		fb.depth[0] = math.Inf(1)
		for i := 1; i < n; i *= 2 {
			copy(fb.depth[i:], fb.depth[:i])
		}
	}
}

// InBounds reports whether (x, y) addresses a pixel
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && x < fb.Width && y >= 0 && y < fb.Height
}

// DepthAt returns the stored depth, +Inf outside the buffer
func (fb *Framebuffer) DepthAt(x, y int) float64 {
	if !fb.InBounds(x, y) {
		return math.Inf(1)
	}
	return fb.depth[y*fb.Width+x]
}

// ColorAt returns the stored color, or the zero Color outside the buffer
func (fb *Framebuffer) ColorAt(x, y int) Color {
	if !fb.InBounds(x, y) {
		return Color{}
	}
	c := fb.color.RGBAAt(x, y)
	return Color{c.R, c.G, c.B, c.A}
}

// WritePoint stores f if it is inside the buffer and nearer than what is
// already there. Overlay fragments skip the depth test and leave depth
// untouched. Rejected writes are dropped silently.
func (fb *Framebuffer) WritePoint(f Fragment) bool {
	if !fb.InBounds(f.X, f.Y) {
		return false
	}
	i := f.Y*fb.Width + f.X
	if !f.Overlay {
		if !(f.Depth < fb.depth[i]) {
			return false
		}
		fb.depth[i] = f.Depth
	}
	fb.color.SetRGBA(f.X, f.Y, color.RGBA{f.Color.R, f.Color.G, f.Color.B, f.Color.A})
	return true
}

// Image exposes the color buffer, e.g. for PNG encoding
func (fb *Framebuffer) Image() *image.RGBA { return fb.color }

// Pixels returns the raw RGBA bytes, row-major
func (fb *Framebuffer) Pixels() []byte { return fb.color.Pix }

// Present copies the color buffer to dst. Same-sized targets get a 1:1
// copy, anything else is scaled with nearest-neighbour sampling.
func (fb *Framebuffer) Present(dst xdraw.Image) {
	src := fb.color.Bounds()
	db := dst.Bounds()
	if db.Dx() == src.Dx() && db.Dy() == src.Dy() {
		xdraw.Copy(dst, db.Min, fb.color, src, xdraw.Src, nil)
		return
	}
	xdraw.NearestNeighbor.Scale(dst, db, fb.color, src, xdraw.Src, nil)
}
