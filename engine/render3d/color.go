package render3d

import "image/color"

// Color is an 8-bit RGBA value
type Color struct {
	R, G, B, A uint8
}

// RGB builds an opaque color from 0-255 channels. Out-of-range values clamp.
func RGB(r, g, b int) Color {
	return Color{clampByte(float64(r)), clampByte(float64(g)), clampByte(float64(b)), 255}
}

// RGBf builds an opaque color from 0-1 channels
func RGBf(r, g, b float64) Color {
	return Color{clampByte(r * 255), clampByte(g * 255), clampByte(b * 255), 255}
}

// Scale multiplies RGB by s, clamping to [0,255]. Alpha is kept.
func (c Color) Scale(s float64) Color {
	return Color{
		clampByte(float64(c.R) * s),
		clampByte(float64(c.G) * s),
		clampByte(float64(c.B) * s),
		c.A,
	}
}

// Add sums two colors channel-wise with saturation
func (c Color) Add(o Color) Color {
	return Color{
		clampByte(float64(c.R) + float64(o.R)),
		clampByte(float64(c.G) + float64(o.G)),
		clampByte(float64(c.B) + float64(o.B)),
		clampByte(float64(c.A) + float64(o.A)),
	}
}

// Lerp mixes c towards o by t (0 = c, 1 = o)
func (c Color) Lerp(o Color, t float64) Color {
	mix := func(a, b uint8) uint8 {
		return clampByte(float64(a) + (float64(b)-float64(a))*t)
	}
	return Color{mix(c.R, o.R), mix(c.G, o.G), mix(c.B, o.B), mix(c.A, o.A)}
}

// NRGBA converts to the standard library representation
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements color.Color
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// clampByte rounds to the nearest channel value; NaN maps to 0
func clampByte(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

var (
	Black = RGB(0, 0, 0)
	White = RGB(255, 255, 255)
)
