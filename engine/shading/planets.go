package shading

import (
	"math"

	"github.com/1siamBot/solar-raster/engine/noise"
	"github.com/1siamBot/solar-raster/engine/render3d"
	"github.com/go-gl/mathgl/mgl64"
)

// Patchy is a single-sample planar surface: one noise lookup on the
// fragment's model-space (x, y), compared against one threshold.
type Patchy struct {
	Base   render3d.Color
	Patch  render3d.Color
	Offset mgl64.Vec2
	Scale  float64

	Threshold float64
	// Below selects the patch color under the threshold instead of above it
	Below bool

	Noise noise.Source
}

func (p *Patchy) Shade(f render3d.Fragment, _ Clock) render3d.Color {
	x, y := f.OriginalPos[0], f.OriginalPos[1]
	n := p.Noise.Noise2((x+p.Offset[0])*p.Scale, (y+p.Offset[1])*p.Scale)
	c := p.Base
	if (p.Below && n < p.Threshold) || (!p.Below && n > p.Threshold) {
		c = p.Patch
	}
	return c.Scale(f.Intensity)
}

// NewStar is a reddish surface with bright ember patches
func NewStar(seed uint64) *Patchy {
	return &Patchy{
		Base:      render3d.RGBf(1.0, 0.2, 0.0),
		Patch:     render3d.RGBf(1.0, 0.5, 0.0),
		Offset:    mgl64.Vec2{10000, 10000},
		Scale:     7000,
		Threshold: 0.3,
		Noise:     noise.NewSeeded(noise.Perlin, seed),
	}
}

// NewRockyRed is a red surface pitted with dark craters
func NewRockyRed(seed uint64) *Patchy {
	return &Patchy{
		Base:      render3d.RGB(210, 0, 0),
		Patch:     render3d.RGB(0, 0, 0),
		Offset:    mgl64.Vec2{1234, 5678},
		Scale:     5000,
		Threshold: 0.05,
		Below:     true,
		Noise:     noise.NewSeeded(noise.Perlin, seed),
	}
}

// NewPaleYellow is a pale-yellow surface with dark orange spots
func NewPaleYellow(seed uint64) *Patchy {
	return &Patchy{
		Base:      render3d.RGB(255, 230, 153),
		Patch:     render3d.RGB(204, 85, 0),
		Offset:    mgl64.Vec2{1234, 5678},
		Scale:     5000,
		Threshold: 0.4,
		Noise:     noise.NewSeeded(noise.Perlin, seed),
	}
}

// Region identifies which band of the ringed giant a fragment falls in
type Region uint8

const (
	RegionBase Region = iota
	RegionBandA
	RegionBandB
)

// RingedGiant layers two noise samples of different scale over a tan base
type RingedGiant struct {
	Base, BandA, BandB render3d.Color
	Offset             mgl64.Vec2
	Scale1, Scale2     float64
	Threshold1         float64 // first sample, band B
	Threshold2         float64 // second sample, band A; takes precedence
	Noise              noise.Source
}

func NewRingedGiant(seed uint64) *RingedGiant {
	return &RingedGiant{
		Base:       render3d.RGB(201, 159, 79),
		BandA:      render3d.RGB(203, 123, 0),
		BandB:      render3d.RGB(117, 49, 0),
		Offset:     mgl64.Vec2{12345, 67890},
		Scale1:     50000,
		Scale2:     80000,
		Threshold1: 0.1,
		Threshold2: 0.08,
		Noise:      noise.NewSeeded(noise.Perlin, seed),
	}
}

// Region maps a pair of samples to exactly one region
func (g *RingedGiant) Region(n1, n2 float64) Region {
	switch {
	case n2 > g.Threshold2:
		return RegionBandA
	case n1 > g.Threshold1:
		return RegionBandB
	default:
		return RegionBase
	}
}

func (g *RingedGiant) Shade(f render3d.Fragment, _ Clock) render3d.Color {
	// sampled on (y, x)
	u, v := f.OriginalPos[1]+g.Offset[0], f.OriginalPos[0]+g.Offset[1]
	n1 := g.Noise.Noise2(u*g.Scale1, v*g.Scale1)
	n2 := g.Noise.Noise2(u*g.Scale2, v*g.Scale2)

	var c render3d.Color
	switch g.Region(n1, n2) {
	case RegionBandA:
		c = g.BandA
	case RegionBandB:
		c = g.BandB
	default:
		c = g.Base
	}
	return c.Scale(f.Intensity)
}

// WaterLand samples noise on spherical coordinates for oceans, continents
// and a cloud layer.
type WaterLand struct {
	Ocean, Land, Cloud render3d.Color

	Zoom         float64
	SecondOffset mgl64.Vec2 // added to the second sample's (x, z)
	LandLevel    float64    // averaged noise below this is ocean

	CloudOffset mgl64.Vec2
	CloudZoom   float64
	CloudLevel  float64

	Noise noise.Source
}

func NewWaterLand(seed uint64) *WaterLand {
	return &WaterLand{
		Ocean:        render3d.RGB(0, 0, 255),
		Land:         render3d.RGBf(0, 0.5, 0),
		Cloud:        render3d.White,
		Zoom:         100,
		SecondOffset: mgl64.Vec2{1200, 3000},
		LandLevel:    0.2,
		CloudOffset:  mgl64.Vec2{5500, 6900},
		CloudZoom:    300,
		CloudLevel:   0.5,
		Noise:        noise.NewSeeded(noise.OpenSimplex2, seed),
	}
}

func (w *WaterLand) Shade(f render3d.Fragment, _ Clock) render3d.Color {
	p := f.OriginalPos
	uv := spherical(p)
	// same latitude, longitude taken from a shifted origin
	uv2 := uv
	if uv[2] > 0 {
		uv2[0] = math.Atan2(p[0]+10, p[2])
	}

	n1 := w.Noise.Noise3(uv[0]*w.Zoom, uv[1]*w.Zoom, uv[2]*w.Zoom)
	n2 := w.Noise.Noise3(uv2[0]*w.Zoom+w.SecondOffset[0], uv2[1]*w.Zoom, uv2[2]*w.Zoom+w.SecondOffset[1])

	c := w.Land
	if (n1+n2)*0.5 < w.LandLevel {
		c = w.Ocean
	}

	cloud := w.Noise.Noise2((uv[0]+w.CloudOffset[0])*w.CloudZoom, (uv[1]+w.CloudOffset[1])*w.CloudZoom)
	if cloud > w.CloudLevel {
		c = w.Cloud
	}
	return c.Scale(f.Intensity)
}

// Molten is a cellular lava surface whose cell size breathes with the
// frame counter.
type Molten struct {
	Bright, Dark render3d.Color
	Zoom         float64

	// frequency = BaseFrequency + triangle(frame) * FrequencySwing
	BaseFrequency  float64
	FrequencySwing float64
	Period         uint64 // frames per half swing step

	Noise noise.Source // sampled at frequency 1; coordinates are pre-scaled
}

func NewMolten(seed uint64) *Molten {
	return &Molten{
		Bright:         render3d.RGBf(1.0, 0.6, 0.0),
		Dark:           render3d.RGBf(0.8, 0.2, 0.0),
		Zoom:           1000,
		BaseFrequency:  0.02,
		FrequencySwing: 1.0 / 2000,
		Period:         10,
		Noise:          noise.NewGenerator(noise.Cellular, seed, 1),
	}
}

// Frequency is the noise frequency used at frame. It rises and falls
// linearly between BaseFrequency and BaseFrequency + 10*FrequencySwing.
func (m *Molten) Frequency(frame uint64) float64 {
	period := m.Period
	if period == 0 {
		period = 1
	}
	step := int((frame / period) % 20)
	tri := 10 - absInt(step-10)
	return m.BaseFrequency + float64(tri)*m.FrequencySwing
}

func (m *Molten) Shade(f render3d.Fragment, clk Clock) render3d.Color {
	uv := spherical(f.OriginalPos)
	freq := m.Frequency(clk.Frame)
	s := freq * m.Zoom

	n1 := m.Noise.Noise3(uv[0]*s, uv[1]*s, uv[2]*s)
	n2 := m.Noise.Noise2(uv[0]*s+1000*freq, uv[1]*s+1000*freq)
	// raw mix; Color saturates when the sample leaves [0,1]
	return m.Bright.Lerp(m.Dark, (n1+n2)*0.5).Scale(f.Intensity)
}

// Banded draws latitude stripes without noise
type Banded struct {
	Base      render3d.Color
	Frequency float64
}

func NewBanded() *Banded {
	return &Banded{Base: render3d.RGB(125, 67, 37), Frequency: 20}
}

func (b *Banded) Shade(f render3d.Fragment, _ Clock) render3d.Color {
	stripe := math.Abs(math.Cos(f.OriginalPos[1] * b.Frequency))
	return b.Base.Scale((0.5 + 0.5*stripe) * f.Intensity)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
