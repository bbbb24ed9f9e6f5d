package render3d

import "github.com/go-gl/mathgl/mgl64"

// Light is a single directional light with an ambient floor
type Light struct {
	Direction mgl64.Vec3 // normalized direction TO the light (from surface)
	Ambient   float64    // minimum intensity for surfaces facing away
}

// DefaultLight points at the viewer with a dim ambient floor
func DefaultLight() Light {
	return Light{
		Direction: V3(0, 0, 1),
		Ambient:   0.1,
	}
}

// NewLight normalizes dir before use
func NewLight(dir mgl64.Vec3, ambient float64) Light {
	return Light{Direction: Normalize(dir), Ambient: clamp(ambient, 0, 1)}
}

// Intensity is the Lambert term for a world-space normal, clamped to [0,1]
// and never below the ambient floor.
func (l Light) Intensity(normal mgl64.Vec3) float64 {
	ndotl := clamp(Normalize(normal).Dot(l.Direction), 0, 1)
	if ndotl < l.Ambient {
		return l.Ambient
	}
	return ndotl
}
