package core

import (
	"fmt"
	"math"

	"github.com/1siamBot/solar-raster/engine/config"
	"github.com/1siamBot/solar-raster/engine/render3d"
	"github.com/go-gl/mathgl/mgl64"
)

// Planet is one orbiting body
type Planet struct {
	Name        string
	Type        render3d.ObjectType
	OrbitRadius float64
	Scale       float64 // uniform
	Speed       float64 // angle units per unit of scene time
	Angle       float64

	Trail *render3d.OrbitTrail
}

// Scene is the set of planets drawn each frame
type Scene struct {
	Planets      []*Planet
	SystemOffset mgl64.Vec3
	Focus        int
}

// NewScene creates an empty scene shifted by offset
func NewScene(offset mgl64.Vec3) *Scene {
	return &Scene{SystemOffset: offset}
}

// AddPlanet appends p with a trail of the given capacity
func (s *Scene) AddPlanet(p Planet, trailCap int) *Planet {
	pp := &p
	pp.Trail = render3d.NewOrbitTrail(trailCap)
	s.Planets = append(s.Planets, pp)
	return pp
}

// Model composes offset * rotY(angle deg) * translate(orbit) * scale.
// The orbit position treats Angle as radians while the spin treats it as
// degrees, so a body turns slowly as it travels.
func (s *Scene) Model(p *Planet) mgl64.Mat4 {
	orbitX := p.OrbitRadius * math.Cos(p.Angle)
	orbitZ := p.OrbitRadius * math.Sin(p.Angle)

	translate := mgl64.Translate3D(s.SystemOffset[0], s.SystemOffset[1], s.SystemOffset[2])
	rotation := mgl64.HomogRotate3DY(mgl64.DegToRad(p.Angle))
	orbit := mgl64.Translate3D(orbitX, 0, orbitZ)
	scale := mgl64.Scale3D(p.Scale, p.Scale, p.Scale)
	return translate.Mul4(rotation).Mul4(orbit).Mul4(scale)
}

// Center is the planet's world-space origin
func (s *Scene) Center(p *Planet) mgl64.Vec3 {
	return render3d.TransformPoint(s.Model(p), mgl64.Vec3{})
}

// Advance moves every planet along its orbit
func (s *Scene) Advance(dt float64) {
	for _, p := range s.Planets {
		p.Angle += p.Speed * dt
	}
}

// FocusNext cycles the focused planet
func (s *Scene) FocusNext() {
	if len(s.Planets) == 0 {
		return
	}
	s.Focus = (s.Focus + 1) % len(s.Planets)
}

// Focused returns the focused planet, nil for an empty scene
func (s *Scene) Focused() *Planet {
	if len(s.Planets) == 0 {
		return nil
	}
	return s.Planets[s.Focus%len(s.Planets)]
}

// RecordTrails pushes each planet's projected centre onto its trail
func (s *Scene) RecordTrails(cam *render3d.Camera3D) {
	for _, p := range s.Planets {
		sx, sy, ok := cam.Project3DToScreen(s.Center(p))
		if !ok {
			continue
		}
		p.Trail.Push(mgl64.Vec2{sx, sy})
	}
}

// NewSceneFromConfig builds a scene from its configuration
func NewSceneFromConfig(sc config.SceneConfig, trailCap int) (*Scene, error) {
	s := NewScene(mgl64.Vec3(sc.Offset))
	for _, pc := range sc.Planets {
		t, err := render3d.ParseObjectType(pc.Type)
		if err != nil {
			return nil, fmt.Errorf("planet %q: %w", pc.Name, err)
		}
		s.AddPlanet(Planet{
			Name:        pc.Name,
			Type:        t,
			OrbitRadius: pc.OrbitRadius,
			Scale:       pc.Scale,
			Speed:       pc.Speed,
			Angle:       pc.Angle,
		}, trailCap)
	}
	return s, nil
}
