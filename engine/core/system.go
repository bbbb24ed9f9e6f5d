package core

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/1siamBot/solar-raster/engine/config"
	"github.com/1siamBot/solar-raster/engine/render3d"
	"github.com/go-gl/mathgl/mgl64"
)

// Trail colors; the focused planet's trail is highlighted
var (
	TrailColor = render3d.RGB(255, 255, 255)
	FocusColor = render3d.RGB(255, 220, 0)
)

// FrameStats summarises one rendered frame
type FrameStats struct {
	Frame     uint64
	Stars     int
	TrailPix  int
	Triangles int
	Fragments int
	Written   int
	Skipped   int // planets whose draw failed
}

// System ties the scene, loop, camera and renderer together and renders
// complete frames.
type System struct {
	Scene    *Scene
	Loop     *GameLoop
	Camera   *render3d.Camera3D
	Renderer *render3d.Renderer
	VBO      []mgl64.Vec3
	Events   *EventBus

	MaxStars   int
	ShowTrails bool

	rng *rand.Rand
}

// NewSystem builds a system from cfg drawing every planet with vbo
func NewSystem(cfg config.Config, vbo []mgl64.Vec3, shaders render3d.FragmentShader) (*System, error) {
	scene, err := NewSceneFromConfig(cfg.Scene, cfg.Render.TrailCapacity)
	if err != nil {
		return nil, err
	}

	w, h := cfg.Window.Width, cfg.Window.Height
	cam := render3d.NewCamera3D(w, h)
	cam.Position = mgl64.Vec3(cfg.Camera.Position)
	cam.Target = mgl64.Vec3(cfg.Camera.Target)
	cam.FovY = cfg.Camera.FovY
	cam.Near = cfg.Camera.Near
	cam.Far = cfg.Camera.Far
	cam.Speed = cfg.Camera.Speed

	r := render3d.NewRenderer(w, h, shaders)
	bg := cfg.Render.Background
	r.FB.Background = render3d.RGB(bg[0], bg[1], bg[2])
	r.Raster.Light = render3d.NewLight(mgl64.Vec3(cfg.Light.Direction), cfg.Light.Ambient)

	seed := cfg.Render.NoiseSeed
	return &System{
		Scene:      scene,
		Loop:       NewGameLoop(scene, cfg.Window.TickRate, cfg.Window.TickStep),
		Camera:     cam,
		Renderer:   r,
		VBO:        vbo,
		Events:     NewEventBus(),
		MaxStars:   cfg.Render.MaxStars,
		ShowTrails: cfg.Render.ShowTrails,
		rng:        rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}, nil
}

// RenderFrame clears the framebuffer and draws stars, trails and every
// planet for the loop's current frame. A planet that fails to draw is
// skipped; the joined errors are returned after the frame is complete.
func (s *System) RenderFrame() (FrameStats, error) {
	st := FrameStats{Frame: s.Loop.Frame}
	r := s.Renderer

	r.BeginFrame()
	st.Stars = r.DrawStarfield(s.rng, s.MaxStars)

	s.Scene.RecordTrails(s.Camera)
	if s.ShowTrails {
		focused := s.Scene.Focused()
		for _, p := range s.Scene.Planets {
			p.Trail.Color = TrailColor
			if p == focused {
				p.Trail.Color = FocusColor
			}
			st.TrailPix += p.Trail.Draw(r.Raster, r.FB)
		}
	}

	var errs []error
	for _, p := range s.Scene.Planets {
		u := s.Camera.Uniforms(s.Scene.Model(p), p.Type)
		ds, err := r.DrawMesh(s.VBO, u, s.Loop.Frame)
		st.Triangles += ds.Triangles
		st.Fragments += ds.Fragments
		st.Written += ds.Written
		if err != nil {
			st.Skipped++
			render3d.Logger().Warn("skip planet", slog.String("name", p.Name), slog.Any("err", err))
			err = fmt.Errorf("planet %q: %w", p.Name, err)
			s.Events.Emit(Event{Type: EvtPlanetSkipped, Frame: st.Frame, Payload: err})
			errs = append(errs, err)
		}
	}
	s.Events.Emit(Event{Type: EvtFrameRendered, Frame: st.Frame, Payload: st})
	return st, errors.Join(errs...)
}

// FocusNext moves focus to the next planet
func (s *System) FocusNext() {
	s.Scene.FocusNext()
	if p := s.Scene.Focused(); p != nil {
		s.Events.Emit(Event{Type: EvtFocusChanged, Frame: s.Loop.Frame, Payload: p})
	}
}

// TogglePause pauses or resumes orbital motion. Frames keep counting.
func (s *System) TogglePause() {
	s.Loop.Toggle()
	t := EvtResumed
	if s.Loop.State == StatePaused {
		t = EvtPaused
	}
	s.Events.Emit(Event{Type: t, Frame: s.Loop.Frame})
}

// Headless steps, renders and dispatches events for n frames, returning
// the stats of the last one.
func (s *System) Headless(n int) (FrameStats, error) {
	var (
		st  FrameStats
		err error
	)
	for i := 0; i < n; i++ {
		s.Loop.Step()
		st, err = s.RenderFrame()
		s.Events.Dispatch()
		if err != nil {
			return st, err
		}
	}
	return st, nil
}
