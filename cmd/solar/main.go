package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/1siamBot/solar-raster/engine/config"
	"github.com/1siamBot/solar-raster/engine/core"
	"github.com/1siamBot/solar-raster/engine/input"
	"github.com/1siamBot/solar-raster/engine/render3d"
	"github.com/1siamBot/solar-raster/engine/shading"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var focusRing = color.RGBA{255, 220, 0, 255}

// Game implements ebiten.Game interface
type Game struct {
	sys   *core.System
	input *input.InputState
	title string

	last    core.FrameStats
	lastErr error
}

func NewGame(sys *core.System, title string) *Game {
	g := &Game{
		sys:   sys,
		input: input.NewInputState(),
		title: title,
	}
	sys.Events.On(core.EvtFocusChanged, func(e core.Event) {
		p := e.Payload.(*core.Planet)
		render3d.Logger().Info("focus", slog.String("planet", p.Name), slog.Uint64("frame", e.Frame))
	})
	sys.Events.On(core.EvtPaused, func(e core.Event) {
		render3d.Logger().Info("paused", slog.Uint64("frame", e.Frame))
	})
	sys.Events.On(core.EvtResumed, func(e core.Event) {
		render3d.Logger().Info("resumed", slog.Uint64("frame", e.Frame))
	})
	return g
}

func (g *Game) Update() error {
	g.input.Update()
	if g.input.Quit {
		return ebiten.Termination
	}

	if g.input.Moved() {
		m := g.input.Move
		g.sys.Camera.Move(m[0], m[1], m[2])
	}
	if g.input.FocusNext {
		g.sys.FocusNext()
	}
	if g.input.TogglePause {
		g.sys.TogglePause()
	}
	if g.input.ToggleTrails {
		g.sys.ShowTrails = !g.sys.ShowTrails
	}

	g.sys.Loop.Update()
	g.sys.Events.Dispatch()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.last, g.lastErr = g.sys.RenderFrame()
	screen.WritePixels(g.sys.Renderer.FB.Pixels())
	g.drawFocus(screen)
	g.drawHUD(screen)
	ebiten.SetWindowTitle(fmt.Sprintf("%s | FPS: %.0f", g.title, ebiten.ActualFPS()))
}

// drawFocus circles the focused planet
func (g *Game) drawFocus(screen *ebiten.Image) {
	p := g.sys.Scene.Focused()
	if p == nil {
		return
	}
	c := g.sys.Scene.Center(p)
	cx, cy, ok := g.sys.Camera.Project3DToScreen(c)
	if !ok {
		return
	}
	ex, ey, ok := g.sys.Camera.Project3DToScreen(c.Add(g.sys.Camera.Up.Mul(p.Scale)))
	if !ok {
		return
	}
	r := math.Hypot(ex-cx, ey-cy) + 4
	vector.StrokeCircle(screen, float32(cx), float32(cy), float32(r), 1, focusRing, true)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	focus := "-"
	if p := g.sys.Scene.Focused(); p != nil {
		focus = fmt.Sprintf("%s (%s)", p.Name, p.Type)
	}
	state := "playing"
	if g.sys.Loop.State == core.StatePaused {
		state = "paused"
	}

	info := fmt.Sprintf(
		"FPS: %.0f | Frame: %d | %s\n"+
			"Focus: %s | Tris: %d Frags: %d Written: %d\n"+
			"[Arrows] Move [1/2] Zoom [Space] Focus [P] Pause [T] Trails [Esc] Quit",
		ebiten.ActualFPS(), g.last.Frame, state,
		focus, g.last.Triangles, g.last.Fragments, g.last.Written,
	)
	if g.lastErr != nil {
		info += fmt.Sprintf("\nskipped %d planet(s)", g.last.Skipped)
	}
	ebitenutil.DebugPrint(screen, info)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	fb := g.sys.Renderer.FB
	return fb.Width, fb.Height
}

func loadMesh(cfg config.Config) ([]mgl64.Vec3, error) {
	if cfg.Mesh.OBJ == "" {
		return render3d.MakeSphere(cfg.Mesh.Stacks, cfg.Mesh.Slices).VBO(), nil
	}
	f, err := os.Open(cfg.Mesh.OBJ)
	if err != nil {
		return nil, fmt.Errorf("open mesh: %w", err)
	}
	defer f.Close()
	m, err := render3d.LoadOBJ(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", cfg.Mesh.OBJ, err)
	}
	return m.VBO(), nil
}

func writeSnapshot(path string, sys *core.System, frames, scale int) error {
	sys.Events.On(core.EvtPlanetSkipped, func(e core.Event) {
		log.Printf("frame %d: %v", e.Frame, e.Payload)
	})
	st, err := sys.Headless(frames)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	var img image.Image = sys.Renderer.FB.Image()
	if scale > 1 {
		fb := sys.Renderer.FB
		dst := image.NewRGBA(image.Rect(0, 0, fb.Width*scale, fb.Height*scale))
		fb.Present(dst)
		img = dst
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	log.Printf("wrote %s: frame %d, %d triangles, %d fragments written", path, st.Frame, st.Triangles, st.Written)
	return f.Close()
}

func main() {
	configPath := flag.String("config", "", "YAML scene configuration")
	meshPath := flag.String("mesh", "", "OBJ mesh drawn for every planet (default: generated sphere)")
	snapshot := flag.String("snapshot", "", "render headless and write a PNG to this path")
	frames := flag.Int("frames", 1, "frames to simulate before a snapshot")
	scale := flag.Int("scale", 1, "integer upscale applied to the snapshot")
	dumpConfig := flag.Bool("dump-config", false, "print the effective configuration and exit")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	if *verbose {
		render3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *meshPath != "" {
		cfg.Mesh.OBJ = *meshPath
	}
	if *dumpConfig {
		if err := config.Write(os.Stdout, cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	vbo, err := loadMesh(cfg)
	if err != nil {
		log.Fatal(err)
	}
	sys, err := core.NewSystem(cfg, vbo, shading.DefaultRegistry(cfg.Render.NoiseSeed))
	if err != nil {
		log.Fatal(err)
	}

	if *snapshot != "" {
		if *frames < 1 {
			log.Fatal(errors.New("-frames must be at least 1"))
		}
		if err := writeSnapshot(*snapshot, sys, *frames, *scale); err != nil {
			log.Fatal(err)
		}
		return
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(true)
	ebiten.SetTPS(int(cfg.Window.TickRate))

	if err := ebiten.RunGame(NewGame(sys, cfg.Window.Title)); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
