// Package config loads the window, camera and scene description.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/1siamBot/solar-raster/engine/render3d"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Window WindowConfig `yaml:"window"`
	Camera CameraConfig `yaml:"camera"`
	Light  LightConfig  `yaml:"light"`
	Render RenderConfig `yaml:"render"`
	Scene  SceneConfig  `yaml:"scene"`
	Mesh   MeshConfig   `yaml:"mesh"`
}

type WindowConfig struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	Title    string  `yaml:"title,omitempty"`
	TickRate float64 `yaml:"tickRate"`
	TickStep float64 `yaml:"tickStep"`
}

type CameraConfig struct {
	Position [3]float64 `yaml:"position"`
	Target   [3]float64 `yaml:"target"`
	FovY     float64    `yaml:"fovY"`
	Near     float64    `yaml:"near"`
	Far      float64    `yaml:"far"`
	Speed    float64    `yaml:"speed"`
}

type LightConfig struct {
	Direction [3]float64 `yaml:"direction"`
	Ambient   float64    `yaml:"ambient"`
}

type RenderConfig struct {
	Background    [3]int `yaml:"background"`
	NoiseSeed     uint64 `yaml:"noiseSeed"`
	MaxStars      int    `yaml:"maxStars"`
	TrailCapacity int    `yaml:"trailCapacity"`
	ShowTrails    bool   `yaml:"showTrails"`
}

type SceneConfig struct {
	Offset  [3]float64     `yaml:"offset"`
	Planets []PlanetConfig `yaml:"planets"`
}

type PlanetConfig struct {
	Name        string  `yaml:"name"`
	Type        string  `yaml:"type"`
	OrbitRadius float64 `yaml:"orbitRadius"`
	Scale       float64 `yaml:"scale"`
	Speed       float64 `yaml:"speed"`
	Angle       float64 `yaml:"angle,omitempty"`
}

// MeshConfig chooses the body mesh: an OBJ file, or a generated sphere
type MeshConfig struct {
	OBJ    string `yaml:"obj,omitempty"`
	Stacks int    `yaml:"stacks"`
	Slices int    `yaml:"slices"`
}

// Default reproduces the built-in five-body system
func Default() Config {
	c := Config{
		Scene: SceneConfig{
			Offset: [3]float64{-0.1, 0, 0},
			Planets: []PlanetConfig{
				{Name: "Sun", Type: "star", OrbitRadius: 0.1, Scale: 0.15, Speed: 0},
				{Name: "Earth", Type: "water-land", OrbitRadius: 0.25, Scale: 0.06, Speed: 0.07},
				{Name: "Saturn", Type: "ringed-giant", OrbitRadius: 0.35, Scale: 0.06, Speed: 0.05},
				{Name: "Mars", Type: "rocky-red", OrbitRadius: 0.45, Scale: 0.08, Speed: 0.03},
				{Name: "Venus", Type: "pale-yellow", OrbitRadius: 0.56, Scale: 0.08, Speed: 0.01},
			},
		},
		Render: RenderConfig{MaxStars: 500, ShowTrails: true},
	}
	c.normalize()
	return c
}

func (c *Config) normalize() {
	if c.Window.Width == 0 {
		c.Window.Width = 800
	}
	if c.Window.Height == 0 {
		c.Window.Height = 600
	}
	if c.Window.Title == "" {
		c.Window.Title = "Software Renderer"
	}
	if c.Window.TickRate == 0 {
		c.Window.TickRate = 60
	}
	if c.Window.TickStep == 0 {
		c.Window.TickStep = 0.2
	}
	if c.Camera.Position == ([3]float64{}) {
		c.Camera.Position = [3]float64{0, 0, 1.5}
	}
	if c.Camera.FovY == 0 {
		c.Camera.FovY = 45
	}
	if c.Camera.Near == 0 {
		c.Camera.Near = 0.1
	}
	if c.Camera.Far == 0 {
		c.Camera.Far = 100
	}
	if c.Camera.Speed == 0 {
		c.Camera.Speed = 0.1
	}
	if c.Light.Direction == ([3]float64{}) {
		c.Light.Direction = [3]float64{0, 0, 1}
	}
	if c.Light.Ambient == 0 {
		c.Light.Ambient = 0.1
	}
	if c.Render.NoiseSeed == 0 {
		c.Render.NoiseSeed = 1337
	}
	if c.Render.TrailCapacity == 0 {
		c.Render.TrailCapacity = render3d.DefaultTrailCapacity
	}
	if c.Mesh.Stacks == 0 {
		c.Mesh.Stacks = 16
	}
	if c.Mesh.Slices == 0 {
		c.Mesh.Slices = 24
	}
}

// Validate reports the first problem found, wrapped in ErrInvalid
func (c *Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	}
	if c.Window.TickRate <= 0 {
		return fmt.Errorf("%w: tickRate must be positive", ErrInvalid)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return fmt.Errorf("%w: camera near/far %g/%g", ErrInvalid, c.Camera.Near, c.Camera.Far)
	}
	if c.Camera.FovY <= 0 || c.Camera.FovY >= 180 {
		return fmt.Errorf("%w: fovY %g", ErrInvalid, c.Camera.FovY)
	}
	if c.Light.Ambient < 0 || c.Light.Ambient > 1 {
		return fmt.Errorf("%w: ambient %g outside [0,1]", ErrInvalid, c.Light.Ambient)
	}
	for i, v := range c.Render.Background {
		if v < 0 || v > 255 {
			return fmt.Errorf("%w: background[%d] = %d", ErrInvalid, i, v)
		}
	}
	for i, p := range c.Scene.Planets {
		if _, err := render3d.ParseObjectType(p.Type); err != nil {
			return fmt.Errorf("%w: planet %d (%s): %v", ErrInvalid, i, p.Name, err)
		}
		if p.Scale <= 0 {
			return fmt.Errorf("%w: planet %d (%s): scale must be positive", ErrInvalid, i, p.Name)
		}
	}
	return nil
}

// Parse decodes YAML over Default(), fills in remaining defaults and
// validates. A planets list in the input replaces the default one.
func Parse(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	c.normalize()
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Load reads and parses a YAML file
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Write encodes c as YAML
func Write(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
