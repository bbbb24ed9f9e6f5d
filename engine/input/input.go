package input

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyReader reports keyboard state
type KeyReader interface {
	Pressed(k ebiten.Key) bool
	JustPressed(k ebiten.Key) bool
}

// EbitenKeys reads the live ebiten keyboard
type EbitenKeys struct{}

func (EbitenKeys) Pressed(k ebiten.Key) bool     { return ebiten.IsKeyPressed(k) }
func (EbitenKeys) JustPressed(k ebiten.Key) bool { return inpututil.IsKeyJustPressed(k) }

// Bindings maps keys to viewer actions
type Bindings struct {
	Left, Right, Up, Down ebiten.Key
	Forward, Back         ebiten.Key
	FocusNext             ebiten.Key
	Pause                 ebiten.Key
	Trails                ebiten.Key
	Quit                  ebiten.Key
}

// DefaultBindings: arrows move x/y, 1/2 move z, Space cycles focus
func DefaultBindings() Bindings {
	return Bindings{
		Left:      ebiten.KeyLeft,
		Right:     ebiten.KeyRight,
		Up:        ebiten.KeyUp,
		Down:      ebiten.KeyDown,
		Forward:   ebiten.Key1,
		Back:      ebiten.Key2,
		FocusNext: ebiten.KeySpace,
		Pause:     ebiten.KeyP,
		Trails:    ebiten.KeyT,
		Quit:      ebiten.KeyEscape,
	}
}

// InputState holds the actions requested during the current frame
type InputState struct {
	Keys     KeyReader
	Bindings Bindings

	// Camera step in units of Camera3D.Speed
	Move mgl64.Vec3

	FocusNext    bool
	TogglePause  bool
	ToggleTrails bool
	Quit         bool
}

func NewInputState() *InputState {
	return &InputState{
		Keys:     EbitenKeys{},
		Bindings: DefaultBindings(),
	}
}

// Update should be called every frame. Movement fires once per key press.
func (s *InputState) Update() {
	b := s.Bindings
	k := s.Keys

	s.Move = mgl64.Vec3{}
	if k.JustPressed(b.Left) {
		s.Move[0]--
	}
	if k.JustPressed(b.Right) {
		s.Move[0]++
	}
	if k.JustPressed(b.Up) {
		s.Move[1]++
	}
	if k.JustPressed(b.Down) {
		s.Move[1]--
	}
	if k.JustPressed(b.Forward) {
		s.Move[2]--
	}
	if k.JustPressed(b.Back) {
		s.Move[2]++
	}

	s.FocusNext = k.JustPressed(b.FocusNext)
	s.TogglePause = k.JustPressed(b.Pause)
	s.ToggleTrails = k.JustPressed(b.Trails)
	s.Quit = k.JustPressed(b.Quit)
}

// Moved reports whether any movement key fired this frame
func (s *InputState) Moved() bool {
	return s.Move != (mgl64.Vec3{})
}
