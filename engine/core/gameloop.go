package core

import "time"

// LoopState is the run state of the frame loop
type LoopState uint8

const (
	StatePlaying LoopState = iota
	StatePaused
)

// GameLoop advances the scene on a fixed timestep and counts rendered
// frames. The frame counter is what time-varying shaders receive.
type GameLoop struct {
	Scene       *Scene
	State       LoopState
	TickRate    float64 // fixed ticks per second
	TickStep    float64 // scene time advanced per tick
	TickCount   uint64
	Frame       uint64
	accumulator float64
	lastTime    time.Time
}

// NewGameLoop creates a loop ticking tickRate times per second, each tick
// advancing the scene by step.
func NewGameLoop(scene *Scene, tickRate, step float64) *GameLoop {
	return &GameLoop{
		Scene:    scene,
		TickRate: tickRate,
		TickStep: step,
		lastTime: time.Now(),
	}
}

// Update should be called once per rendered frame. It runs the scene at a
// fixed timestep and returns the number of ticks executed.
func (gl *GameLoop) Update() int {
	now := time.Now()
	frameTime := now.Sub(gl.lastTime).Seconds()
	gl.lastTime = now
	return gl.Advance(frameTime)
}

// Advance is Update with an explicit elapsed time in seconds
func (gl *GameLoop) Advance(frameTime float64) int {
	gl.Frame++

	// Cap frame time to avoid spiral of death
	if frameTime > 0.25 {
		frameTime = 0.25
	}

	dt := 1.0 / gl.TickRate
	gl.accumulator += frameTime

	ticks := 0
	for gl.accumulator >= dt {
		if gl.State == StatePlaying {
			gl.Scene.Advance(gl.TickStep)
			gl.TickCount++
			ticks++
		}
		gl.accumulator -= dt
	}
	return ticks
}

// Step advances exactly one frame and one tick, for headless rendering
func (gl *GameLoop) Step() {
	gl.Frame++
	if gl.State == StatePlaying {
		gl.Scene.Advance(gl.TickStep)
		gl.TickCount++
	}
}

// Play starts or resumes the loop
func (gl *GameLoop) Play() {
	gl.State = StatePlaying
	gl.lastTime = time.Now()
}

// Pause pauses the loop; frames still count
func (gl *GameLoop) Pause() {
	gl.State = StatePaused
}

// Toggle flips between playing and paused
func (gl *GameLoop) Toggle() {
	if gl.State == StatePlaying {
		gl.Pause()
		return
	}
	gl.Play()
}
