package system

import (
	"github.com/milk9111/evescroller/cutscene"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

// CutsceneSystem ticks the cutscene director on unscaled frame time.
type CutsceneSystem struct {
	director      *cutscene.Director
	input         FrameInput
	skipWithInput bool
}

func NewCutsceneSystem(director *cutscene.Director, input FrameInput, skipWithInput bool) *CutsceneSystem {
	return &CutsceneSystem{director: director, input: input, skipWithInput: skipWithInput}
}

func (s *CutsceneSystem) Update(w *ecs.World) {
	if s.director == nil || !s.director.Active() {
		return
	}
	skip := s.skipWithInput && s.input != nil && s.input.Current().SkipPressed
	s.director.Tick(w.Clock().Unscaled, skip)
	if skip {
		// the skip key doubles as jump
		dropJumpPresses(w)
	}
}

// PlayerActor lets a cutscene drive the player entity directly through its
// physics body.
type PlayerActor struct {
	w *ecs.World
}

func NewPlayerActor(w *ecs.World) *PlayerActor {
	return &PlayerActor{w: w}
}

func (a *PlayerActor) player() (ecs.Entity, bool) {
	return a.w.First(component.PlayerTagComponent.Kind())
}

func (a *PlayerActor) Walk(speed float64) {
	e, ok := a.player()
	if !ok {
		return
	}
	if body, ok := ecs.Get(a.w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		v := body.Body.Velocity()
		body.Body.SetVelocity(speed, v.Y)
	}
	if sprite, ok := ecs.Get(a.w, e, component.SpriteComponent.Kind()); ok && speed != 0 {
		sprite.FacingLeft = speed < 0
	}
}

func (a *PlayerActor) StopWalking() {
	a.Walk(0)
}

func (a *PlayerActor) SetControlsEnabled(enabled bool) {
	e, ok := a.player()
	if !ok {
		return
	}
	mv, ok := ecs.Get(a.w, e, component.MovementComponent.Kind())
	if !ok {
		return
	}
	mv.ControlsLocked = !enabled
	if mv.Controller != nil && !mv.Disabled {
		mv.Controller.SetEnabled(enabled)
	}
}

// CameraToggle switches following on whichever camera the world holds, so a
// cutscene keeps working across level reloads.
type CameraToggle struct {
	w *ecs.World
}

func NewCameraToggle(w *ecs.World) *CameraToggle {
	return &CameraToggle{w: w}
}

func (c *CameraToggle) SetFollowingEnabled(enabled bool) {
	if _, cam, ok := ecs.First(c.w, component.CameraComponent.Kind()); ok && cam.Follow != nil {
		cam.Follow.SetFollowingEnabled(enabled)
	}
}
