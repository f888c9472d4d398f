package system

import (
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/movement"
)

// MovementSystem runs every movement controller once per fixed step. It owns
// the ground check and is the only writer of actor velocity.
type MovementSystem struct {
	log  zerolog.Logger
	game PlayState
}

func NewMovementSystem(log zerolog.Logger, game PlayState) *MovementSystem {
	return &MovementSystem{log: log.With().Str("component", "movement").Logger(), game: gate(game)}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if !s.game.IsPlaying() {
		dropJumpPresses(w)
		return
	}
	pw := w.PhysicsWorld()
	clock := w.Clock()

	ecs.ForEach(w, component.MovementComponent.Kind(), func(e ecs.Entity, mv *component.Movement) {
		input, hasInput := ecs.Get(w, e, component.InputComponent.Kind())
		if mv.Disabled || mv.ControlsLocked {
			if hasInput {
				input.JumpPressed = false
			}
			return
		}

		body, hasBody := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
		probe, hasProbe := ecs.Get(w, e, component.GroundProbeComponent.Kind())

		var missing []string
		if mv.Controller == nil {
			missing = append(missing, "controller")
		}
		if !hasInput {
			missing = append(missing, "input")
		}
		if !hasBody || body.Body == nil || pw == nil {
			missing = append(missing, "physics body")
		}
		if !hasProbe {
			missing = append(missing, "ground probe")
		}
		if len(missing) > 0 {
			mv.Disabled = true
			if mv.Controller != nil {
				mv.Controller.SetEnabled(false)
			}
			s.log.Error().Str("entity", e.String()).Strs("missing", missing).Msg("Movement disabled")
			return
		}

		ctrl := mv.Controller
		if !ctrl.Enabled() {
			input.JumpPressed = false
			return
		}

		p := body.Body.Position()
		v := body.Body.Velocity()
		pos := common.Vec2{X: p.X, Y: p.Y}
		probePoint := pos.Add(common.Vec2{X: probe.OffsetX, Y: probe.OffsetY})

		res := ctrl.Update(movement.Tick{
			Input: movement.Input{
				MoveX:       input.MoveX,
				JumpPressed: input.JumpPressed,
				JumpHeld:    input.JumpHeld,
			},
			Grounded: pw.GroundQuery(probePoint, probe.Radius, probe.Mask),
			Position: pos,
			Velocity: common.Vec2{X: v.X, Y: v.Y},
			Dt:       clock.Step,
			Now:      clock.Time,
		})
		input.JumpPressed = false
		body.Body.SetVelocityVector(cp.Vector{X: res.Velocity.X, Y: res.Velocity.Y})

		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok {
			sprite.FacingLeft = !ctrl.FacingRight()
		}
		pushMovementEvents(w, e, pos, res.Events)
	})
}

func pushMovementEvents(w *ecs.World, e ecs.Entity, pos common.Vec2, ev movement.Events) {
	q := w.Events()
	if ev.Jumped {
		q.Push(ecs.Event{Kind: ecs.EventJumped, Entity: e, Position: pos})
	}
	if ev.Landed {
		q.Push(ecs.Event{Kind: ecs.EventLanded, Entity: e, Position: pos, Value: ev.LandingSpeed})
	}
	if ev.JumpCut {
		q.Push(ecs.Event{Kind: ecs.EventJumpCut, Entity: e, Position: pos})
	}
	if ev.MaxSpeedReached {
		q.Push(ecs.Event{Kind: ecs.EventMaxSpeed, Entity: e, Position: pos})
	}
	if ev.Flipped {
		q.Push(ecs.Event{Kind: ecs.EventFlipped, Entity: e, Position: pos})
	}
}
