package system

import (
	"errors"
	"math"

	"github.com/rs/zerolog"

	"github.com/milk9111/evescroller/camera"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/movement"
)

// TuningTriggerSystem swaps the player's movement tuning once when the
// player reaches a trigger.
type TuningTriggerSystem struct {
	log zerolog.Logger
}

func NewTuningTriggerSystem(log zerolog.Logger) *TuningTriggerSystem {
	return &TuningTriggerSystem{log: log.With().Str("component", "tuning").Logger()}
}

func (s *TuningTriggerSystem) Update(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), component.MovementComponent.Kind())
	if !ok {
		return
	}
	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())
	mv, _ := ecs.Get(w, player, component.MovementComponent.Kind())
	if mv.Controller == nil {
		return
	}

	ecs.ForEach2(w, component.TuningTriggerComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, trig *component.TuningTrigger, t *component.Transform) {
		if trig.Applied {
			return
		}
		if math.Abs(pt.X-t.X) > trig.Threshold || math.Abs(pt.Y-t.Y) > trig.Threshold {
			return
		}
		trig.Applied = true
		if err := mv.Controller.SetConfig(trig.Config); err != nil {
			s.log.Error().Err(err).Str("entity", e.String()).Msg("Tuning swap rejected")
			return
		}
		if trig.Sprite != nil {
			SwapSprite(w, player, *trig.Sprite)
		}
		s.log.Info().Str("entity", e.String()).Bool("sprite", trig.Sprite != nil).Msg("Tuning swapped")
		w.Events().Push(ecs.Event{Kind: ecs.EventTuningSwapped, Entity: e, Position: t.Vec2()})
		RequestShake(w, trig.Trauma)
	})
}

// ApplyMovementConfig swaps the tuning of every movement controller in the
// world. State carries over.
func ApplyMovementConfig(w *ecs.World, cfg movement.Config) error {
	var errs []error
	ecs.ForEach(w, component.MovementComponent.Kind(), func(_ ecs.Entity, mv *component.Movement) {
		if mv.Controller == nil {
			return
		}
		if err := mv.Controller.SetConfig(cfg); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}

// ApplyCameraConfig swaps the follow tuning of every camera in the world.
func ApplyCameraConfig(w *ecs.World, cfg camera.Config) error {
	var errs []error
	ecs.ForEach(w, component.CameraComponent.Kind(), func(_ ecs.Entity, cam *component.Camera) {
		if cam.Follow == nil {
			return
		}
		if err := cam.Follow.SetConfig(cfg); err != nil {
			errs = append(errs, err)
		}
	})
	return errors.Join(errs...)
}
