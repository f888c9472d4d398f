package system

import (
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

// CheckpointSystem activates checkpoint triggers the player touches.
type CheckpointSystem struct {
	checkpoints CheckpointActivator
}

func NewCheckpointSystem(checkpoints CheckpointActivator) *CheckpointSystem {
	return &CheckpointSystem{checkpoints: checkpoints}
}

func (s *CheckpointSystem) Update(w *ecs.World) {
	player, ok := w.First(component.PlayerTagComponent.Kind(), component.TransformComponent.Kind())
	if !ok || s.checkpoints == nil {
		return
	}
	pt, _ := ecs.Get(w, player, component.TransformComponent.Kind())

	ecs.ForEach2(w, component.CheckpointComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, c *component.Checkpoint, t *component.Transform) {
		if c.Active || pt.Vec2().Sub(t.Vec2()).Len() > c.Radius {
			return
		}
		if !s.checkpoints.Activate(t.Vec2()) {
			return
		}
		c.Active = true
		w.Events().Push(ecs.Event{Kind: ecs.EventCheckpoint, Entity: e, Position: t.Vec2()})
	})
}
