package system

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

// KillPlaneSystem requests a respawn for any player below the level's kill
// plane.
type KillPlaneSystem struct{}

func NewKillPlaneSystem() *KillPlaneSystem { return &KillPlaneSystem{} }

func (s *KillPlaneSystem) Update(w *ecs.World) {
	_, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, _ *component.PlayerTag, t *component.Transform) {
		if t.Y >= bounds.KillY || ecs.Has(w, e, component.RespawnRequestComponent.Kind()) {
			return
		}
		_ = ecs.Add(w, e, component.RespawnRequestComponent.Kind(), &component.RespawnRequest{})
	})
}

// RespawnSystem performs pending respawn requests. It should run after the
// PhysicsSystem so the body is moved between steps.
type RespawnSystem struct {
	checkpoints Respawner
}

func NewRespawnSystem(checkpoints Respawner) *RespawnSystem {
	return &RespawnSystem{checkpoints: checkpoints}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.RespawnRequestComponent.Kind(), func(e ecs.Entity, _ *component.RespawnRequest) {
		_ = ecs.Remove(w, e, component.RespawnRequestComponent.Kind())
		if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			return
		}

		pos := common.Vec2{}
		if s.checkpoints != nil {
			pos = s.checkpoints.Last()
		}
		Teleport(w, e, pos)
		w.Events().Push(ecs.Event{Kind: ecs.EventRespawned, Entity: e, Position: pos})
	})
}

// Teleport moves an actor without interpolation: body, transform, movement
// state and the camera all jump together.
func Teleport(w *ecs.World, e ecs.Entity, pos common.Vec2) {
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X = pos.X
		t.Y = pos.Y
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		body.Body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
		body.Body.SetVelocityVector(cp.Vector{})
	}
	if mv, ok := ecs.Get(w, e, component.MovementComponent.Kind()); ok && mv.Controller != nil {
		mv.Controller.Teleport(pos)
	}
	if _, cam, ok := ecs.First(w, component.CameraComponent.Kind()); ok && cam.Follow != nil {
		cam.Follow.SetTarget(cameraTarget(w, e))
		cam.Follow.SetPositionInstant(pos.Add(cam.Follow.Config().Offset))
	}
}
