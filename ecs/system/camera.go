package system

import (
	"github.com/milk9111/evescroller/camera"
	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

// CameraSystem feeds the player to the follow camera, applies pending shake
// requests and level bounds, and writes the output to the camera transform.
type CameraSystem struct {
	game PlayState
}

func NewCameraSystem(game PlayState) *CameraSystem {
	return &CameraSystem{game: gate(game)}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	camEnt, cam, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok || cam.Follow == nil {
		return
	}
	f := cam.Follow

	if req, ok := ecs.Get(w, camEnt, component.CameraShakeRequestComponent.Kind()); ok {
		f.AddTrauma(req.Trauma)
		_ = ecs.Remove(w, camEnt, component.CameraShakeRequestComponent.Kind())
	}

	if !cam.BoundsApplied {
		if _, bounds, ok := ecs.First(w, component.LevelBoundsComponent.Kind()); ok {
			f.SetBounds(bounds.Rect.Inset(cam.ViewWidth/2, cam.ViewHeight/2))
			cam.BoundsApplied = true
		}
	}

	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		f.SetTarget(cameraTarget(w, player))
	}

	pos := f.Update(w.Clock().Delta, cs.game.IsPlaying())
	if t, ok := ecs.Get(w, camEnt, component.TransformComponent.Kind()); ok {
		t.X = pos.X
		t.Y = pos.Y
	}
}

// cameraTarget is a read-only snapshot of an actor for the camera.
func cameraTarget(w *ecs.World, e ecs.Entity) camera.Target {
	var target camera.Target
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		target.Position = t.Vec2()
	}
	if body, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && body.Body != nil {
		v := body.Body.Velocity()
		target.Velocity = common.Vec2{X: v.X, Y: v.Y}
	}
	return target
}

// RequestShake queues trauma for the camera. Requests made in the same
// frame add up.
func RequestShake(w *ecs.World, trauma float64) {
	camEnt, ok := w.First(component.CameraComponent.Kind())
	if !ok || trauma <= 0 {
		return
	}
	if req, ok := ecs.Get(w, camEnt, component.CameraShakeRequestComponent.Kind()); ok {
		req.Trauma += trauma
		return
	}
	_ = ecs.Add(w, camEnt, component.CameraShakeRequestComponent.Kind(), &component.CameraShakeRequest{Trauma: trauma})
}
