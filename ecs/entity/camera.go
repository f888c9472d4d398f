package entity

import (
	"fmt"

	"github.com/milk9111/evescroller/camera"
	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/prefabs"
)

// NewCamera builds the follow camera already settled on focus.
func NewCamera(w *ecs.World, spec *prefabs.CameraSpec, focus common.Vec2) (ecs.Entity, error) {
	follow, err := camera.New(spec.Follow)
	if err != nil {
		return 0, fmt.Errorf("camera: follow: %w", err)
	}
	start := focus.Add(spec.Follow.Offset)
	follow.SetTarget(camera.Target{Position: focus})
	follow.SetPositionInstant(start)

	cam := ecs.CreateEntity(w)
	if err := ecs.Add(w, cam, component.CameraTagComponent.Kind(), &component.CameraTag{}); err != nil {
		return 0, fmt.Errorf("camera: add camera tag: %w", err)
	}
	if err := ecs.Add(w, cam, component.TransformComponent.Kind(), &component.Transform{X: start.X, Y: start.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	if err := ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		Follow:        follow,
		ViewWidth:     spec.ViewWidth,
		ViewHeight:    spec.ViewHeight,
		PixelsPerUnit: spec.PixelsPerUnit,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	return cam, nil
}
