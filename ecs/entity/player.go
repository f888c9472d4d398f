package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/evescroller/common"
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
	"github.com/milk9111/evescroller/movement"
	"github.com/milk9111/evescroller/prefabs"
)

var ErrNoPhysicsWorld = errors.New("entity: world has no physics world")

// NewPlayer builds the player at pos from its prefab: tag, transform, sprite,
// animator, physics body, ground probe, input and movement controller.
func NewPlayer(w *ecs.World, spec *prefabs.PlayerSpec, pos common.Vec2) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, fmt.Errorf("player: %w", ErrNoPhysicsWorld)
	}
	ctrl, err := movement.New(spec.Movement)
	if err != nil {
		return 0, fmt.Errorf("player: movement: %w", err)
	}
	ctrl.Teleport(pos)

	player := ecs.CreateEntity(w)
	width, height := spec.Collider.Width, spec.Collider.Height
	body, shape := pw.AddActorBody(player, pos, width, height, spec.Collider.Mass)

	if err := ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add tag: %w", err)
	}
	if err := ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y, ScaleX: 1, ScaleY: 1}); err != nil {
		return 0, fmt.Errorf("player: add transform: %w", err)
	}
	if err := ecs.Add(w, player, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  spec.Sprite.Width,
		Height: spec.Sprite.Height,
		Color:  spec.Sprite.Color.RGBA,
	}); err != nil {
		return 0, fmt.Errorf("player: add sprite: %w", err)
	}
	anim := AnimationFromSpec(spec.Sprite)
	if err := ecs.Add(w, player, component.AnimationComponent.Kind(), &anim); err != nil {
		return 0, fmt.Errorf("player: add animation: %w", err)
	}
	if err := ecs.Add(w, player, component.RenderLayerComponent.Kind(), &component.RenderLayer{Index: LayerActors}); err != nil {
		return 0, fmt.Errorf("player: add render layer: %w", err)
	}
	if err := ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{
		Body:   body,
		Shape:  shape,
		Width:  width,
		Height: height,
		Mass:   spec.Collider.Mass,
	}); err != nil {
		return 0, fmt.Errorf("player: add physics body: %w", err)
	}
	if err := ecs.Add(w, player, component.GroundProbeComponent.Kind(), &component.GroundProbe{
		OffsetX: spec.Probe.OffsetX,
		OffsetY: spec.Probe.OffsetY,
		Radius:  spec.Probe.Radius,
		Mask:    ecs.CategoryGround,
	}); err != nil {
		return 0, fmt.Errorf("player: add ground probe: %w", err)
	}
	if err := ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}
	if err := ecs.Add(w, player, component.MovementComponent.Kind(), &component.Movement{Controller: ctrl}); err != nil {
		return 0, fmt.Errorf("player: add movement: %w", err)
	}
	return player, nil
}

// AnimationFromSpec builds the animator for a sprite prefab. Poses without a
// color of their own use the sprite color.
func AnimationFromSpec(s prefabs.SpriteSpec) component.Animation {
	a := s.Animation
	return component.Animation{
		Palette:     paletteFromSpec(s),
		Squash:      common.Clamp(a.Squash, 0, 0.9),
		SquashSpeed: a.SquashSpeed,
		Recover:     a.Recover,
	}
}

// SpriteSwapFromSpec is the look a tuning trigger hands the player.
func SpriteSwapFromSpec(s prefabs.SpriteSpec) component.SpriteSwap {
	return component.SpriteSwap{
		Width:   s.Width,
		Height:  s.Height,
		Color:   s.Color.RGBA,
		Palette: paletteFromSpec(s),
	}
}

func paletteFromSpec(s prefabs.SpriteSpec) component.AnimationPalette {
	base := s.Color.RGBA
	a := s.Animation
	return component.AnimationPalette{
		Idle: a.Idle.Or(base),
		Run:  a.Run.Or(base),
		Fast: a.Fast.Or(a.Run.Or(base)),
		Jump: a.Jump.Or(base),
		Fall: a.Fall.Or(base),
	}
}
