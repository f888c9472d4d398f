package system

import (
	"github.com/milk9111/evescroller/ecs"
	"github.com/milk9111/evescroller/ecs/component"
)

// PhysicsSystem steps the Chipmunk space once per fixed step and copies body
// positions back onto transforms.
type PhysicsSystem struct{}

func NewPhysicsSystem() *PhysicsSystem {
	return &PhysicsSystem{}
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return
	}
	pw.Step(w.Clock().Step)

	ecs.ForEach2(w, component.PhysicsBodyComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, b *component.PhysicsBody, t *component.Transform) {
		if b.Static || b.Body == nil {
			return
		}
		p := b.Body.Position()
		t.X = p.X
		t.Y = p.Y
	})
}
