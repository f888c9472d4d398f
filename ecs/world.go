package ecs

import "github.com/milk9111/evescroller/ecs/component"

// ErrEntityNotAlive is returned when a component is attached to a destroyed
// or never-created entity.
var ErrEntityNotAlive = component.ErrEntityNotAlive

// System updates a world. Systems read timing from World.Clock.
type System interface {
	Update(w *World)
}

// World owns entities, their components, the frame event queue and the
// physics space.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue
	clock    *Clock
	physics  *PhysicsWorld
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores: make(map[component.ComponentID]store),
		clock:  &Clock{TimeScale: 1},
	}
}

func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity drops the entity and every component attached to it.
func (w *World) DestroyEntity(e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	if w.physics != nil {
		w.physics.RemoveBody(e)
	}
	return w.entities.destroy(e)
}

func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Clear destroys every entity. Stores and the physics world stay attached.
func (w *World) Clear() {
	for _, e := range w.entities.all() {
		w.DestroyEntity(e)
	}
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

// Clock returns the timing shared by the scheduler and its systems.
func (w *World) Clock() *Clock {
	return w.clock
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	w.physics = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	return w.physics
}

func (w *World) store(id component.ComponentID) (store, bool) {
	s, ok := w.stores[id]
	return s, ok
}
