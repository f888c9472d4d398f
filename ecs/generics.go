package ecs

import (
	"fmt"

	"github.com/milk9111/evescroller/ecs/component"
)

func setFor[T any](w *World, kind component.ComponentKind[T], create bool) (*sparseSet[T], error) {
	if !kind.Valid() {
		return nil, component.ErrInvalidComponentKind
	}
	if s, ok := w.stores[kind.ID()]; ok {
		set, ok := s.(*sparseSet[T])
		if !ok {
			return nil, fmt.Errorf("%w: %s registered with another type", component.ErrInvalidComponentKind, kind)
		}
		return set, nil
	}
	if !create {
		return nil, nil
	}
	set := newSparseSet[T]()
	w.stores[kind.ID()] = set
	return set, nil
}

// Add attaches value to e, replacing any component of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if value == nil {
		return component.ErrNilComponent
	}
	if !w.IsAlive(e) {
		return fmt.Errorf("%w: %s", ErrEntityNotAlive, e)
	}
	set, err := setFor(w, kind, true)
	if err != nil {
		return err
	}
	set.set(e, value)
	return nil
}

// Get returns the component pointer stored for e. Mutations through the
// pointer are visible to every later reader.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	set, err := setFor(w, kind, false)
	if err != nil || set == nil {
		return nil, false
	}
	return set.get(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := Get(w, e, kind)
	return ok
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	set, err := setFor(w, kind, false)
	if err != nil || set == nil {
		return false
	}
	return set.remove(e)
}

// First returns the first live entity holding kind along with its value.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, *T, bool) {
	set, err := setFor(w, kind, false)
	if err != nil || set == nil {
		return 0, nil, false
	}
	for i, e := range set.dense {
		if w.IsAlive(e) {
			return e, set.values[i], true
		}
	}
	return 0, nil, false
}

func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	set, err := setFor(w, kind, false)
	if err != nil || set == nil {
		return
	}
	for _, e := range set.entities() {
		if v, ok := Get(w, e, kind); ok {
			fn(e, v)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, e := range w.Query(ka, kb) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		if okA && okB {
			fn(e, a, b)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, e := range w.Query(ka, kb, kc) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		if okA && okB && okC {
			fn(e, a, b, c)
		}
	}
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	for _, e := range w.Query(ka, kb, kc, kd) {
		a, okA := Get(w, e, ka)
		b, okB := Get(w, e, kb)
		c, okC := Get(w, e, kc)
		d, okD := Get(w, e, kd)
		if okA && okB && okC && okD {
			fn(e, a, b, c, d)
		}
	}
}

func CreateEntity(w *World) Entity { return w.CreateEntity() }

func DestroyEntity(w *World, e Entity) bool { return w.DestroyEntity(e) }

func IsAlive(w *World, e Entity) bool { return w.IsAlive(e) }

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity { return w.entities.all() }
