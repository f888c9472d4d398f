package ecs

import "github.com/milk9111/evescroller/ecs/component"

// Query returns the live entities that hold every kind, iterating the
// smallest store.
func (w *World) Query(kinds ...component.Kind) []Entity {
	if len(kinds) == 0 {
		return nil
	}
	sets := make([]store, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.store(k.ID())
		if !ok || s.len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	smallest := 0
	for i, s := range sets {
		if s.len() < sets[smallest].len() {
			smallest = i
		}
	}

	var out []Entity
outer:
	for _, e := range sets[smallest].entities() {
		if !w.IsAlive(e) {
			continue
		}
		for i, s := range sets {
			if i != smallest && !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first live entity holding every kind.
func (w *World) First(kinds ...component.Kind) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
