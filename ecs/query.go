package ecs

import (
	"slices"

	"github.com/milk9111/charcontrol/ecs/component"
)

// ComponentKindID is satisfied by every component.ComponentKind[T].
type ComponentKindID interface {
	ID() component.ComponentID
}

// Query returns the live entities carrying every kind, in slot order. A kind
// that was never stored yields no entities.
func (w *World) Query(kinds ...ComponentKindID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	stores := make([]componentStore, 0, len(kinds))
	for _, k := range kinds {
		s, ok := w.store(k.ID())
		if !ok || s.len() == 0 {
			return nil
		}
		stores = append(stores, s)
	}
	// iterate the smallest store
	slices.SortFunc(stores, func(a, b componentStore) int { return a.len() - b.len() })

	out := make([]Entity, 0, stores[0].len())
outer:
	for _, e := range stores[0].entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, s := range stores[1:] {
			if !s.has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b Entity) int { return int(a.id()) - int(b.id()) })
	return out
}

// First returns the lowest live entity carrying every kind.
func (w *World) First(kinds ...ComponentKindID) (Entity, bool) {
	ents := w.Query(kinds...)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}
