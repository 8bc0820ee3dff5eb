package ecs

import "github.com/milk9111/charcontrol/ecs/component"

func typedStore[T any](w *World, kind component.ComponentKind[T], create bool) (*sparseSet[T], bool) {
	if w == nil || !kind.Valid() {
		return nil, false
	}
	if s, ok := w.store(kind.ID()); ok {
		typed, ok := s.(*sparseSet[T])
		return typed, ok
	}
	if !create {
		return nil, false
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	s := newSparseSet[T]()
	w.stores[kind.ID()] = s
	return s, true
}

// Add attaches value to e, replacing any previous value of the same kind.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return ErrInvalidComponentKind
	}
	if value == nil {
		return ErrNilComponent
	}
	if !w.IsAlive(e) {
		return ErrEntityNotAlive
	}
	s, ok := typedStore(w, kind, true)
	if !ok {
		return ErrInvalidComponentKind
	}
	s.set(e, value)
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	s, ok := typedStore(w, kind, false)
	if !ok {
		return false
	}
	return s.remove(e)
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if !w.IsAlive(e) {
		return false
	}
	s, ok := typedStore(w, kind, false)
	return ok && s.has(e)
}

// Get returns the stored pointer, so mutations are visible without re-adding.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s, ok := typedStore(w, kind, false)
	if !ok {
		return nil, false
	}
	return s.get(e)
}

// First returns the lowest live entity carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	ents := w.Query(kind)
	if len(ents) == 0 {
		return 0, false
	}
	return ents[0], true
}

// ForEach visits every entity with kind. The callback may add, remove or
// destroy entities; those changes do not affect the current pass.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	for _, e := range w.Query(kind) {
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
