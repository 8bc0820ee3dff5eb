package ecs

import (
	"github.com/milk9111/charcontrol/ecs/component"
)

var (
	ErrEntityNotAlive       = component.ErrEntityNotAlive
	ErrNilComponent         = component.ErrNilComponent
	ErrInvalidComponentKind = component.ErrInvalidComponentKind
)

// System updates a world each frame.
type System interface {
	Update(w *World)
}

// FixedSystem runs once per physics step with the fixed step length.
type FixedSystem interface {
	FixedUpdate(w *World, dt float64)
}

// World owns entities, their components, the per-frame event queue and the
// attached physics world.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	events   EventQueue
	physics  *PhysicsWorld
	delta    float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires the handle.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physics = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physics
}

// SetDelta records the length of the current frame in seconds.
func (w *World) SetDelta(dt float64) {
	if w == nil {
		return
	}
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
}

// Delta is the length of the current frame in seconds.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

func (w *World) store(id component.ComponentID) (componentStore, bool) {
	if w == nil || w.stores == nil {
		return nil, false
	}
	s, ok := w.stores[id]
	return s, ok
}

// CreateEntity, DestroyEntity, IsAlive and Entities mirror the methods for
// call sites that prefer the function form.

func CreateEntity(w *World) Entity {
	return w.CreateEntity()
}

func DestroyEntity(w *World, e Entity) bool {
	return w.DestroyEntity(e)
}

func IsAlive(w *World, e Entity) bool {
	return w.IsAlive(e)
}

func Entities(w *World) []Entity {
	return w.Entities()
}
