package entity

import (
	"errors"

	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
)

var errNoPhysics = errors.New("entity: world has no physics world")

// Destroy removes e's physics body, if any, and then the entity itself.
func Destroy(w *ecs.World, e ecs.Entity) bool {
	if w == nil || !w.IsAlive(e) {
		return false
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent.Kind()); ok && pb.Body != nil {
		pb.Body.Remove()
	}
	return ecs.DestroyEntity(w, e)
}
