package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
)

// player returns the first entity carrying a controller and a body.
func player(w *ecs.World) (ecs.Entity, *component.Character, component.Body, bool) {
	e, ok := w.First(component.PlayerTagComponent.Kind(), component.CharacterComponent.Kind(), component.PhysicsBodyComponent.Kind())
	if !ok {
		return 0, nil, nil, false
	}
	ch, _ := ecs.Get(w, e, component.CharacterComponent.Kind())
	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())
	if ch == nil || ch.Controller == nil || pb == nil || pb.Body == nil {
		return 0, nil, nil, false
	}
	return e, ch, pb.Body, true
}

// PlayerPosition is the player's body position, if there is a player.
func PlayerPosition(w *ecs.World) (cp.Vector, bool) {
	_, _, body, ok := player(w)
	if !ok {
		return cp.Vector{}, false
	}
	return body.Position(), true
}
