package system

import (
	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/charcontrol/component"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
)

// DownFieldSystem keeps the down-spell field under the player and strikes
// each enemy it touches once per activation.
type DownFieldSystem struct{}

func NewDownFieldSystem() *DownFieldSystem {
	return &DownFieldSystem{}
}

func (s *DownFieldSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || w.PhysicsWorld() == nil {
		return
	}
	_, ch, body, ok := player(w)
	if !ok {
		return
	}
	owner := body.Position()

	ecs.ForEach2(w, component.DownFieldComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, field *component.DownField, t *component.Transform) {
		center := owner.Add(field.Offset)
		t.X, t.Y = center.X, center.Y
		if !ch.Controller.IsDownSpellActive() {
			return
		}
		if field.Hits == nil {
			field.Hits = map[gameplay.Target]struct{}{}
		}

		bb := cp.NewBBForExtents(center, field.Size.X/2, field.Size.Y/2)
		for _, target := range w.PhysicsWorld().Targets(bb, ecs.CategoryEnemy) {
			if _, hit := field.Hits[target]; hit {
				continue
			}
			if ch.Controller.DownFieldContact(target) {
				field.Hits[target] = struct{}{}
			}
		}
	})
}
