package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/common"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// snapDistance is how far the target may jump in one frame before the
// camera eases over instead of following.
const snapDistance = 6.0

type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (cs *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	target, ok := PlayerPosition(w)
	if !ok {
		return
	}
	dt := w.Delta()

	ecs.ForEach(w, component.CameraComponent.Kind(), func(e ecs.Entity, cam *component.Camera) {
		goal := target.Add(cam.Offset)

		switch {
		case cam.Snap != nil:
			v, done := cam.Snap.Update(float32(dt))
			cam.Position = cam.SnapFrom.Lerp(goal, float64(v))
			if done {
				cam.Snap = nil
				cam.Position = goal
			}
		case cam.SnapDuration > 0 && cam.Position.Distance(goal) > snapDistance:
			cam.SnapFrom = cam.Position
			cam.SnapTo = goal
			cam.Snap = gween.New(0, 1, float32(cam.SnapDuration), ease.OutCubic)
		default:
			cam.Position = cp.Vector{
				X: common.Lerp(cam.Position.X, goal.X, cam.FollowSpeed),
				Y: common.Lerp(cam.Position.Y, goal.Y, cam.FollowSpeed),
			}
		}

		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.X, t.Y = cam.Position.X, cam.Position.Y
		}
	})
}
