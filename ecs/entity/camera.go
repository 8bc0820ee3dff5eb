package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/prefabs"
)

func NewCamera(w *ecs.World, spec prefabs.CameraSpec, at cp.Vector) (ecs.Entity, error) {
	follow := spec.FollowSpeed
	if follow <= 0 || follow > 1 {
		follow = 0.1
	}
	zoom := spec.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	camera := ecs.CreateEntity(w)
	pos := at.Add(spec.Offset.Vector())
	if err := ecs.Add(w, camera, component.CameraComponent.Kind(), &component.Camera{
		Position:     pos,
		Offset:       spec.Offset.Vector(),
		FollowSpeed:  follow,
		Zoom:         zoom,
		SnapDuration: spec.SnapDuration,
	}); err != nil {
		return 0, fmt.Errorf("camera: add camera component: %w", err)
	}
	if err := ecs.Add(w, camera, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return 0, fmt.Errorf("camera: add transform: %w", err)
	}
	return camera, nil
}
