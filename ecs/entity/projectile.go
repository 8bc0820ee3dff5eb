package entity

import (
	"fmt"

	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/prefabs"
)

// NewFireball launches a fireball from fx.Position along fx's facing.
func NewFireball(w *ecs.World, spec prefabs.FireballSpec, fx character.Effect) (ecs.Entity, error) {
	size := spec.Size.Vector()

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Damage:      spec.Damage,
		Speed:       spec.Speed,
		HitForce:    spec.HitForce,
		FacingRight: fx.FacingRight,
		Size:        size,
	}); err != nil {
		return 0, fmt.Errorf("fireball: add projectile: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: fx.Position.X, Y: fx.Position.Y}); err != nil {
		return 0, fmt.Errorf("fireball: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.Lifetime}); err != nil {
		return 0, fmt.Errorf("fireball: add ttl: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:      size.X,
		Height:     size.Y,
		Color:      spec.Color.RGBA,
		Layer:      playerLayer + 1,
		FacingLeft: !fx.FacingRight,
	}); err != nil {
		return 0, fmt.Errorf("fireball: add sprite: %w", err)
	}
	return e, nil
}
