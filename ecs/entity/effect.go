package entity

import (
	"fmt"
	"math"

	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/prefabs"
)

// NewEffect creates a TTL-bound tinted rectangle for fx. A size carried by
// fx (the slash box) wins over the spec's. Angles arrive in degrees and
// are mirrored when the effect faces left.
func NewEffect(w *ecs.World, spec prefabs.EffectSpec, fx character.Effect) (ecs.Entity, error) {
	size := fx.Size
	if size.X <= 0 || size.Y <= 0 {
		size = spec.Size.Vector()
	}
	angle := fx.Angle * math.Pi / 180
	if fx.Kind == character.EffectSlash && !fx.FacingRight {
		angle = math.Pi - angle
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.EffectComponent.Kind(), &component.Effect{Kind: fx.Kind}); err != nil {
		return 0, fmt.Errorf("effect: add effect: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:        fx.Position.X,
		Y:        fx.Position.Y,
		Rotation: angle,
	}); err != nil {
		return 0, fmt.Errorf("effect: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Seconds: spec.TTL}); err != nil {
		return 0, fmt.Errorf("effect: add ttl: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:      size.X,
		Height:     size.Y,
		Color:      spec.Color.RGBA,
		Layer:      spec.Layer,
		FacingLeft: !fx.FacingRight,
	}); err != nil {
		return 0, fmt.Errorf("effect: add sprite: %w", err)
	}
	return e, nil
}

// NewDownField creates the field entity that follows the player while the
// down spell is active.
func NewDownField(w *ecs.World, spec prefabs.DownFieldSpec, owner ecs.Entity) (ecs.Entity, error) {
	var x, y float64
	if t, ok := ecs.Get(w, owner, component.TransformComponent.Kind()); ok {
		x, y = t.X+spec.Offset.X, t.Y+spec.Offset.Y
	}

	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.DownFieldComponent.Kind(), &component.DownField{
		Size:   spec.Size.Vector(),
		Offset: spec.Offset.Vector(),
	}); err != nil {
		return 0, fmt.Errorf("down field: add field: %w", err)
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: x, Y: y}); err != nil {
		return 0, fmt.Errorf("down field: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  spec.Size.X,
		Height: spec.Size.Y,
		Color:  spec.Color.RGBA,
		Layer:  playerLayer + 1,
	}); err != nil {
		return 0, fmt.Errorf("down field: add sprite: %w", err)
	}
	return e, nil
}
