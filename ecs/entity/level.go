package entity

import (
	"fmt"
	"image/color"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/levels"
	"github.com/milk9111/charcontrol/prefabs"
	"go.uber.org/zap"
	"golang.org/x/image/colornames"
)

const (
	groundFriction = 0.8
	levelLayer     = 0
)

var (
	solidColor  = toRGBA(colornames.Slategray)
	hazardColor = toRGBA(colornames.Crimson)
)

// EnemyLoader resolves a level placement's prefab name to a spec.
type EnemyLoader func(name string) (prefabs.EnemySpec, error)

// LoadLevelToWorld replaces the world's static geometry with lvl and spawns
// its enemies. Placements that fail to load are logged and skipped.
func LoadLevelToWorld(w *ecs.World, lvl *levels.Level, loadEnemy EnemyLoader, logger *zap.Logger) error {
	pw := w.PhysicsWorld()
	if pw == nil {
		return errNoPhysics
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loadEnemy == nil {
		loadEnemy = prefabs.LoadEnemySpec
	}

	ClearLevel(w)

	bounds := lvl.Bounds()
	boundsEntity := ecs.CreateEntity(w)
	if err := ecs.Add(w, boundsEntity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{
		Bounds: bounds,
		KillY:  lvl.KillY,
	}); err != nil {
		return fmt.Errorf("level: add bounds: %w", err)
	}
	if err := ecs.Add(w, boundsEntity, component.SolidComponent.Kind(), &component.Solid{}); err != nil {
		return fmt.Errorf("level: tag bounds: %w", err)
	}
	// side walls and ceiling only; falling out the bottom is allowed
	pw.AddBounds(cp.BB{L: bounds.L, B: lvl.KillY - 10, R: bounds.R, T: bounds.T})

	for _, r := range lvl.Solids {
		bb := r.BB()
		pw.AddStaticBox(bb, groundFriction)
		if _, err := newRect(w, bb, solidColor); err != nil {
			return fmt.Errorf("level: solid: %w", err)
		}
	}

	for _, h := range lvl.Hazards {
		bb := h.BB()
		e, err := newRect(w, bb, hazardColor)
		if err != nil {
			return fmt.Errorf("level: hazard: %w", err)
		}
		if err := ecs.Add(w, e, component.HazardComponent.Kind(), &component.Hazard{
			Size:   cp.Vector{X: bb.R - bb.L, Y: bb.T - bb.B},
			Damage: h.Damage,
		}); err != nil {
			return fmt.Errorf("level: add hazard: %w", err)
		}
	}

	for _, p := range lvl.Enemies {
		spec, err := loadEnemy(p.Prefab)
		if err != nil {
			logger.Warn("skip enemy placement", zap.String("prefab", p.Prefab), zap.Error(err))
			continue
		}
		if err := prefabs.DecodeInto(p.Props, &spec); err != nil {
			logger.Warn("bad enemy props", zap.String("prefab", p.Prefab), zap.Error(err))
			continue
		}
		if _, err := NewEnemy(w, spec, cp.Vector{X: p.X, Y: p.Y}, logger); err != nil {
			logger.Warn("skip enemy placement", zap.String("prefab", p.Prefab), zap.Error(err))
		}
	}

	logger.Info("level loaded",
		zap.String("name", lvl.Name),
		zap.Int("solids", len(lvl.Solids)),
		zap.Int("enemies", len(lvl.Enemies)))
	return nil
}

// ClearLevel removes level geometry, enemies and leftover effects. The
// player and camera stay.
func ClearLevel(w *ecs.World) {
	for _, kind := range []ecs.ComponentKindID{
		component.SolidComponent.Kind(),
		component.EnemyComponent.Kind(),
		component.ProjectileComponent.Kind(),
		component.EffectComponent.Kind(),
	} {
		for _, e := range w.Query(kind) {
			Destroy(w, e)
		}
	}
	if pw := w.PhysicsWorld(); pw != nil {
		pw.ClearStatic()
	}
}

func newRect(w *ecs.World, bb cp.BB, c color.RGBA) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	center := bb.Center()
	if err := ecs.Add(w, e, component.SolidComponent.Kind(), &component.Solid{}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: center.X, Y: center.Y}); err != nil {
		return 0, err
	}
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  bb.R - bb.L,
		Height: bb.T - bb.B,
		Color:  c,
		Layer:  levelLayer,
	}); err != nil {
		return 0, err
	}
	return e, nil
}

func toRGBA(c color.Color) color.RGBA {
	r, g, b, a := c.RGBA()
	return color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
