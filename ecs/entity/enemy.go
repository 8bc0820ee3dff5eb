package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/charcontrol/component"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/prefabs"
	"go.uber.org/zap"
)

const enemyLayer = 1

// scriptDefaults are the params every movement script can rely on.
var scriptDefaults = map[string]float64{
	"patrol": 3,
	"aggro":  4,
	"charge": 1.5,
}

func NewEnemy(w *ecs.World, spec prefabs.EnemySpec, pos cp.Vector, logger *zap.Logger) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, errNoPhysics
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	strategy := component.MoveStrategy(spec.Strategy)
	switch strategy {
	case component.StrategyStatic, component.StrategyZombie:
	case component.StrategyScript:
		if spec.Script == "" {
			return 0, fmt.Errorf("enemy: %s: script strategy without a script", spec.Name)
		}
	case "":
		strategy = component.StrategyStatic
	default:
		return 0, fmt.Errorf("enemy: %s: unknown strategy %q", spec.Name, spec.Strategy)
	}

	enemy := &component.Enemy{
		Name:          spec.Name,
		Health:        spec.Health,
		Speed:         spec.Speed,
		ContactDamage: spec.ContactDamage,
		RecoilLength:  spec.RecoilLength,
		RecoilFactor:  spec.RecoilFactor,
		Strategy:      strategy,
	}
	log := logger.Named("enemy").With(zap.String("name", spec.Name))
	enemy.Events.Subscribe(func(evt gameplay.CombatEvent) {
		log.Debug("combat event",
			zap.String("type", string(evt.Type)),
			zap.Float64("damage", evt.Damage),
			zap.Float64("force", evt.Force))
	})

	e := ecs.CreateEntity(w)
	body := pw.AddBody(ecs.BodySpec{
		Position:     pos,
		Size:         spec.Body.Size.Vector(),
		Mass:         spec.Body.Mass,
		Friction:     spec.Body.Friction,
		GravityScale: spec.GravityScale,
		Category:     ecs.CategoryEnemy,
		Mask:         ecs.CategoryGround,
		UserData:     enemy,
	})
	enemy.Body = body

	fail := func(err error) (ecs.Entity, error) {
		body.Remove()
		ecs.DestroyEntity(w, e)
		return 0, err
	}

	if err := ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}); err != nil {
		return fail(fmt.Errorf("enemy: add enemy tag: %w", err))
	}
	if err := ecs.Add(w, e, component.EnemyComponent.Kind(), enemy); err != nil {
		return fail(fmt.Errorf("enemy: add enemy component: %w", err))
	}
	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: pos.X, Y: pos.Y}); err != nil {
		return fail(fmt.Errorf("enemy: add transform: %w", err))
	}
	if err := ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body}); err != nil {
		return fail(fmt.Errorf("enemy: add physics body: %w", err))
	}
	size := body.Size()
	if err := ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Width:  size.X,
		Height: size.Y,
		Color:  spec.Color.RGBA,
		Layer:  enemyLayer,
	}); err != nil {
		return fail(fmt.Errorf("enemy: add sprite: %w", err))
	}

	if strategy == component.StrategyScript {
		vars := map[string]float64{"speed": spec.Speed}
		for k, v := range scriptDefaults {
			vars[k] = v
		}
		for k, v := range spec.Params {
			vars[k] = v
		}
		if err := ecs.Add(w, e, component.ScriptComponent.Kind(), &component.Script{Path: spec.Script, Vars: vars}); err != nil {
			return fail(fmt.Errorf("enemy: add script: %w", err))
		}
	}

	log.Debug("enemy spawned", zap.Stringer("entity", e), zap.String("strategy", string(strategy)))
	return e, nil
}
