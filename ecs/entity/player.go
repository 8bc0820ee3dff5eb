package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/prefabs"
	"go.uber.org/zap"
)

const playerLayer = 2

// NewPlayer creates the player at spawn with a body, ground probe and
// controller wired to the world's physics.
func NewPlayer(w *ecs.World, spec prefabs.PlayerSpec, spawn cp.Vector, logger *zap.Logger) (ecs.Entity, error) {
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, errNoPhysics
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := spec.Character.Validate(); err != nil {
		logger.Warn("player config normalized", zap.Error(err))
	}

	player := ecs.CreateEntity(w)
	body := pw.AddBody(ecs.BodySpec{
		Position:     spawn,
		Size:         spec.Body.Size.Vector(),
		Mass:         spec.Body.Mass,
		Friction:     spec.Body.Friction,
		GravityScale: spec.Character.GravityScale,
		Category:     ecs.CategoryPlayer,
		Mask:         ecs.CategoryGround,
	})
	fail := func(err error) (ecs.Entity, error) {
		body.Remove()
		ecs.DestroyEntity(w, player)
		return 0, err
	}

	halfWidth := spec.GroundProbe.HalfWidth
	if halfWidth <= 0 {
		halfWidth = body.Size().X / 2
	}
	signals := component.NewAnimationSignals()
	ctrl, err := character.New(spec.Character, character.Deps{
		Body:     body,
		Ground:   pw.NewGroundProbe(body, halfWidth, spec.GroundProbe.Depth),
		Targets:  pw,
		Spawner:  &EventSpawner{World: w, Source: player},
		Animator: signals,
		Logger:   logger.Named("player"),
	})
	if err != nil {
		return fail(fmt.Errorf("player: new controller: %w", err))
	}

	size := body.Size()
	adds := []func() error{
		func() error { return ecs.Add(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}) },
		func() error {
			return ecs.Add(w, player, component.PlayerComponent.Kind(), &component.Player{Spawn: spawn})
		},
		func() error {
			return ecs.Add(w, player, component.TransformComponent.Kind(), &component.Transform{X: spawn.X, Y: spawn.Y})
		},
		func() error {
			return ecs.Add(w, player, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Body: body})
		},
		func() error {
			return ecs.Add(w, player, component.CharacterComponent.Kind(), &component.Character{Controller: ctrl, Signals: signals})
		},
		func() error { return ecs.Add(w, player, component.InputComponent.Kind(), &component.Input{}) },
		func() error { return ecs.Add(w, player, component.FlashComponent.Kind(), &component.Flash{}) },
		func() error {
			return ecs.Add(w, player, component.SafeRespawnComponent.Kind(), &component.SafeRespawn{Position: spawn, Initialized: true})
		},
		func() error {
			return ecs.Add(w, player, component.SpriteComponent.Kind(), &component.Sprite{
				Width:  size.X,
				Height: size.Y,
				Color:  spec.Color.RGBA,
				Layer:  playerLayer,
			})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			return fail(fmt.Errorf("player: add component: %w", err))
		}
	}

	logger.Debug("player spawned", zap.Stringer("entity", player), zap.Float64("x", spawn.X), zap.Float64("y", spawn.Y))
	return player, nil
}
