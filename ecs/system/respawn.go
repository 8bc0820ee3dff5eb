package system

import (
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"go.uber.org/zap"
)

// RespawnSystem resets the player at their spawn point when health runs out
// or they fall below the level's kill line.
type RespawnSystem struct {
	logger *zap.Logger
}

func NewRespawnSystem(logger *zap.Logger) *RespawnSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RespawnSystem{logger: logger}
}

func (s *RespawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	e, ch, body, ok := player(w)
	if !ok {
		return
	}

	reason := ""
	if ch.Controller.Vitals().Health() <= 0 {
		reason = "health"
	} else if _, bounds, ok := levelBounds(w); ok && body.Position().Y < bounds.KillY {
		reason = "fell"
	}
	if reason == "" {
		return
	}

	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}
	p.Deaths++
	w.Events().Push(ecs.Event{Type: ecs.EventPlayerDied, Source: e, Data: reason})

	ch.Controller.Reset(p.Spawn)
	ch.Sampler.Reset()
	clear(ch.SpellHits)
	if safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind()); ok {
		safe.Position = p.Spawn
		safe.Initialized = true
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.X, t.Y = p.Spawn.X, p.Spawn.Y
	}

	w.Events().Push(ecs.Event{Type: ecs.EventPlayerRespawn, Source: e, Data: p.Spawn})
	s.logger.Info("player respawned", zap.String("reason", reason), zap.Int("deaths", p.Deaths))
}

func levelBounds(w *ecs.World) (ecs.Entity, *component.LevelBounds, bool) {
	e, ok := w.First(component.LevelBoundsComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	b, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind())
	return e, b, ok
}
