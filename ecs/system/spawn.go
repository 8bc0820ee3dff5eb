package system

import (
	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/ecs/entity"
	"github.com/milk9111/charcontrol/prefabs"
	"go.uber.org/zap"
)

// SpawnSystem turns queued spawn requests into effect, fireball and
// down-field entities.
type SpawnSystem struct {
	effects  prefabs.EffectsSpec
	fireball prefabs.FireballSpec
	logger   *zap.Logger
}

func NewSpawnSystem(effects prefabs.EffectsSpec, fireball prefabs.FireballSpec, logger *zap.Logger) *SpawnSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SpawnSystem{effects: effects, fireball: fireball, logger: logger}
}

// SetSpecs swaps the prefab specs, used on hot reload.
func (s *SpawnSystem) SetSpecs(effects prefabs.EffectsSpec, fireball prefabs.FireballSpec) {
	s.effects = effects
	s.fireball = fireball
}

func (s *SpawnSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	events := w.Events()

	for _, evt := range events.DrainType(ecs.EventSpawnEffect) {
		fx, ok := evt.Data.(character.Effect)
		if !ok {
			continue
		}
		if fx.Kind == character.EffectFireball {
			if _, err := entity.NewFireball(w, s.fireball, fx); err != nil {
				s.logger.Warn("spawn fireball", zap.Error(err))
			}
			continue
		}
		spec, ok := s.effects.Effect(fx.Kind)
		if !ok {
			s.logger.Debug("no effect prefab", zap.Stringer("kind", fx.Kind))
			continue
		}
		if _, err := entity.NewEffect(w, spec, fx); err != nil {
			s.logger.Warn("spawn effect", zap.Stringer("kind", fx.Kind), zap.Error(err))
		}
	}

	for _, evt := range events.DrainType(ecs.EventDownField) {
		active, _ := evt.Data.(bool)
		existing := w.Query(component.DownFieldComponent.Kind())
		if !active {
			for _, e := range existing {
				entity.Destroy(w, e)
			}
			continue
		}
		if len(existing) > 0 {
			continue
		}
		if _, err := entity.NewDownField(w, s.effects.DownField, evt.Source); err != nil {
			s.logger.Warn("spawn down field", zap.Error(err))
		}
	}
}
