package system

import (
	gameplay "github.com/milk9111/charcontrol/component"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"go.uber.org/zap"
)

// ContactDamageSystem hurts the player when an enemy body overlaps theirs.
// Contact is ignored while the player is invincible.
type ContactDamageSystem struct {
	logger *zap.Logger
}

func NewContactDamageSystem(logger *zap.Logger) *ContactDamageSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContactDamageSystem{logger: logger}
}

func (s *ContactDamageSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || w.PhysicsWorld() == nil {
		return
	}
	_, ch, body, ok := player(w)
	if !ok || ch.Controller.State().IsInvincible() {
		return
	}

	for _, target := range w.PhysicsWorld().Targets(body.BB(), ecs.CategoryEnemy) {
		enemy, ok := target.(*component.Enemy)
		if !ok || enemy.Dead() || enemy.ContactDamage <= 0 {
			continue
		}
		s.logger.Debug("contact damage", zap.String("enemy", enemy.Name), zap.Float64("damage", enemy.ContactDamage))
		ch.Controller.TakeDamage(enemy.ContactDamage)
		return
	}
}

// SpellContactSystem hands every enemy overlapping the casting player to
// the controller, once per cast.
type SpellContactSystem struct{}

func NewSpellContactSystem() *SpellContactSystem {
	return &SpellContactSystem{}
}

func (s *SpellContactSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || w.PhysicsWorld() == nil {
		return
	}
	_, ch, body, ok := player(w)
	if !ok {
		return
	}
	if !ch.Controller.State().IsCasting() {
		clear(ch.SpellHits)
		return
	}
	if ch.SpellHits == nil {
		ch.SpellHits = map[gameplay.Target]struct{}{}
	}

	for _, target := range w.PhysicsWorld().Targets(body.BB(), ecs.CategoryEnemy) {
		if _, hit := ch.SpellHits[target]; hit {
			continue
		}
		if ch.Controller.SpellContact(target) {
			ch.SpellHits[target] = struct{}{}
		}
	}
}
