package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/common"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/ecs/entity"
	"go.uber.org/zap"
)

// EnemySystem advances enemy recoil, removes dead enemies and moves the
// built-in strategies. Scripted enemies are moved by ScriptSystem.
type EnemySystem struct {
	logger *zap.Logger
}

func NewEnemySystem(logger *zap.Logger) *EnemySystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnemySystem{logger: logger}
}

func (s *EnemySystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	target, hasTarget := PlayerPosition(w)

	ecs.ForEach(w, component.EnemyComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy) {
		enemy.TickRecoil(dt)
		if enemy.Dead() {
			w.Events().Push(ecs.Event{Type: ecs.EventEnemyDied, Source: e, Data: enemy.Name})
			s.logger.Debug("enemy died", zap.Stringer("entity", e), zap.String("name", enemy.Name))
			entity.Destroy(w, e)
			return
		}
		if enemy.IsRecoiling() || enemy.Body == nil {
			return
		}

		switch enemy.Strategy {
		case component.StrategyZombie:
			if !hasTarget {
				return
			}
			moveZombie(enemy, target, dt)
		}
	})
}

// moveZombie sets the horizontal velocity that carries the enemy toward
// target.X by at most Speed*dt this tick.
func moveZombie(enemy *component.Enemy, target cp.Vector, dt float64) {
	pos := enemy.Body.Position()
	next := common.MoveTowards(pos.X, target.X, enemy.Speed*dt)
	v := enemy.Body.Velocity()
	v.X = (next - pos.X) / dt
	enemy.Body.SetVelocity(v)
}
