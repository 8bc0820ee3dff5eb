package component

import (
	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/charcontrol/component"
)

// MoveStrategy selects how an enemy moves between hits.
type MoveStrategy string

const (
	StrategyStatic MoveStrategy = "static"
	StrategyZombie MoveStrategy = "zombie"
	StrategyScript MoveStrategy = "script"
)

// Enemy is a damageable target backed by a physics body. Hits subtract
// health and, unless already recoiling, knock the body back along the hit
// direction.
type Enemy struct {
	Name          string
	Body          Body
	Health        float64
	Speed         float64
	ContactDamage float64
	RecoilLength  float64
	RecoilFactor  float64
	Strategy      MoveStrategy

	Events gameplay.CombatEventEmitter

	recoiling bool
	recoil    gameplay.Stopwatch
	dead      bool
}

var EnemyComponent = NewComponent[Enemy]()

var (
	_ gameplay.Target     = (*Enemy)(nil)
	_ gameplay.Damageable = (*Enemy)(nil)
	_ gameplay.Recoilable = (*Enemy)(nil)
	_ gameplay.Tagged     = (*Enemy)(nil)
)

func (e *Enemy) Position() cp.Vector {
	if e.Body == nil {
		return cp.Vector{}
	}
	return e.Body.Position()
}

func (e *Enemy) ReceiveHit(damage float64, direction cp.Vector, force float64) {
	if e.dead {
		return
	}
	e.Health -= damage
	e.Events.Emit(gameplay.CombatEvent{
		Type:      gameplay.EventHit,
		Target:    e.Name,
		Damage:    damage,
		Direction: direction,
		Force:     force,
		Position:  e.Position(),
	})

	if !e.recoiling {
		if e.Body != nil {
			e.Body.ApplyImpulse(direction.Mult(force * e.RecoilFactor))
		}
		e.recoiling = true
		e.recoil.Reset()
		e.Events.Emit(gameplay.CombatEvent{Type: gameplay.EventRecoilStart, Target: e.Name})
	}

	if e.Health <= 0 {
		e.dead = true
		e.Events.Emit(gameplay.CombatEvent{Type: gameplay.EventDeath, Target: e.Name, Position: e.Position()})
	}
}

func (e *Enemy) IsRecoiling() bool { return e.recoiling }

func (e *Enemy) HasTag(tag string) bool { return tag == gameplay.EnemyTag }

// Dead reports whether health has reached zero.
func (e *Enemy) Dead() bool { return e.dead }

// TickRecoil advances the recoil stopwatch and ends the recoil once
// RecoilLength has elapsed.
func (e *Enemy) TickRecoil(dt float64) {
	if !e.recoiling {
		return
	}
	e.recoil.Tick(dt)
	if e.recoil.Reached(e.RecoilLength) {
		e.recoiling = false
		e.recoil.Reset()
		e.Events.Emit(gameplay.CombatEvent{Type: gameplay.EventRecoilFinish, Target: e.Name})
	}
}
