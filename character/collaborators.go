package character

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/component"
)

// Body is the rigid body the controller drives. It accepts a velocity and a
// gravity scale and integrates them itself.
type Body interface {
	Position() cp.Vector
	SetPosition(p cp.Vector)
	Velocity() cp.Vector
	SetVelocity(v cp.Vector)
	GravityScale() float64
	SetGravityScale(scale float64)
}

// GroundSensor answers whether the character is standing on ground.
type GroundSensor interface {
	Grounded() bool
}

// TargetQuery finds attackable targets overlapping an axis-aligned box.
type TargetQuery interface {
	OverlapBox(center, size cp.Vector) []component.Target
}

type EffectKind int

const (
	EffectDash EffectKind = iota + 1
	EffectSlash
	EffectBloodSpurt
	EffectFireball
	EffectUpExplosion
)

func (k EffectKind) String() string {
	switch k {
	case EffectDash:
		return "dash"
	case EffectSlash:
		return "slash"
	case EffectBloodSpurt:
		return "blood_spurt"
	case EffectFireball:
		return "fireball"
	case EffectUpExplosion:
		return "up_explosion"
	}
	return "unknown"
}

// Effect describes something the controller wants spawned.
type Effect struct {
	Kind        EffectKind
	Position    cp.Vector
	Angle       float64
	FacingRight bool
	Size        cp.Vector
}

// Spawner creates effects and projectiles and toggles the down-spell field.
type Spawner interface {
	Spawn(fx Effect)
	SetDownField(active bool)
}

type Signal int

const (
	SignalWalking Signal = iota + 1
	SignalJumping
	SignalDashing
	SignalAttacking
	SignalHurt
	SignalHealing
	SignalCasting
)

func (s Signal) String() string {
	switch s {
	case SignalWalking:
		return "walking"
	case SignalJumping:
		return "jumping"
	case SignalDashing:
		return "dashing"
	case SignalAttacking:
		return "attacking"
	case SignalHurt:
		return "hurt"
	case SignalHealing:
		return "healing"
	case SignalCasting:
		return "casting"
	}
	return "unknown"
}

// Animator consumes animation signals.
type Animator interface {
	SetBool(s Signal, v bool)
	Trigger(s Signal)
}
