package component

import "github.com/milk9111/charcontrol/common"

// Vitals holds a character's health and mana. Every write goes through a
// clamping setter and observers hear about a change only when the stored
// value actually moved.
type Vitals struct {
	health    int
	maxHealth int
	mana      float64

	healthObservers []func()
	manaObservers   []func(mana float64)
}

// NewVitals creates vitals with maxHealth >= 1 and the given starting values
// clamped into range. No notifications fire during construction.
func NewVitals(maxHealth, health int, mana float64) *Vitals {
	if maxHealth < 1 {
		maxHealth = 1
	}
	return &Vitals{
		maxHealth: maxHealth,
		health:    common.ClampInt(health, 0, maxHealth),
		mana:      common.Clamp01(mana),
	}
}

// OnHealthChanged registers an observer. Observers re-read Health.
func (v *Vitals) OnHealthChanged(fn func()) {
	if v == nil || fn == nil {
		return
	}
	v.healthObservers = append(v.healthObservers, fn)
}

// OnManaChanged registers an observer that receives the new mana value.
func (v *Vitals) OnManaChanged(fn func(mana float64)) {
	if v == nil || fn == nil {
		return
	}
	v.manaObservers = append(v.manaObservers, fn)
}

func (v *Vitals) Health() int {
	if v == nil {
		return 0
	}
	return v.health
}

func (v *Vitals) MaxHealth() int {
	if v == nil {
		return 0
	}
	return v.maxHealth
}

func (v *Vitals) Mana() float64 {
	if v == nil {
		return 0
	}
	return v.mana
}

// SetHealth clamps to [0, MaxHealth]. Returns true if the value changed.
func (v *Vitals) SetHealth(value int) bool {
	if v == nil {
		return false
	}
	clamped := common.ClampInt(value, 0, v.maxHealth)
	if clamped == v.health {
		return false
	}
	v.health = clamped
	for _, fn := range v.healthObservers {
		fn()
	}
	return true
}

// SetMana clamps to [0, 1]. Returns true if the value changed.
func (v *Vitals) SetMana(value float64) bool {
	if v == nil {
		return false
	}
	clamped := common.Clamp01(value)
	if clamped == v.mana {
		return false
	}
	v.mana = clamped
	for _, fn := range v.manaObservers {
		fn(clamped)
	}
	return true
}

func (v *Vitals) Heal(n int) bool {
	return v.SetHealth(v.Health() + n)
}

func (v *Vitals) Damage(n int) bool {
	return v.SetHealth(v.Health() - n)
}

func (v *Vitals) AddMana(delta float64) bool {
	return v.SetMana(v.Mana() + delta)
}

func (v *Vitals) IsDead() bool {
	return v != nil && v.health <= 0
}

// Refill restores full health and sets mana, notifying as usual.
func (v *Vitals) Refill(mana float64) {
	v.SetHealth(v.MaxHealth())
	v.SetMana(mana)
}
