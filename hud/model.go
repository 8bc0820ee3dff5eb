// Package hud draws the player's heart row and mana bar.
package hud

import (
	"math"

	"github.com/milk9111/charcontrol/component"
)

// ManaSegments is how many cells the mana bar is split into.
const ManaSegments = 10

// Model mirrors the vitals the HUD shows. It only changes through the
// vitals' notifications.
type Model struct {
	maxHealth int
	health    int
	mana      float64
	dirty     bool
}

// Bind subscribes m to v and takes the current values.
func (m *Model) Bind(v *component.Vitals) {
	if v == nil {
		return
	}
	m.maxHealth, m.health, m.mana = v.MaxHealth(), v.Health(), v.Mana()
	m.dirty = true
	v.OnHealthChanged(func() {
		m.maxHealth, m.health = v.MaxHealth(), v.Health()
		m.dirty = true
	})
	v.OnManaChanged(func(mana float64) {
		m.mana = mana
		m.dirty = true
	})
}

// Hearts returns one entry per heart container, true when filled.
func (m *Model) Hearts() []bool {
	hearts := make([]bool, m.maxHealth)
	for i := range hearts {
		hearts[i] = i < m.health
	}
	return hearts
}

func (m *Model) Mana() float64 { return m.mana }

// FilledSegments is the number of lit mana cells. A partly filled cell
// counts once it is at least half full.
func (m *Model) FilledSegments() int {
	return int(math.Round(m.mana * ManaSegments))
}

// TakeDirty reports whether anything changed since the last call.
func (m *Model) TakeDirty() bool {
	d := m.dirty
	m.dirty = false
	return d
}
