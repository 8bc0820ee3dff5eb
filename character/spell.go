package character

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/component"
	"go.uber.org/zap"
)

// heal runs while the cast button is held past the tap threshold.
func (c *Controller) heal(dt float64) {
	canHeal := c.in.CastHeld &&
		c.castOrHeal.Elapsed > c.cfg.TapThreshold &&
		c.vitals.Health() < c.vitals.MaxHealth() &&
		c.vitals.Mana() > 0 &&
		c.grounded &&
		!c.state.dashing

	if canHeal && c.state.beginHeal() {
		c.setBool(SignalHealing, true)
		c.healTimer.Tick(dt)
		if c.healTimer.Reached(c.cfg.TimeToHeal) {
			c.vitals.Heal(1)
			c.healTimer.Reset()
			c.log.Debug("healed", zap.Int("health", c.vitals.Health()))
		}
		c.vitals.AddMana(-dt * c.cfg.ManaDrainSpeed)
		return
	}

	c.state.endHeal()
	c.setBool(SignalHealing, false)
	c.healTimer.Reset()
}

// castSpell starts a cast on a tap release. A cast in flight is never
// replaced by a new one.
func (c *Controller) castSpell() {
	if c.in.CastReleased &&
		c.releasedHold <= c.cfg.TapThreshold &&
		c.sinceCast.Reached(c.cfg.TimeBetweenCast) &&
		c.vitals.Mana() >= c.cfg.ManaSpellCost &&
		!c.state.casting &&
		c.state.beginCast() {
		c.sinceCast.Reset()
		c.castPhase = castWindup
		c.castTimer.Start(c.cfg.SpellCastWindup)
		c.setBool(SignalCasting, true)
		c.log.Debug("cast windup")
	}

	if c.grounded && c.downSpell {
		c.setDownSpell(false)
	}
}

func (c *Controller) advanceCast(dt float64) {
	switch c.castPhase {
	case castWindup:
		c.castTimer.Tick(dt)
		if c.castTimer.Active() {
			return
		}
		c.castEffect()
		c.vitals.AddMana(-c.cfg.ManaSpellCost)
		c.castPhase = castRecovery
		c.castTimer.Start(c.cfg.SpellCastRecovery)
	case castRecovery:
		c.castTimer.Tick(dt)
		if c.castTimer.Active() {
			return
		}
		c.castPhase = castIdle
		c.state.endCast()
		c.setBool(SignalCasting, false)
		c.log.Debug("cast recovered")
	}
}

// castEffect fires the direction-dependent part of a spell using the input
// at the moment the windup ends.
func (c *Controller) castEffect() {
	y := c.in.Y
	switch {
	case y == 0 || (y < 0 && c.grounded):
		origin := c.body.Position()
		if c.cfg.SideAttack != nil {
			origin = c.attackPoint(*c.cfg.SideAttack)
		}
		c.spawn(Effect{Kind: EffectFireball, Position: origin, FacingRight: c.state.lookingRight})
		c.state.startRecoilX()
		c.log.Debug("cast side")
	case y > 0:
		c.spawn(Effect{Kind: EffectUpExplosion, Position: c.body.Position(), FacingRight: c.state.lookingRight})
		c.body.SetVelocity(cp.Vector{})
		c.log.Debug("cast up")
	case y < 0 && !c.grounded:
		c.setDownSpell(true)
		c.log.Debug("cast down")
	}
}

func (c *Controller) setDownSpell(active bool) {
	if c.downSpell == active {
		return
	}
	c.downSpell = active
	if c.spawner != nil {
		c.spawner.SetDownField(active)
	}
}

func (c *Controller) applyDownSpellForce() {
	if !c.downSpell {
		return
	}
	v := c.body.Velocity()
	v.Y -= c.cfg.DownSpellForce
	c.body.SetVelocity(v)
}

// SpellContact is called when target starts overlapping the character. It
// only hurts while a cast is in flight.
func (c *Controller) SpellContact(t component.Target) bool {
	if !c.state.casting {
		return false
	}
	return c.strike(t, c.cfg.SpellDamage, c.cfg.RecoilYSpeed, false)
}

// DownFieldContact is called when target starts overlapping the down-spell
// field while it is active.
func (c *Controller) DownFieldContact(t component.Target) bool {
	if !c.downSpell {
		return false
	}
	return c.strike(t, c.cfg.SpellDamage, c.cfg.RecoilYSpeed, false)
}
