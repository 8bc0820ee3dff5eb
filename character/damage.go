package character

import (
	"github.com/milk9111/charcontrol/common"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"
)

// newFlashSequence ping-pongs 0 -> 1 -> 0 with a period of 2/speed, looping
// forever.
func newFlashSequence(speed float64) *gween.Sequence {
	if speed <= 0 {
		return gween.NewSequence()
	}
	half := float32(1 / speed)
	seq := gween.NewSequence(
		gween.New(0, 1, half, ease.Linear),
		gween.New(1, 0, half, ease.Linear),
	)
	seq.SetLoop(-1)
	return seq
}

// TakeDamage subtracts the rounded damage and (re)starts the invincibility
// window. It always applies; callers that respect invincibility check
// State().IsInvincible() first.
func (c *Controller) TakeDamage(damage float64) {
	amount := common.RoundToInt(damage)
	c.vitals.Damage(amount)

	c.state.beginInvincible()
	c.invincibility.Start(c.cfg.InvincibilityDuration)
	c.flash.Reset()
	c.flashAmount = 0

	c.spawn(Effect{Kind: EffectBloodSpurt, Position: c.body.Position(), FacingRight: c.state.lookingRight})
	c.trigger(SignalHurt)
	c.log.Debug("took damage", zap.Int("amount", amount), zap.Int("health", c.vitals.Health()))
}

func (c *Controller) updateFlash(dt float64) {
	if !c.state.invincible || !c.flash.HasTweens() {
		c.flashAmount = 0
		return
	}
	v, _, _ := c.flash.Update(float32(dt))
	c.flashAmount = common.Clamp01(float64(v))
}

// FlashAmount is the lerp factor from white (0) to black (1) for the hit
// flash.
func (c *Controller) FlashAmount() float64 {
	return c.flashAmount
}
