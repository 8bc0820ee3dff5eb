package character

import (
	"github.com/jakecoffman/cp"
	"go.uber.org/zap"
)

// startDash begins a dash on a fresh press. Both the dash duration and the
// cooldown are measured from this moment.
func (c *Controller) startDash() {
	if c.in.DashPressed && c.canDash && !c.dashLatched && !c.state.dashing {
		c.canDash = false
		c.dashLatched = true
		c.state.beginDash()
		c.dashTimer.Start(c.cfg.DashTime)
		c.dashCooldown.Start(c.cfg.DashCooldown)
		c.trigger(SignalDashing)

		c.applyGravity()
		c.body.SetVelocity(cp.Vector{X: c.facingSign() * c.cfg.DashSpeed, Y: 0})
		if c.grounded {
			c.spawn(Effect{Kind: EffectDash, Position: c.body.Position(), FacingRight: c.state.lookingRight})
		}
		c.log.Debug("dash start", zap.Bool("right", c.state.lookingRight))
	}
	// landing frees the input latch; the timers keep running
	if c.grounded {
		c.dashLatched = false
	}
}

func (c *Controller) finishDash() {
	c.state.endDash()
	c.applyGravity()
	c.log.Debug("dash end")
}
