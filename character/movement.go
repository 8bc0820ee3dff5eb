package character

import "go.uber.org/zap"

func (c *Controller) updateJumpState(dt float64) {
	if c.grounded {
		c.state.land()
		c.coyote.Start(c.cfg.CoyoteTime)
		c.jumpCutRequest = false
	} else {
		c.coyote.Tick(dt)
	}

	// jump buffer counts frames, so it decays at JumpBufferRate per second
	if c.in.JumpPressed {
		c.jumpBuffer.Start(c.cfg.JumpBufferFrames)
	} else {
		c.jumpBuffer.TickScaled(dt, c.cfg.JumpBufferRate)
	}
}

func (c *Controller) bufferPhysicsInputs() {
	c.moveBuffered = c.in.X
	c.yBuffered = c.in.Y
	if c.in.JumpPressed {
		c.jumpRequest = true
	}
	if c.in.JumpReleased && c.body.Velocity().Y > 0 {
		c.jumpCutRequest = true
	}
}

// flip keeps the last facing when there is no horizontal input.
func (c *Controller) flip() {
	switch {
	case c.in.X < 0:
		c.state.face(false)
	case c.in.X > 0:
		c.state.face(true)
	}
}

func (c *Controller) applyMovement() {
	if c.state.healing {
		return
	}
	v := c.body.Velocity()
	v.X = c.moveBuffered * c.cfg.WalkSpeed
	c.body.SetVelocity(v)
	c.setBool(SignalWalking, v.X != 0 && c.grounded)
}

func (c *Controller) applyJump() {
	defer c.setBool(SignalJumping, !c.grounded)

	v := c.body.Velocity()
	if c.jumpCutRequest && v.Y > c.cfg.JumpCutThreshold {
		v.Y = 0
		c.body.SetVelocity(v)
		c.state.cutJump()
		c.jumpCutRequest = false
		return
	}
	// A press made shortly before landing stays alive in the jump buffer, so
	// the ground jump only needs the buffer. Air jumps need a fresh press.
	requested := c.jumpRequest
	c.jumpRequest = false

	switch {
	case c.jumpBuffer.Active() && c.coyote.Active() && !c.state.jumping:
		v.Y = c.cfg.JumpForce
		c.body.SetVelocity(v)
		c.state.groundJump()
		c.coyote.Stop()
		c.jumpBuffer.Stop()
		c.jumpCutRequest = false
		c.log.Debug("ground jump")
	case requested && !c.grounded && c.state.airJumpsUsed < c.cfg.MaxAirJumps:
		v.Y = c.cfg.JumpForce
		c.body.SetVelocity(v)
		c.state.airJump()
		c.jumpBuffer.Stop()
		c.jumpCutRequest = false
		c.log.Debug("air jump", zap.Int("used", c.state.airJumpsUsed))
	}
}
