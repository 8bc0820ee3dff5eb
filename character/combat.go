package character

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/common"
	"github.com/milk9111/charcontrol/component"
	"go.uber.org/zap"
)

const (
	slashAngleSide = 0.0
	slashAngleUp   = 80.0
	slashAngleDown = -90.0
)

type recoilAxis int

const (
	recoilAxisX recoilAxis = iota
	recoilAxisY
)

func (c *Controller) attack() {
	if !c.in.AttackPressed || !c.sinceAttack.Reached(c.cfg.TimeBetweenAttacks) {
		return
	}
	c.sinceAttack.Reset()
	c.trigger(SignalAttacking)

	y := c.in.Y
	switch {
	case y == 0 || (y < 0 && c.grounded):
		c.swing(c.cfg.SideAttack, recoilAxisX, c.cfg.RecoilXSpeed, slashAngleSide)
	case y > 0:
		c.swing(c.cfg.UpAttack, recoilAxisY, c.cfg.RecoilYSpeed, slashAngleUp)
	case y < 0 && !c.grounded:
		c.swing(c.cfg.DownAttack, recoilAxisY, c.cfg.RecoilYSpeed, slashAngleDown)
	}
}

// attackPoint places box relative to the body, mirrored by facing.
func (c *Controller) attackPoint(box AttackBox) cp.Vector {
	p := c.body.Position()
	return cp.Vector{X: p.X + box.Offset.X*c.facingSign(), Y: p.Y + box.Offset.Y}
}

func (c *Controller) swing(box *AttackBox, axis recoilAxis, force, angle float64) {
	if box == nil {
		return
	}
	center := c.attackPoint(*box)
	c.hit(center, box.Size, axis, force)
	c.spawn(Effect{
		Kind:        EffectSlash,
		Position:    center,
		Angle:       angle,
		FacingRight: c.state.lookingRight,
		Size:        box.Size,
	})
}

func (c *Controller) hit(center, size cp.Vector, axis recoilAxis, force float64) {
	if c.targets == nil {
		return
	}
	targets := c.targets.OverlapBox(center, size)
	if len(targets) == 0 {
		return
	}
	switch axis {
	case recoilAxisX:
		c.state.startRecoilX()
	case recoilAxisY:
		c.state.startRecoilY()
	}
	for _, t := range targets {
		c.strike(t, c.cfg.AttackDamage, force, true)
	}
}

// strike applies damage to a target that can take it. Direction always
// points from the character to the target. Only melee hits award mana.
func (c *Controller) strike(t component.Target, damage, force float64, awardMana bool) bool {
	d, ok := t.(component.Damageable)
	if !ok {
		return false
	}
	dir := common.Direction(c.body.Position(), t.Position())
	d.ReceiveHit(damage, dir, force)
	if awardMana && component.IsTagged(t, component.EnemyTag) {
		c.vitals.AddMana(c.cfg.ManaGain)
	}
	c.log.Debug("hit target", zap.Float64("damage", damage), zap.Float64("force", force))
	return true
}

// recoil applies knockback from a landed hit. It runs every physics tick,
// dashing included.
func (c *Controller) recoil() {
	if c.state.recoilingX {
		c.body.SetVelocity(cp.Vector{X: -c.facingSign() * c.cfg.RecoilXSpeed, Y: 0})
	}
	if c.state.recoilingY {
		v := c.body.Velocity()
		if c.yBuffered < 0 {
			v.Y = c.cfg.RecoilYSpeed
		} else {
			v.Y = -c.cfg.RecoilYSpeed
		}
		c.body.SetVelocity(v)
		c.state.resetAirJumps()
	}

	if c.state.recoilingX {
		c.state.stepRecoilX(c.cfg.RecoilXSteps)
	}
	if c.state.recoilingY {
		c.state.stepRecoilY(c.cfg.RecoilYSteps)
	}
	if c.grounded && c.state.recoilingY {
		c.state.stopRecoilY()
	}
	c.applyGravity()
}
