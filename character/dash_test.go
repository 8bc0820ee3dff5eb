package character

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDash_DurationAndCooldown(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.DashTime = 0.2
		cfg.DashCooldown = 1
	})
	r.dt = 1.0 / 16

	r.tick(Input{DashPressed: true})
	require.True(t, r.c.State().IsDashing())
	require.False(t, r.c.CanDash())
	assert.Equal(t, 0.0, r.body.gravity)
	assert.Equal(t, r.c.Config().DashSpeed, r.body.vel.X)
	assert.Equal(t, 0.0, r.body.vel.Y)

	r.idle(3) // t = 0.1875
	assert.True(t, r.c.State().IsDashing())

	r.idle(1) // t = 0.25
	assert.False(t, r.c.State().IsDashing())
	assert.Equal(t, r.c.Config().GravityScale, r.body.gravity)
	assert.False(t, r.c.CanDash())

	r.idle(11) // t = 0.9375
	assert.False(t, r.c.CanDash())

	r.idle(1) // t = 1.0
	assert.True(t, r.c.CanDash())
}

func TestDash_FacingLeft(t *testing.T) {
	r := newRig(t, nil)
	r.tick(Input{X: -1})
	r.tick(Input{X: -1, DashPressed: true})
	assert.Equal(t, -r.c.Config().DashSpeed, r.body.vel.X)
}

func TestDash_EffectOnlyWhenGrounded(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = false
	r.tick(Input{DashPressed: true})
	assert.Equal(t, 0, r.spawner.count(EffectDash))

	r = newRig(t, nil)
	r.ground.grounded = true
	r.tick(Input{DashPressed: true})
	assert.Equal(t, 1, r.spawner.count(EffectDash))
	assert.Equal(t, 1, r.anim.triggers[SignalDashing])
}

func TestDash_SkipsMovementAndJump(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = true
	r.tick(Input{DashPressed: true})
	speed := r.c.Config().DashSpeed

	r.tick(Input{X: -1, JumpPressed: true})
	assert.Equal(t, speed, r.body.vel.X)
	assert.Equal(t, 0.0, r.body.vel.Y)
	assert.True(t, r.c.State().IsLookingRight(), "no flip while dashing")
}

func TestDash_RecoilStillApplies(t *testing.T) {
	r := newRig(t, nil)
	r.targets.targets = append(r.targets.targets, &fakeEnemy{pos: cp.Vector{X: 1}, tagged: true})

	r.tick(Input{DashPressed: true, AttackPressed: true})
	require.True(t, r.c.State().IsDashing())
	require.True(t, r.c.State().IsRecoilingX())
	assert.Equal(t, -r.c.Config().RecoilXSpeed, r.body.vel.X)
}

func TestDash_NoSecondDashUntilLanding(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.DashTime = 0.1
		cfg.DashCooldown = 0.1
	})
	r.ground.grounded = false
	r.tick(Input{DashPressed: true})
	r.idle(20)
	require.True(t, r.c.CanDash())

	r.tick(Input{DashPressed: true})
	assert.False(t, r.c.State().IsDashing(), "air dash spent until landing")

	r.ground.grounded = true
	r.idle(1)
	r.tick(Input{DashPressed: true})
	assert.True(t, r.c.State().IsDashing())
}

func TestDash_LandingDoesNotCancelTimers(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.DashTime = 0.2
		cfg.DashCooldown = 0.5
	})
	r.ground.grounded = false
	r.tick(Input{DashPressed: true})
	r.ground.grounded = true
	r.idle(25)
	assert.False(t, r.c.State().IsDashing())
	assert.Equal(t, r.c.Config().GravityScale, r.body.gravity)

	r.idle(30)
	assert.True(t, r.c.CanDash())
}
