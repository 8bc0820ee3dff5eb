package character

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RequiresBodyAndGround(t *testing.T) {
	_, err := New(DefaultConfig(), Deps{Ground: &fakeGround{}})
	require.Error(t, err)
	_, err = New(DefaultConfig(), Deps{Body: &fakeBody{}})
	require.Error(t, err)
}

func TestNew_NormalizesConfig(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.MaxHealth = 0
		cfg.Health = 9
	})
	assert.Equal(t, 1, r.c.Vitals().MaxHealth())
	assert.Equal(t, 1, r.c.Vitals().Health())
	assert.Equal(t, r.c.Config().GravityScale, r.body.gravity)
}

func TestGroundJump(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = true
	r.idle(1)

	r.tick(Input{JumpPressed: true})
	assert.Equal(t, r.c.Config().JumpForce, r.body.vel.Y)
	assert.True(t, r.c.State().IsJumping())
	assert.Equal(t, 0.0, r.c.CoyoteRemaining())
}

func TestCoyote_JumpInsideWindow(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.CoyoteTime = 0.1
		cfg.MaxAirJumps = 0
	})
	r.ground.grounded = true
	r.idle(1)

	r.ground.grounded = false
	r.idle(4)
	r.tick(Input{JumpPressed: true})

	assert.True(t, r.c.State().IsJumping())
	assert.Equal(t, r.c.Config().JumpForce, r.body.vel.Y)
	assert.Equal(t, 0.0, r.c.CoyoteRemaining())
}

func TestCoyote_WindowExpired(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.CoyoteTime = 0.1
		cfg.MaxAirJumps = 0
	})
	r.ground.grounded = true
	r.idle(1)

	r.ground.grounded = false
	r.idle(12)
	r.body.vel.Y = -4
	r.tick(Input{JumpPressed: true})

	assert.False(t, r.c.State().IsJumping())
	assert.Equal(t, -4.0, r.body.vel.Y)
}

func TestCoyote_ExpiredFallsBackToAirJump(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.CoyoteTime = 0.1
		cfg.MaxAirJumps = 1
	})
	r.ground.grounded = true
	r.idle(1)
	r.ground.grounded = false
	r.idle(12)

	r.tick(Input{JumpPressed: true})
	assert.True(t, r.c.State().IsJumping())
	assert.Equal(t, 1, r.c.State().AirJumpsUsed())
}

func TestAirJumpCap(t *testing.T) {
	r := newRig(t, func(cfg *Config) { cfg.MaxAirJumps = 1 })
	r.ground.grounded = true
	r.idle(1)
	r.tick(Input{JumpPressed: true})
	r.ground.grounded = false
	r.idle(20)

	r.body.vel.Y = -5
	r.tick(Input{JumpPressed: true})
	require.Equal(t, 1, r.c.State().AirJumpsUsed())
	require.Equal(t, r.c.Config().JumpForce, r.body.vel.Y)

	r.idle(20)
	r.body.vel.Y = -5
	r.tick(Input{JumpPressed: true})
	assert.Equal(t, 1, r.c.State().AirJumpsUsed())
	assert.Equal(t, -5.0, r.body.vel.Y)

	r.ground.grounded = true
	r.idle(1)
	assert.Equal(t, 0, r.c.State().AirJumpsUsed())
}

func TestJumpBuffer_PressBeforeLanding(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.MaxAirJumps = 0
		cfg.JumpBufferFrames = 8
	})
	r.ground.grounded = false
	r.idle(30)

	r.body.vel.Y = -10
	r.tick(Input{JumpPressed: true})
	require.Equal(t, -10.0, r.body.vel.Y)

	r.idle(3)
	r.ground.grounded = true
	r.tick(Input{})

	assert.True(t, r.c.State().IsJumping())
	assert.Equal(t, r.c.Config().JumpForce, r.body.vel.Y)
}

func TestJumpBuffer_Expires(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.MaxAirJumps = 0
		cfg.JumpBufferFrames = 8
	})
	r.idle(30)
	r.body.vel.Y = -10
	r.tick(Input{JumpPressed: true})

	// 8 frames at 60 per second is about 0.133s
	r.idle(20)
	assert.Equal(t, 0.0, r.c.JumpBufferRemaining())
	r.ground.grounded = true
	r.body.vel.Y = 0
	r.tick(Input{})

	assert.False(t, r.c.State().IsJumping())
	assert.Equal(t, 0.0, r.body.vel.Y)
}

func TestJumpCut(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = true
	r.idle(1)
	r.tick(Input{JumpPressed: true})
	r.ground.grounded = false

	r.body.vel.Y = 20
	r.tick(Input{JumpReleased: true})
	assert.Equal(t, 0.0, r.body.vel.Y)
	assert.False(t, r.c.State().IsJumping())
}

func TestJumpCut_BelowThresholdKeepsVelocity(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = false
	r.idle(1)

	r.body.vel.Y = 2
	r.tick(Input{JumpReleased: true})
	assert.Equal(t, 2.0, r.body.vel.Y)
}

func TestMovement_WalkAndFacing(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = true

	r.tick(Input{X: -1})
	assert.Equal(t, -r.c.Config().WalkSpeed, r.body.vel.X)
	assert.False(t, r.c.State().IsLookingRight())
	assert.True(t, r.anim.bools[SignalWalking])

	r.tick(Input{X: 0})
	assert.Equal(t, 0.0, r.body.vel.X)
	assert.False(t, r.c.State().IsLookingRight(), "zero input keeps facing")

	r.tick(Input{X: 0.5})
	assert.True(t, r.c.State().IsLookingRight())
	assert.Equal(t, 0.5*r.c.Config().WalkSpeed, r.body.vel.X)
}

func TestAnimator_JumpingSignalFollowsGround(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = false
	r.idle(1)
	assert.True(t, r.anim.bools[SignalJumping])
	r.ground.grounded = true
	r.idle(1)
	assert.False(t, r.anim.bools[SignalJumping])
}

func TestInputSampler_Edges(t *testing.T) {
	var s InputSampler
	in := s.Sample(Buttons{Jump: true, Cast: true, X: 3})
	assert.True(t, in.JumpPressed)
	assert.True(t, in.CastPressed)
	assert.True(t, in.CastHeld)
	assert.Equal(t, 1.0, in.X)

	in = s.Sample(Buttons{Jump: true, Cast: true})
	assert.False(t, in.JumpPressed)
	assert.False(t, in.CastPressed)

	in = s.Sample(Buttons{})
	assert.True(t, in.JumpReleased)
	assert.True(t, in.CastReleased)
	assert.False(t, in.CastHeld)
}

func TestReset_RestoresSpawnState(t *testing.T) {
	r := newRig(t, nil)
	r.c.TakeDamage(3)
	r.ground.grounded = false
	r.tick(Input{DashPressed: true})
	require.True(t, r.c.State().IsDashing())

	r.c.Reset(cp.Vector{X: 4, Y: 2})
	assert.Equal(t, cp.Vector{X: 4, Y: 2}, r.body.pos)
	assert.Equal(t, r.c.Vitals().MaxHealth(), r.c.Vitals().Health())
	assert.False(t, r.c.State().IsDashing())
	assert.False(t, r.c.State().IsInvincible())
	assert.True(t, r.c.CanDash())
	assert.Equal(t, r.c.Config().GravityScale, r.body.gravity)
}
