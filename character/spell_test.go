package character

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hold(r *rig, n int, in Input) {
	in.CastHeld = true
	for i := 0; i < n; i++ {
		r.tick(in)
	}
}

func TestHeal_LongHoldHealsInsteadOfCasting(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.TimeToHeal = 0.05
		cfg.ManaDrainSpeed = 1
	})
	r.ground.grounded = true
	r.c.TakeDamage(2)
	require.Equal(t, 3, r.c.Vitals().Health())

	hold(r, 4, Input{})
	assert.False(t, r.c.State().IsHealing(), "still inside tap threshold")

	hold(r, 3, Input{})
	assert.True(t, r.c.State().IsHealing())
	assert.True(t, r.anim.bools[SignalHealing])
	assert.Less(t, r.c.Vitals().Mana(), 1.0)

	r.tick(Input{CastReleased: true})
	assert.False(t, r.c.State().IsHealing())
	assert.False(t, r.c.State().IsCasting(), "long hold never casts")
	r.idle(30)
	assert.Zero(t, r.spawner.count(EffectFireball))
}

func TestHeal_RestoresHealthOverTime(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.TimeToHeal = 0.1
		cfg.ManaDrainSpeed = 0.5
	})
	r.ground.grounded = true
	r.c.TakeDamage(1)
	notes := 0
	r.c.OnHealthChanged(func() { notes++ })

	hold(r, 30, Input{})
	assert.Equal(t, 5, r.c.Vitals().Health())
	assert.Equal(t, 1, notes)

	hold(r, 1, Input{})
	assert.False(t, r.c.State().IsHealing(), "full health stops healing")
}

func TestHeal_Blocked(t *testing.T) {
	tests := []struct {
		name     string
		grounded bool
		mana     float64
		damage   float64
	}{
		{name: "airborne", grounded: false, mana: 1, damage: 1},
		{name: "no mana", grounded: true, mana: 0, damage: 1},
		{name: "full health", grounded: true, mana: 1, damage: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, func(cfg *Config) { cfg.Mana = tt.mana })
			r.ground.grounded = tt.grounded
			if tt.damage > 0 {
				r.c.TakeDamage(tt.damage)
			}
			hold(r, 20, Input{})
			assert.False(t, r.c.State().IsHealing())
		})
	}
}

func TestHeal_FreezesMovementAndAbilities(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = true
	r.c.TakeDamage(1)
	hold(r, 10, Input{})
	require.True(t, r.c.State().IsHealing())

	r.body.vel.X = 0
	hold(r, 1, Input{X: 1, DashPressed: true, AttackPressed: true})
	assert.Equal(t, 0.0, r.body.vel.X)
	assert.False(t, r.c.State().IsDashing())
	assert.Empty(t, r.targets.queries)
}

func TestCast_TapFiresSideSpell(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.SpellCastWindup = 0.15
		cfg.SpellCastRecovery = 0.35
		cfg.ManaSpellCost = 0.3
	})
	r.ground.grounded = true
	r.body.pos = cp.Vector{X: 2, Y: 1}

	hold(r, 2, Input{})
	r.tick(Input{CastReleased: true})
	require.True(t, r.c.State().IsCasting())
	assert.True(t, r.anim.bools[SignalCasting])
	assert.Equal(t, 1.0, r.c.Vitals().Mana(), "mana is paid when the effect fires")

	r.idle(16)
	require.Equal(t, 1, r.spawner.count(EffectFireball))
	fb := r.spawner.effects[len(r.spawner.effects)-1]
	assert.True(t, fb.FacingRight)
	assert.Equal(t, 2+r.c.Config().SideAttack.Offset.X, fb.Position.X)
	assert.InDelta(t, 0.7, r.c.Vitals().Mana(), 1e-9)
	assert.True(t, r.c.State().IsCasting())

	r.idle(40)
	assert.False(t, r.c.State().IsCasting())
	assert.False(t, r.anim.bools[SignalCasting])
}

func TestCast_RequiresManaAndCooldown(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.Mana = 0.2
		cfg.ManaSpellCost = 0.3
	})
	r.tick(Input{CastHeld: true})
	r.tick(Input{CastReleased: true})
	assert.False(t, r.c.State().IsCasting())

	r = newRig(t, func(cfg *Config) {
		cfg.TimeBetweenCast = 2
		cfg.SpellCastWindup = 0.01
		cfg.SpellCastRecovery = 0.01
	})
	r.tick(Input{CastHeld: true})
	r.tick(Input{CastReleased: true})
	require.True(t, r.c.State().IsCasting())
	r.idle(10)
	require.False(t, r.c.State().IsCasting())

	r.tick(Input{CastHeld: true})
	r.tick(Input{CastReleased: true})
	assert.False(t, r.c.State().IsCasting(), "inter-cast cooldown")
}

func TestCast_UpZeroesVelocity(t *testing.T) {
	r := newRig(t, func(cfg *Config) { cfg.SpellCastWindup = 0.05 })
	r.ground.grounded = false
	r.tick(Input{CastHeld: true})
	r.tick(Input{CastReleased: true})
	r.body.vel = cp.Vector{X: 3, Y: 9}

	for i := 0; i < 8; i++ {
		r.c.Update(r.dt, Input{Y: 1})
	}
	assert.Equal(t, 1, r.spawner.count(EffectUpExplosion))
	assert.Equal(t, cp.Vector{}, r.body.vel)
}

func TestCast_DownFieldUntilGrounded(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.SpellCastWindup = 0.05
		cfg.DownSpellForce = 2
	})
	r.ground.grounded = false
	r.tick(Input{CastHeld: true})
	r.tick(Input{CastReleased: true})
	down := Input{Y: -1}
	for i := 0; i < 8; i++ {
		r.tick(down)
	}
	require.True(t, r.c.IsDownSpellActive())
	require.Equal(t, []bool{true}, r.spawner.downField)

	r.body.vel.Y = -1
	r.tick(down)
	assert.Equal(t, -3.0, r.body.vel.Y)

	r.ground.grounded = true
	r.tick(Input{})
	assert.False(t, r.c.IsDownSpellActive())
	assert.Equal(t, []bool{true, false}, r.spawner.downField)
}

func TestSpellContact_OnlyWhileCasting(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.SpellDamage = 12
		cfg.Mana = 1
	})
	enemy := &fakeEnemy{pos: cp.Vector{X: 0, Y: 2}, tagged: true}
	assert.False(t, r.c.SpellContact(enemy))

	r.tick(Input{CastHeld: true})
	r.tick(Input{CastReleased: true})
	require.True(t, r.c.State().IsCasting())
	manaBefore := r.c.Vitals().Mana()

	assert.True(t, r.c.SpellContact(enemy))
	require.Len(t, enemy.hits, 1)
	assert.Equal(t, 12.0, enemy.hits[0].damage)
	assert.Equal(t, cp.Vector{X: 0, Y: 1}, enemy.hits[0].direction)
	assert.Equal(t, r.c.Config().RecoilYSpeed, enemy.hits[0].force)
	assert.Equal(t, manaBefore, r.c.Vitals().Mana(), "spells do not award mana")
}
