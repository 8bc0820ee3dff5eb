package character

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttack_BoxSelection(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name     string
		y        float64
		grounded bool
		box      *AttackBox
		angle    float64
	}{
		{name: "neutral grounded", y: 0, grounded: true, box: cfg.SideAttack, angle: slashAngleSide},
		{name: "neutral airborne", y: 0, grounded: false, box: cfg.SideAttack, angle: slashAngleSide},
		{name: "down grounded", y: -1, grounded: true, box: cfg.SideAttack, angle: slashAngleSide},
		{name: "up", y: 1, grounded: true, box: cfg.UpAttack, angle: slashAngleUp},
		{name: "down airborne", y: -1, grounded: false, box: cfg.DownAttack, angle: slashAngleDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(t, nil)
			r.ground.grounded = tt.grounded
			r.body.pos = cp.Vector{X: 10, Y: 5}

			r.tick(Input{Y: tt.y, AttackPressed: true})

			require.Len(t, r.targets.queries, 1)
			q := r.targets.queries[0]
			assert.Equal(t, tt.box.Size, q.size)
			assert.Equal(t, cp.Vector{X: 10 + tt.box.Offset.X, Y: 5 + tt.box.Offset.Y}, q.center)
			require.Equal(t, 1, r.spawner.count(EffectSlash))
			assert.Equal(t, tt.angle, r.spawner.effects[0].Angle)
			assert.Equal(t, 1, r.anim.triggers[SignalAttacking])
		})
	}
}

func TestAttack_MirroredWhenFacingLeft(t *testing.T) {
	r := newRig(t, nil)
	r.tick(Input{X: -1})
	r.tick(Input{X: -1, AttackPressed: true})
	require.Len(t, r.targets.queries, 1)
	assert.Equal(t, -r.c.Config().SideAttack.Offset.X, r.targets.queries[0].center.X)
}

func TestAttack_Cooldown(t *testing.T) {
	r := newRig(t, func(cfg *Config) { cfg.TimeBetweenAttacks = 0.3 })
	r.tick(Input{AttackPressed: true})
	r.idle(10)
	r.tick(Input{AttackPressed: true})
	assert.Len(t, r.targets.queries, 1)

	r.idle(20)
	r.tick(Input{AttackPressed: true})
	assert.Len(t, r.targets.queries, 2)
}

func TestAttack_MissingBoxIsNoop(t *testing.T) {
	r := newRig(t, func(cfg *Config) { cfg.UpAttack = nil })
	r.targets.targets = []component.Target{&fakeEnemy{tagged: true}}

	r.tick(Input{Y: 1, AttackPressed: true})
	assert.Empty(t, r.targets.queries)
	assert.False(t, r.c.State().IsRecoilingY())
	assert.Zero(t, r.spawner.count(EffectSlash))
}

func TestAttack_DamagesAndAwardsMana(t *testing.T) {
	r := newRig(t, func(cfg *Config) {
		cfg.Mana = 0
		cfg.ManaGain = 0.25
		cfg.AttackDamage = 7
	})
	tagged := &fakeEnemy{pos: cp.Vector{X: 3, Y: 4}, tagged: true}
	untagged := &fakeEnemy{pos: cp.Vector{X: -2, Y: 0}}
	r.targets.targets = []component.Target{tagged, untagged, wall{pos: cp.Vector{X: 1}}}

	var manaSeen []float64
	r.c.OnManaChanged(func(m float64) { manaSeen = append(manaSeen, m) })
	r.tick(Input{AttackPressed: true})

	require.Len(t, tagged.hits, 1)
	assert.Equal(t, 7.0, tagged.hits[0].damage)
	assert.InDelta(t, 0.6, tagged.hits[0].direction.X, 1e-9)
	assert.InDelta(t, 0.8, tagged.hits[0].direction.Y, 1e-9)
	assert.Equal(t, r.c.Config().RecoilXSpeed, tagged.hits[0].force)

	require.Len(t, untagged.hits, 1)
	assert.InDelta(t, -1, untagged.hits[0].direction.X, 1e-9)

	assert.InDelta(t, 0.25, r.c.Vitals().Mana(), 1e-9)
	assert.Equal(t, []float64{0.25}, manaSeen)
	assert.True(t, r.c.State().IsRecoilingX())
}

func TestAttack_NoTargetsNoRecoil(t *testing.T) {
	r := newRig(t, nil)
	r.tick(Input{AttackPressed: true})
	assert.False(t, r.c.State().IsRecoilingX())
}

func TestRecoilX_ClearsAfterSteps(t *testing.T) {
	r := newRig(t, func(cfg *Config) { cfg.RecoilXSteps = 5 })
	r.ground.grounded = true
	r.targets.targets = []component.Target{wall{pos: cp.Vector{X: 1}}}

	r.c.Update(r.dt, Input{AttackPressed: true})
	r.targets.targets = nil
	for i := 1; i < 5; i++ {
		r.c.FixedUpdate(r.dt)
		require.True(t, r.c.State().IsRecoilingX(), "step %d", i)
		assert.Equal(t, -r.c.Config().RecoilXSpeed, r.body.vel.X)
		assert.Equal(t, i, r.c.State().StepsXRecoiled())
	}
	r.c.FixedUpdate(r.dt)
	assert.False(t, r.c.State().IsRecoilingX())
	assert.Equal(t, 0, r.c.State().StepsXRecoiled())
}

func TestRecoilY_PogoSuspendsGravity(t *testing.T) {
	r := newRig(t, func(cfg *Config) { cfg.RecoilYSteps = 3 })
	r.ground.grounded = false
	r.targets.targets = []component.Target{&fakeEnemy{pos: cp.Vector{Y: -1}, tagged: true}}
	r.idle(1)
	r.tick(Input{JumpPressed: true})
	require.Equal(t, 1, r.c.State().AirJumpsUsed())

	r.tick(Input{Y: -1, AttackPressed: true})
	require.True(t, r.c.State().IsRecoilingY())
	assert.Equal(t, r.c.Config().RecoilYSpeed, r.body.vel.Y)
	assert.Equal(t, 0.0, r.body.gravity)
	assert.Equal(t, 0, r.c.State().AirJumpsUsed(), "pogo refunds air jumps")

	r.targets.targets = nil
	r.tick(Input{Y: -1})
	r.tick(Input{Y: -1})
	assert.False(t, r.c.State().IsRecoilingY())
	assert.Equal(t, r.c.Config().GravityScale, r.body.gravity)
}

func TestRecoilY_UpAttackPushesDown(t *testing.T) {
	r := newRig(t, nil)
	r.ground.grounded = false
	r.targets.targets = []component.Target{&fakeEnemy{pos: cp.Vector{Y: 1}}}
	r.tick(Input{Y: 1, AttackPressed: true})
	assert.Equal(t, -r.c.Config().RecoilYSpeed, r.body.vel.Y)
	assert.Equal(t, r.c.Config().GravityScale, r.body.gravity)
}

func TestRecoilY_StopsOnGrounding(t *testing.T) {
	r := newRig(t, func(cfg *Config) { cfg.RecoilYSteps = 10 })
	r.ground.grounded = false
	r.targets.targets = []component.Target{&fakeEnemy{pos: cp.Vector{Y: -1}}}
	r.tick(Input{Y: -1, AttackPressed: true})
	require.True(t, r.c.State().IsRecoilingY())
	r.targets.targets = nil

	r.ground.grounded = true
	r.tick(Input{})
	assert.False(t, r.c.State().IsRecoilingY())
	assert.Equal(t, 0, r.c.State().StepsYRecoiled())
}
