package character

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/component"
	"github.com/stretchr/testify/require"
)

type fakeBody struct {
	pos     cp.Vector
	vel     cp.Vector
	gravity float64
}

func (b *fakeBody) Position() cp.Vector           { return b.pos }
func (b *fakeBody) SetPosition(p cp.Vector)       { b.pos = p }
func (b *fakeBody) Velocity() cp.Vector           { return b.vel }
func (b *fakeBody) SetVelocity(v cp.Vector)       { b.vel = v }
func (b *fakeBody) GravityScale() float64         { return b.gravity }
func (b *fakeBody) SetGravityScale(scale float64) { b.gravity = scale }

type fakeGround struct {
	grounded bool
}

func (g *fakeGround) Grounded() bool { return g.grounded }

type boxQuery struct {
	center cp.Vector
	size   cp.Vector
}

type fakeTargets struct {
	targets []component.Target
	queries []boxQuery
}

func (f *fakeTargets) OverlapBox(center, size cp.Vector) []component.Target {
	f.queries = append(f.queries, boxQuery{center: center, size: size})
	return f.targets
}

type receivedHit struct {
	damage    float64
	direction cp.Vector
	force     float64
}

type fakeEnemy struct {
	pos    cp.Vector
	tagged bool
	hits   []receivedHit
}

func (e *fakeEnemy) Position() cp.Vector { return e.pos }

func (e *fakeEnemy) ReceiveHit(damage float64, direction cp.Vector, force float64) {
	e.hits = append(e.hits, receivedHit{damage: damage, direction: direction, force: force})
}

func (e *fakeEnemy) HasTag(tag string) bool {
	return e.tagged && tag == component.EnemyTag
}

// wall is attackable but cannot take damage.
type wall struct {
	pos cp.Vector
}

func (w wall) Position() cp.Vector { return w.pos }

type recordingSpawner struct {
	effects   []Effect
	downField []bool
}

func (s *recordingSpawner) Spawn(fx Effect) {
	s.effects = append(s.effects, fx)
}

func (s *recordingSpawner) SetDownField(active bool) {
	s.downField = append(s.downField, active)
}

func (s *recordingSpawner) count(kind EffectKind) int {
	n := 0
	for _, fx := range s.effects {
		if fx.Kind == kind {
			n++
		}
	}
	return n
}

type recordingAnimator struct {
	bools    map[Signal]bool
	triggers map[Signal]int
}

func (a *recordingAnimator) SetBool(s Signal, v bool) {
	if a.bools == nil {
		a.bools = map[Signal]bool{}
	}
	a.bools[s] = v
}

func (a *recordingAnimator) Trigger(s Signal) {
	if a.triggers == nil {
		a.triggers = map[Signal]int{}
	}
	a.triggers[s]++
}

// testingT is satisfied by both *testing.T and *rapid.T.
type testingT interface {
	require.TestingT
	Helper()
}

type rig struct {
	t       testingT
	c       *Controller
	body    *fakeBody
	ground  *fakeGround
	targets *fakeTargets
	spawner *recordingSpawner
	anim    *recordingAnimator
	dt      float64
}

func newRig(t testingT, mutate func(cfg *Config)) *rig {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	r := &rig{
		t:       t,
		body:    &fakeBody{},
		ground:  &fakeGround{},
		targets: &fakeTargets{},
		spawner: &recordingSpawner{},
		anim:    &recordingAnimator{},
		dt:      0.01,
	}
	c, err := New(cfg, Deps{
		Body:     r.body,
		Ground:   r.ground,
		Targets:  r.targets,
		Spawner:  r.spawner,
		Animator: r.anim,
	})
	require.NoError(t, err)
	r.c = c
	return r
}

// tick runs one decision phase followed by one physics step.
func (r *rig) tick(in Input) {
	r.c.Update(r.dt, in)
	r.c.FixedUpdate(r.dt)
}

func (r *rig) idle(n int) {
	for i := 0; i < n; i++ {
		r.tick(Input{})
	}
}
