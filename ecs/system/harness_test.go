package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/ecs/entity"
	"github.com/milk9111/charcontrol/prefabs"
	"github.com/stretchr/testify/require"
)

const testDt = 1.0 / 60

// standY is the player's center height when standing on the test floor.
const standY = 0.9

type harness struct {
	w      *ecs.World
	player ecs.Entity
	ch     *component.Character
	body   component.Body
}

// newHarness builds a world with a wide floor whose top is y=0 and a player
// standing at x=0.
func newHarness(t *testing.T) *harness {
	t.Helper()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir("prefabs") })

	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld(nil)
	w.SetPhysicsWorld(pw)
	w.SetDelta(testDt)
	pw.AddStaticBox(cp.BB{L: -100, B: -1, R: 100, T: 0}, 0.8)

	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	player, err := entity.NewPlayer(w, spec, cp.Vector{X: 0, Y: standY}, nil)
	require.NoError(t, err)

	ch, ok := ecs.Get(w, player, component.CharacterComponent.Kind())
	require.True(t, ok)
	pb, ok := ecs.Get(w, player, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	return &harness{w: w, player: player, ch: ch, body: pb.Body}
}

func (h *harness) controller() *character.Controller { return h.ch.Controller }

func (h *harness) enemy(t *testing.T, spec prefabs.EnemySpec, pos cp.Vector) (ecs.Entity, *component.Enemy) {
	t.Helper()
	e, err := entity.NewEnemy(h.w, spec, pos, nil)
	require.NoError(t, err)
	enemy, ok := ecs.Get(h.w, e, component.EnemyComponent.Kind())
	require.True(t, ok)
	return e, enemy
}

func dummySpec() prefabs.EnemySpec {
	return prefabs.EnemySpec{
		Name:          "dummy",
		Body:          prefabs.BodySpec{Size: prefabs.VectorSpec{X: 1, Y: 1}, Mass: 1},
		Health:        100,
		Speed:         2,
		ContactDamage: 1,
		RecoilLength:  0.2,
		RecoilFactor:  1,
		Strategy:      string(component.StrategyStatic),
	}
}

type countingSystem struct{ ticks int }

func (c *countingSystem) FixedUpdate(w *ecs.World, dt float64) { c.ticks++ }

func eventsOf(w *ecs.World, typ ecs.EventType) []ecs.Event {
	return w.Events().DrainType(typ)
}

func cpY(y float64) cp.Vector { return cp.Vector{Y: y} }
