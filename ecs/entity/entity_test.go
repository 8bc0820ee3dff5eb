package entity

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/levels"
	"github.com/milk9111/charcontrol/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T) *ecs.World {
	t.Helper()
	prefabs.SetDir("")
	t.Cleanup(func() { prefabs.SetDir("prefabs") })
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld(nil))
	return w
}

func TestNewPlayer_Components(t *testing.T) {
	w := newWorld(t)
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)

	e, err := NewPlayer(w, spec, cp.Vector{X: 2, Y: 3}, nil)
	require.NoError(t, err)

	ch, ok := ecs.Get(w, e, component.CharacterComponent.Kind())
	require.True(t, ok)
	require.NotNil(t, ch.Controller)
	assert.Equal(t, cp.Vector{X: 2, Y: 3}, ch.Controller.Position())
	assert.Equal(t, spec.Character.GravityScale, ch.Controller.Snapshot().GravityScale)

	for name, has := range map[string]bool{
		"tag":          ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		"player":       ecs.Has(w, e, component.PlayerComponent.Kind()),
		"input":        ecs.Has(w, e, component.InputComponent.Kind()),
		"flash":        ecs.Has(w, e, component.FlashComponent.Kind()),
		"safe respawn": ecs.Has(w, e, component.SafeRespawnComponent.Kind()),
		"sprite":       ecs.Has(w, e, component.SpriteComponent.Kind()),
	} {
		assert.True(t, has, name)
	}
	p, _ := ecs.Get(w, e, component.PlayerComponent.Kind())
	assert.Equal(t, cp.Vector{X: 2, Y: 3}, p.Spawn)
}

func TestNewPlayer_RequiresPhysics(t *testing.T) {
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	_, err = NewPlayer(ecs.NewWorld(), spec, cp.Vector{}, nil)
	assert.ErrorIs(t, err, errNoPhysics)
}

func TestNewEnemy_Strategies(t *testing.T) {
	tests := []struct {
		name      string
		strategy  string
		script    string
		want      component.MoveStrategy
		wantErr   bool
		hasScript bool
	}{
		{name: "empty defaults to static", strategy: "", want: component.StrategyStatic},
		{name: "zombie", strategy: "zombie", want: component.StrategyZombie},
		{name: "script", strategy: "script", script: "crawler.tengo", want: component.StrategyScript, hasScript: true},
		{name: "script without path", strategy: "script", wantErr: true},
		{name: "unknown", strategy: "flying", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t)
			spec := prefabs.EnemySpec{Name: "e", Health: 10, Speed: 2, Strategy: tt.strategy, Script: tt.script}
			e, err := NewEnemy(w, spec, cp.Vector{X: 1, Y: 1}, nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.Empty(t, w.Entities())
				return
			}
			require.NoError(t, err)
			enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, tt.want, enemy.Strategy)
			assert.Equal(t, tt.hasScript, ecs.Has(w, e, component.ScriptComponent.Kind()))
		})
	}
}

func TestNewEnemy_ScriptParams(t *testing.T) {
	w := newWorld(t)
	spec := prefabs.EnemySpec{
		Name:     "crawler",
		Speed:    2.5,
		Strategy: "script",
		Script:   "crawler.tengo",
		Params:   map[string]float64{"aggro": 9},
	}
	e, err := NewEnemy(w, spec, cp.Vector{}, nil)
	require.NoError(t, err)
	sc, ok := ecs.Get(w, e, component.ScriptComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, map[string]float64{"speed": 2.5, "patrol": 3, "aggro": 9, "charge": 1.5}, sc.Vars)
}

func TestNewEnemy_OverlapFindsEnemy(t *testing.T) {
	w := newWorld(t)
	e, err := NewEnemy(w, prefabs.EnemySpec{Name: "e", Health: 10}, cp.Vector{X: 4, Y: 4}, nil)
	require.NoError(t, err)
	enemy, _ := ecs.Get(w, e, component.EnemyComponent.Kind())

	targets := w.PhysicsWorld().OverlapBox(cp.Vector{X: 4, Y: 4}, cp.Vector{X: 1, Y: 1})
	require.Len(t, targets, 1)
	assert.Same(t, enemy, targets[0])
}

func TestDestroy_RemovesBody(t *testing.T) {
	w := newWorld(t)
	e, err := NewEnemy(w, prefabs.EnemySpec{Name: "e", Health: 10}, cp.Vector{X: 4, Y: 4}, nil)
	require.NoError(t, err)
	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent.Kind())

	assert.True(t, Destroy(w, e))
	assert.True(t, pb.Body.Removed())
	assert.Empty(t, w.PhysicsWorld().OverlapBox(cp.Vector{X: 4, Y: 4}, cp.Vector{X: 1, Y: 1}))
	assert.False(t, Destroy(w, e))
}

func TestNewEffect_SizeAndRotation(t *testing.T) {
	spec := prefabs.EffectSpec{Size: prefabs.VectorSpec{X: 2, Y: 1}, TTL: 0.5, Layer: 3}
	tests := []struct {
		name     string
		fx       character.Effect
		wantSize cp.Vector
		wantRot  float64
	}{
		{
			name:     "spec size",
			fx:       character.Effect{Kind: character.EffectDash, FacingRight: true},
			wantSize: cp.Vector{X: 2, Y: 1},
		},
		{
			name:     "effect size wins",
			fx:       character.Effect{Kind: character.EffectSlash, Size: cp.Vector{X: 3, Y: 4}, FacingRight: true},
			wantSize: cp.Vector{X: 3, Y: 4},
		},
		{
			name:     "up slash",
			fx:       character.Effect{Kind: character.EffectSlash, Angle: 80, FacingRight: true},
			wantSize: cp.Vector{X: 2, Y: 1},
			wantRot:  80 * math.Pi / 180,
		},
		{
			name:     "side slash facing left",
			fx:       character.Effect{Kind: character.EffectSlash},
			wantSize: cp.Vector{X: 2, Y: 1},
			wantRot:  math.Pi,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorld(t)
			e, err := NewEffect(w, spec, tt.fx)
			require.NoError(t, err)

			s, _ := ecs.Get(w, e, component.SpriteComponent.Kind())
			assert.Equal(t, tt.wantSize, cp.Vector{X: s.Width, Y: s.Height})
			tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
			assert.InDelta(t, tt.wantRot, tr.Rotation, 1e-9)
			ttl, _ := ecs.Get(w, e, component.TTLComponent.Kind())
			assert.Equal(t, 0.5, ttl.Seconds)
		})
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	w := newWorld(t)
	lvl, err := levels.LoadLevelFromFS("arena")
	require.NoError(t, err)

	require.NoError(t, LoadLevelToWorld(w, lvl, nil, nil))

	_, hasBounds := w.First(component.LevelBoundsComponent.Kind())
	assert.True(t, hasBounds)
	assert.Len(t, w.Query(component.HazardComponent.Kind()), len(lvl.Hazards))
	enemies := w.Query(component.EnemyComponent.Kind())
	assert.Len(t, enemies, len(lvl.Enemies))

	for i, p := range lvl.Enemies {
		health, ok := p.Props["health"]
		if !ok {
			continue
		}
		enemy, _ := ecs.Get(w, enemies[i], component.EnemyComponent.Kind())
		assert.Equal(t, health, enemy.Health, "props override %s", p.Prefab)
	}

	// loading again replaces everything
	require.NoError(t, LoadLevelToWorld(w, lvl, nil, nil))
	assert.Len(t, w.Query(component.EnemyComponent.Kind()), len(lvl.Enemies))
	assert.Len(t, w.Query(component.LevelBoundsComponent.Kind()), 1)
}

func TestLoadLevelToWorld_SkipsBadPlacements(t *testing.T) {
	w := newWorld(t)
	lvl := &levels.Level{
		Name: "t", Width: 10, Height: 10, KillY: -5,
		Solids:  []levels.Rect{{X: 0, Y: 0, W: 10, H: 1}},
		Enemies: []levels.Placement{{Prefab: "nope", X: 1, Y: 2}, {Prefab: "zombie", X: 3, Y: 2}},
	}
	require.NoError(t, LoadLevelToWorld(w, lvl, nil, nil))
	assert.Len(t, w.Query(component.EnemyComponent.Kind()), 1)
	assert.Len(t, w.Query(component.SolidComponent.Kind()), 2, "bounds plus one solid")
}

func TestClearLevel_KeepsPlayer(t *testing.T) {
	w := newWorld(t)
	spec, err := prefabs.LoadPlayerSpec()
	require.NoError(t, err)
	player, err := NewPlayer(w, spec, cp.Vector{X: 2, Y: 3}, nil)
	require.NoError(t, err)
	lvl, err := levels.LoadLevelFromFS("flat")
	require.NoError(t, err)
	require.NoError(t, LoadLevelToWorld(w, lvl, nil, nil))

	ClearLevel(w)
	assert.True(t, w.IsAlive(player))
	assert.Empty(t, w.Query(component.SolidComponent.Kind()))
}
