package sim

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/prefabs"
	"github.com/milk9111/charcontrol/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = 1.0 / 60

func newTestSession(t *testing.T, level string, buttons *character.Buttons) *Session {
	t.Helper()
	cfg := settings.Default()
	cfg.Prefabs.Dir = ""
	cfg.Level.Dir = ""
	cfg.Level.Name = level
	t.Cleanup(func() { prefabs.SetDir(settings.Default().Prefabs.Dir) })

	s, err := New(cfg, func() character.Buttons { return *buttons }, nil)
	require.NoError(t, err)
	return s
}

func TestSession_BuildsWorld(t *testing.T) {
	var buttons character.Buttons
	s := newTestSession(t, "arena", &buttons)

	require.NotNil(t, s.Controller())
	assert.True(t, s.world.IsAlive(s.camera))
	assert.Len(t, s.world.Query(component.EnemyComponent.Kind()), 4)
	assert.Equal(t, "arena", s.level.Name)
}

func TestSession_PlayerSettlesOnFlatGround(t *testing.T) {
	var buttons character.Buttons
	s := newTestSession(t, "flat", &buttons)

	for i := 0; i < 120; i++ {
		s.Step(frame)
	}
	ctrl := s.Controller()
	assert.True(t, ctrl.Grounded())
	assert.InDelta(t, 5, ctrl.Position().X, 0.05)
	assert.InDelta(t, 1.9, ctrl.Position().Y, 0.15)
}

func TestSession_RunAndJump(t *testing.T) {
	var buttons character.Buttons
	s := newTestSession(t, "flat", &buttons)
	for i := 0; i < 60; i++ {
		s.Step(frame)
	}
	start := s.Controller().Position()

	buttons = character.Buttons{X: 1}
	for i := 0; i < 30; i++ {
		s.Step(frame)
	}
	assert.Greater(t, s.Controller().Position().X, start.X+1)

	buttons.Jump = true
	peak := start.Y
	for i := 0; i < 20; i++ {
		s.Step(frame)
		peak = max(peak, s.Controller().Position().Y)
	}
	assert.Greater(t, peak, start.Y+1)
}

func TestSession_FallingRespawns(t *testing.T) {
	var buttons character.Buttons
	s := newTestSession(t, "flat", &buttons)
	var died []ecs.Event
	s.Listen(func(evt ecs.Event) {
		if evt.Type == ecs.EventPlayerDied {
			died = append(died, evt)
		}
	})

	pb, ok := ecs.Get(s.world, s.player, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	pb.Body.SetPosition(cp.Vector{X: 5, Y: -20})
	s.Step(frame)

	require.Len(t, died, 1)
	assert.Equal(t, "fell", died[0].Data)
	p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 1, p.Deaths)
	assert.InDelta(t, 5, s.Controller().Position().X, 0.2)
}

func TestSession_Reload(t *testing.T) {
	tests := []struct {
		name    string
		changed []string
	}{
		{name: "everything", changed: nil},
		{name: "player", changed: []string{"player.yaml"}},
		{name: "spawn specs", changed: []string{"effects.yaml", "fireball.yaml"}},
		{name: "camera", changed: []string{"camera.yaml"}},
		{name: "script", changed: []string{"crawler.tengo"}},
		{name: "enemy prefab", changed: []string{"zombie.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buttons character.Buttons
			s := newTestSession(t, "arena", &buttons)
			s.Step(frame)

			require.NoError(t, s.Reload(tt.changed))
			assert.Len(t, s.world.Query(component.EnemyComponent.Kind()), 4)
			assert.Len(t, s.world.Query(component.PlayerTagComponent.Kind()), 1)
			s.Step(frame)
		})
	}
}

func TestSession_FullReloadReturnsToSpawn(t *testing.T) {
	var buttons character.Buttons
	s := newTestSession(t, "flat", &buttons)
	ctrl := s.Controller()
	ctrl.TakeDamage(2)
	pb, ok := ecs.Get(s.world, s.player, component.PhysicsBodyComponent.Kind())
	require.True(t, ok)
	pb.Body.SetPosition(cp.Vector{X: 20, Y: 3})

	require.NoError(t, s.Reload(nil))
	assert.Equal(t, cp.Vector{X: 5, Y: 1.9}, ctrl.Position())
	assert.Equal(t, ctrl.Vitals().MaxHealth(), ctrl.Vitals().Health())
}
