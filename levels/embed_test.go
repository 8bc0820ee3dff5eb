package levels

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLevelFromFS(t *testing.T) {
	for _, name := range []string{"arena", "flat.json"} {
		t.Run(name, func(t *testing.T) {
			lvl, err := LoadLevelFromFS(name)
			require.NoError(t, err)
			assert.NotEmpty(t, lvl.Solids)
			assert.True(t, lvl.Bounds().ContainsVect(lvl.Spawn.Vector()))
		})
	}

	lvl, err := LoadLevelFromFS("arena")
	require.NoError(t, err)
	require.Len(t, lvl.Enemies, 4)
	assert.Equal(t, "sentry", lvl.Enemies[3].Prefab)
	assert.Equal(t, 80.0, lvl.Enemies[3].Props["health"])
}

func TestLoad_PrefersDisk(t *testing.T) {
	dir := t.TempDir()
	data := `{"width": 10, "height": 10, "spawn": {"x": 1, "y": 1}, "solids": [{"x": 0, "y": 0, "w": 10, "h": 1}]}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "arena.json"), []byte(data), 0o644))

	lvl, err := Load(dir, "arena")
	require.NoError(t, err)
	assert.Equal(t, "arena", lvl.Name)
	assert.Equal(t, 10.0, lvl.Width)

	lvl, err = Load(t.TempDir(), "arena")
	require.NoError(t, err)
	assert.Equal(t, 60.0, lvl.Width, "falls back to the embedded copy")
}

func TestValidate(t *testing.T) {
	lvl := Level{
		Width:   10,
		Height:  10,
		Spawn:   Point{X: 20, Y: 1},
		Solids:  []Rect{{W: 0, H: 1}},
		Hazards: []Hazard{{Rect: Rect{W: 1}}},
		Enemies: []Placement{{Prefab: " "}},
	}
	err := lvl.Validate()
	require.ErrorIs(t, err, ErrInvalidLevel)
	for _, want := range []string{"spawn", "solid 0", "hazard 0", "enemy 0"} {
		assert.ErrorContains(t, err, want)
	}
}

func TestRectBB(t *testing.T) {
	assert.Equal(t, cp.BB{L: 1, B: 2, R: 4, T: 6}, Rect{X: 1, Y: 2, W: 3, H: 4}.BB())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("", "nowhere")
	assert.Error(t, err)
}
