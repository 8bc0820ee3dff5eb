package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("levels: invalid level")

// Level is an arena in world units with y up. Rectangles are given by their
// lower-left corner and size.
type Level struct {
	Name    string      `json:"name"`
	Width   float64     `json:"width"`
	Height  float64     `json:"height"`
	KillY   float64     `json:"kill_y"`
	Spawn   Point       `json:"spawn"`
	Solids  []Rect      `json:"solids"`
	Hazards []Hazard    `json:"hazards,omitempty"`
	Enemies []Placement `json:"enemies,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) Vector() cp.Vector { return cp.Vector{X: p.X, Y: p.Y} }

type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func (r Rect) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}

type Hazard struct {
	Rect
	Damage float64 `json:"damage"`
}

// Placement spawns an enemy prefab. Props override fields of the prefab
// spec by their yaml names.
type Placement struct {
	Prefab string         `json:"prefab"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Props  map[string]any `json:"props,omitempty"`
}

// Bounds is the playable extent of the level.
func (l *Level) Bounds() cp.BB {
	return cp.BB{L: 0, B: 0, R: l.Width, T: l.Height}
}

// Validate reports every structural problem in the level.
func (l *Level) Validate() error {
	var errs []error
	if l.Width <= 0 || l.Height <= 0 {
		errs = append(errs, fmt.Errorf("%w: size %vx%v", ErrInvalidLevel, l.Width, l.Height))
	}
	if !l.Bounds().ContainsVect(l.Spawn.Vector()) {
		errs = append(errs, fmt.Errorf("%w: spawn (%v, %v) outside level", ErrInvalidLevel, l.Spawn.X, l.Spawn.Y))
	}
	for i, r := range l.Solids {
		if r.W <= 0 || r.H <= 0 {
			errs = append(errs, fmt.Errorf("%w: solid %d has empty size", ErrInvalidLevel, i))
		}
	}
	for i, h := range l.Hazards {
		if h.W <= 0 || h.H <= 0 {
			errs = append(errs, fmt.Errorf("%w: hazard %d has empty size", ErrInvalidLevel, i))
		}
	}
	for i, p := range l.Enemies {
		if strings.TrimSpace(p.Prefab) == "" {
			errs = append(errs, fmt.Errorf("%w: enemy %d has no prefab", ErrInvalidLevel, i))
		}
	}
	return errors.Join(errs...)
}

func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, levelFile(name))
	if err != nil {
		return nil, fmt.Errorf("levels: read %s: %w", name, err)
	}
	return parse(name, data)
}

// Load prefers a file in dir and falls back to the embedded levels.
func Load(dir, name string) (*Level, error) {
	if dir != "" {
		if data, err := os.ReadFile(filepath.Join(dir, levelFile(name))); err == nil {
			return parse(name, data)
		}
	}
	return LoadLevelFromFS(name)
}

func parse(name string, data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(name, ".json")
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	return &lvl, nil
}

func levelFile(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}
