package main

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/prefabs"
	"github.com/milk9111/charcontrol/settings"
	"github.com/milk9111/charcontrol/sim"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios/*.yaml
var builtinFS embed.FS

var ErrExpectation = errors.New("simulate: expectation failed")

const defaultFPS = 60

// Scenario is a scripted input timeline played against a fresh session.
type Scenario struct {
	Name   string  `yaml:"name"`
	Level  string  `yaml:"level"`
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	// Player overrides character tuning by yaml name.
	Player map[string]any `yaml:"player"`
	Inputs []Segment      `yaml:"inputs"`
	Expect Expect         `yaml:"expect"`
}

// Segment holds buttons for Frames frames starting at From.
type Segment struct {
	From   int     `yaml:"from"`
	Frames int     `yaml:"frames"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Jump   bool    `yaml:"jump"`
	Dash   bool    `yaml:"dash"`
	Attack bool    `yaml:"attack"`
	Cast   bool    `yaml:"cast"`
}

func (s Segment) active(frame int) bool {
	return frame >= s.From && frame < s.From+s.Frames
}

// Expect is checked against the final state. Unset fields are ignored.
type Expect struct {
	Grounded *bool          `yaml:"grounded"`
	MinX     *float64       `yaml:"min_x"`
	MaxX     *float64       `yaml:"max_x"`
	MinY     *float64       `yaml:"min_y"`
	MaxY     *float64       `yaml:"max_y"`
	MinPeakY *float64       `yaml:"min_peak_y"`
	MaxPeakY *float64       `yaml:"max_peak_y"`
	Health   *int           `yaml:"health"`
	Deaths   *int           `yaml:"deaths"`
	Events   map[string]int `yaml:"events"`
}

// Result summarizes a finished run.
type Result struct {
	Scenario string
	Frames   int
	Final    character.Snapshot
	PeakY    float64
	Deaths   int
	Events   map[string]int
}

func ParseScenario(name string, data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("simulate: unmarshal %s: %w", name, err)
	}
	if sc.Name == "" {
		sc.Name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	if sc.Level == "" {
		sc.Level = "flat"
	}
	if sc.FPS <= 0 {
		sc.FPS = defaultFPS
	}
	if sc.Frames <= 0 {
		return Scenario{}, fmt.Errorf("simulate: %s: frames must be > 0", name)
	}
	return sc, nil
}

func LoadScenario(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("simulate: read %s: %w", path, err)
	}
	return ParseScenario(path, data)
}

// BuiltinScenarios returns the embedded scenarios sorted by file name.
func BuiltinScenarios() ([]Scenario, error) {
	entries, err := fs.ReadDir(builtinFS, "scenarios")
	if err != nil {
		return nil, err
	}
	var out []Scenario
	for _, e := range entries {
		data, err := builtinFS.ReadFile("scenarios/" + e.Name())
		if err != nil {
			return nil, err
		}
		sc, err := ParseScenario(e.Name(), data)
		if err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// Buttons merges every segment active on frame. Later segments win on the
// axes; buttons are held if any segment holds them.
func (sc Scenario) Buttons(frame int) character.Buttons {
	var b character.Buttons
	for _, seg := range sc.Inputs {
		if !seg.active(frame) {
			continue
		}
		if seg.X != 0 {
			b.X = seg.X
		}
		if seg.Y != 0 {
			b.Y = seg.Y
		}
		b.Jump = b.Jump || seg.Jump
		b.Dash = b.Dash || seg.Dash
		b.Attack = b.Attack || seg.Attack
		b.Cast = b.Cast || seg.Cast
	}
	return b
}

// Run plays sc against a new session. trace receives one entry per frame.
func Run(sc Scenario, cfg settings.Settings, logger, trace *zap.Logger) (Result, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if trace == nil {
		trace = zap.NewNop()
	}
	cfg.Level.Name = sc.Level

	frame := 0
	s, err := sim.New(cfg, func() character.Buttons { return sc.Buttons(frame) }, logger)
	if err != nil {
		return Result{}, err
	}
	ctrl := s.Controller()
	if ctrl == nil {
		return Result{}, sim.ErrNoPlayer
	}
	if len(sc.Player) > 0 {
		tuning := ctrl.Config()
		if err := prefabs.DecodeInto(sc.Player, &tuning); err != nil {
			return Result{}, fmt.Errorf("simulate: %s: player overrides: %w", sc.Name, err)
		}
		ctrl.SetConfig(tuning)
	}

	res := Result{Scenario: sc.Name, Events: map[string]int{}, PeakY: ctrl.Position().Y}
	s.Listen(func(evt ecs.Event) { res.Events[string(evt.Type)]++ })

	dt := 1 / sc.FPS
	for frame = 0; frame < sc.Frames; frame++ {
		s.Step(dt)
		snap := ctrl.Snapshot()
		res.PeakY = max(res.PeakY, snap.Position.Y)
		trace.Info("tick",
			zap.Int("frame", frame),
			zap.Float64("x", snap.Position.X),
			zap.Float64("y", snap.Position.Y),
			zap.Float64("vx", snap.Velocity.X),
			zap.Float64("vy", snap.Velocity.Y),
			zap.Bool("grounded", snap.Grounded),
			zap.Bool("dashing", snap.Dashing),
			zap.Bool("casting", snap.Casting),
			zap.Int("health", snap.Health),
			zap.Float64("mana", snap.Mana),
		)
	}

	res.Frames = sc.Frames
	res.Final = ctrl.Snapshot()
	res.Deaths = s.Deaths()
	return res, nil
}

// Check returns every unmet expectation joined, each wrapping
// ErrExpectation.
func (e Expect) Check(res Result) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s: "+format, append([]any{ErrExpectation, res.Scenario}, args...)...))
	}
	p := res.Final.Position

	if e.Grounded != nil && res.Final.Grounded != *e.Grounded {
		fail("grounded = %v, want %v", res.Final.Grounded, *e.Grounded)
	}
	if e.MinX != nil && p.X < *e.MinX {
		fail("x = %.3f, want >= %v", p.X, *e.MinX)
	}
	if e.MaxX != nil && p.X > *e.MaxX {
		fail("x = %.3f, want <= %v", p.X, *e.MaxX)
	}
	if e.MinY != nil && p.Y < *e.MinY {
		fail("y = %.3f, want >= %v", p.Y, *e.MinY)
	}
	if e.MaxY != nil && p.Y > *e.MaxY {
		fail("y = %.3f, want <= %v", p.Y, *e.MaxY)
	}
	if e.MinPeakY != nil && res.PeakY < *e.MinPeakY {
		fail("peak y = %.3f, want >= %v", res.PeakY, *e.MinPeakY)
	}
	if e.MaxPeakY != nil && res.PeakY > *e.MaxPeakY {
		fail("peak y = %.3f, want <= %v", res.PeakY, *e.MaxPeakY)
	}
	if e.Health != nil && res.Final.Health != *e.Health {
		fail("health = %d, want %d", res.Final.Health, *e.Health)
	}
	if e.Deaths != nil && res.Deaths != *e.Deaths {
		fail("deaths = %d, want %d", res.Deaths, *e.Deaths)
	}
	for typ, want := range e.Events {
		if got := res.Events[typ]; got != want {
			fail("%s events = %d, want %d", typ, got, want)
		}
	}
	return errors.Join(errs...)
}
