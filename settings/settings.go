// Package settings loads runtime settings from an optional config file,
// CHARCONTROL_ environment variables and defaults.
package settings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

var ErrInvalid = errors.New("settings: invalid")

// Logging selects the zap logger built at startup.
type Logging struct {
	// Level is one of "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is "json" or "console".
	Format string `mapstructure:"format"`
}

// Sim controls the fixed physics step.
type Sim struct {
	PhysicsHz float64 `mapstructure:"physics_hz"`
	// MaxPhysicsSteps caps catch-up steps per frame after a stall.
	MaxPhysicsSteps int `mapstructure:"max_physics_steps"`
}

type Prefabs struct {
	Dir   string `mapstructure:"dir"`
	Watch bool   `mapstructure:"watch"`
}

type Level struct {
	Name string `mapstructure:"name"`
	Dir  string `mapstructure:"dir"`
}

type Window struct {
	Width  int     `mapstructure:"width"`
	Height int     `mapstructure:"height"`
	Scale  float64 `mapstructure:"scale"`
}

type Debug struct {
	Draw bool `mapstructure:"draw"`
}

type Settings struct {
	Log     Logging `mapstructure:"log"`
	Sim     Sim     `mapstructure:"sim"`
	Prefabs Prefabs `mapstructure:"prefabs"`
	Level   Level   `mapstructure:"level"`
	Window  Window  `mapstructure:"window"`
	Debug   Debug   `mapstructure:"debug"`
}

// PhysicsStep is the fixed physics delta in seconds.
func (s Settings) PhysicsStep() float64 {
	return 1 / s.Sim.PhysicsHz
}

// Validate returns every violation joined, each wrapping ErrInvalid.
func (s Settings) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		bad("log.level must be one of [debug, info, warn, error], got %q", s.Log.Level)
	}
	switch s.Log.Format {
	case "json", "console":
	default:
		bad("log.format must be one of [json, console], got %q", s.Log.Format)
	}
	if s.Sim.PhysicsHz < 10 || s.Sim.PhysicsHz > 1000 {
		bad("sim.physics_hz must be within [10, 1000], got %v", s.Sim.PhysicsHz)
	}
	if s.Sim.MaxPhysicsSteps < 1 {
		bad("sim.max_physics_steps must be >= 1, got %d", s.Sim.MaxPhysicsSteps)
	}
	if strings.TrimSpace(s.Level.Name) == "" {
		bad("level.name must not be empty")
	}
	if s.Window.Width < 1 || s.Window.Height < 1 {
		bad("window size must be positive, got %dx%d", s.Window.Width, s.Window.Height)
	}
	if s.Window.Scale <= 0 {
		bad("window.scale must be > 0, got %v", s.Window.Scale)
	}
	return errors.Join(errs...)
}

// Load reads path when given, otherwise an optional charcontrol.yaml in the
// working directory, then applies environment overrides and validates.
func Load(path string) (Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CHARCONTROL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("charcontrol")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("settings: read charcontrol.yaml: %w", err)
			}
		}
	}

	return FromViper(v)
}

// FromViper decodes and validates an already configured viper instance.
func FromViper(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("settings: unmarshal: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Default returns the built-in settings.
func Default() Settings {
	v := viper.New()
	setDefaults(v)
	s, err := FromViper(v)
	if err != nil {
		panic("settings: defaults are invalid: " + err.Error())
	}
	return s
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("sim.physics_hz", 60.0)
	v.SetDefault("sim.max_physics_steps", 5)

	v.SetDefault("prefabs.dir", "prefabs")
	v.SetDefault("prefabs.watch", false)

	v.SetDefault("level.name", "arena")
	v.SetDefault("level.dir", "levels")

	v.SetDefault("window.width", 1280)
	v.SetDefault("window.height", 720)
	v.SetDefault("window.scale", 1.0)

	v.SetDefault("debug.draw", false)
}
