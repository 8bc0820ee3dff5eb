package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/character"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	if err := LoadSpecInto(filename, &spec); err != nil {
		var zero T
		return zero, err
	}
	return spec, nil
}

// LoadSpecInto decodes filename on top of spec, so fields the file leaves out
// keep whatever defaults spec already holds.
func LoadSpecInto[T any](filename string, spec *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, spec); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

// DecodeInto re-encodes an already decoded value (for example a level's
// per-placement props) and decodes it over out.
func DecodeInto[T any](raw any, out *T) error {
	if raw == nil {
		return nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

type VectorSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v VectorSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

type BodySpec struct {
	Size     VectorSpec `yaml:"size"`
	Mass     float64    `yaml:"mass"`
	Friction float64    `yaml:"friction"`
}

type PlayerSpec struct {
	Name        string           `yaml:"name"`
	Body        BodySpec         `yaml:"body"`
	GroundProbe GroundProbeSpec  `yaml:"ground_probe"`
	Color       YAMLColor        `yaml:"color"`
	Character   character.Config `yaml:"character"`
}

type GroundProbeSpec struct {
	HalfWidth float64 `yaml:"half_width"`
	Depth     float64 `yaml:"depth"`
}

// LoadPlayerSpec loads player.yaml over the built-in character tuning.
func LoadPlayerSpec() (PlayerSpec, error) {
	spec := PlayerSpec{Character: character.DefaultConfig()}
	if err := LoadSpecInto("player.yaml", &spec); err != nil {
		return PlayerSpec{}, err
	}
	return spec, nil
}

type EnemySpec struct {
	Name          string             `yaml:"name"`
	Body          BodySpec           `yaml:"body"`
	GravityScale  float64            `yaml:"gravity_scale"`
	Health        float64            `yaml:"health"`
	Speed         float64            `yaml:"speed"`
	ContactDamage float64            `yaml:"contact_damage"`
	RecoilLength  float64            `yaml:"recoil_length"`
	RecoilFactor  float64            `yaml:"recoil_factor"`
	Strategy      string             `yaml:"strategy"`
	Script        string             `yaml:"script"`
	Params        map[string]float64 `yaml:"params"`
	Color         YAMLColor          `yaml:"color"`
}

func LoadEnemySpec(name string) (EnemySpec, error) {
	filename := name
	if !strings.HasSuffix(filename, ".yaml") {
		filename += ".yaml"
	}
	spec, err := LoadSpec[EnemySpec](filename)
	if err != nil {
		return EnemySpec{}, err
	}
	if spec.Name == "" {
		spec.Name = strings.TrimSuffix(filename, ".yaml")
	}
	return spec, nil
}

type FireballSpec struct {
	Size     VectorSpec `yaml:"size"`
	Speed    float64    `yaml:"speed"`
	Damage   float64    `yaml:"damage"`
	HitForce float64    `yaml:"hit_force"`
	Lifetime float64    `yaml:"lifetime"`
	Color    YAMLColor  `yaml:"color"`
}

func LoadFireballSpec() (FireballSpec, error) {
	return LoadSpec[FireballSpec]("fireball.yaml")
}

type EffectSpec struct {
	Size  VectorSpec `yaml:"size"`
	TTL   float64    `yaml:"ttl"`
	Color YAMLColor  `yaml:"color"`
	Layer int        `yaml:"layer"`
}

type DownFieldSpec struct {
	Size   VectorSpec `yaml:"size"`
	Offset VectorSpec `yaml:"offset"`
	Color  YAMLColor  `yaml:"color"`
}

// EffectsSpec is keyed by character.EffectKind names (dash, slash,
// blood_spurt, up_explosion).
type EffectsSpec struct {
	Effects   map[string]EffectSpec `yaml:"effects"`
	DownField DownFieldSpec         `yaml:"down_field"`
}

func LoadEffectsSpec() (EffectsSpec, error) {
	return LoadSpec[EffectsSpec]("effects.yaml")
}

// Effect returns the spec for kind and whether one is defined.
func (s EffectsSpec) Effect(kind character.EffectKind) (EffectSpec, bool) {
	fx, ok := s.Effects[kind.String()]
	return fx, ok
}

type CameraSpec struct {
	FollowSpeed  float64    `yaml:"follow_speed"`
	Offset       VectorSpec `yaml:"offset"`
	Zoom         float64    `yaml:"zoom"`
	SnapDuration float64    `yaml:"snap_duration"`
}

func LoadCameraSpec() (CameraSpec, error) {
	return LoadSpec[CameraSpec]("camera.yaml")
}

type YAMLColor struct {
	color.RGBA
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}
	a := uint8(255)
	if len(s) == 8 {
		if a, err = parse(6); err != nil {
			return err
		}
	}

	c.RGBA = color.RGBA{R: r, G: g, B: b, A: a}
	return nil
}

func (c YAMLColor) MarshalYAML() (any, error) {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A), nil
}
