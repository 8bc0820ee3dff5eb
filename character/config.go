package character

import (
	"errors"
	"fmt"

	"github.com/jakecoffman/cp"
)

var ErrInvalidConfig = errors.New("character: invalid config")

// AttackBox is an attack area relative to the character's position. The X
// offset is mirrored when the character faces left.
type AttackBox struct {
	Offset cp.Vector `yaml:"offset"`
	Size   cp.Vector `yaml:"size"`
}

// Config is the static per-character tuning.
type Config struct {
	MaxHealth      int     `yaml:"max_health"`
	Health         int     `yaml:"health"`
	Mana           float64 `yaml:"mana"`
	HitFlashSpeed  float64 `yaml:"hit_flash_speed"`
	TimeToHeal     float64 `yaml:"time_to_heal"`
	ManaDrainSpeed float64 `yaml:"mana_drain_speed"`
	ManaGain       float64 `yaml:"mana_gain"`

	WalkSpeed        float64 `yaml:"walk_speed"`
	JumpForce        float64 `yaml:"jump_force"`
	JumpCutThreshold float64 `yaml:"jump_cut_threshold"`
	JumpBufferFrames float64 `yaml:"jump_buffer_frames"`
	JumpBufferRate   float64 `yaml:"jump_buffer_rate"`
	CoyoteTime       float64 `yaml:"coyote_time"`
	MaxAirJumps      int     `yaml:"max_air_jumps"`
	GravityScale     float64 `yaml:"gravity_scale"`
	FacingRight      bool    `yaml:"facing_right"`

	DashSpeed    float64 `yaml:"dash_speed"`
	DashTime     float64 `yaml:"dash_time"`
	DashCooldown float64 `yaml:"dash_cooldown"`

	AttackDamage       float64    `yaml:"attack_damage"`
	TimeBetweenAttacks float64    `yaml:"time_between_attacks"`
	SideAttack         *AttackBox `yaml:"side_attack"`
	UpAttack           *AttackBox `yaml:"up_attack"`
	DownAttack         *AttackBox `yaml:"down_attack"`

	RecoilXSteps int     `yaml:"recoil_x_steps"`
	RecoilYSteps int     `yaml:"recoil_y_steps"`
	RecoilXSpeed float64 `yaml:"recoil_x_speed"`
	RecoilYSpeed float64 `yaml:"recoil_y_speed"`

	ManaSpellCost     float64 `yaml:"mana_spell_cost"`
	TimeBetweenCast   float64 `yaml:"time_between_cast"`
	SpellDamage       float64 `yaml:"spell_damage"`
	DownSpellForce    float64 `yaml:"down_spell_force"`
	SpellCastWindup   float64 `yaml:"spell_cast_windup"`
	SpellCastRecovery float64 `yaml:"spell_cast_recovery"`
	TapThreshold      float64 `yaml:"tap_threshold"`

	InvincibilityDuration float64 `yaml:"invincibility_duration"`
}

// DefaultConfig returns the tuning the arena ships with.
func DefaultConfig() Config {
	return Config{
		MaxHealth:      5,
		Health:         5,
		Mana:           1,
		HitFlashSpeed:  5,
		TimeToHeal:     1,
		ManaDrainSpeed: 0.3,
		ManaGain:       0.1,

		WalkSpeed:        5,
		JumpForce:        45,
		JumpCutThreshold: 3,
		JumpBufferFrames: 8,
		JumpBufferRate:   60,
		CoyoteTime:       0.1,
		MaxAirJumps:      1,
		GravityScale:     12,
		FacingRight:      true,

		DashSpeed:    20,
		DashTime:     0.2,
		DashCooldown: 1,

		AttackDamage:       10,
		TimeBetweenAttacks: 0.3,
		SideAttack:         &AttackBox{Offset: cp.Vector{X: 1.2, Y: 0}, Size: cp.Vector{X: 1.6, Y: 1.2}},
		UpAttack:           &AttackBox{Offset: cp.Vector{X: 0, Y: 1.4}, Size: cp.Vector{X: 1.4, Y: 1.4}},
		DownAttack:         &AttackBox{Offset: cp.Vector{X: 0, Y: -1.4}, Size: cp.Vector{X: 1.4, Y: 1.4}},

		RecoilXSteps: 5,
		RecoilYSteps: 5,
		RecoilXSpeed: 100,
		RecoilYSpeed: 100,

		ManaSpellCost:     0.3,
		TimeBetweenCast:   0.5,
		SpellDamage:       15,
		DownSpellForce:    2,
		SpellCastWindup:   0.15,
		SpellCastRecovery: 0.35,
		TapThreshold:      0.05,

		InvincibilityDuration: 1,
	}
}

// Normalize applies the data-integrity guard: MaxHealth >= 1, Health within
// [0, MaxHealth], Mana within [0, 1] and no negative durations or counts.
func (c *Config) Normalize() {
	if c.MaxHealth < 1 {
		c.MaxHealth = 1
	}
	if c.Health > c.MaxHealth {
		c.Health = c.MaxHealth
	}
	if c.Health < 0 {
		c.Health = 0
	}
	if c.Mana < 0 {
		c.Mana = 0
	}
	if c.Mana > 1 {
		c.Mana = 1
	}
	if c.JumpBufferRate <= 0 {
		c.JumpBufferRate = 60
	}
	for _, f := range []*float64{
		&c.HitFlashSpeed, &c.TimeToHeal, &c.ManaDrainSpeed, &c.ManaGain,
		&c.WalkSpeed, &c.JumpForce, &c.JumpBufferFrames, &c.CoyoteTime,
		&c.DashSpeed, &c.DashTime, &c.DashCooldown,
		&c.AttackDamage, &c.TimeBetweenAttacks, &c.RecoilXSpeed, &c.RecoilYSpeed,
		&c.ManaSpellCost, &c.TimeBetweenCast, &c.SpellDamage, &c.DownSpellForce,
		&c.SpellCastWindup, &c.SpellCastRecovery, &c.TapThreshold, &c.InvincibilityDuration,
	} {
		if *f < 0 {
			*f = 0
		}
	}
	for _, n := range []*int{&c.MaxAirJumps, &c.RecoilXSteps, &c.RecoilYSteps} {
		if *n < 0 {
			*n = 0
		}
	}
}

// Validate reports every value Normalize would have to correct. Loaders log
// these; the controller itself always runs on the normalized copy.
func (c Config) Validate() error {
	var errs []error
	if c.MaxHealth < 1 {
		errs = append(errs, fmt.Errorf("%w: max_health must be >= 1, got %d", ErrInvalidConfig, c.MaxHealth))
	}
	if c.Health > c.MaxHealth {
		errs = append(errs, fmt.Errorf("%w: health %d exceeds max_health %d", ErrInvalidConfig, c.Health, c.MaxHealth))
	}
	if c.Mana < 0 || c.Mana > 1 {
		errs = append(errs, fmt.Errorf("%w: mana must be within [0,1], got %v", ErrInvalidConfig, c.Mana))
	}
	if c.ManaSpellCost > 1 {
		errs = append(errs, fmt.Errorf("%w: mana_spell_cost %v can never be paid", ErrInvalidConfig, c.ManaSpellCost))
	}
	named := map[string]float64{
		"walk_speed":             c.WalkSpeed,
		"jump_force":             c.JumpForce,
		"jump_buffer_frames":     c.JumpBufferFrames,
		"coyote_time":            c.CoyoteTime,
		"dash_speed":             c.DashSpeed,
		"dash_time":              c.DashTime,
		"dash_cooldown":          c.DashCooldown,
		"time_between_attacks":   c.TimeBetweenAttacks,
		"spell_cast_windup":      c.SpellCastWindup,
		"spell_cast_recovery":    c.SpellCastRecovery,
		"invincibility_duration": c.InvincibilityDuration,
		"time_to_heal":           c.TimeToHeal,
	}
	for name, v := range named {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%w: %s must be >= 0, got %v", ErrInvalidConfig, name, v))
		}
	}
	if c.MaxAirJumps < 0 {
		errs = append(errs, fmt.Errorf("%w: max_air_jumps must be >= 0, got %d", ErrInvalidConfig, c.MaxAirJumps))
	}
	return errors.Join(errs...)
}
