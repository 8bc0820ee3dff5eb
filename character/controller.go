package character

import (
	"errors"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/component"
	"github.com/tanema/gween"
	"go.uber.org/zap"
)

// Deps wires a controller to its collaborators. Body and Ground are
// required; everything else may be nil and the branch that needs it no-ops.
type Deps struct {
	Body     Body
	Ground   GroundSensor
	Targets  TargetQuery
	Spawner  Spawner
	Animator Animator
	Logger   *zap.Logger
}

type castPhase int

const (
	castIdle castPhase = iota
	castWindup
	castRecovery
)

// Controller is the per-character decision layer. Update runs once per
// rendered frame; FixedUpdate runs once per physics step.
type Controller struct {
	cfg Config
	log *zap.Logger

	body     Body
	ground   GroundSensor
	targets  TargetQuery
	spawner  Spawner
	animator Animator

	vitals *component.Vitals
	state  State

	in       Input
	grounded bool

	moveBuffered   float64
	yBuffered      float64
	jumpRequest    bool
	jumpCutRequest bool

	coyote     component.Countdown
	jumpBuffer component.Countdown

	dashTimer    component.Countdown
	dashCooldown component.Countdown
	canDash      bool
	dashLatched  bool

	sinceAttack component.Stopwatch

	castOrHeal   component.Stopwatch
	releasedHold float64
	healTimer    component.Stopwatch
	sinceCast    component.Stopwatch
	castPhase    castPhase
	castTimer    component.Countdown
	downSpell    bool

	invincibility component.Countdown
	flash         *gween.Sequence
	flashAmount   float64
}

// New builds a controller from a normalized copy of cfg.
func New(cfg Config, deps Deps) (*Controller, error) {
	if deps.Body == nil {
		return nil, errors.New("character: body is required")
	}
	if deps.Ground == nil {
		return nil, errors.New("character: ground sensor is required")
	}
	cfg.Normalize()

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Controller{
		cfg:      cfg,
		log:      logger,
		body:     deps.Body,
		ground:   deps.Ground,
		targets:  deps.Targets,
		spawner:  deps.Spawner,
		animator: deps.Animator,
		vitals:   component.NewVitals(cfg.MaxHealth, cfg.MaxHealth, cfg.Mana),
		flash:    newFlashSequence(cfg.HitFlashSpeed),
	}
	c.resetState()
	return c, nil
}

func (c *Controller) resetState() {
	c.state = State{lookingRight: c.cfg.FacingRight}
	c.in = Input{}
	c.grounded = false
	c.moveBuffered, c.yBuffered = 0, 0
	c.jumpRequest, c.jumpCutRequest = false, false
	c.coyote = component.Countdown{}
	c.jumpBuffer = component.Countdown{}
	c.dashTimer = component.Countdown{}
	c.dashCooldown = component.Countdown{}
	c.canDash = true
	c.dashLatched = false
	// attacks and casts are available immediately
	c.sinceAttack = component.Stopwatch{Elapsed: c.cfg.TimeBetweenAttacks}
	c.sinceCast = component.Stopwatch{Elapsed: c.cfg.TimeBetweenCast}
	c.castOrHeal.Reset()
	c.releasedHold = 0
	c.healTimer.Reset()
	c.castPhase = castIdle
	c.castTimer = component.Countdown{}
	c.invincibility = component.Countdown{}
	c.flash.Reset()
	c.flashAmount = 0
	c.body.SetGravityScale(c.cfg.GravityScale)
	if c.downSpell {
		c.setDownSpell(false)
	}
}

// Update is the decision phase.
func (c *Controller) Update(dt float64, in Input) {
	if dt < 0 {
		dt = 0
	}
	c.sampleInput(dt, in)
	c.grounded = c.ground.Grounded()
	c.advanceTimers(dt)
	c.updateJumpState(dt)
	c.bufferPhysicsInputs()

	if c.state.dashing {
		return
	}

	c.updateFlash(dt)
	c.heal(dt)
	c.castSpell()

	if c.state.healing {
		return
	}

	c.flip()
	c.startDash()
	c.attack()
}

// FixedUpdate is the physics phase.
func (c *Controller) FixedUpdate(dt float64) {
	if c.state.dashing {
		c.recoil()
		return
	}
	c.applyMovement()
	c.applyJump()
	c.applyDownSpellForce()
	c.recoil()
}

func (c *Controller) sampleInput(dt float64, in Input) {
	c.in = in
	if in.CastHeld {
		c.castOrHeal.Tick(dt)
		return
	}
	if in.CastReleased {
		c.releasedHold = c.castOrHeal.Elapsed
	}
	c.castOrHeal.Reset()
}

// advanceTimers moves every ability timer forward by one frame. It runs
// before any ability logic so every in-flight timer advances uniformly.
func (c *Controller) advanceTimers(dt float64) {
	c.sinceAttack.Tick(dt)
	c.sinceCast.Tick(dt)

	c.dashTimer.Tick(dt)
	c.dashCooldown.Tick(dt)
	if c.state.dashing && !c.dashTimer.Active() {
		c.finishDash()
	}
	if !c.canDash && !c.state.dashing && !c.dashCooldown.Active() {
		c.canDash = true
		c.log.Debug("dash ready")
	}

	c.advanceCast(dt)

	c.invincibility.Tick(dt)
	if c.state.invincible && !c.invincibility.Active() {
		c.state.endInvincible()
		c.flashAmount = 0
	}
}

// Reset restores the character to a fresh spawn at position.
func (c *Controller) Reset(position cp.Vector) {
	c.resetState()
	c.body.SetPosition(position)
	c.body.SetVelocity(cp.Vector{})
	c.vitals.Refill(c.cfg.Mana)
	c.log.Debug("character reset", zap.Float64("x", position.X), zap.Float64("y", position.Y))
}

// SetConfig swaps the tuning in place, keeping flags and vitals.
func (c *Controller) SetConfig(cfg Config) {
	cfg.Normalize()
	c.cfg = cfg
	c.flash = newFlashSequence(cfg.HitFlashSpeed)
	c.applyGravity()
}

func (c *Controller) Config() Config                 { return c.cfg }
func (c *Controller) State() State                   { return c.state }
func (c *Controller) Vitals() *component.Vitals      { return c.vitals }
func (c *Controller) CanDash() bool                  { return c.canDash }
func (c *Controller) Grounded() bool                 { return c.grounded }
func (c *Controller) Position() cp.Vector            { return c.body.Position() }
func (c *Controller) IsDownSpellActive() bool        { return c.downSpell }
func (c *Controller) CoyoteRemaining() float64       { return c.coyote.Remaining }
func (c *Controller) JumpBufferRemaining() float64   { return c.jumpBuffer.Remaining }
func (c *Controller) OnHealthChanged(fn func())      { c.vitals.OnHealthChanged(fn) }
func (c *Controller) OnManaChanged(fn func(float64)) { c.vitals.OnManaChanged(fn) }

// AddMana adjusts mana by delta, clamped to [0, 1]. Pickups and scripted
// rewards use it; melee hits award mana on their own.
func (c *Controller) AddMana(delta float64) {
	c.vitals.AddMana(delta)
}

// Snapshot is a serializable view of the controller for debugging.
type Snapshot struct {
	Health         int       `yaml:"health"`
	MaxHealth      int       `yaml:"max_health"`
	Mana           float64   `yaml:"mana"`
	Position       cp.Vector `yaml:"position"`
	Velocity       cp.Vector `yaml:"velocity"`
	Grounded       bool      `yaml:"grounded"`
	Jumping        bool      `yaml:"jumping"`
	Dashing        bool      `yaml:"dashing"`
	CanDash        bool      `yaml:"can_dash"`
	RecoilingX     bool      `yaml:"recoiling_x"`
	RecoilingY     bool      `yaml:"recoiling_y"`
	LookingRight   bool      `yaml:"looking_right"`
	Invincible     bool      `yaml:"invincible"`
	Healing        bool      `yaml:"healing"`
	Casting        bool      `yaml:"casting"`
	DownSpell      bool      `yaml:"down_spell"`
	AirJumpsUsed   int       `yaml:"air_jumps_used"`
	Coyote         float64   `yaml:"coyote"`
	JumpBuffer     float64   `yaml:"jump_buffer"`
	GravityScale   float64   `yaml:"gravity_scale"`
	StepsXRecoiled int       `yaml:"steps_x_recoiled"`
	StepsYRecoiled int       `yaml:"steps_y_recoiled"`
}

func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Health:         c.vitals.Health(),
		MaxHealth:      c.vitals.MaxHealth(),
		Mana:           c.vitals.Mana(),
		Position:       c.body.Position(),
		Velocity:       c.body.Velocity(),
		Grounded:       c.grounded,
		Jumping:        c.state.jumping,
		Dashing:        c.state.dashing,
		CanDash:        c.canDash,
		RecoilingX:     c.state.recoilingX,
		RecoilingY:     c.state.recoilingY,
		LookingRight:   c.state.lookingRight,
		Invincible:     c.state.invincible,
		Healing:        c.state.healing,
		Casting:        c.state.casting,
		DownSpell:      c.downSpell,
		AirJumpsUsed:   c.state.airJumpsUsed,
		Coyote:         c.coyote.Remaining,
		JumpBuffer:     c.jumpBuffer.Remaining,
		GravityScale:   c.body.GravityScale(),
		StepsXRecoiled: c.state.stepsXRecoiled,
		StepsYRecoiled: c.state.stepsYRecoiled,
	}
}

func (c *Controller) setBool(s Signal, v bool) {
	if c.animator != nil {
		c.animator.SetBool(s, v)
	}
}

func (c *Controller) trigger(s Signal) {
	if c.animator != nil {
		c.animator.Trigger(s)
	}
}

func (c *Controller) spawn(fx Effect) {
	if c.spawner != nil {
		c.spawner.Spawn(fx)
	}
}

func (c *Controller) facingSign() float64 {
	if c.state.lookingRight {
		return 1
	}
	return -1
}

// gravityScale resolves who owns gravity this tick: dashing and the upward
// pogo recoil both suspend it.
func (c *Controller) gravityScale() float64 {
	if c.state.dashing || (c.state.recoilingY && c.yBuffered < 0) {
		return 0
	}
	return c.cfg.GravityScale
}

func (c *Controller) applyGravity() {
	if g := c.gravityScale(); c.body.GravityScale() != g {
		c.body.SetGravityScale(g)
	}
}
