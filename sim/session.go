// Package sim assembles the world, its systems and a level into a session
// that can be stepped with or without a window.
package sim

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/milk9111/charcontrol/character"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/ecs/entity"
	"github.com/milk9111/charcontrol/ecs/system"
	"github.com/milk9111/charcontrol/levels"
	"github.com/milk9111/charcontrol/prefabs"
	"github.com/milk9111/charcontrol/settings"
	"go.uber.org/zap"
)

var ErrNoPlayer = errors.New("sim: player missing")

// Session is the simulation half of the game: the world, its systems and the
// loaded level. It has no window or UI so it can run headless.
type Session struct {
	cfg settings.Settings
	log *zap.Logger

	world   *ecs.World
	sched   *ecs.Scheduler
	physics *system.PhysicsSystem
	spawn   *system.SpawnSystem
	scripts *system.ScriptSystem
	events  *system.EventLogSystem

	level  *levels.Level
	player ecs.Entity
	camera ecs.Entity
}

// New builds a session for cfg. A nil input reads the keyboard and gamepad.
func New(cfg settings.Settings, input system.ButtonSource, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	prefabs.SetDir(cfg.Prefabs.Dir)

	s := &Session{cfg: cfg, log: logger}
	s.world = ecs.NewWorld()
	s.world.SetPhysicsWorld(ecs.NewPhysicsWorld(logger.Named("physics")))

	lvl, err := levels.Load(cfg.Level.Dir, cfg.Level.Name)
	if err != nil {
		return nil, err
	}
	if err := s.loadLevel(lvl); err != nil {
		return nil, err
	}

	playerSpec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return nil, fmt.Errorf("sim: player spec: %w", err)
	}
	s.player, err = entity.NewPlayer(s.world, playerSpec, lvl.Spawn.Vector(), logger)
	if err != nil {
		return nil, err
	}

	camSpec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return nil, fmt.Errorf("sim: camera spec: %w", err)
	}
	s.camera, err = entity.NewCamera(s.world, camSpec, lvl.Spawn.Vector())
	if err != nil {
		return nil, err
	}

	effects, err := prefabs.LoadEffectsSpec()
	if err != nil {
		return nil, fmt.Errorf("sim: effects spec: %w", err)
	}
	fireball, err := prefabs.LoadFireballSpec()
	if err != nil {
		return nil, fmt.Errorf("sim: fireball spec: %w", err)
	}

	s.spawn = system.NewSpawnSystem(effects, fireball, logger.Named("spawn"))
	s.scripts = system.NewScriptSystem(logger.Named("script"))
	s.events = system.NewEventLogSystem(logger.Named("events"))
	s.physics = system.NewPhysicsSystem(cfg.PhysicsStep(), cfg.Sim.MaxPhysicsSteps, logger.Named("physics")).
		Before(
			system.NewEnemySystem(logger.Named("enemy")),
			s.scripts,
			system.NewProjectileSystem(),
		).
		After(
			system.NewContactDamageSystem(logger.Named("contact")),
			system.NewSpellContactSystem(),
			system.NewDownFieldSystem(),
			system.NewHazardSystem(logger.Named("hazard")),
		)

	s.sched = ecs.NewScheduler(
		system.NewInputSystem(input),
		system.NewPlayerControlSystem(),
		s.physics,
		system.NewRespawnSystem(logger.Named("respawn")),
		s.spawn,
		system.NewTTLSystem(),
		system.NewCameraSystem(),
		s.events,
	)
	return s, nil
}

// Step runs one frame of dt seconds.
func (s *Session) Step(dt float64) {
	s.world.SetDelta(dt)
	s.sched.Update(s.world)
}

func (s *Session) World() *ecs.World    { return s.world }
func (s *Session) Player() ecs.Entity   { return s.player }
func (s *Session) Level() *levels.Level { return s.level }

// Listen registers fn for every event left at the end of a frame.
func (s *Session) Listen(fn func(ecs.Event)) { s.events.Listen(fn) }

// Deaths is how many times the player has respawned.
func (s *Session) Deaths() int {
	p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if !ok {
		return 0
	}
	return p.Deaths
}

func (s *Session) character() (*component.Character, bool) {
	ch, ok := ecs.Get(s.world, s.player, component.CharacterComponent.Kind())
	if !ok || ch.Controller == nil {
		return nil, false
	}
	return ch, true
}

// Controller is the player's controller, nil once the player is gone.
func (s *Session) Controller() *character.Controller {
	ch, ok := s.character()
	if !ok {
		return nil
	}
	return ch.Controller
}

func (s *Session) loadLevel(lvl *levels.Level) error {
	if err := entity.LoadLevelToWorld(s.world, lvl, prefabs.LoadEnemySpec, s.log.Named("level")); err != nil {
		return err
	}
	s.level = lvl
	return nil
}

// Reload applies changed prefab files by base name. A nil list reloads
// every spec, every script and the level from disk.
func (s *Session) Reload(changed []string) error {
	all := changed == nil
	var errs []error
	levelDirty := all

	for _, name := range changed {
		switch {
		case strings.HasSuffix(name, ".tengo"):
			s.scripts.Reload()
		case name == "player.yaml":
			errs = append(errs, s.reloadPlayer())
		case name == "effects.yaml" || name == "fireball.yaml":
			errs = append(errs, s.reloadSpawn())
		case name == "camera.yaml":
			errs = append(errs, s.reloadCamera())
		case filepath.Ext(name) == ".yaml":
			// Anything else is an enemy prefab; respawn the level's enemies.
			levelDirty = true
		}
	}

	if all {
		s.scripts.Reload()
		errs = append(errs, s.reloadPlayer(), s.reloadSpawn(), s.reloadCamera())
	}
	if levelDirty {
		errs = append(errs, s.reloadLevel(all))
	}

	err := errors.Join(errs...)
	if err != nil {
		s.log.Warn("reload failed", zap.Strings("changed", changed), zap.Error(err))
	} else {
		s.log.Info("reloaded", zap.Strings("changed", changed), zap.Bool("all", all))
	}
	return err
}

func (s *Session) reloadPlayer() error {
	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		return fmt.Errorf("sim: player spec: %w", err)
	}
	ctrl := s.Controller()
	if ctrl == nil {
		return ErrNoPlayer
	}
	ctrl.SetConfig(spec.Character)
	return nil
}

func (s *Session) reloadSpawn() error {
	effects, err := prefabs.LoadEffectsSpec()
	if err != nil {
		return fmt.Errorf("sim: effects spec: %w", err)
	}
	fireball, err := prefabs.LoadFireballSpec()
	if err != nil {
		return fmt.Errorf("sim: fireball spec: %w", err)
	}
	s.spawn.SetSpecs(effects, fireball)
	return nil
}

func (s *Session) reloadCamera() error {
	spec, err := prefabs.LoadCameraSpec()
	if err != nil {
		return fmt.Errorf("sim: camera spec: %w", err)
	}
	cam, ok := ecs.Get(s.world, s.camera, component.CameraComponent.Kind())
	if !ok {
		return nil
	}
	if spec.FollowSpeed > 0 && spec.FollowSpeed <= 1 {
		cam.FollowSpeed = spec.FollowSpeed
	}
	if spec.Zoom > 0 {
		cam.Zoom = spec.Zoom
	}
	cam.Offset = spec.Offset.Vector()
	cam.SnapDuration = spec.SnapDuration
	return nil
}

// reloadLevel rebuilds geometry and enemies. With fromDisk the level file is
// read again and the player is sent back to its spawn.
func (s *Session) reloadLevel(fromDisk bool) error {
	lvl := s.level
	if fromDisk {
		l, err := levels.Load(s.cfg.Level.Dir, s.cfg.Level.Name)
		if err != nil {
			return err
		}
		lvl = l
	}
	if err := s.loadLevel(lvl); err != nil {
		return err
	}
	if !fromDisk {
		return nil
	}

	p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind())
	if !ok {
		return ErrNoPlayer
	}
	p.Spawn = lvl.Spawn.Vector()
	if ch, ok := s.character(); ok {
		ch.Controller.Reset(p.Spawn)
		ch.Sampler.Reset()
		clear(ch.SpellHits)
	}
	if safe, ok := ecs.Get(s.world, s.player, component.SafeRespawnComponent.Kind()); ok {
		safe.Position = p.Spawn
		safe.Initialized = true
	}
	return nil
}
