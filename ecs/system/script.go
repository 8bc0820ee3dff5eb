package system

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/prefabs"
	"go.uber.org/zap"
)

// The script defines update(engine, state, params, dt) and returns the
// horizontal velocity.
const moveDispatchScript = `
__vx := update(__engine, __state, __params, __dt)
`

type scriptRuntime struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	failed   bool
}

// ScriptSystem moves enemies whose strategy is a tengo script. Each script
// is compiled once and cloned per enemy so state never leaks between them.
type ScriptSystem struct {
	compiled map[string]*tengo.Compiled
	runtimes map[ecs.Entity]*scriptRuntime
	load     func(path string) ([]byte, error)
	logger   *zap.Logger
}

func NewScriptSystem(logger *zap.Logger) *ScriptSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptSystem{
		compiled: map[string]*tengo.Compiled{},
		runtimes: map[ecs.Entity]*scriptRuntime{},
		load:     prefabs.LoadScript,
		logger:   logger,
	}
}

// Reload drops every compiled script so the next tick recompiles from disk.
func (s *ScriptSystem) Reload() {
	s.compiled = map[string]*tengo.Compiled{}
	s.runtimes = map[ecs.Entity]*scriptRuntime{}
}

func (s *ScriptSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || dt <= 0 {
		return
	}
	playerPos, hasPlayer := PlayerPosition(w)

	for e := range s.runtimes {
		if !w.IsAlive(e) {
			delete(s.runtimes, e)
		}
	}

	ecs.ForEach2(w, component.EnemyComponent.Kind(), component.ScriptComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, sc *component.Script) {
		if enemy.Body == nil || enemy.Dead() || enemy.IsRecoiling() {
			return
		}
		rt, err := s.runtime(e, sc.Path)
		if err != nil {
			s.logger.Warn("script load failed", zap.Stringer("entity", e), zap.String("script", sc.Path), zap.Error(err))
			s.runtimes[e] = &scriptRuntime{path: sc.Path, failed: true}
			return
		}
		if rt.failed {
			return
		}

		engine := buildScriptEngine(enemy, playerPos, hasPlayer)
		vx, err := rt.run(engine, sc.Vars, dt)
		if err != nil {
			s.logger.Warn("script run failed", zap.Stringer("entity", e), zap.String("script", sc.Path), zap.Error(err))
			rt.failed = true
			return
		}
		v := enemy.Body.Velocity()
		v.X = vx
		enemy.Body.SetVelocity(v)
	})
}

func (s *ScriptSystem) runtime(e ecs.Entity, path string) (*scriptRuntime, error) {
	if rt, ok := s.runtimes[e]; ok && rt.path == path {
		return rt, nil
	}
	base, ok := s.compiled[path]
	if !ok {
		src, err := s.load(path)
		if err != nil {
			return nil, err
		}
		script := tengo.NewScript([]byte(string(src) + "\n" + moveDispatchScript))
		for _, name := range []string{"__engine", "__state", "__params"} {
			if err := script.Add(name, map[string]any{}); err != nil {
				return nil, err
			}
		}
		if err := script.Add("__dt", 0.0); err != nil {
			return nil, err
		}
		script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
		base, err = script.Compile()
		if err != nil {
			return nil, fmt.Errorf("script: compile %s: %w", path, err)
		}
		s.compiled[path] = base
	}

	rt := &scriptRuntime{
		path:     path,
		compiled: base.Clone(),
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}
	s.runtimes[e] = rt
	return rt, nil
}

func (rt *scriptRuntime) run(engine *tengo.ImmutableMap, vars map[string]float64, dt float64) (float64, error) {
	params := make(map[string]tengo.Object, len(vars))
	for k, v := range vars {
		params[k] = &tengo.Float{Value: v}
	}
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return 0, err
	}
	if err := rt.compiled.Set("__state", rt.state); err != nil {
		return 0, err
	}
	if err := rt.compiled.Set("__params", &tengo.ImmutableMap{Value: params}); err != nil {
		return 0, err
	}
	if err := rt.compiled.Set("__dt", dt); err != nil {
		return 0, err
	}
	if err := rt.compiled.Run(); err != nil {
		return 0, err
	}
	return rt.compiled.Get("__vx").Float(), nil
}

func buildScriptEngine(enemy *component.Enemy, playerPos cp.Vector, hasPlayer bool) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["position"] = &tengo.UserFunction{Name: "position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(enemy.Position()), nil
	}}

	values["velocity"] = &tengo.UserFunction{Name: "velocity", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(enemy.Body.Velocity()), nil
	}}

	values["player_position"] = &tengo.UserFunction{Name: "player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if !hasPlayer {
			return tengo.UndefinedValue, nil
		}
		return vectorObject(playerPos), nil
	}}

	values["is_recoiling"] = &tengo.UserFunction{Name: "is_recoiling", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if enemy.IsRecoiling() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["health"] = &tengo.UserFunction{Name: "health", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: enemy.Health}, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}
