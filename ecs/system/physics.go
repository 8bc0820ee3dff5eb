package system

import (
	"github.com/milk9111/charcontrol/component"
	"github.com/milk9111/charcontrol/ecs"
	ecscomp "github.com/milk9111/charcontrol/ecs/component"
	"go.uber.org/zap"
)

// PhysicsSystem advances physics on a fixed step. Frame time accumulates
// and is consumed in whole steps, at most maxSteps per frame; the remainder
// past the cap is dropped so a long frame cannot snowball.
type PhysicsSystem struct {
	step        float64
	accumulator float64
	steps       component.StepCounter
	before      []ecs.FixedSystem
	after       []ecs.FixedSystem
	logger      *zap.Logger
}

func NewPhysicsSystem(step float64, maxSteps int, logger *zap.Logger) *PhysicsSystem {
	if step <= 0 {
		step = 1.0 / 60.0
	}
	if maxSteps <= 0 {
		maxSteps = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PhysicsSystem{
		step:   step,
		steps:  component.StepCounter{Limit: maxSteps},
		logger: logger,
	}
}

// Before registers systems that run after the controllers' physics phase
// and before the space is stepped.
func (p *PhysicsSystem) Before(systems ...ecs.FixedSystem) *PhysicsSystem {
	p.before = append(p.before, systems...)
	return p
}

// After registers systems that run once the space has stepped and
// transforms are synced.
func (p *PhysicsSystem) After(systems ...ecs.FixedSystem) *PhysicsSystem {
	p.after = append(p.after, systems...)
	return p
}

func (p *PhysicsSystem) Step() float64 { return p.step }

func (p *PhysicsSystem) Update(w *ecs.World) {
	if w == nil || w.PhysicsWorld() == nil {
		return
	}

	p.accumulator += w.Delta()
	p.steps.Reset()
	for p.accumulator >= p.step {
		p.FixedUpdate(w, p.step)
		p.accumulator -= p.step
		if p.steps.Step() {
			break
		}
	}
	if p.accumulator >= p.step {
		p.logger.Debug("physics fell behind", zap.Float64("dropped", p.accumulator))
		p.accumulator = 0
	}
}

// FixedUpdate runs exactly one physics tick.
func (p *PhysicsSystem) FixedUpdate(w *ecs.World, dt float64) {
	ecs.ForEach(w, ecscomp.CharacterComponent.Kind(), func(e ecs.Entity, ch *ecscomp.Character) {
		if ch.Controller != nil {
			ch.Controller.FixedUpdate(dt)
		}
	})
	for _, s := range p.before {
		s.FixedUpdate(w, dt)
	}

	w.PhysicsWorld().Step(dt)
	SyncTransforms(w)

	for _, s := range p.after {
		s.FixedUpdate(w, dt)
	}
}

// SyncTransforms copies body positions into transforms.
func SyncTransforms(w *ecs.World) {
	ecs.ForEach2(w, ecscomp.PhysicsBodyComponent.Kind(), ecscomp.TransformComponent.Kind(), func(e ecs.Entity, pb *ecscomp.PhysicsBody, t *ecscomp.Transform) {
		if pb.Body == nil || pb.Body.Removed() {
			return
		}
		pos := pb.Body.Position()
		t.X, t.Y = pos.X, pos.Y
	})
}
