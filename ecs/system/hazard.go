package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"go.uber.org/zap"
)

// HazardSystem records the last grounded position that was clear of
// hazards and returns the player there on hazard contact. Damage is only
// dealt outside the invincibility window; the teleport always happens.
type HazardSystem struct {
	logger *zap.Logger
}

func NewHazardSystem(logger *zap.Logger) *HazardSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HazardSystem{logger: logger}
}

func (s *HazardSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil {
		return
	}
	e, ch, body, ok := player(w)
	if !ok {
		return
	}
	safe, ok := ecs.Get(w, e, component.SafeRespawnComponent.Kind())
	if !ok {
		return
	}

	playerBB := body.BB()
	var touched *component.Hazard
	ecs.ForEach2(w, component.HazardComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, h *component.Hazard, t *component.Transform) {
		if touched != nil {
			return
		}
		bb := cp.NewBBForExtents(cp.Vector{X: t.X, Y: t.Y}, h.Size.X/2, h.Size.Y/2)
		if bb.Intersects(playerBB) {
			touched = h
		}
	})

	if touched == nil {
		if ch.Controller.Grounded() {
			safe.Position = body.Position()
			safe.Initialized = true
		}
		return
	}

	if !ch.Controller.State().IsInvincible() && touched.Damage > 0 {
		ch.Controller.TakeDamage(touched.Damage)
	}
	if safe.Initialized {
		s.logger.Debug("hazard respawn", zap.Float64("x", safe.Position.X), zap.Float64("y", safe.Position.Y))
		body.SetPosition(safe.Position)
		body.SetVelocity(cp.Vector{})
	}
}
