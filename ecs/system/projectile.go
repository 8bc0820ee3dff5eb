package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/common"
	gameplay "github.com/milk9111/charcontrol/component"
	"github.com/milk9111/charcontrol/ecs"
	"github.com/milk9111/charcontrol/ecs/component"
	"github.com/milk9111/charcontrol/ecs/entity"
)

// ProjectileSystem flies fireballs along their facing and resolves their
// first hit on a tagged enemy.
type ProjectileSystem struct{}

func NewProjectileSystem() *ProjectileSystem {
	return &ProjectileSystem{}
}

func (s *ProjectileSystem) FixedUpdate(w *ecs.World, dt float64) {
	if w == nil || w.PhysicsWorld() == nil {
		return
	}
	pw := w.PhysicsWorld()

	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		if p.Spent {
			entity.Destroy(w, e)
			return
		}
		dir := 1.0
		if !p.FacingRight {
			dir = -1
		}
		t.X += dir * p.Speed * dt

		pos := cp.Vector{X: t.X, Y: t.Y}
		bb := cp.NewBBForExtents(pos, p.Size.X/2, p.Size.Y/2)
		for _, target := range pw.Targets(bb, ecs.CategoryEnemy) {
			if !gameplay.IsTagged(target, gameplay.EnemyTag) {
				continue
			}
			d, ok := target.(gameplay.Damageable)
			if !ok {
				continue
			}
			d.ReceiveHit(p.Damage, common.Direction(pos, target.Position()), p.HitForce)
			p.Spent = true
			entity.Destroy(w, e)
			return
		}
	})
}
