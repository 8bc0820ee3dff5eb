package component

import "github.com/jakecoffman/cp"

// Projectile flies along its facing until it hits a tagged enemy or its TTL
// runs out. It has no physics body; overlap is checked against Size.
type Projectile struct {
	Damage      float64
	Speed       float64
	HitForce    float64
	FacingRight bool
	Size        cp.Vector
	Spent       bool
}

var ProjectileComponent = NewComponent[Projectile]()
