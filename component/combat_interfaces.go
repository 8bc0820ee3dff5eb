package component

import "github.com/jakecoffman/cp"

// EnemyTag is the tag carried by targets that award mana when struck.
const EnemyTag = "Enemy"

// Target is anything an overlap query can return.
type Target interface {
	Position() cp.Vector
}

// Damageable is implemented by anything melee, projectiles and spells can
// hurt. Direction points from the attacker to the target and a positive force
// pushes the target away from the attacker.
type Damageable interface {
	ReceiveHit(damage float64, direction cp.Vector, force float64)
}

// Recoilable exposes whether a target is currently knocked back.
type Recoilable interface {
	IsRecoiling() bool
}

// Tagged lets callers branch on a target's tag.
type Tagged interface {
	HasTag(tag string) bool
}

// IsTagged reports whether t implements Tagged and carries tag.
func IsTagged(t any, tag string) bool {
	tagged, ok := t.(Tagged)
	return ok && tagged.HasTag(tag)
}
