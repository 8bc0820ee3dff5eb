package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/charcontrol/character"
)

// Body is the Chipmunk-backed body an entity owns. It is everything the
// character controller drives plus what systems need for knockback, overlap
// and cleanup.
type Body interface {
	character.Body
	Size() cp.Vector
	BB() cp.BB
	ApplyImpulse(impulse cp.Vector)
	Remove()
	Removed() bool
}

// PhysicsBody links an entity to its body. Transform is copied from the
// body after every physics step.
type PhysicsBody struct {
	Body Body
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()
