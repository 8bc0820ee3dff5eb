package component

import "github.com/jakecoffman/cp"

// Hazard hurts the player on overlap and sends them back to their last safe
// position. The box is centered on the entity's Transform.
type Hazard struct {
	Size   cp.Vector
	Damage float64
}

var HazardComponent = NewComponent[Hazard]()
