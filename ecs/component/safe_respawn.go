package component

import "github.com/jakecoffman/cp"

// SafeRespawn stores the last grounded position for an entity.
type SafeRespawn struct {
	Position    cp.Vector
	Initialized bool
}

var SafeRespawnComponent = NewComponent[SafeRespawn]()
