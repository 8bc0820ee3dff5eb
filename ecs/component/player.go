package component

import "github.com/jakecoffman/cp"

// Player holds arena bookkeeping that lives outside the controller.
type Player struct {
	Spawn  cp.Vector
	Deaths int
}

var PlayerComponent = NewComponent[Player]()
