package component

import "github.com/jakecoffman/cp"

// LevelBounds stores the world-space extent of the current level. Anything
// falling below KillY counts as out of the level.
type LevelBounds struct {
	Bounds cp.BB
	KillY  float64
}

var LevelBoundsComponent = NewComponent[LevelBounds]()
