package component

import (
	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
)

// Camera follows the player. Position is the world point at the center of
// the screen.
type Camera struct {
	Position    cp.Vector
	Offset      cp.Vector
	FollowSpeed float64
	Zoom        float64
	// SnapDuration is how long the eased catch-up after a teleport lasts.
	SnapDuration float64

	Snap     *gween.Tween
	SnapFrom cp.Vector
	SnapTo   cp.Vector
}

var CameraComponent = NewComponent[Camera]()
