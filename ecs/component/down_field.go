package component

import (
	"github.com/jakecoffman/cp"
	gameplay "github.com/milk9111/charcontrol/component"
)

// DownField is the damaging area that rides under the player while the
// down spell is active. Each target is struck once per activation.
type DownField struct {
	Size   cp.Vector
	Offset cp.Vector
	Hits   map[gameplay.Target]struct{}
}

var DownFieldComponent = NewComponent[DownField]()
