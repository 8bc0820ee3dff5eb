package component

import (
	"github.com/milk9111/charcontrol/character"
	gameplay "github.com/milk9111/charcontrol/component"
)

// Character attaches a controller to an entity.
type Character struct {
	Controller *character.Controller
	Signals    *AnimationSignals
	Sampler    character.InputSampler
	// SpellHits holds targets already struck by the cast in flight.
	SpellHits map[gameplay.Target]struct{}
}

var CharacterComponent = NewComponent[Character]()
