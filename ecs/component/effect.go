package component

import "github.com/milk9111/charcontrol/character"

// Effect marks a short-lived visual spawned by a character.
type Effect struct {
	Kind character.EffectKind
}

var EffectComponent = NewComponent[Effect]()
