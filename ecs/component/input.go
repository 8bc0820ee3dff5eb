package component

import "github.com/milk9111/charcontrol/character"

// Input stores the raw control state sampled this frame. Edges are derived
// later by the character's InputSampler.
type Input struct {
	Buttons character.Buttons
	// Disabled entities keep their last Buttons cleared.
	Disabled bool
}

var InputComponent = NewComponent[Input]()
