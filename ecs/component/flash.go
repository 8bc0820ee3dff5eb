package component

// Flash is the invincibility blink amount copied from the controller each
// frame: 0 draws the normal tint, 1 draws fully dark.
type Flash struct {
	Amount float64
}

var FlashComponent = NewComponent[Flash]()
