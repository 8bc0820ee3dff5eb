package component

import "image/color"

// Sprite draws an entity as a tinted rectangle centered on its Transform.
// Sizes are in world units. Lower layers draw first.
type Sprite struct {
	Width      float64
	Height     float64
	Color      color.RGBA
	Layer      int
	FacingLeft bool
}

var SpriteComponent = NewComponent[Sprite]()
