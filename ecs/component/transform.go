package component

// Transform is an entity's position in world units. Y points up.
type Transform struct {
	X float64
	Y float64
	// Rotation in radians, counter-clockwise.
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
