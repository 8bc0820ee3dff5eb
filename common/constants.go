package common

const (
	// Gravity is the world gravity magnitude in units per second squared.
	// Bodies scale it by their own gravity scale.
	Gravity = 9.81

	// PixelsPerUnit converts world units to screen pixels.
	PixelsPerUnit = 32.0

	BaseWidth  = 1280
	BaseHeight = 720
)
