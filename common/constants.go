package common

// Reference field size the HUD panels are proportioned against.
const (
	BaseWidth  = 800
	BaseHeight = 600
)
