package component

// Ball is the juggled football. Positions are in field pixels with Y
// growing downward; VelocityY is in pixels per frame.
type Ball struct {
	X         float64
	Y         float64
	VelocityY float64
	Radius    float64
}

var BallComponent = NewComponent[Ball]()
