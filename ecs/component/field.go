package component

// Field is the drawing surface. GroundY is the terminal line for the ball.
type Field struct {
	Width   float64
	Height  float64
	GroundY float64
}

var FieldComponent = NewComponent[Field]()
