package component

// Pointer stores this frame's click on the field, if any.
type Pointer struct {
	X       float64
	Y       float64
	Clicked bool
}

var PointerComponent = NewComponent[Pointer]()
