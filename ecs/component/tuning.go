package component

// Tuning holds the physics and hit-test constants of a session.
type Tuning struct {
	Gravity        float64
	JumpForce      float64
	HitMargin      float64
	BallRadius     float64
	SpawnY         float64
	LaunchVelocity float64
}

var TuningComponent = NewComponent[Tuning]()
