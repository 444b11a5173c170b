package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
)

// BallPhysicsSystem advances the ball one frame. It is not scheduled
// directly; PhaseSystem subscribes Step to the frame loop while a game is
// in play.
type BallPhysicsSystem struct{}

func NewBallPhysicsSystem() *BallPhysicsSystem { return &BallPhysicsSystem{} }

// Step moves every ball and reports whether one reached the ground.
func (s *BallPhysicsSystem) Step(w *ecs.World) bool {
	fieldEnt, ok := ecs.First(w, component.FieldComponent.Kind())
	if !ok {
		return false
	}
	field, ok := ecs.Get(w, fieldEnt, component.FieldComponent.Kind())
	if !ok {
		return false
	}
	sessionEnt, ok := ecs.First(w, component.TuningComponent.Kind())
	if !ok {
		return false
	}
	tuning, ok := ecs.Get(w, sessionEnt, component.TuningComponent.Kind())
	if !ok {
		return false
	}

	grounded := false
	ecs.ForEach(w, component.BallComponent.Kind(), func(e ecs.Entity, ball *component.Ball) {
		if StepBall(ball, *field, tuning.Gravity) {
			grounded = true
		}
	})
	return grounded
}

// StepBall applies gravity then integrates position. A ball touching the
// ground line is left where it is; otherwise it is kept between the walls.
func StepBall(ball *component.Ball, field component.Field, gravity float64) bool {
	ball.VelocityY += gravity
	ball.Y += ball.VelocityY

	if ball.Y+ball.Radius >= field.GroundY {
		return true
	}

	// Nothing moves the ball sideways today; the clamp keeps the wall
	// invariant should horizontal drift ever be added.
	ball.X = cp.Clamp(ball.X, ball.Radius, field.Width-ball.Radius)
	return false
}
