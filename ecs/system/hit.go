package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
)

// HitSystem turns a click near the ball into a kick while playing.
type HitSystem struct{}

func NewHitSystem() *HitSystem { return &HitSystem{} }

func (h *HitSystem) Update(w *ecs.World) {
	sessionEnt, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return
	}
	session, ok := ecs.Get(w, sessionEnt, component.SessionComponent.Kind())
	if !ok {
		return
	}
	pointer, ok := ecs.Get(w, sessionEnt, component.PointerComponent.Kind())
	if !ok || !pointer.Clicked {
		return
	}
	// One click is one kick at most; consumed whatever the phase.
	pointer.Clicked = false

	if session.Phase != component.PhasePlaying {
		return
	}
	tuning, ok := ecs.Get(w, sessionEnt, component.TuningComponent.Kind())
	if !ok {
		return
	}

	kicked := false
	ecs.ForEach(w, component.BallComponent.Kind(), func(e ecs.Entity, ball *component.Ball) {
		if kicked || !IsHit(*ball, pointer.X, pointer.Y, tuning.HitMargin) {
			return
		}
		ball.VelocityY = tuning.JumpForce
		session.Score++
		kicked = true
	})
}

// IsHit reports whether a click at (x, y) lands within margin of the ball's
// edge.
func IsHit(ball component.Ball, x, y, margin float64) bool {
	click := cp.Vector{X: x, Y: y}
	return click.Distance(cp.Vector{X: ball.X, Y: ball.Y}) <= ball.Radius+margin
}
