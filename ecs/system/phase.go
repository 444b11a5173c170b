package system

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
)

var (
	ErrInvalidTransition = errors.New("phase: invalid transition")
	ErrNoSession         = errors.New("phase: no session")
)

// PhaseSystem owns the waiting -> playing -> gameOver -> waiting cycle and
// the frame subscription that drives physics while playing. The
// subscription is held only in the playing phase; every transition out of
// it, and Close, releases it.
type PhaseSystem struct {
	loop    *ecs.FrameLoop
	physics *BallPhysicsSystem
	handle  *ecs.FrameHandle

	newRunID func() string
}

func NewPhaseSystem(loop *ecs.FrameLoop, physics *BallPhysicsSystem) *PhaseSystem {
	if physics == nil {
		physics = NewBallPhysicsSystem()
	}
	return &PhaseSystem{
		loop:     loop,
		physics:  physics,
		newRunID: uuid.NewString,
	}
}

// Update consumes start and restart requests left by the UI.
func (p *PhaseSystem) Update(w *ecs.World) {
	sessionEnt, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return
	}

	if ecs.Remove(w, sessionEnt, component.StartRequestComponent.Kind()) {
		if err := p.Start(w); err != nil {
			log.Printf("phase: start: %v", err)
		}
	}
	if ecs.Remove(w, sessionEnt, component.RestartRequestComponent.Kind()) {
		if err := p.Restart(w); err != nil {
			log.Printf("phase: restart: %v", err)
		}
	}
}

// Start kicks off a game from the waiting screen.
func (p *PhaseSystem) Start(w *ecs.World) error {
	session, tuning, err := p.session(w)
	if err != nil {
		return err
	}
	if session.Phase != component.PhaseWaiting {
		return fmt.Errorf("%w: start from %s", ErrInvalidTransition, session.Phase)
	}

	handle, err := p.loop.Request(func() { p.frame(w) })
	if err != nil {
		return fmt.Errorf("phase: subscribe frames: %w", err)
	}
	p.release()
	p.handle = handle

	session.Score = 0
	session.RunID = p.newRunID()
	resetBalls(w, tuning.LaunchVelocity)
	p.setPhase(w, session, component.PhasePlaying)

	w.Events().Push(ecs.Event{
		Type: ecs.EventBlockCompletion,
		Data: ecs.CompletionEvent{Completed: false, RunID: session.RunID},
	})
	return nil
}

// Restart returns from game over to the waiting screen. The score is kept
// for display until the next Start.
func (p *PhaseSystem) Restart(w *ecs.World) error {
	session, _, err := p.session(w)
	if err != nil {
		return err
	}
	if session.Phase != component.PhaseGameOver {
		return fmt.Errorf("%w: restart from %s", ErrInvalidTransition, session.Phase)
	}

	resetBalls(w, 0)
	p.setPhase(w, session, component.PhaseWaiting)
	return nil
}

// GameOver ends the running game and reports the final score.
func (p *PhaseSystem) GameOver(w *ecs.World) error {
	session, _, err := p.session(w)
	if err != nil {
		return err
	}
	if session.Phase != component.PhasePlaying {
		return fmt.Errorf("%w: game over from %s", ErrInvalidTransition, session.Phase)
	}

	p.setPhase(w, session, component.PhaseGameOver)
	w.Events().Push(ecs.Event{
		Type: ecs.EventBlockCompletion,
		Data: ecs.CompletionEvent{Completed: true, Score: session.Score, RunID: session.RunID},
	})
	return nil
}

// Subscribed reports whether physics currently receives frames.
func (p *PhaseSystem) Subscribed() bool {
	return p.handle.Active()
}

// Close releases the frame subscription on teardown.
func (p *PhaseSystem) Close() {
	p.release()
}

func (p *PhaseSystem) frame(w *ecs.World) {
	if !p.physics.Step(w) {
		return
	}
	if err := p.GameOver(w); err != nil {
		log.Printf("phase: game over: %v", err)
	}
}

func (p *PhaseSystem) setPhase(w *ecs.World, session *component.Session, to component.Phase) {
	from := session.Phase
	session.Phase = to
	if to != component.PhasePlaying {
		p.release()
	}
	w.Events().Push(ecs.Event{
		Type: ecs.EventPhaseChanged,
		Data: ecs.PhaseChangedEvent{From: from.String(), To: to.String()},
	})
}

func (p *PhaseSystem) release() {
	if p.handle == nil {
		return
	}
	p.handle.Cancel()
	p.handle = nil
}

func (p *PhaseSystem) session(w *ecs.World) (*component.Session, *component.Tuning, error) {
	ent, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return nil, nil, ErrNoSession
	}
	session, ok := ecs.Get(w, ent, component.SessionComponent.Kind())
	if !ok {
		return nil, nil, ErrNoSession
	}
	tuning, ok := ecs.Get(w, ent, component.TuningComponent.Kind())
	if !ok {
		return nil, nil, fmt.Errorf("%w: missing tuning", ErrNoSession)
	}
	return session, tuning, nil
}

// resetBalls replaces every ball with a fresh one at the spawn point.
func resetBalls(w *ecs.World, velocity float64) {
	fieldEnt, ok := ecs.First(w, component.FieldComponent.Kind())
	if !ok {
		return
	}
	field, ok := ecs.Get(w, fieldEnt, component.FieldComponent.Kind())
	if !ok {
		return
	}
	sessionEnt, ok := ecs.First(w, component.TuningComponent.Kind())
	if !ok {
		return
	}
	tuning, ok := ecs.Get(w, sessionEnt, component.TuningComponent.Kind())
	if !ok {
		return
	}
	ecs.ForEach(w, component.BallComponent.Kind(), func(e ecs.Entity, ball *component.Ball) {
		*ball = component.Ball{
			X:         field.Width / 2,
			Y:         tuning.SpawnY,
			VelocityY: velocity,
			Radius:    tuning.BallRadius,
		}
	})
}
