package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/prefabs"
)

var ErrPlaying = errors.New("entity: cannot apply spec while playing")

// Populate builds the field, ball and session entities of one game.
func Populate(w *ecs.World, spec *prefabs.GameSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}
	if _, err := NewField(w, spec); err != nil {
		return err
	}
	if _, err := NewBall(w, spec); err != nil {
		return err
	}
	if _, err := NewSession(w, spec); err != nil {
		return err
	}
	return nil
}

// ApplySpec swaps in new tuning and field geometry. It refuses while a game
// is in play; a waiting ball is moved to the new spawn point, a grounded
// one is left for the next restart.
func ApplySpec(w *ecs.World, spec *prefabs.GameSpec) error {
	if err := spec.Validate(); err != nil {
		return err
	}

	sessionEnt, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return fmt.Errorf("entity: apply spec: no session")
	}
	session, _ := ecs.Get(w, sessionEnt, component.SessionComponent.Kind())
	if session.Phase == component.PhasePlaying {
		return ErrPlaying
	}

	if err := ecs.Add(w, sessionEnt, component.TuningComponent.Kind(), tuningFromSpec(spec)); err != nil {
		return fmt.Errorf("entity: apply tuning: %w", err)
	}
	if fieldEnt, ok := ecs.First(w, component.FieldComponent.Kind()); ok {
		if err := ecs.Add(w, fieldEnt, component.FieldComponent.Kind(), fieldFromSpec(spec)); err != nil {
			return fmt.Errorf("entity: apply field: %w", err)
		}
	}
	if session.Phase == component.PhaseWaiting {
		ecs.ForEach(w, component.BallComponent.Kind(), func(e ecs.Entity, ball *component.Ball) {
			*ball = *restingBall(spec)
		})
	}
	return nil
}
