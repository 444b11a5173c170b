package entity

import (
	"fmt"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/prefabs"
)

// NewSession creates the entity that carries the phase, score, tuning and
// pointer state of the game.
func NewSession(w *ecs.World, spec *prefabs.GameSpec) (ecs.Entity, error) {
	session := ecs.CreateEntity(w)
	if err := ecs.Add(w, session, component.SessionComponent.Kind(), &component.Session{Phase: component.PhaseWaiting}); err != nil {
		return 0, fmt.Errorf("session: add session: %w", err)
	}
	if err := ecs.Add(w, session, component.TuningComponent.Kind(), tuningFromSpec(spec)); err != nil {
		return 0, fmt.Errorf("session: add tuning: %w", err)
	}
	if err := ecs.Add(w, session, component.PointerComponent.Kind(), &component.Pointer{}); err != nil {
		return 0, fmt.Errorf("session: add pointer: %w", err)
	}
	return session, nil
}

func tuningFromSpec(spec *prefabs.GameSpec) *component.Tuning {
	return &component.Tuning{
		Gravity:        spec.Physics.Gravity,
		JumpForce:      spec.Physics.JumpForce,
		HitMargin:      spec.Physics.HitMargin,
		BallRadius:     spec.Ball.Radius,
		SpawnY:         spec.Ball.SpawnY,
		LaunchVelocity: spec.Ball.LaunchVelocity,
	}
}
