package entity

import (
	"fmt"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/prefabs"
)

// NewBall places a resting ball at the spawn point, centred horizontally.
func NewBall(w *ecs.World, spec *prefabs.GameSpec) (ecs.Entity, error) {
	ball := ecs.CreateEntity(w)
	if err := ecs.Add(w, ball, component.BallComponent.Kind(), restingBall(spec)); err != nil {
		return 0, fmt.Errorf("ball: add ball: %w", err)
	}
	return ball, nil
}

func restingBall(spec *prefabs.GameSpec) *component.Ball {
	return &component.Ball{
		X:      spec.Field.Width / 2,
		Y:      spec.Ball.SpawnY,
		Radius: spec.Ball.Radius,
	}
}
