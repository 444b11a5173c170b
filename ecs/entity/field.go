package entity

import (
	"fmt"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/prefabs"
)

func NewField(w *ecs.World, spec *prefabs.GameSpec) (ecs.Entity, error) {
	field := ecs.CreateEntity(w)
	if err := ecs.Add(w, field, component.FieldComponent.Kind(), fieldFromSpec(spec)); err != nil {
		return 0, fmt.Errorf("field: add field: %w", err)
	}
	return field, nil
}

func fieldFromSpec(spec *prefabs.GameSpec) *component.Field {
	return &component.Field{
		Width:   spec.Field.Width,
		Height:  spec.Field.Height,
		GroundY: spec.Field.GroundY(),
	}
}
