package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
)

// PointerSource reports a click or tap that started this frame, in field
// coordinates.
type PointerSource interface {
	JustClicked() (x, y float64, ok bool)
}

// EbitenPointer reads the left mouse button and new touches.
type EbitenPointer struct {
	touches []ebiten.TouchID
}

func (p *EbitenPointer) JustClicked() (float64, float64, bool) {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return float64(x), float64(y), true
	}
	p.touches = inpututil.AppendJustPressedTouchIDs(p.touches[:0])
	if len(p.touches) > 0 {
		x, y := ebiten.TouchPosition(p.touches[0])
		return float64(x), float64(y), true
	}
	return 0, 0, false
}

type PointerInputSystem struct {
	source PointerSource
}

func NewPointerInputSystem(source PointerSource) *PointerInputSystem {
	if source == nil {
		source = &EbitenPointer{}
	}
	return &PointerInputSystem{source: source}
}

func (i *PointerInputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	x, y, clicked := i.source.JustClicked()
	if clicked {
		if fieldEnt, ok := ecs.First(w, component.FieldComponent.Kind()); ok {
			if field, ok := ecs.Get(w, fieldEnt, component.FieldComponent.Kind()); ok {
				clicked = x >= 0 && y >= 0 && x < field.Width && y < field.Height
			}
		}
	}

	ecs.ForEach(w, component.PointerComponent.Kind(), func(e ecs.Entity, p *component.Pointer) {
		p.X = x
		p.Y = y
		p.Clicked = clicked
	})
}
