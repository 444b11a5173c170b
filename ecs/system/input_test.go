package system

import (
	"testing"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
)

type scriptedPointer struct {
	x, y    float64
	clicked bool
}

func (p *scriptedPointer) JustClicked() (float64, float64, bool) {
	return p.x, p.y, p.clicked
}

func TestPointerInputSystem(t *testing.T) {
	tests := []struct {
		name        string
		src         scriptedPointer
		wantClicked bool
	}{
		{"inside", scriptedPointer{400, 300, true}, true},
		{"corner", scriptedPointer{0, 0, true}, true},
		{"right_of_field", scriptedPointer{800, 300, true}, false},
		{"below_field", scriptedPointer{400, 600, true}, false},
		{"negative", scriptedPointer{-1, 10, true}, false},
		{"no_click", scriptedPointer{400, 300, false}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld(t)
			src := tc.src
			NewPointerInputSystem(&src).Update(w)

			e, _ := worldSession(t, w)
			p, ok := ecs.Get(w, e, component.PointerComponent.Kind())
			if !ok {
				t.Fatal("session has no pointer")
			}
			if p.Clicked != tc.wantClicked {
				t.Fatalf("clicked: expected %v, got %v", tc.wantClicked, p.Clicked)
			}
			if p.X != tc.src.x || p.Y != tc.src.y {
				t.Fatalf("pointer position not recorded: %+v", *p)
			}
		})
	}
}

func TestPointerInputThenHit(t *testing.T) {
	w := newTestWorld(t)
	_, session := worldSession(t, w)
	session.Phase = component.PhasePlaying
	ball := worldBall(t, w)

	src := &scriptedPointer{x: ball.X + 10, y: ball.Y - 10, clicked: true}
	input := NewPointerInputSystem(src)
	hit := NewHitSystem()

	input.Update(w)
	hit.Update(w)
	src.clicked = false
	input.Update(w)
	hit.Update(w)

	if session.Score != 1 || ball.VelocityY != -12 {
		t.Fatalf("expected a single kick, score=%d v=%v", session.Score, ball.VelocityY)
	}
}
