package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/prefabs"
)

func loadSpec(t *testing.T) *prefabs.GameSpec {
	t.Helper()
	spec, err := prefabs.LoadGameSpec()
	if err != nil {
		t.Fatalf("LoadGameSpec: %v", err)
	}
	return spec
}

func TestPopulate(t *testing.T) {
	w := ecs.NewWorld()
	if err := Populate(w, loadSpec(t)); err != nil {
		t.Fatalf("Populate: %v", err)
	}

	if n := len(w.Entities()); n != 3 {
		t.Fatalf("expected field, ball and session, got %d entities", n)
	}

	fieldEnt, _ := ecs.First(w, component.FieldComponent.Kind())
	field, _ := ecs.Get(w, fieldEnt, component.FieldComponent.Kind())
	if *field != (component.Field{Width: 800, Height: 600, GroundY: 550}) {
		t.Fatalf("unexpected field %+v", *field)
	}

	ballEnt, _ := ecs.First(w, component.BallComponent.Kind())
	ball, _ := ecs.Get(w, ballEnt, component.BallComponent.Kind())
	if *ball != (component.Ball{X: 400, Y: 100, Radius: 30}) {
		t.Fatalf("unexpected ball %+v", *ball)
	}

	sessionEnt, _ := ecs.First(w, component.SessionComponent.Kind())
	session, _ := ecs.Get(w, sessionEnt, component.SessionComponent.Kind())
	if session.Phase != component.PhaseWaiting || session.Score != 0 {
		t.Fatalf("unexpected session %+v", *session)
	}
	tuning, ok := ecs.Get(w, sessionEnt, component.TuningComponent.Kind())
	if !ok {
		t.Fatal("session has no tuning")
	}
	want := component.Tuning{Gravity: 0.5, JumpForce: -12, HitMargin: 20, BallRadius: 30, SpawnY: 100, LaunchVelocity: 2}
	if *tuning != want {
		t.Fatalf("expected %+v, got %+v", want, *tuning)
	}
	if !ecs.Has(w, sessionEnt, component.PointerComponent.Kind()) {
		t.Fatal("session has no pointer")
	}
}

func TestPopulateRejectsInvalidSpec(t *testing.T) {
	spec := loadSpec(t)
	spec.Ball.Radius = 0
	w := ecs.NewWorld()
	if err := Populate(w, spec); !errors.Is(err, prefabs.ErrInvalidSpec) {
		t.Fatalf("expected ErrInvalidSpec, got %v", err)
	}
	if len(w.Entities()) != 0 {
		t.Fatal("invalid spec should not create entities")
	}
}

func TestApplySpec(t *testing.T) {
	tests := []struct {
		name      string
		phase     component.Phase
		wantErr   error
		wantBallY float64
	}{
		{"waiting_moves_ball", component.PhaseWaiting, nil, 150},
		{"game_over_keeps_ball", component.PhaseGameOver, nil, 520},
		{"playing_refused", component.PhasePlaying, ErrPlaying, 520},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := ecs.NewWorld()
			if err := Populate(w, loadSpec(t)); err != nil {
				t.Fatal(err)
			}
			sessionEnt, _ := ecs.First(w, component.SessionComponent.Kind())
			session, _ := ecs.Get(w, sessionEnt, component.SessionComponent.Kind())
			session.Phase = tc.phase
			ballEnt, _ := ecs.First(w, component.BallComponent.Kind())
			ball, _ := ecs.Get(w, ballEnt, component.BallComponent.Kind())
			ball.Y = 520

			next := loadSpec(t)
			next.Ball.SpawnY = 150
			next.Physics.Gravity = 0.8

			err := ApplySpec(w, next)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			} else if err != nil {
				t.Fatalf("ApplySpec: %v", err)
			}

			ball, _ = ecs.Get(w, ballEnt, component.BallComponent.Kind())
			if ball.Y != tc.wantBallY {
				t.Fatalf("ball y: expected %v, got %v", tc.wantBallY, ball.Y)
			}
			tuning, _ := ecs.Get(w, sessionEnt, component.TuningComponent.Kind())
			wantGravity := 0.8
			if tc.wantErr != nil {
				wantGravity = 0.5
			}
			if tuning.Gravity != wantGravity {
				t.Fatalf("gravity: expected %v, got %v", wantGravity, tuning.Gravity)
			}
		})
	}
}
