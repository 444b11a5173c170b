package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/ecs/component"
	"github.com/milk9111/juggler/notify"
	"github.com/milk9111/juggler/prefabs"
)

type tapPointer struct {
	x, y    float64
	pending bool
}

func (p *tapPointer) JustClicked() (float64, float64, bool) {
	ok := p.pending
	p.pending = false
	return p.x, p.y, ok
}

func (p *tapPointer) tap(x, y float64) {
	p.x, p.y, p.pending = x, y, true
}

type recorder struct {
	msgs []notify.Message
}

func (r *recorder) Notify(_ context.Context, m notify.Message) error {
	r.msgs = append(r.msgs, m)
	return nil
}

type fakeClipboard struct {
	text string
}

func (c *fakeClipboard) WriteText(s string) error {
	c.text = s
	return nil
}

func newTestGame(t *testing.T, opts GameOptions) *Game {
	t.Helper()
	if opts.Spec == nil {
		spec, err := prefabs.LoadGameSpec()
		if err != nil {
			t.Fatalf("LoadGameSpec: %v", err)
		}
		opts.Spec = spec
	}
	if opts.Theme == nil {
		theme, err := prefabs.LoadThemeSpec(prefabs.ThemeChampionship)
		if err != nil {
			t.Fatalf("LoadThemeSpec: %v", err)
		}
		opts.Theme = theme
		opts.ThemeName = prefabs.ThemeChampionship
	}
	if opts.Pointer == nil {
		opts.Pointer = &tapPointer{}
	}
	g, err := newGame(opts)
	if err != nil {
		t.Fatalf("newGame: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func ball(t *testing.T, g *Game) component.Ball {
	t.Helper()
	e, ok := ecs.First(g.world, component.BallComponent.Kind())
	if !ok {
		t.Fatal("no ball")
	}
	b, _ := ecs.Get(g.world, e, component.BallComponent.Kind())
	return *b
}

func TestGameRound(t *testing.T) {
	rec := &recorder{}
	pointer := &tapPointer{}
	g := newTestGame(t, GameOptions{Notifier: rec, Pointer: pointer})

	pointer.tap(400, 100)
	g.step()
	if g.session().Score != 0 {
		t.Fatal("click while waiting should not score")
	}

	g.requestStart()
	g.step()
	if g.session().Phase != component.PhasePlaying {
		t.Fatalf("expected playing, got %s", g.session().Phase)
	}
	if b := ball(t, g); b.Y != 102.5 || b.VelocityY != 2.5 {
		t.Fatalf("expected first frame y=102.5 v=2.5, got %+v", b)
	}

	b := ball(t, g)
	pointer.tap(b.X, b.Y)
	g.step()
	if g.session().Score != 1 {
		t.Fatalf("expected a point for the kick, got %d", g.session().Score)
	}
	if b := ball(t, g); b.VelocityY != -11.5 {
		t.Fatalf("kick then one frame of gravity should leave v=-11.5, got %v", b.VelocityY)
	}

	for i := 0; g.session().Phase == component.PhasePlaying; i++ {
		if i > 1000 {
			t.Fatal("game never ended")
		}
		g.step()
	}
	if g.session().Phase != component.PhaseGameOver {
		t.Fatalf("expected gameOver, got %s", g.session().Phase)
	}

	if len(rec.msgs) != 2 {
		t.Fatalf("expected start and finish messages, got %d", len(rec.msgs))
	}
	start, end := rec.msgs[0], rec.msgs[1]
	if start.Completed || start.Score != nil || start.BlockID != "football-juggling-game" {
		t.Fatalf("unexpected start message %+v", start)
	}
	if !end.Completed || end.Score == nil || *end.Score != 1 || end.Data == nil || end.Data.FinalScore != 1 || end.Data.GameType != "juggling" {
		t.Fatalf("unexpected finish message %+v", end)
	}
	if start.RunID == "" || start.RunID != end.RunID {
		t.Fatalf("start and finish should share a run id: %q vs %q", start.RunID, end.RunID)
	}

	g.requestRestart()
	g.step()
	if s := g.session(); s.Phase != component.PhaseWaiting || s.Score != 1 {
		t.Fatalf("restart should keep the score on the waiting screen, got %+v", s)
	}
	if len(rec.msgs) != 2 {
		t.Fatal("restart must not notify")
	}
}

func TestGameCopyScore(t *testing.T) {
	cb := &fakeClipboard{}
	g := newTestGame(t, GameOptions{Clipboard: cb})
	g.copyScore()
	if !strings.HasPrefix(cb.text, "FOOTBALL JUGGLING: 0 points") {
		t.Fatalf("unexpected share text %q", cb.text)
	}

	withoutClipboard := newTestGame(t, GameOptions{})
	withoutClipboard.copyScore()
}

func TestGameReloadWaitsForPhaseBoundary(t *testing.T) {
	reloads := make(chan string, 1)
	g := newTestGame(t, GameOptions{Reloads: reloads})

	g.requestStart()
	g.step()

	reloads <- prefabs.GameSpecFile
	g.step()
	if g.pending == nil {
		t.Fatal("reload during play should be held")
	}

	for i := 0; g.session().Phase == component.PhasePlaying; i++ {
		if i > 1000 {
			t.Fatal("game never ended")
		}
		g.step()
	}
	g.step()
	if g.pending != nil {
		t.Fatal("held reload should apply after game over")
	}

	reloads <- "unrelated.yaml"
	g.step()
	if g.pending != nil {
		t.Fatal("unrelated file should be ignored")
	}
}

func TestGameClose(t *testing.T) {
	g := newTestGame(t, GameOptions{})
	g.requestStart()
	g.step()
	if !g.phase.Subscribed() {
		t.Fatal("expected frame subscription while playing")
	}
	g.Close()
	g.Close()
	if g.phase.Subscribed() || g.loop.Len() != 0 {
		t.Fatal("Close should release the frame subscription")
	}
}

func TestNewGameRejectsMissingSpec(t *testing.T) {
	if _, err := newGame(GameOptions{}); err == nil {
		t.Fatal("expected error without a spec")
	}
}

func TestPointsLabel(t *testing.T) {
	tests := []struct {
		score int
		want  string
	}{
		{0, "0 points"},
		{1, "1 point"},
		{2, "2 points"},
		{21, "21 points"},
	}
	for _, tc := range tests {
		if got := pointsLabel(tc.score); got != tc.want {
			t.Fatalf("pointsLabel(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestShareText(t *testing.T) {
	theme := &prefabs.ThemeSpec{
		Title:    " KEEPY UPPY ",
		Verdicts: []prefabs.VerdictSpec{{Min: 0, Text: "warm up"}, {Min: 5, Text: "nice"}},
	}
	tests := []struct {
		theme *prefabs.ThemeSpec
		score int
		want  string
	}{
		{nil, 3, "FOOTBALL JUGGLING: 3 points"},
		{theme, 1, "KEEPY UPPY: 1 point - warm up"},
		{theme, 7, "KEEPY UPPY: 7 points - nice"},
	}
	for _, tc := range tests {
		if got := shareText(tc.theme, tc.score); got != tc.want {
			t.Fatalf("shareText(%d) = %q, want %q", tc.score, got, tc.want)
		}
	}
}

func TestParseListeners(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"log,stdout", 2, false},
		{" LOG , log ", 1, false},
		{"none", 0, false},
		{"", 0, false},
		{"log,carrier-pigeon", 0, true},
	}
	for _, tc := range tests {
		got, err := parseListeners(tc.in, &bytes.Buffer{})
		if tc.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tc.in, err)
		}
		if len(got) != tc.want {
			t.Fatalf("%q: expected %d listeners, got %d", tc.in, tc.want, len(got))
		}
	}

	var buf bytes.Buffer
	out, _ := parseListeners("stdout", &buf)
	if err := out.Notify(context.Background(), notify.Started("b", "r")); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"type":"BLOCK_COMPLETION"`) {
		t.Fatalf("stdout listener wrote %q", buf.String())
	}
}

func TestSameScript(t *testing.T) {
	tests := []struct {
		changed, hook string
		want          bool
	}{
		{"scripts/completion.tengo", "completion", true},
		{"scripts/completion.tengo", "completion.tengo", true},
		{"scripts/completion.tengo", "prefabs/scripts/completion.tengo", true},
		{"scripts/other.tengo", "completion", false},
		{"completion.tengo", "completion", false},
	}
	for _, tc := range tests {
		if got := sameScript(tc.changed, tc.hook); got != tc.want {
			t.Fatalf("sameScript(%q, %q) = %v, want %v", tc.changed, tc.hook, got, tc.want)
		}
	}
}
