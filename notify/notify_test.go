package notify_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/milk9111/juggler/notify"
	"github.com/milk9111/juggler/notify/mocks"
	"go.uber.org/mock/gomock"
)

const blockID = "football-juggling-game"

func TestStreamNotifierWireFormat(t *testing.T) {
	tests := []struct {
		name string
		msg  notify.Message
		want string
	}{
		{
			name: "started",
			msg:  notify.Started(blockID, "run-1"),
			want: `{"type":"BLOCK_COMPLETION","blockId":"football-juggling-game","completed":false}`,
		},
		{
			name: "finished_zero",
			msg:  notify.Finished(blockID, "juggling", "run-1", 0),
			want: `{"type":"BLOCK_COMPLETION","blockId":"football-juggling-game","completed":true,"score":0,"data":{"finalScore":0,"gameType":"juggling"}}`,
		},
		{
			name: "finished_seven",
			msg:  notify.Finished(blockID, "juggling", "run-2", 7),
			want: `{"type":"BLOCK_COMPLETION","blockId":"football-juggling-game","completed":true,"score":7,"data":{"finalScore":7,"gameType":"juggling"}}`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			n := notify.NewStreamNotifier(&buf)
			if err := n.Notify(context.Background(), tc.msg); err != nil {
				t.Fatalf("Notify: %v", err)
			}
			if got := strings.TrimSpace(buf.String()); got != tc.want {
				t.Fatalf("expected\n%s\ngot\n%s", tc.want, got)
			}
		})
	}
}

func TestBroadcastReachesEveryListener(t *testing.T) {
	ctrl := gomock.NewController(t)

	self := mocks.NewMockNotifier(ctrl)
	parent := mocks.NewMockNotifier(ctrl)
	msg := notify.Started(blockID, "run")

	self.EXPECT().Notify(gomock.Any(), msg).Return(nil)
	failure := errors.New("parent gone")
	parent.EXPECT().Notify(gomock.Any(), msg).Return(failure)

	err := notify.Broadcast{self, nil, parent}.Notify(context.Background(), msg)
	if !errors.Is(err, failure) {
		t.Fatalf("expected joined parent error, got %v", err)
	}
}

func TestDispatcherDeliversInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockNotifier(ctrl)

	start := notify.Started(blockID, "run")
	end := notify.Finished(blockID, "juggling", "run", 3)
	delivered := make(chan notify.Message, 2)

	gomock.InOrder(
		sink.EXPECT().Notify(gomock.Any(), start).DoAndReturn(func(_ context.Context, m notify.Message) error {
			delivered <- m
			return nil
		}),
		sink.EXPECT().Notify(gomock.Any(), end).DoAndReturn(func(_ context.Context, m notify.Message) error {
			delivered <- m
			return errors.New("ignored")
		}),
	)

	d := notify.NewDispatcher(sink, 4)
	if err := d.Notify(context.Background(), start); err != nil {
		t.Fatalf("Notify start: %v", err)
	}
	if err := d.Notify(context.Background(), end); err != nil {
		t.Fatalf("Notify end: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- d.Run(context.Background()) }()

	for i := 0; i < 2; i++ {
		select {
		case <-delivered:
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for delivery %d", i)
		}
	}

	d.Close()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}

	if err := d.Notify(context.Background(), start); !errors.Is(err, notify.ErrClosed) {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
}

func TestDispatcherDropsWhenFull(t *testing.T) {
	d := notify.NewDispatcher(notify.Discard, 1)
	msg := notify.Started(blockID, "run")

	if err := d.Notify(context.Background(), msg); err != nil {
		t.Fatalf("first Notify: %v", err)
	}
	if err := d.Notify(context.Background(), msg); !errors.Is(err, notify.ErrQueueFull) {
		t.Fatalf("expected ErrQueueFull, got %v", err)
	}
}

func TestDispatcherFlushesOnCancel(t *testing.T) {
	var got []notify.Message
	sink := notify.NotifierFunc(func(_ context.Context, m notify.Message) error {
		got = append(got, m)
		return nil
	})
	d := notify.NewDispatcher(sink, 4)
	_ = d.Notify(context.Background(), notify.Started(blockID, "a"))
	_ = d.Notify(context.Background(), notify.Finished(blockID, "juggling", "a", 1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := d.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected both queued messages flushed, got %d", len(got))
	}
}

func TestScriptNotifierRunsHook(t *testing.T) {
	src := []byte(`
fmt := import("fmt")
summary := ""
if message.completed {
	summary = fmt.sprintf("%s:%d:%s", message.blockId, message.score, message.data.gameType)
} else {
	summary = message.blockId + ":start"
}
`)
	n, err := notify.NewScriptNotifier("test", src)
	if err != nil {
		t.Fatalf("NewScriptNotifier: %v", err)
	}

	if err := n.Notify(context.Background(), notify.Started(blockID, "r")); err != nil {
		t.Fatalf("Notify start: %v", err)
	}
	if err := n.Notify(context.Background(), notify.Finished(blockID, "juggling", "r", 4)); err != nil {
		t.Fatalf("Notify end: %v", err)
	}
}

func TestScriptNotifierErrors(t *testing.T) {
	if _, err := notify.NewScriptNotifier("broken", []byte(`x := `)); err == nil {
		t.Fatal("expected compile error")
	}

	n, err := notify.NewScriptNotifier("panics", []byte(`x := message.score + "a"`))
	if err != nil {
		t.Fatalf("NewScriptNotifier: %v", err)
	}
	if err := n.Notify(context.Background(), notify.Finished(blockID, "juggling", "r", 1)); err == nil {
		t.Fatal("expected runtime error from hook")
	}
}

func TestSwitchReplacesTarget(t *testing.T) {
	var first, second int
	s := notify.NewSwitch(notify.NotifierFunc(func(context.Context, notify.Message) error {
		first++
		return nil
	}))
	msg := notify.Started(blockID, "run")

	_ = s.Notify(context.Background(), msg)
	s.Store(notify.NotifierFunc(func(context.Context, notify.Message) error {
		second++
		return nil
	}))
	_ = s.Notify(context.Background(), msg)
	s.Store(nil)
	if err := s.Notify(context.Background(), msg); err != nil {
		t.Fatalf("nil target should drop silently, got %v", err)
	}

	if first != 1 || second != 1 {
		t.Fatalf("expected one call each, got first=%d second=%d", first, second)
	}
}
