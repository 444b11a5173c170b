package system

import (
	"context"
	"log"

	"github.com/milk9111/juggler/ecs"
	"github.com/milk9111/juggler/notify"
)

// NotifySystem forwards completion events to the embedding host. The
// notifier is expected not to block; the game wires a notify.Dispatcher.
type NotifySystem struct {
	ctx      context.Context
	notifier notify.Notifier
	blockID  string
	gameType string
}

func NewNotifySystem(ctx context.Context, notifier notify.Notifier, blockID, gameType string) *NotifySystem {
	if ctx == nil {
		ctx = context.Background()
	}
	if notifier == nil {
		notifier = notify.Discard
	}
	return &NotifySystem{ctx: ctx, notifier: notifier, blockID: blockID, gameType: gameType}
}

// SetTarget changes the block identity used for later messages.
func (n *NotifySystem) SetTarget(blockID, gameType string) {
	n.blockID = blockID
	n.gameType = gameType
}

func (n *NotifySystem) Update(w *ecs.World) {
	for _, evt := range w.Events().DrainType(ecs.EventBlockCompletion) {
		done, ok := evt.Data.(ecs.CompletionEvent)
		if !ok {
			continue
		}
		msg := notify.Started(n.blockID, done.RunID)
		if done.Completed {
			msg = notify.Finished(n.blockID, n.gameType, done.RunID, done.Score)
		}
		if err := n.notifier.Notify(n.ctx, msg); err != nil {
			log.Printf("notify: %s completed=%t: %v", n.blockID, done.Completed, err)
		}
	}
}
