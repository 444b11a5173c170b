package notify

import (
	"context"
	"log"
)

// LogNotifier writes each message to a standard logger.
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) Notify(_ context.Context, msg Message) error {
	logf := log.Printf
	if n.Logger != nil {
		logf = n.Logger.Printf
	}
	if msg.Completed && msg.Score != nil {
		logf("notify: %s run=%s completed score=%d", msg.BlockID, msg.RunID, *msg.Score)
		return nil
	}
	logf("notify: %s run=%s started", msg.BlockID, msg.RunID)
	return nil
}
