package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
)

// StreamNotifier writes one JSON object per line, for a host process that
// embeds the game and reads its output.
type StreamNotifier struct {
	mu  sync.Mutex
	enc *json.Encoder
}

func NewStreamNotifier(w io.Writer) *StreamNotifier {
	return &StreamNotifier{enc: json.NewEncoder(w)}
}

func (n *StreamNotifier) Notify(_ context.Context, msg Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.enc.Encode(msg); err != nil {
		return fmt.Errorf("notify: encode message: %w", err)
	}
	return nil
}
