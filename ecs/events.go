package ecs

// EventType identifies an event payload.
type EventType string

const (
	// EventBlockCompletion carries a CompletionEvent. It is pushed when a
	// game starts and when it ends.
	EventBlockCompletion EventType = "block_completion"
	// EventPhaseChanged carries a PhaseChangedEvent.
	EventPhaseChanged EventType = "phase_changed"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// CompletionEvent reports the start (Completed false) or the end of a game.
type CompletionEvent struct {
	Completed bool
	Score     int
	RunID     string
}

// PhaseChangedEvent is pushed on every phase transition.
type PhaseChangedEvent struct {
	From string
	To   string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// DrainType removes and returns events of typ, keeping the rest in order.
func (q *EventQueue) DrainType(typ EventType) []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	var out []Event
	kept := q.items[:0]
	for _, evt := range q.items {
		if evt.Type == typ {
			out = append(out, evt)
			continue
		}
		kept = append(kept, evt)
	}
	q.items = kept
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
