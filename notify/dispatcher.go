package notify

import (
	"context"
	"errors"
	"log"
	"sync"
)

var (
	ErrQueueFull = errors.New("notify: queue full")
	ErrClosed    = errors.New("notify: dispatcher closed")
)

const DefaultQueueSize = 32

// Dispatcher hands messages to a sink on its own goroutine so the game loop
// never waits on a listener. Notify only enqueues; Run does the delivery.
type Dispatcher struct {
	sink  Notifier
	queue chan Message
	done  chan struct{}
	once  sync.Once
}

func NewDispatcher(sink Notifier, size int) *Dispatcher {
	if sink == nil {
		sink = Discard
	}
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Dispatcher{
		sink:  sink,
		queue: make(chan Message, size),
		done:  make(chan struct{}),
	}
}

// Notify enqueues msg without blocking. A full queue drops the message.
func (d *Dispatcher) Notify(_ context.Context, msg Message) error {
	select {
	case <-d.done:
		return ErrClosed
	default:
	}
	select {
	case d.queue <- msg:
		return nil
	default:
		return ErrQueueFull
	}
}

// Run delivers queued messages until ctx is done or Close is called, then
// flushes whatever is still queued.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		case <-d.done:
			d.flush(context.WithoutCancel(ctx))
			return nil
		case <-ctx.Done():
			d.flush(context.WithoutCancel(ctx))
			return nil
		}
	}
}

// Close rejects further messages and lets Run return.
func (d *Dispatcher) Close() {
	d.once.Do(func() { close(d.done) })
}

func (d *Dispatcher) flush(ctx context.Context) {
	for {
		select {
		case msg := <-d.queue:
			d.deliver(ctx, msg)
		default:
			return
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, msg Message) {
	if err := d.sink.Notify(ctx, msg); err != nil {
		log.Printf("notify: deliver %s completed=%t: %v", msg.BlockID, msg.Completed, err)
	}
}
