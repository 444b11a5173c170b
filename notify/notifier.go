package notify

import (
	"context"
	"errors"
	"sync"
)

//go:generate go tool mockgen -destination=./mocks/notifier_mock.go -package=mocks . Notifier

// Notifier delivers a message to one listener. Delivery is best effort and
// nothing is expected back.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, msg Message) error

func (f NotifierFunc) Notify(ctx context.Context, msg Message) error {
	return f(ctx, msg)
}

// Broadcast sends every message to all listeners, the way the page posts
// both to itself and to its parent frame.
type Broadcast []Notifier

func (b Broadcast) Notify(ctx context.Context, msg Message) error {
	var errs []error
	for _, n := range b {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Discard drops every message.
var Discard Notifier = NotifierFunc(func(context.Context, Message) error { return nil })

// Switch forwards to a notifier that can be replaced while messages are in
// flight, so a reloaded hook takes over without rebuilding the fan-out.
type Switch struct {
	mu     sync.RWMutex
	target Notifier
}

func NewSwitch(target Notifier) *Switch {
	return &Switch{target: target}
}

// Store replaces the target. A nil target drops messages.
func (s *Switch) Store(target Notifier) {
	s.mu.Lock()
	s.target = target
	s.mu.Unlock()
}

func (s *Switch) Notify(ctx context.Context, msg Message) error {
	s.mu.RLock()
	target := s.target
	s.mu.RUnlock()
	if target == nil {
		return nil
	}
	return target.Notify(ctx, msg)
}
