package ecs

import "errors"

var (
	ErrFrameLoopClosed = errors.New("ecs: frame loop closed")
	ErrNilCallback     = errors.New("ecs: nil frame callback")
)

// FrameLoop runs repeating per-frame callbacks, one invocation per Tick.
// Each Request returns a handle the owner must Cancel when it no longer
// wants frames; Close cancels everything on teardown.
type FrameLoop struct {
	handles []*FrameHandle
	closed  bool
	ticking bool
}

// FrameHandle is the subscription returned by FrameLoop.Request.
type FrameHandle struct {
	loop      *FrameLoop
	fn        func()
	cancelled bool
}

func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// Request subscribes fn to every following Tick.
func (l *FrameLoop) Request(fn func()) (*FrameHandle, error) {
	if l == nil || l.closed {
		return nil, ErrFrameLoopClosed
	}
	if fn == nil {
		return nil, ErrNilCallback
	}
	h := &FrameHandle{loop: l, fn: fn}
	l.handles = append(l.handles, h)
	return h, nil
}

// Cancel stops further invocations. It is safe to call more than once and
// from inside the callback itself.
func (h *FrameHandle) Cancel() {
	if h == nil || h.cancelled {
		return
	}
	h.cancelled = true
	h.fn = nil
	if h.loop != nil && !h.loop.ticking {
		h.loop.compact()
	}
}

// Active reports whether the handle still receives frames.
func (h *FrameHandle) Active() bool {
	return h != nil && !h.cancelled
}

// Tick invokes every active callback once and returns how many ran.
// Callbacks requested during a Tick first run on the next one.
func (l *FrameLoop) Tick() int {
	if l == nil || l.closed {
		return 0
	}
	l.ticking = true
	pending := l.handles
	ran := 0
	for _, h := range pending {
		if h.cancelled {
			continue
		}
		h.fn()
		ran++
	}
	l.ticking = false
	l.compact()
	return ran
}

// Len returns the number of active subscriptions.
func (l *FrameLoop) Len() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, h := range l.handles {
		if !h.cancelled {
			n++
		}
	}
	return n
}

// Close cancels every subscription and rejects new ones.
func (l *FrameLoop) Close() {
	if l == nil || l.closed {
		return
	}
	for _, h := range l.handles {
		h.cancelled = true
		h.fn = nil
	}
	l.handles = nil
	l.closed = true
}

func (l *FrameLoop) compact() {
	kept := l.handles[:0]
	for _, h := range l.handles {
		if !h.cancelled {
			kept = append(kept, h)
		}
	}
	for i := len(kept); i < len(l.handles); i++ {
		l.handles[i] = nil
	}
	l.handles = kept
}
