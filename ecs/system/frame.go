package system

import "github.com/milk9111/juggler/ecs"

// FrameLoopSystem ticks the frame loop once per update, running whatever
// callbacks are subscribed at that point.
type FrameLoopSystem struct {
	loop *ecs.FrameLoop
}

func NewFrameLoopSystem(loop *ecs.FrameLoop) *FrameLoopSystem {
	return &FrameLoopSystem{loop: loop}
}

func (f *FrameLoopSystem) Update(_ *ecs.World) {
	f.loop.Tick()
}
