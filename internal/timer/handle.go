package timer

import "time"

// TickPeriod is how often a live handle delivers a tick.
const TickPeriod = time.Second

// TimerHandle is a registration of a periodic tick callback.
type TimerHandle interface {
	Cancel()
}

// Scheduler starts periodic ticks. Each tick of a live handle must be
// delivered to Machine.HandleTick on the same goroutine as every other
// Machine call.
type Scheduler interface {
	Every(period time.Duration) TimerHandle
}

// Renderer receives every phase the machine transitions into.
type Renderer interface {
	Render(p Phase)
}

// handleSlot owns the single live handle.
type handleSlot struct {
	sched Scheduler
	live  TimerHandle
}

// start installs a new handle. Starting while a handle is live is a
// programming error: two handles would tick the same session twice.
func (s *handleSlot) start() TimerHandle {
	if s.live != nil {
		panic("timer: tick handle started while another is live")
	}
	s.live = s.sched.Every(TickPeriod)
	return s.live
}

// stop cancels the live handle, if any.
func (s *handleSlot) stop() {
	if s.live == nil {
		return
	}
	s.live.Cancel()
	s.live = nil
}
