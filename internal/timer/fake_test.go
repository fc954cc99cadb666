package timer

import "time"

type fakeHandle struct {
	id        int
	cancelled bool
}

func (h *fakeHandle) Cancel() { h.cancelled = true }

type fakeScheduler struct {
	handles []*fakeHandle
}

func (s *fakeScheduler) Every(period time.Duration) TimerHandle {
	h := &fakeHandle{id: len(s.handles) + 1}
	s.handles = append(s.handles, h)
	return h
}

func (s *fakeScheduler) live() []*fakeHandle {
	var out []*fakeHandle
	for _, h := range s.handles {
		if !h.cancelled {
			out = append(out, h)
		}
	}
	return out
}

type recorder struct {
	phases []Phase
}

func (r *recorder) Render(p Phase) { r.phases = append(r.phases, p) }

func newTestMachine(opts ...Option) (*Machine, *fakeScheduler, *recorder) {
	sched := &fakeScheduler{}
	rec := &recorder{}
	return NewMachine(sched, rec, opts...), sched, rec
}
