package timer

import (
	"time"

	"github.com/rs/zerolog"
)

// Completion reports an interval that ran to its end.
type Completion struct {
	Kind        Kind
	Length      time.Duration
	CompletedAt time.Time
	// CaughtUp is set when the interval finished while the timer was
	// backgrounded and was only accounted for on return.
	CaughtUp bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithLengths overrides DefaultLengths. Lengths below one second are
// ignored.
func WithLengths(l Lengths) Option {
	return func(m *Machine) {
		if l.valid() {
			m.lengths = l
		}
	}
}

// WithCompletionListener registers fn to be called for every finished
// interval, including the ones accounted for by catch-up.
func WithCompletionListener(fn func(Completion)) Option {
	return func(m *Machine) { m.onComplete = fn }
}

// WithLogger sets the logger used for transitions and dropped events.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Machine) { m.log = log }
}

// WithClock sets the clock used to timestamp completions on tick.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// Machine is the single timer session. It is not safe for concurrent use;
// the host serializes ticks, toggles and visibility changes.
type Machine struct {
	phase      Phase
	slot       handleSlot
	render     Renderer
	lengths    Lengths
	onComplete func(Completion)
	log        zerolog.Logger
	now        func() time.Time
}

// NewMachine returns a machine in the NotStarted phase.
func NewMachine(sched Scheduler, r Renderer, opts ...Option) *Machine {
	m := &Machine{
		phase:   NotStarted{},
		slot:    handleSlot{sched: sched},
		render:  r,
		lengths: DefaultLengths,
		log:     zerolog.Nop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Apply replaces the current phase and renders it. The live handle follows
// p: it is cancelled unless p is Focus or Break, and a timed p that does not
// carry the live handle gets a fresh one.
func (m *Machine) Apply(p Phase) {
	if t, ok := p.(Timed); ok {
		if m.slot.live == nil || t.TimerHandle() != m.slot.live {
			m.slot.stop()
			p = t.withHandle(m.slot.start())
		}
	} else {
		m.slot.stop()
	}
	m.apply(p)
}

// apply is Apply for handlers that already settled the handle.
func (m *Machine) apply(p Phase) {
	prev := m.phase
	m.phase = p
	if prev.Kind() != p.Kind() {
		m.log.Debug().Stringer("from", prev.Kind()).Stringer("to", p.Kind()).Msg("phase changed")
	}
	if m.render != nil {
		m.render.Render(p)
	}
}

// HandleTick counts the running interval down by one second, flipping to
// the other interval when it runs out. The handle carries over.
func (m *Machine) HandleTick() {
	switch m.phase.Kind() {
	case KindFocus, KindBreak:
		t := m.phase.(Timed)
		if t.RemainingSeconds()-1 > 0 {
			m.apply(withRemaining(t, t.RemainingSeconds()-1))
			return
		}
		m.complete(t.Kind(), m.now(), false)
		m.apply(m.lengths.next(t).withHandle(t.TimerHandle()))
	case KindNotStarted, KindPaused, KindBackgrounded:
		m.drop(EventTick)
	}
}

// HandleToggle starts the timer, pauses a running interval or resumes a
// paused one, depending on the current phase.
func (m *Machine) HandleToggle() {
	switch m.phase.Kind() {
	case KindNotStarted:
		h := m.slot.start()
		m.apply(m.lengths.fresh(KindFocus).withHandle(h))
	case KindFocus, KindBreak:
		m.slot.stop()
		m.apply(Paused{Resume: m.phase.(Timed)})
	case KindPaused:
		p := m.phase.(Paused)
		h := m.slot.start()
		m.apply(p.Resume.withHandle(h))
	case KindBackgrounded:
		m.drop(EventToggle)
	}
}

// HandleVisibility backgrounds the session when it becomes hidden and
// catches it up when it becomes visible again.
// Only the wall clock reading of now is used, so time spent with the host
// asleep counts.
func (m *Machine) HandleVisibility(visible bool, now time.Time) {
	now = now.Round(0)
	if visible {
		m.foreground(now)
		return
	}
	m.background(now)
}

func (m *Machine) background(now time.Time) {
	switch m.phase.Kind() {
	case KindFocus, KindBreak:
		m.slot.stop()
		m.apply(Backgrounded{Resume: m.phase, SuspendedAt: now})
	case KindPaused:
		m.apply(Backgrounded{Resume: m.phase, SuspendedAt: now})
	case KindNotStarted, KindBackgrounded:
		m.drop(EventHidden)
	}
}

func (m *Machine) foreground(now time.Time) {
	switch m.phase.Kind() {
	case KindBackgrounded:
		b := m.phase.(Backgrounded)
		t, ok := b.Resume.(Timed)
		if !ok {
			// Paused time does not count, so a paused session comes back
			// exactly as it was.
			m.apply(b.Resume)
			return
		}
		elapsed := now.Sub(b.SuspendedAt)
		next, laps := catchUp(t, elapsed, m.lengths)
		for _, l := range laps {
			m.complete(l.kind, b.SuspendedAt.Add(l.after), true)
		}
		if len(laps) > 0 {
			m.log.Info().Dur("elapsed", elapsed).Int("finished", len(laps)).Msg("caught up after background")
		}
		h := m.slot.start()
		m.apply(next.withHandle(h))
	case KindNotStarted, KindFocus, KindBreak, KindPaused:
		m.drop(EventVisible)
	}
}

func (m *Machine) complete(k Kind, at time.Time, caughtUp bool) {
	if m.onComplete == nil {
		return
	}
	length := m.lengths.Focus
	if k == KindBreak {
		length = m.lengths.Break
	}
	m.onComplete(Completion{Kind: k, Length: length, CompletedAt: at, CaughtUp: caughtUp})
}

func (m *Machine) drop(ev Event) {
	err := &InvalidEventError{Phase: m.phase.Kind(), Event: ev}
	m.log.Debug().Err(err).Msg("event ignored")
}
