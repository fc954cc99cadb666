// Package timer holds the focus/break state machine and the catch-up logic
// used after the timer was backgrounded.
package timer

import "time"

// Kind tags a Phase.
type Kind int

const (
	KindNotStarted Kind = iota
	KindFocus
	KindBreak
	KindPaused
	KindBackgrounded
)

func (k Kind) String() string {
	switch k {
	case KindNotStarted:
		return "not_started"
	case KindFocus:
		return "focus"
	case KindBreak:
		return "break"
	case KindPaused:
		return "paused"
	case KindBackgrounded:
		return "backgrounded"
	}
	return "unknown"
}

// Phase is what the timer is currently doing. The set of implementations is
// closed to this package.
type Phase interface {
	Kind() Kind
	phase()
}

// Timed is a phase that counts down: Focus or Break.
type Timed interface {
	Phase
	RemainingSeconds() int
	TimerHandle() TimerHandle
	withHandle(h TimerHandle) Timed
}

// NotStarted is the idle phase before the first toggle.
type NotStarted struct{}

// Focus counts down a focus interval.
type Focus struct {
	Remaining int
	Handle    TimerHandle
}

// Break counts down a break interval.
type Break struct {
	Remaining int
	Handle    TimerHandle
}

// Paused was suspended by the user. Resume keeps the remaining time frozen;
// its handle is stale.
type Paused struct {
	Resume Timed
}

// Backgrounded wraps whatever phase was active when the timer lost
// visibility.
type Backgrounded struct {
	Resume      Phase
	SuspendedAt time.Time
}

func (NotStarted) Kind() Kind   { return KindNotStarted }
func (Focus) Kind() Kind        { return KindFocus }
func (Break) Kind() Kind        { return KindBreak }
func (Paused) Kind() Kind       { return KindPaused }
func (Backgrounded) Kind() Kind { return KindBackgrounded }

func (NotStarted) phase()   {}
func (Focus) phase()        {}
func (Break) phase()        {}
func (Paused) phase()       {}
func (Backgrounded) phase() {}

func (f Focus) RemainingSeconds() int    { return f.Remaining }
func (f Focus) TimerHandle() TimerHandle { return f.Handle }
func (b Break) RemainingSeconds() int    { return b.Remaining }
func (b Break) TimerHandle() TimerHandle { return b.Handle }
func (f Focus) withHandle(h TimerHandle) Timed {
	f.Handle = h
	return f
}
func (b Break) withHandle(h TimerHandle) Timed {
	b.Handle = h
	return b
}

// Lengths are the full durations of the two alternating intervals.
type Lengths struct {
	Focus time.Duration
	Break time.Duration
}

// DefaultLengths is 25 minutes of focus followed by 5 minutes of break.
var DefaultLengths = Lengths{Focus: 25 * time.Minute, Break: 5 * time.Minute}

// Seconds returns the full length of the interval tagged k in whole seconds.
func (l Lengths) Seconds(k Kind) int {
	if k == KindBreak {
		return int(l.Break / time.Second)
	}
	return int(l.Focus / time.Second)
}

// fresh returns a full-length interval of kind k with no handle.
func (l Lengths) fresh(k Kind) Timed {
	if k == KindBreak {
		return Break{Remaining: l.Seconds(KindBreak)}
	}
	return Focus{Remaining: l.Seconds(KindFocus)}
}

// next returns a full-length interval of the kind that follows t.
func (l Lengths) next(t Timed) Timed {
	if t.Kind() == KindFocus {
		return l.fresh(KindBreak)
	}
	return l.fresh(KindFocus)
}

// withRemaining returns t with a different remaining count, keeping its tag
// and handle.
func withRemaining(t Timed, remaining int) Timed {
	switch p := t.(type) {
	case Focus:
		p.Remaining = remaining
		return p
	case Break:
		p.Remaining = remaining
		return p
	}
	return t
}
