package timer

import "time"

// lap is an interval that ran to its end during catch-up, after the given
// amount of the elapsed time had been consumed.
type lap struct {
	kind  Kind
	after time.Duration
}

// Reconcile returns the interval t would have reached had it kept ticking
// for elapsed. Intervals are consumed one at a time because focus and break
// have different lengths. An interval that ends exactly at elapsed counts
// as finished. The returned phase has no handle.
func Reconcile(t Timed, elapsed time.Duration, l Lengths) Timed {
	next, _ := catchUp(t, elapsed, l)
	return next
}

func catchUp(t Timed, elapsed time.Duration, l Lengths) (Timed, []lap) {
	if !l.valid() {
		l = DefaultLengths
	}
	budget := elapsed.Milliseconds()
	if budget < 0 {
		budget = 0
	}

	var (
		cur      = t.withHandle(nil)
		consumed int64
		laps     []lap
	)
	for {
		remainingMs := int64(max(cur.RemainingSeconds(), 0)) * 1000
		if remainingMs > budget {
			return withRemaining(cur, cur.RemainingSeconds()-int(budget/1000)), laps
		}
		budget -= remainingMs
		consumed += remainingMs
		laps = append(laps, lap{kind: cur.Kind(), after: time.Duration(consumed) * time.Millisecond})
		cur = l.next(cur)
	}
}

func (l Lengths) valid() bool {
	return l.Seconds(KindFocus) > 0 && l.Seconds(KindBreak) > 0
}
