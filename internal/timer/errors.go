package timer

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrInvalidEvent marks an event that has no transition from the current
// phase. The machine drops such events.
var ErrInvalidEvent = errors.New("invalid event for phase")

// Event names what reached the machine.
type Event string

const (
	EventTick    Event = "tick"
	EventToggle  Event = "toggle"
	EventHidden  Event = "hidden"
	EventVisible Event = "visible"
)

// InvalidEventError describes a dropped event.
type InvalidEventError struct {
	Phase Kind
	Event Event
}

func (e *InvalidEventError) Error() string {
	return fmt.Sprintf("%s in %s: %v", e.Event, e.Phase, ErrInvalidEvent)
}

func (e *InvalidEventError) Unwrap() error { return ErrInvalidEvent }
