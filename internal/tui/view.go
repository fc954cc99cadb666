package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/jask/tomato/internal/timer"
)

// StartupConfigurationError reports a view element the timer cannot run
// without.
type StartupConfigurationError struct {
	Element string
	Reason  string
}

func (e *StartupConfigurationError) Error() string {
	return fmt.Sprintf("fatal: %s %s", e.Element, e.Reason)
}

// CheckTerminal fails when f is not a terminal the timer can draw on.
func CheckTerminal(f *os.File) error {
	if f == nil || !term.IsTerminal(int(f.Fd())) {
		return &StartupConfigurationError{Element: "terminal", Reason: "not found on output"}
	}
	return nil
}

// Colors are the background colors of the timed and paused phases.
type Colors struct {
	Focus  string
	Break  string
	Paused string
}

// display is the view collaborator of the machine. It keeps the background
// color and remaining-time text in sync with the phases it is handed.
type display struct {
	colors map[timer.Kind]lipgloss.Color
	last   timer.Kind
	bg     lipgloss.Color
	text   string
	// recolors counts background changes.
	recolors int
}

func newDisplay(c Colors, initial string) (*display, error) {
	for _, el := range []struct{ name, v string }{
		{"focus color", c.Focus},
		{"break color", c.Break},
		{"paused color", c.Paused},
	} {
		if el.v == "" {
			return nil, &StartupConfigurationError{Element: el.name, Reason: "not configured"}
		}
	}
	return &display{
		colors: map[timer.Kind]lipgloss.Color{
			timer.KindFocus:  lipgloss.Color(c.Focus),
			timer.KindBreak:  lipgloss.Color(c.Break),
			timer.KindPaused: lipgloss.Color(c.Paused),
		},
		last: timer.KindNotStarted,
		bg:   colorIdle,
		text: initial,
	}, nil
}

func (d *display) Render(p timer.Phase) {
	switch p.Kind() {
	case timer.KindFocus, timer.KindBreak:
		d.recolor(p.Kind())
		d.text = timer.FormatRemaining(p.(timer.Timed).RemainingSeconds())
	case timer.KindPaused:
		d.recolor(p.Kind())
	case timer.KindNotStarted, timer.KindBackgrounded:
	}
	d.last = p.Kind()
}

func (d *display) recolor(k timer.Kind) {
	if d.last == k {
		return
	}
	d.bg = d.colors[k]
	d.recolors++
}
