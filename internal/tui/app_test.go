package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jask/tomato/internal/service"
	"github.com/jask/tomato/internal/timer"
)

var testColors = Colors{Focus: "#0000ff", Break: "#00ff00", Paused: "#ffff00"}

type fakeJournal struct {
	mu       sync.Mutex
	recorded []timer.Completion
	summary  service.Summary
}

func (j *fakeJournal) Record(_ context.Context, cs []timer.Completion) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.recorded = append(j.recorded, cs...)
	return nil
}

func (j *fakeJournal) Summarize(_ context.Context, from, to time.Time) (service.Summary, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	s := j.summary
	s.From, s.To = from, to
	for _, c := range j.recorded {
		if c.Kind == timer.KindFocus && !c.CompletedAt.Before(from) && c.CompletedAt.Before(to) {
			s.Focus++
		}
	}
	return s, nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestApp(t *testing.T, j Journal) (*App, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	a, err := New(context.Background(), Options{
		Colors:     testColors,
		TrackFocus: true,
		Journal:    j,
		Log:        zerolog.Nop(),
		Now:        c.now,
	})
	require.NoError(t, err)
	// Fire ticks only when a test sends them.
	a.sched.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg { return nil }
	}
	return a, c
}

func send(a *App, msg tea.Msg) tea.Cmd {
	_, cmd := a.Update(msg)
	return cmd
}

// run executes cmd and any batched commands, returning the produced messages.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, run(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func TestAppToggleAndTick(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, nil)
	require.Equal(t, timer.KindNotStarted, a.Phase().Kind())
	require.Contains(t, a.View(), "25:00")
	require.Contains(t, a.View(), "press space to start")

	send(a, space)
	require.Equal(t, timer.Focus{Remaining: 1500, Handle: a.machine.Phase().(timer.Timed).TimerHandle()}, a.Phase())
	require.Len(t, a.sched.live, 1)

	send(a, tickMsg{id: 1})
	require.Equal(t, 1499, a.Phase().(timer.Focus).Remaining)
	require.Contains(t, a.View(), "24:59")
	require.Len(t, a.sched.pending, 0, "flush drains re-armed ticks")

	send(a, tickMsg{id: 7})
	require.Equal(t, 1499, a.Phase().(timer.Focus).Remaining)

	send(a, space)
	require.Equal(t, timer.KindPaused, a.Phase().Kind())
	require.Empty(t, a.sched.live)
	require.Contains(t, a.View(), "paused")

	send(a, tickMsg{id: 1})
	require.Equal(t, timer.KindPaused, a.Phase().Kind())

	send(a, space)
	require.Equal(t, 1499, a.Phase().(timer.Focus).Remaining)
	require.Contains(t, a.sched.live, 2)
}

func TestAppBlurFocusCatchesUpAndRecords(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{}
	a, c := newTestApp(t, j)
	send(a, space)

	send(a, tea.BlurMsg{})
	require.Equal(t, timer.KindBackgrounded, a.Phase().Kind())
	require.Empty(t, a.sched.live)

	c.t = c.t.Add(25*time.Minute + 20*time.Second)
	msgs := run(send(a, tea.FocusMsg{}))

	b, ok := a.Phase().(timer.Break)
	require.True(t, ok)
	require.Equal(t, 280, b.Remaining)
	require.Len(t, a.sched.live, 1)
	require.Contains(t, msgs, tea.Msg(journalSavedMsg{count: 1}))
	require.Len(t, j.recorded, 1)
	require.True(t, j.recorded[0].CaughtUp)
	require.NotContains(t, a.View(), "today")

	for _, msg := range run(send(a, journalSavedMsg{count: 1})) {
		send(a, msg)
	}
	require.Contains(t, a.View(), "1 today")
}

func TestAppIgnoresFocusWhenNotTracking(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, nil)
	a.trackFocus = false
	send(a, space)
	send(a, tea.BlurMsg{})
	require.Equal(t, timer.KindFocus, a.Phase().Kind())
}

func TestAppResumeAfterSuspend(t *testing.T) {
	t.Parallel()

	a, c := newTestApp(t, nil)
	send(a, space)
	a.machine.HandleVisibility(false, c.now())
	c.t = c.t.Add(90 * time.Second)
	send(a, tea.ResumeMsg{})
	require.Equal(t, 1410, a.Phase().(timer.Focus).Remaining)
	require.Contains(t, a.View(), "23:30")
}

func TestAppSuspendKeyBackgrounds(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, nil)
	send(a, space)
	cmd := send(a, tea.KeyMsg{Type: tea.KeyCtrlZ})
	require.NotNil(t, cmd)
	require.Equal(t, timer.KindBackgrounded, a.Phase().Kind())
	require.Empty(t, a.sched.live)
}

func TestAppMouseClickToggles(t *testing.T) {
	t.Parallel()

	a, _ := newTestApp(t, nil)
	click := tea.MouseMsg{X: 2, Y: 1, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	send(a, click)
	require.Equal(t, timer.KindFocus, a.Phase().Kind())

	outside := click
	outside.Y = 40
	send(a, outside)
	require.Equal(t, timer.KindFocus, a.Phase().Kind())

	press := click
	press.Action = tea.MouseActionPress
	send(a, press)
	require.Equal(t, timer.KindFocus, a.Phase().Kind())
}

func TestAppInitLoadsSummary(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{summary: service.Summary{Focus: 3}}
	a, _ := newTestApp(t, j)
	msgs := run(a.Init())
	require.Len(t, msgs, 1)
	send(a, msgs[0])
	require.Contains(t, a.View(), "3 today")
}

func TestAppTodayCountIsNotDoubled(t *testing.T) {
	t.Parallel()

	j := &fakeJournal{}
	a, c := newTestApp(t, j)
	startup := a.Init()

	send(a, space)
	send(a, tea.BlurMsg{})
	c.t = c.t.Add(26 * time.Minute)
	for _, msg := range run(send(a, tea.FocusMsg{})) {
		for _, reload := range run(send(a, msg)) {
			send(a, reload)
		}
	}
	require.Contains(t, a.View(), "1 today")

	// The startup summary lands after the completion was already stored.
	for _, msg := range run(startup) {
		send(a, msg)
	}
	require.Contains(t, a.View(), "1 today")
	require.NotContains(t, a.View(), "2 today")
}

func TestAppTodayCountSkipsLapsBeforeMidnight(t *testing.T) {
	t.Parallel()

	a, c := newTestApp(t, nil)
	c.t = time.Date(2026, 3, 2, 23, 50, 0, 0, time.UTC)
	send(a, space)
	send(a, tea.BlurMsg{})

	// Focus intervals ended at 00:15 and 00:45 on the 3rd.
	c.t = time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC)
	send(a, tea.FocusMsg{})
	require.Equal(t, timer.KindFocus, a.Phase().Kind())
	require.Contains(t, a.View(), "2 today")

	b, c2 := newTestApp(t, nil)
	c2.t = time.Date(2026, 3, 2, 23, 33, 0, 0, time.UTC)
	send(b, space)
	send(b, tea.BlurMsg{})
	c2.t = time.Date(2026, 3, 3, 0, 1, 0, 0, time.UTC)
	send(b, tea.FocusMsg{})
	require.Equal(t, timer.KindBreak, b.Phase().Kind())
	require.NotContains(t, b.View(), "today", "focus finished on the 2nd")
}

func TestNewRequiresColors(t *testing.T) {
	t.Parallel()

	_, err := New(context.Background(), Options{Colors: Colors{Focus: "#0000ff", Break: "#00ff00"}})
	var cfgErr *StartupConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	require.Equal(t, "paused color", cfgErr.Element)
}
