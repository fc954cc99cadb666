package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jask/tomato/internal/service"
	"github.com/jask/tomato/internal/timer"
)

// Journal is where finished intervals go.
type Journal interface {
	Record(ctx context.Context, cs []timer.Completion) error
	Summarize(ctx context.Context, from, to time.Time) (service.Summary, error)
}

// Options configure an App.
type Options struct {
	Lengths    timer.Lengths
	Colors     Colors
	TrackFocus bool
	Journal    Journal
	Log        zerolog.Logger
	Now        func() time.Time
}

// App hosts the timer session in a terminal. Ticks, key presses, clicks,
// focus changes and suspend/resume all arrive through Update, so the
// machine only ever sees one event at a time.
type App struct {
	ctx        context.Context
	machine    *timer.Machine
	sched      *teaScheduler
	display    *display
	keys       keyMap
	help       help.Model
	journal    Journal
	log        zerolog.Logger
	now        func() time.Time
	trackFocus bool

	pending    []timer.Completion
	todayFocus int
	status     string
	statusErr  bool
	width      int
	height     int
}

type journalSavedMsg struct {
	count int
	err   error
}

type summaryMsg struct {
	summary service.Summary
	err     error
}

// New builds the App and its timer session.
func New(ctx context.Context, opts Options) (*App, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Lengths == (timer.Lengths{}) {
		opts.Lengths = timer.DefaultLengths
	}
	d, err := newDisplay(opts.Colors, timer.FormatRemaining(opts.Lengths.Seconds(timer.KindFocus)))
	if err != nil {
		return nil, err
	}
	a := &App{
		ctx:        ctx,
		sched:      newTeaScheduler(),
		display:    d,
		keys:       newKeyMap(),
		help:       help.New(),
		journal:    opts.Journal,
		log:        opts.Log,
		now:        opts.Now,
		trackFocus: opts.TrackFocus,
	}
	a.machine = timer.NewMachine(a.sched, d,
		timer.WithLengths(opts.Lengths),
		timer.WithCompletionListener(a.completed),
		timer.WithLogger(opts.Log),
		timer.WithClock(func() time.Time { return a.now() }),
	)
	return a, nil
}

// Phase returns the current phase of the session.
func (a *App) Phase() timer.Phase { return a.machine.Phase() }

func (a *App) Init() tea.Cmd {
	return a.loadSummary()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tickMsg:
		if a.sched.fired(m) {
			a.machine.HandleTick()
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(m, a.keys.Quit):
			a.machine.HandleVisibility(false, a.now())
			return a, tea.Sequence(a.flush(), tea.Quit)
		case key.Matches(m, a.keys.Toggle):
			a.machine.HandleToggle()
		case key.Matches(m, a.keys.Suspend):
			a.machine.HandleVisibility(false, a.now())
			return a, tea.Sequence(a.flush(), tea.Suspend)
		case key.Matches(m, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
		}
	case tea.MouseMsg:
		if m.Action == tea.MouseActionRelease && m.Button == tea.MouseButtonLeft && a.inBox(m.X, m.Y) {
			a.machine.HandleToggle()
		}
	case tea.BlurMsg:
		if a.trackFocus {
			a.machine.HandleVisibility(false, a.now())
		}
	case tea.FocusMsg:
		if a.trackFocus {
			a.machine.HandleVisibility(true, a.now())
		}
	case tea.ResumeMsg:
		a.machine.HandleVisibility(true, a.now())
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.help.Width = m.Width
	case journalSavedMsg:
		if m.err != nil {
			a.log.Error().Err(m.err).Int("count", m.count).Msg("journal write failed")
			a.setStatus(fmt.Sprintf("journal: %v", m.err), true)
			break
		}
		return a, tea.Batch(a.flush(), a.loadSummary())
	case summaryMsg:
		if m.err != nil {
			a.log.Warn().Err(m.err).Msg("load summary")
			break
		}
		a.todayFocus = m.summary.Focus
	}
	return a, a.flush()
}

// completed is the machine's completion listener. With a journal the count
// of today's focus intervals is reloaded once the completion is stored.
func (a *App) completed(c timer.Completion) {
	a.pending = append(a.pending, c)
	if a.journal != nil || c.Kind != timer.KindFocus {
		return
	}
	if from, to := service.Day(a.now()); !c.CompletedAt.Before(from) && c.CompletedAt.Before(to) {
		a.todayFocus++
	}
}

// flush hands newly armed ticks and unsaved completions to the runtime.
func (a *App) flush() tea.Cmd {
	return tea.Batch(a.sched.drain(), a.saveCompletions())
}

func (a *App) saveCompletions() tea.Cmd {
	if len(a.pending) == 0 || a.journal == nil {
		a.pending = nil
		return nil
	}
	cs := a.pending
	a.pending = nil
	ctx, j := a.ctx, a.journal
	return func() tea.Msg {
		return journalSavedMsg{count: len(cs), err: j.Record(ctx, cs)}
	}
}

func (a *App) loadSummary() tea.Cmd {
	if a.journal == nil {
		return nil
	}
	ctx, j := a.ctx, a.journal
	from, to := service.Day(a.now())
	return func() tea.Msg {
		s, err := j.Summarize(ctx, from, to)
		return summaryMsg{summary: s, err: err}
	}
}

func (a *App) setStatus(text string, isErr bool) {
	a.status = text
	a.statusErr = isErr
}

func (a *App) View() string {
	lines := []string{a.renderBox(), labelStyle.Render(a.label())}
	if a.status != "" {
		style := statusStyle
		if a.statusErr {
			style = errorStyle
		}
		lines = append(lines, style.Render(a.status))
	}
	lines = append(lines, helpStyle.Render(a.help.View(a.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (a *App) renderBox() string {
	return boxStyle.Background(a.display.bg).Render(a.display.text)
}

// inBox reports whether the cell (x, y) is on the timer box, which is drawn
// at the top-left corner.
func (a *App) inBox(x, y int) bool {
	box := a.renderBox()
	return x >= 0 && y >= 0 && x < lipgloss.Width(box) && y < lipgloss.Height(box)
}

func (a *App) label() string {
	var b strings.Builder
	switch a.machine.Phase().Kind() {
	case timer.KindNotStarted:
		b.WriteString("press space to start")
	case timer.KindFocus:
		b.WriteString("focus")
	case timer.KindBreak:
		b.WriteString("break")
	case timer.KindPaused:
		b.WriteString("paused")
	case timer.KindBackgrounded:
		b.WriteString("away")
	}
	if a.todayFocus > 0 {
		fmt.Fprintf(&b, " · %d today", a.todayFocus)
	}
	return b.String()
}
