package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jask/tomato/internal/timer"
)

type tickMsg struct {
	id int
}

// teaScheduler runs timer handles on tea.Tick. Every handle re-arms its own
// tick while it is live; ticks of cancelled handles are dropped.
type teaScheduler struct {
	nextID  int
	live    map[int]time.Duration
	pending []tea.Cmd
	tick    func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{live: make(map[int]time.Duration), tick: tea.Tick}
}

type teaHandle struct {
	id int
	s  *teaScheduler
}

func (h *teaHandle) Cancel() { delete(h.s.live, h.id) }

func (s *teaScheduler) Every(period time.Duration) timer.TimerHandle {
	s.nextID++
	s.live[s.nextID] = period
	s.arm(s.nextID, period)
	return &teaHandle{id: s.nextID, s: s}
}

func (s *teaScheduler) arm(id int, period time.Duration) {
	s.pending = append(s.pending, s.tick(period, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	}))
}

// fired reports whether msg belongs to a live handle, re-arming it if so.
func (s *teaScheduler) fired(msg tickMsg) bool {
	period, ok := s.live[msg.id]
	if !ok {
		return false
	}
	s.arm(msg.id, period)
	return true
}

// drain returns the ticks armed since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
