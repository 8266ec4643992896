// Package tui provides the Bubble Tea front end for the cube runner.
// It owns the tick timer, maps keys to actions, and draws the screen.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cuberunner/internal/sim"
)

// TickMsg is sent to trigger a simulation tick. Gen identifies the timer
// that scheduled it; ticks from a cancelled timer are dropped.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// TickScheduler implements sim.Scheduler on top of tea.Tick. Bubble Tea
// cannot cancel a scheduled command, so every Every call and every cancel
// bumps a generation counter and stale messages are ignored on arrival.
type TickScheduler struct {
	gen      uint64
	interval time.Duration
	fn       func()
	armed    bool
	inFlight bool
}

// NewTickScheduler creates an idle scheduler.
func NewTickScheduler() *TickScheduler {
	return &TickScheduler{}
}

// Every arms the timer. The first tick is issued by the next Cmd call.
func (s *TickScheduler) Every(interval time.Duration, fn func()) sim.Cancel {
	s.gen++
	gen := s.gen
	s.interval = interval
	s.fn = fn
	s.armed = true
	s.inFlight = false

	return func() {
		if s.gen != gen || !s.armed {
			return
		}
		s.gen++
		s.armed = false
		s.inFlight = false
		s.fn = nil
	}
}

// Armed reports whether a timer is active.
func (s *TickScheduler) Armed() bool {
	return s.armed
}

// Cmd returns the command for the next tick, or nil when the timer is idle
// or a tick is already on its way.
func (s *TickScheduler) Cmd() tea.Cmd {
	if !s.armed || s.inFlight {
		return nil
	}
	s.inFlight = true
	gen := s.gen
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// Fire runs the timer callback for a tick message and schedules the next
// tick. It returns nil for stale messages.
func (s *TickScheduler) Fire(msg TickMsg) tea.Cmd {
	if !s.armed || msg.Gen != s.gen {
		return nil
	}
	s.inFlight = false
	s.fn()
	return s.Cmd()
}
