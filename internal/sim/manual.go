package sim

import "time"

// ManualScheduler is a Scheduler whose timer fires only when told to.
// Headless runs and tests use it to step a Driver deterministically.
type ManualScheduler struct {
	fn       func()
	interval time.Duration
	gen      int
}

// NewManualScheduler creates an idle manual scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Every arms the timer, replacing any previous one.
func (m *ManualScheduler) Every(interval time.Duration, fn func()) Cancel {
	m.gen++
	m.fn = fn
	m.interval = interval
	gen := m.gen
	return func() {
		if m.gen == gen {
			m.fn = nil
		}
	}
}

// Armed reports whether a timer is active.
func (m *ManualScheduler) Armed() bool {
	return m.fn != nil
}

// Interval returns the interval of the active timer.
func (m *ManualScheduler) Interval() time.Duration {
	return m.interval
}

// Fire runs the timer callback once. It reports false if no timer is armed.
func (m *ManualScheduler) Fire() bool {
	if m.fn == nil {
		return false
	}
	m.fn()
	return true
}

// Advance fires up to n times, stopping early once the timer is cancelled.
// It returns the number of callbacks run.
func (m *ManualScheduler) Advance(n int) int {
	fired := 0
	for fired < n && m.Fire() {
		fired++
	}
	return fired
}
