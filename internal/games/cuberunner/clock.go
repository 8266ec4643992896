package cuberunner

import "time"

// Clock tells the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// StepClock is a Clock that only moves when Advance is called. Headless runs
// advance it once per tick so elapsed play time is measured in game time.
type StepClock struct {
	now  time.Time
	step time.Duration
}

// NewStepClock creates a clock starting at start that advances by step.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{now: start, step: step}
}

// Now returns the current clock time.
func (c *StepClock) Now() time.Time { return c.now }

// Advance moves the clock forward by one step.
func (c *StepClock) Advance() { c.now = c.now.Add(c.step) }

// PlayClock measures elapsed play time excluding paused spans.
type PlayClock struct {
	clock      Clock
	start      time.Time
	pauseBegin time.Time
	paused     time.Duration
	pausing    bool
}

// NewPlayClock starts a play clock on the given time source.
func NewPlayClock(c Clock) PlayClock {
	p := PlayClock{clock: c}
	p.Reset()
	return p
}

// Reset restarts the clock at zero. A running pause restarts with it.
func (p *PlayClock) Reset() {
	now := p.clock.Now()
	p.start = now
	p.paused = 0
	if p.pausing {
		p.pauseBegin = now
	}
}

// Pause starts a paused span.
func (p *PlayClock) Pause() {
	if p.pausing {
		return
	}
	p.pausing = true
	p.pauseBegin = p.clock.Now()
}

// Resume ends the paused span and adds it to the excluded time.
func (p *PlayClock) Resume() {
	if !p.pausing {
		return
	}
	p.pausing = false
	p.paused += p.clock.Now().Sub(p.pauseBegin)
}

// Elapsed returns play time since the last reset, excluding pauses.
func (p *PlayClock) Elapsed() time.Duration {
	end := p.clock.Now()
	if p.pausing {
		end = p.pauseBegin
	}
	d := end.Sub(p.start) - p.paused
	if d < 0 {
		return 0
	}
	return d
}
