// Package sim drives a fixed-rate simulation with an owned, cancellable
// repeating timer. Pausing cancels the timer and resuming re-arms it, so the
// tick callback never has to decide whether to reschedule itself.
package sim

import (
	"time"
)

// Cancel stops a repeating timer. Calling it more than once is a no-op.
type Cancel func()

// Scheduler arms repeating timers.
type Scheduler interface {
	// Every calls fn once per interval until the returned Cancel is called.
	Every(interval time.Duration, fn func()) Cancel
}

// Steppable is a simulation advanced one tick at a time.
type Steppable interface {
	Tick()
	// Running reports whether the timer should keep firing.
	Running() bool
}

// Driver owns a Steppable and the timer that ticks it.
type Driver struct {
	sched    Scheduler
	game     Steppable
	interval time.Duration
	cancel   Cancel
	ticks    int
	onTick   func()
}

// NewDriver creates a driver ticking the game tickRate times per second.
func NewDriver(sched Scheduler, game Steppable, tickRate int) *Driver {
	if tickRate <= 0 {
		tickRate = 1
	}
	return &Driver{
		sched:    sched,
		game:     game,
		interval: time.Second / time.Duration(tickRate),
	}
}

// OnTick registers a callback run after every tick, typically a redraw request.
func (d *Driver) OnTick(fn func()) {
	d.onTick = fn
}

// Interval returns the time between ticks.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// Ticks returns how many ticks the driver has run.
func (d *Driver) Ticks() int {
	return d.ticks
}

// Armed reports whether the repeating timer is active.
func (d *Driver) Armed() bool {
	return d.cancel != nil
}

// Start arms the timer if the game is running.
func (d *Driver) Start() {
	d.Sync()
}

// Stop cancels the timer regardless of game state.
func (d *Driver) Stop() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

// Tick runs one simulation tick to completion, then re-syncs the timer with
// the game's running state.
func (d *Driver) Tick() {
	d.game.Tick()
	d.ticks++
	d.Sync()
	if d.onTick != nil {
		d.onTick()
	}
}

// Sync arms the timer when the game is running and cancels it when the game
// has stopped. Input handlers call it after changing pause or crash state.
func (d *Driver) Sync() {
	running := d.game.Running()
	switch {
	case running && d.cancel == nil:
		d.cancel = d.sched.Every(d.interval, d.Tick)
	case !running && d.cancel != nil:
		d.Stop()
	}
}
