package sim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter stops running after a fixed number of ticks, like a crash.
type counter struct {
	ticks   int
	stopAt  int
	stopped bool
}

func (c *counter) Tick() {
	c.ticks++
	if c.stopAt > 0 && c.ticks >= c.stopAt {
		c.stopped = true
	}
}

func (c *counter) Running() bool { return !c.stopped }

func TestDriverInterval(t *testing.T) {
	d := NewDriver(NewManualScheduler(), &counter{}, 40)
	assert.Equal(t, 25*time.Millisecond, d.Interval())
}

func TestDriverStopsWhenGameStops(t *testing.T) {
	sched := NewManualScheduler()
	game := &counter{stopAt: 3}
	d := NewDriver(sched, game, 40)

	d.Start()
	require.True(t, d.Armed())
	require.True(t, sched.Armed())

	fired := sched.Advance(10)
	assert.Equal(t, 3, fired)
	assert.Equal(t, 3, game.ticks)
	assert.Equal(t, 3, d.Ticks())
	assert.False(t, d.Armed())
	assert.False(t, sched.Armed())

	// Nothing rearms the timer until the game runs again.
	assert.False(t, sched.Fire())
	d.Sync()
	assert.False(t, d.Armed())

	game.stopped = false
	game.stopAt = 0
	d.Sync()
	assert.True(t, d.Armed())
	assert.Equal(t, 5, sched.Advance(5))
	assert.Equal(t, 8, game.ticks)
}

func TestDriverStartWhileStopped(t *testing.T) {
	sched := NewManualScheduler()
	d := NewDriver(sched, &counter{stopped: true}, 40)
	d.Start()
	assert.False(t, d.Armed())
	assert.False(t, sched.Fire())
}

func TestDriverOnTick(t *testing.T) {
	sched := NewManualScheduler()
	d := NewDriver(sched, &counter{}, 40)
	redraws := 0
	d.OnTick(func() { redraws++ })
	d.Start()
	sched.Advance(4)
	assert.Equal(t, 4, redraws)

	d.Stop()
	assert.Equal(t, 0, sched.Advance(4))
	assert.Equal(t, 4, redraws)
}

func TestManualSchedulerStaleCancel(t *testing.T) {
	sched := NewManualScheduler()
	first := 0
	second := 0
	cancel := sched.Every(time.Millisecond, func() { first++ })
	sched.Every(time.Millisecond, func() { second++ })

	// Cancelling the replaced timer leaves the current one armed.
	cancel()
	assert.True(t, sched.Fire())
	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}
