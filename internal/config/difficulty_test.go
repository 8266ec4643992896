package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestManager() *DifficultyManager {
	cfg := Default()
	return NewDifficultyManager(cfg.Difficulty, cfg.Simulation.TickRate)
}

func TestStepForInterval(t *testing.T) {
	d := newTestManager()
	assert.InDelta(t, 0.06, d.StepForInterval(5), 1e-9)
	assert.InDelta(t, 0.1, d.StepForInterval(2), 1e-9)
	assert.Greater(t, d.StepForInterval(3), d.StepForInterval(4))
}

func TestRampStopsAtFloor(t *testing.T) {
	d := newTestManager()
	assert.Equal(t, 5, d.Interval())
	assert.InDelta(t, 0.06, d.Step(), 1e-9)

	assert.False(t, d.Ramp())
	assert.Equal(t, 4, d.Interval())
	assert.False(t, d.Ramp())
	assert.Equal(t, 3, d.Interval())
	assert.True(t, d.Ramp())
	assert.Equal(t, 2, d.Interval())
	assert.InDelta(t, 0.1, d.Step(), 1e-9)

	assert.True(t, d.Ramp())
	assert.Equal(t, 2, d.Interval())
	assert.Equal(t, 1.0, d.Level())
}

func TestModeSettings(t *testing.T) {
	d := newTestManager()

	d.SetDeath()
	assert.Equal(t, 1, d.Interval())
	assert.Equal(t, 0.1, d.Step())

	d.SetNormal()
	assert.Equal(t, 2, d.Interval())
	assert.InDelta(t, 0.1, d.Step(), 1e-9)

	d.Reset()
	assert.Equal(t, 5, d.Interval())
	assert.Equal(t, 0.0, d.Level())
}

func TestManualAdjustmentsAreClamped(t *testing.T) {
	d := newTestManager()
	d.SetDeath()

	assert.False(t, d.SpawnFaster())
	assert.Equal(t, 1, d.Interval())

	for d.SpawnSlower() {
	}
	assert.Equal(t, 41, d.Interval())
	assert.Equal(t, 0, d.SpawnsPerSecond())

	d.SpeedUp()
	assert.InDelta(t, 0.12, d.Step(), 1e-9)

	for d.SpeedDown() {
	}
	assert.InDelta(t, 0.02, d.Step(), 1e-9)
	assert.False(t, d.SpeedDown())
}
