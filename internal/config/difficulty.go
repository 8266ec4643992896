package config

import "math"

// stepEpsilon absorbs float drift from repeated step adjustments.
const stepEpsilon = 1e-9

// DifficultyManager owns the two difficulty knobs of a run: the spawn
// interval in ticks and the step distance obstacles advance per tick.
type DifficultyManager struct {
	cfg      DifficultyConfig
	tickRate int
	interval int
	step     float64
}

// NewDifficultyManager creates a difficulty manager at the slowest
// tutorial settings.
func NewDifficultyManager(cfg DifficultyConfig, tickRate int) *DifficultyManager {
	d := &DifficultyManager{cfg: cfg, tickRate: tickRate}
	d.Reset()
	return d
}

// Reset returns to the original spawn interval and its derived step.
func (d *DifficultyManager) Reset() {
	d.interval = d.cfg.SpawnIntervalOriginal
	d.step = d.StepForInterval(d.interval)
}

// Interval returns the number of ticks between spawns.
func (d *DifficultyManager) Interval() int {
	return d.interval
}

// Step returns the current depth advanced per tick.
func (d *DifficultyManager) Step() float64 {
	return d.step
}

// SpawnsPerSecond returns how many obstacles spawn per second of play.
func (d *DifficultyManager) SpawnsPerSecond() int {
	if d.interval <= 0 {
		return 0
	}
	return d.tickRate / d.interval
}

// StepForInterval linearly maps a spawn interval to a step distance:
// the floor interval gets StepMax and the original interval gets StepMin.
func (d *DifficultyManager) StepForInterval(interval int) float64 {
	span := float64(d.cfg.SpawnIntervalOriginal - d.cfg.SpawnIntervalFloor)
	if span <= 0 {
		return d.cfg.StepMax
	}
	slope := (d.cfg.StepMax - d.cfg.StepMin) / span
	return d.cfg.StepMax - slope*float64(interval-d.cfg.SpawnIntervalFloor)
}

// Ramp shortens the spawn interval by one tick, never below the floor, and
// recomputes the step. It reports whether the floor has been reached.
func (d *DifficultyManager) Ramp() bool {
	if d.interval > d.cfg.SpawnIntervalFloor {
		d.interval--
		d.step = d.StepForInterval(d.interval)
	}
	return d.interval <= d.cfg.SpawnIntervalFloor
}

// SetNormal applies the normal mode settings.
func (d *DifficultyManager) SetNormal() {
	d.interval = d.cfg.SpawnIntervalFloor
	d.step = d.StepForInterval(d.interval)
}

// SetDeath applies the death mode settings.
func (d *DifficultyManager) SetDeath() {
	d.interval = d.cfg.DeathSpawnInterval
	d.step = d.cfg.StepMax
}

// SpeedUp increases the step distance by one adjustment.
func (d *DifficultyManager) SpeedUp() {
	d.step += d.cfg.StepAdjust
}

// SpeedDown decreases the step distance by one adjustment while it stays
// positive. It reports whether the step changed.
func (d *DifficultyManager) SpeedDown() bool {
	if d.step <= d.cfg.StepAdjust+stepEpsilon {
		return false
	}
	d.step -= d.cfg.StepAdjust
	return true
}

// SpawnFaster shortens the interval down to one tick.
// It reports whether the interval changed.
func (d *DifficultyManager) SpawnFaster() bool {
	if d.interval <= 1 {
		return false
	}
	d.interval--
	return true
}

// SpawnSlower lengthens the interval up to one spawn per second plus one tick.
// It reports whether the interval changed.
func (d *DifficultyManager) SpawnSlower() bool {
	if d.interval > d.tickRate {
		return false
	}
	d.interval++
	return true
}

// Level returns the ramp progress in [0, 1]: 0 at the original interval,
// 1 at the floor or faster.
func (d *DifficultyManager) Level() float64 {
	span := float64(d.cfg.SpawnIntervalOriginal - d.cfg.SpawnIntervalFloor)
	if span <= 0 {
		return 1
	}
	return clampF(float64(d.cfg.SpawnIntervalOriginal-d.interval)/span, 0.0, 1.0)
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
