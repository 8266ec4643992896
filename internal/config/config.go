// Package config provides YAML-based game configuration loading and
// difficulty management for the cube runner.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/cespare/xxhash/v2"
	"gopkg.in/yaml.v3"
)

// Config contains all tunables of the cube runner simulation.
type Config struct {
	Simulation SimulationConfig `yaml:"simulation"`
	Field      FieldConfig      `yaml:"field"`
	Obstacles  ObstacleConfig   `yaml:"obstacles"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Player     PlayerConfig     `yaml:"player"`
	Jump       JumpConfig       `yaml:"jump"`
	Palette    PaletteConfig    `yaml:"palette"`
	Lights     LightsConfig     `yaml:"lights"`
}

// SimulationConfig defines the fixed tick rate and level length.
type SimulationConfig struct {
	TickRate     int     `yaml:"tick_rate"`
	LevelSeconds float64 `yaml:"level_seconds"`
}

// FieldConfig defines the spawn field the lanes partition.
type FieldConfig struct {
	Lanes     int     `yaml:"lanes"`
	LeftSide  float64 `yaml:"left_side"`
	Width     float64 `yaml:"width"`
	FurthestZ float64 `yaml:"furthest_z"`
	NearestZ  float64 `yaml:"nearest_z"`
	GroundY   float64 `yaml:"ground_y"`
}

// ObstacleConfig defines cube geometry and motion.
type ObstacleConfig struct {
	Side        float64 `yaml:"side"`
	SpinDegrees float64 `yaml:"spin_degrees"`
}

// DifficultyConfig defines spawn interval and step distance bounds.
type DifficultyConfig struct {
	SpawnIntervalOriginal int     `yaml:"spawn_interval_original"`
	SpawnIntervalFloor    int     `yaml:"spawn_interval_floor"`
	DeathSpawnInterval    int     `yaml:"death_spawn_interval"`
	StepMin               float64 `yaml:"step_min"`
	StepMax               float64 `yaml:"step_max"`
	StepAdjust            float64 `yaml:"step_adjust"`
}

// PlayerConfig defines the camera rig and steering.
type PlayerConfig struct {
	Camera           [3]float64 `yaml:"camera"`
	RunnerZ          float64    `yaml:"runner_z"`
	LateralStep      float64    `yaml:"lateral_step"`
	MaxTiltDegrees   float64    `yaml:"max_tilt_degrees"`
	TiltStepDegrees  float64    `yaml:"tilt_step_degrees"`
	RelaxStepDegrees float64    `yaml:"relax_step_degrees"`
	RelaxEpsilon     float64    `yaml:"relax_epsilon"`
}

// JumpConfig defines the jump arc.
type JumpConfig struct {
	Step      float64 `yaml:"step"`
	Clearance float64 `yaml:"clearance"`
}

// PaletteConfig defines palette choices that are open to tuning.
type PaletteConfig struct {
	// ManualNormalDark also sets the dark palette flag when normal mode is
	// entered by key, so the dark palette takes precedence over RGB cycling.
	ManualNormalDark bool `yaml:"manual_normal_dark"`
}

// LightsConfig positions the two scene lights in world space.
type LightsConfig struct {
	Light1 [3]float64 `yaml:"light1"`
	Light2 [3]float64 `yaml:"light2"`
}

// LevelTicks returns the number of ticks in one level.
func (c Config) LevelTicks() int {
	return int(math.Round(c.Simulation.LevelSeconds * float64(c.Simulation.TickRate)))
}

// JumpPeak returns the maximum jump height.
func (c Config) JumpPeak() float64 {
	return c.Obstacles.Side + c.Jump.Clearance
}

// Validate checks that the configuration describes a playable game.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Simulation.TickRate > 0, "simulation.tick_rate must be positive, got %d", c.Simulation.TickRate)
	check(c.LevelTicks() > 0, "simulation.level_seconds must cover at least one tick")
	check(c.Field.Lanes >= 3, "field.lanes must be at least 3, got %d", c.Field.Lanes)
	check(c.Field.Width > 0, "field.width must be positive")
	check(c.Field.NearestZ > c.Field.FurthestZ, "field.nearest_z must be greater than field.furthest_z")
	check(c.Obstacles.Side > 0, "obstacles.side must be positive")
	check(c.Difficulty.SpawnIntervalFloor >= 1, "difficulty.spawn_interval_floor must be at least 1")
	check(c.Difficulty.SpawnIntervalOriginal > c.Difficulty.SpawnIntervalFloor,
		"difficulty.spawn_interval_original (%d) must exceed spawn_interval_floor (%d)",
		c.Difficulty.SpawnIntervalOriginal, c.Difficulty.SpawnIntervalFloor)
	check(c.Difficulty.DeathSpawnInterval >= 1, "difficulty.death_spawn_interval must be at least 1")
	check(c.Difficulty.StepMin > 0 && c.Difficulty.StepMax >= c.Difficulty.StepMin,
		"difficulty.step_min must be positive and not above step_max")
	check(c.Difficulty.StepAdjust > 0, "difficulty.step_adjust must be positive")
	check(c.Player.LateralStep > 0, "player.lateral_step must be positive")
	check(c.Player.MaxTiltDegrees > 0 && c.Player.MaxTiltDegrees < 180, "player.max_tilt_degrees must be in (0, 180)")
	check(c.Player.TiltStepDegrees > 0, "player.tilt_step_degrees must be positive")
	check(c.Player.RelaxStepDegrees > 0, "player.relax_step_degrees must be positive")
	check(c.Player.RelaxEpsilon > 0, "player.relax_epsilon must be positive")
	check(c.Jump.Step > 0, "jump.step must be positive")
	check(c.Jump.Clearance >= 0, "jump.clearance must not be negative")

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}

// Fingerprint returns a stable hash of the configuration, stored with each
// recorded run so results from different tunings can be told apart.
func (c Config) Fingerprint() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
