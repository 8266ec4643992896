package config

import (
	_ "embed"
)

//go:embed defaults/cuberunner.yaml
var defaultYAML []byte

// Default returns the built-in cube runner configuration.
func Default() Config {
	return Config{
		Simulation: SimulationConfig{
			TickRate:     40,
			LevelSeconds: 5,
		},
		Field: FieldConfig{
			Lanes:     7,
			LeftSide:  -2,
			Width:     4,
			FurthestZ: -3,
			NearestZ:  1,
			GroundY:   -0.05,
		},
		Obstacles: ObstacleConfig{
			Side:        0.22,
			SpinDegrees: 100,
		},
		Difficulty: DifficultyConfig{
			SpawnIntervalOriginal: 5,
			SpawnIntervalFloor:    2,
			DeathSpawnInterval:    1,
			StepMin:               0.06,
			StepMax:               0.1,
			StepAdjust:            0.02,
		},
		Player: PlayerConfig{
			Camera:           [3]float64{0, 0.25, 4},
			RunnerZ:          3.5,
			LateralStep:      0.05,
			MaxTiltDegrees:   35,
			TiltStepDegrees:  1,
			RelaxStepDegrees: 3,
			RelaxEpsilon:     0.01,
		},
		Jump: JumpConfig{
			Step:      0.1,
			Clearance: 0.5,
		},
		Palette: PaletteConfig{
			ManualNormalDark: true,
		},
		Lights: LightsConfig{
			Light1: [3]float64{0, 3, 14},
			Light2: [3]float64{0, 3, -1},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
