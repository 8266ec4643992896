package cuberunner

import (
	"time"

	"github.com/vovakirdan/cuberunner/internal/config"
)

// GameState is everything a run mutates. The Game owns exactly one and only
// changes it from a tick or from an input event between ticks.
type GameState struct {
	Phase      int // Cycles over three levels; selects the RGB palette third
	Mode       Mode
	Palette    Palette
	Difficulty *config.DifficultyManager
	Field      *Field
	Rig        Rig
	Offsets    Offsets
	Jump       Jump

	LeftHeld   bool
	RightHeld  bool
	Autonomous bool
	Paused     bool
	Crashed    bool

	Clock   PlayClock
	LastRun time.Duration // Play time of the last crashed run
	Ticks   int           // Ticks since the run clock was reset
}

// Running reports whether ticks should be scheduled.
func (s *GameState) Running() bool {
	return !s.Crashed && !s.Paused
}

// Run summarizes a finished run.
type Run struct {
	Mode       Mode
	Elapsed    time.Duration
	Ticks      int
	Autonomous bool
}
