package core

// Action represents a semantic input event, abstracted from physical key presses.
// Actions are edge-triggered: holding a direction is a press followed later by
// a release, and the game keeps the held state between ticks.
type Action int

const (
	ActionNone         Action = iota
	ActionLeftPress           // Begin holding left
	ActionLeftRelease         // Stop holding left
	ActionRightPress          // Begin holding right
	ActionRightRelease        // Stop holding right
	ActionJump                // Space - start a jump
	ActionPause               // P - toggle pause
	ActionResume              // Up - resume after a collision
	ActionModeTutorial        // T - switch to tutorial mode
	ActionModeNormal          // E - switch to normal mode
	ActionModeDeath           // D - switch to death mode
	ActionToggleAuto          // 1 - toggle the autopilot
	ActionSpeedUp             // R - larger step distance
	ActionSpeedDown           // V - smaller step distance
	ActionSpawnFaster         // Q - shorter spawn interval
	ActionSpawnSlower         // Z - longer spawn interval
	ActionStepForward         // . - nudge obstacles forward while stopped
	ActionStepBack            // , - nudge obstacles back while stopped
	ActionScreenshot          // S - save the screen, no simulation effect
	ActionHelp                // H - toggle help, no simulation effect
	ActionQuit                // Esc, Ctrl+C - exit
)

var actionNames = map[Action]string{
	ActionNone:         "None",
	ActionLeftPress:    "LeftPress",
	ActionLeftRelease:  "LeftRelease",
	ActionRightPress:   "RightPress",
	ActionRightRelease: "RightRelease",
	ActionJump:         "Jump",
	ActionPause:        "Pause",
	ActionResume:       "Resume",
	ActionModeTutorial: "ModeTutorial",
	ActionModeNormal:   "ModeNormal",
	ActionModeDeath:    "ModeDeath",
	ActionToggleAuto:   "ToggleAuto",
	ActionSpeedUp:      "SpeedUp",
	ActionSpeedDown:    "SpeedDown",
	ActionSpawnFaster:  "SpawnFaster",
	ActionSpawnSlower:  "SpawnSlower",
	ActionStepForward:  "StepForward",
	ActionStepBack:     "StepBack",
	ActionScreenshot:   "Screenshot",
	ActionHelp:         "Help",
	ActionQuit:         "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// PassThrough reports whether the action is handled by the platform only
// and never reaches the simulation.
func (a Action) PassThrough() bool {
	switch a {
	case ActionScreenshot, ActionHelp, ActionQuit:
		return true
	default:
		return false
	}
}
