package cuberunner

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/cuberunner/internal/config"
)

// Mode is the game mode. It selects difficulty and palette.
type Mode int

const (
	ModeTutorial Mode = iota // Spawn rate ramps up every level until normal speed
	ModeNormal               // Fixed floor spawn interval, red/green/blue cubes
	ModeDeath                // One cube per tick at maximum speed
)

var modeNames = [...]string{
	ModeTutorial: "tutorial",
	ModeNormal:   "normal",
	ModeDeath:    "death",
}

// Modes returns all modes in menu order.
func Modes() []Mode {
	return []Mode{ModeTutorial, ModeNormal, ModeDeath}
}

// String returns the lowercase mode name used by the CLI and run log.
func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Title returns the mode name for display.
func (m Mode) Title() string {
	switch m {
	case ModeTutorial:
		return "Tutorial"
	case ModeNormal:
		return "Normal"
	case ModeDeath:
		return "Death"
	default:
		return m.String()
	}
}

// ParseMode parses a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if strings.EqualFold(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("cuberunner: unknown mode %q (want tutorial, normal or death)", s)
}

// Configure puts d into the starting difficulty of the mode.
func (m Mode) Configure(d *config.DifficultyManager) {
	switch m {
	case ModeNormal:
		d.SetNormal()
	case ModeDeath:
		d.SetDeath()
	default:
		d.Reset()
	}
}
