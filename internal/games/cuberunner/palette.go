package cuberunner

import (
	"math/rand"

	"github.com/vovakirdan/cuberunner/internal/config"
	"github.com/vovakirdan/cuberunner/internal/core"
)

// Palette holds the palette flags. When both are set, Dark wins.
type Palette struct {
	RGB  bool // Red, green, blue cubes by phase third
	Dark bool // Dark gray cubes on a black sky
}

// Theme is the set of scene colors derived from a palette.
type Theme struct {
	Sky    core.RGB
	Runner core.RGB
	Ground core.RGB
}

var (
	themeDefault = Theme{
		Sky:    core.NewRGB(42, 148, 253),
		Runner: core.NewRGB(0, 60, 255),
		Ground: core.NewRGB(60, 150, 60),
	}
	themeRGB = Theme{
		Sky:    core.ColorWhite,
		Runner: core.NewRGB(108, 91, 5),
		Ground: core.NewRGB(170, 170, 170),
	}
	themeDark = Theme{
		Sky:    core.RGB{},
		Runner: core.NewRGB(245, 42, 76),
		Ground: core.NewRGB(40, 40, 40),
	}
)

// PaletteFor returns the palette a mode starts with. Death is always dark;
// normal mode is dark too when manual_normal_dark is set.
func PaletteFor(m Mode, cfg config.Config) Palette {
	switch m {
	case ModeNormal:
		return Palette{RGB: true, Dark: cfg.Palette.ManualNormalDark}
	case ModeDeath:
		return Palette{Dark: true}
	default:
		return Palette{}
	}
}

// Name returns the palette name shown in the HUD.
func (p Palette) Name() string {
	switch {
	case p.Dark:
		return "dark"
	case p.RGB:
		return "rgb"
	default:
		return "random"
	}
}

// Theme returns the sky, runner and ground colors.
func (p Palette) Theme() Theme {
	switch {
	case p.Dark:
		return themeDark
	case p.RGB:
		return themeRGB
	default:
		return themeDefault
	}
}

// ObstacleColor picks the color of a newly spawned obstacle. In RGB mode the
// phase window is split in thirds: red, then green, then blue, with the
// intensity drawn from [0.1, 1.0].
func (p Palette) ObstacleColor(phase, levelTicks int, rng *rand.Rand) core.RGB {
	switch {
	case p.Dark:
		return core.ColorDark
	case p.RGB:
		c := 0.9*rng.Float64() + 0.1
		switch {
		case phase < levelTicks:
			return core.RGB{R: c}
		case phase < 2*levelTicks:
			return core.RGB{G: c}
		default:
			return core.RGB{B: c}
		}
	default:
		return core.RGB{R: rng.Float64(), G: rng.Float64(), B: rng.Float64()}
	}
}
