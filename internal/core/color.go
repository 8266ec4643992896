package core

import "fmt"

// RGB is a linear color with channels in [0, 1].
type RGB struct {
	R, G, B float64
}

// Predefined colors used by the HUD and scene.
var (
	ColorNone  = RGB{}
	ColorWhite = RGB{1, 1, 1}
	ColorGray  = RGB{0.9, 0.9, 0.9}
	ColorDark  = RGB{0.1, 0.1, 0.1}
)

// NewRGB creates a color from 0-255 channel values.
func NewRGB(r, g, b uint8) RGB {
	return RGB{float64(r) / 255, float64(g) / 255, float64(b) / 255}
}

// Scale multiplies every channel by f, clamped to [0, 1].
func (c RGB) Scale(f float64) RGB {
	return RGB{ClampF(c.R*f, 0, 1), ClampF(c.G*f, 0, 1), ClampF(c.B*f, 0, 1)}
}

// IsZero reports whether the color is unset.
func (c RGB) IsZero() bool {
	return c == ColorNone
}

// Hex returns the color as #rrggbb for terminal true-color output.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", channel(c.R), channel(c.G), channel(c.B))
}

func channel(v float64) uint8 {
	return uint8(ClampF(v, 0, 1)*255 + 0.5)
}
