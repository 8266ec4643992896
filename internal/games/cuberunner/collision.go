package cuberunner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Hitbox is the axis-aligned proximity test between the player and a cube.
// Lateral distance is measured from the camera, vertical distance from the
// runner, and depth from the runner's fixed forward plane.
type Hitbox struct {
	Lateral  float64
	Vertical float64
	Depth    float64
	RunnerZ  float64
}

// NewHitbox builds the hitbox for cubes of the given side length.
func NewHitbox(side, runnerZ float64) Hitbox {
	return Hitbox{
		Lateral:  math.Sqrt2 / 2 * side,
		Vertical: 0.5 * side,
		Depth:    0.5 * side,
		RunnerZ:  runnerZ,
	}
}

// LateralHit reports whether the obstacle is within reach sideways.
func (h Hitbox) LateralHit(camera, o mgl64.Vec3) bool {
	return math.Abs(camera.X()-o.X()) < h.Lateral
}

// VerticalHit reports whether the runner is not above the obstacle.
func (h Hitbox) VerticalHit(runner, o mgl64.Vec3) bool {
	return math.Abs(runner.Y()-o.Y()) < h.Vertical
}

// DepthHit reports whether the obstacle crosses the runner's plane.
func (h Hitbox) DepthHit(o mgl64.Vec3) bool {
	return h.Distance(o) < h.Depth
}

// Distance returns the depth distance from the runner's plane.
func (h Hitbox) Distance(o mgl64.Vec3) float64 {
	return math.Abs(h.RunnerZ - o.Z())
}

// Collides reports whether all three axis tests hold.
func (h Hitbox) Collides(camera, runner, o mgl64.Vec3) bool {
	return h.LateralHit(camera, o) && h.VerticalHit(runner, o) && h.DepthHit(o)
}
