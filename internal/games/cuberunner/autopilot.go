package cuberunner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cuberunner/internal/config"
)

// Decision is one tick of autopilot output: which direction to hold and
// whether to start a jump.
type Decision struct {
	Left  bool
	Right bool
	Jump  bool
}

// Situation is the read-only view of the game the autopilot decides on.
type Situation struct {
	Camera  mgl64.Vec3
	Runner  mgl64.Vec3
	Jumping bool
	Step    float64 // Current obstacle step distance
	Field   *Field
}

// Rule evaluates one autopilot rule. ok is false when the rule has no opinion.
type Rule func(s Situation) (d Decision, ok bool)

// Autopilot plays the game: it dodges cubes about to hit, jumps cubes it
// cannot dodge in time, and otherwise drifts toward the emptier lanes.
type Autopilot struct {
	hit          Hitbox
	lateralStep  float64
	clearTicks   int // Ticks of sideways motion to clear half a cube
	minJumpTicks int // Ticks of ascent to clear a cube
	maxJumpTicks int // Ticks of ascent to reach the peak
	rules        []Rule
}

// NewAutopilot creates an autopilot for the given configuration.
func NewAutopilot(cfg config.Config) *Autopilot {
	side := cfg.Obstacles.Side
	a := &Autopilot{
		hit:          NewHitbox(side, cfg.Player.RunnerZ),
		lateralStep:  cfg.Player.LateralStep,
		clearTicks:   int(math.Ceil(0.5 * side / cfg.Player.LateralStep)),
		minJumpTicks: int(math.Ceil(side / cfg.Jump.Step)),
		maxJumpTicks: int(math.Ceil(cfg.JumpPeak() / cfg.Jump.Step)),
	}
	a.rules = []Rule{a.Swerve, a.JumpOver, a.SeekSpace}
	return a
}

// Decide runs the rules in priority order, takes the first decision, then
// checks it against obstacles right next to the player.
func (a *Autopilot) Decide(s Situation) Decision {
	var d Decision
	for _, rule := range a.rules {
		if got, ok := rule(s); ok {
			d = got
			break
		}
	}
	return a.Recheck(s, d)
}

// swerveReach is the depth distance inside which a cube must be dodged now.
func (a *Autopilot) swerveReach(step float64) float64 {
	return a.hit.Depth + step*float64(a.clearTicks)
}

// away steers to the side opposite the obstacle.
func away(camera, o mgl64.Vec3) Decision {
	if camera.X()-o.X() > 0 {
		return Decision{Right: true}
	}
	return Decision{Left: true}
}

// Swerve dodges a cube that will reach the runner in exactly the number of
// ticks needed to clear it sideways. Mid-jump, any cube in the lateral band
// within reach is dodged, since the landing point cannot change otherwise.
func (a *Autopilot) Swerve(s Situation) (Decision, bool) {
	reach := a.swerveReach(s.Step)
	lower := a.hit.Depth + s.Step*float64(a.clearTicks-1)
	var d Decision
	found := false
	s.Field.Each(func(_ int, o Obstacle) bool {
		p := o.Position()
		if !a.hit.LateralHit(s.Camera, p) {
			return true
		}
		dist := a.hit.Distance(p)
		if s.Jumping {
			if dist < reach {
				d, found = away(s.Camera, p), true
			}
		} else if a.hit.VerticalHit(s.Runner, p) && dist < reach && dist > lower {
			d, found = away(s.Camera, p), true
		}
		return !found
	})
	return d, found
}

// JumpOver jumps a cube in the lane that will pass under the arc: far
// enough to get off the ground first and near enough to land behind it.
// The window is the jump's tick counts times the cube step, since the cube
// closes that distance while the runner is in the air.
func (a *Autopilot) JumpOver(s Situation) (Decision, bool) {
	if s.Jumping {
		return Decision{}, false
	}
	found := false
	s.Field.Each(func(_ int, o Obstacle) bool {
		p := o.Position()
		if !a.hit.LateralHit(s.Camera, p) || !a.hit.VerticalHit(s.Runner, p) {
			return true
		}
		dist := a.hit.Distance(p)
		if dist-a.hit.Depth >= s.Step*float64(a.minJumpTicks) &&
			dist+a.hit.Depth <= s.Step*float64(a.maxJumpTicks) {
			found = true
		}
		return !found
	})
	return Decision{Jump: true}, found
}

// SeekSpace moves away from a crowded center lane toward the emptier
// neighbor. It always has an opinion, possibly holding nothing.
func (a *Autopilot) SeekSpace(s Situation) (Decision, bool) {
	mid := s.Field.NumLanes() / 2
	center := s.Field.LaneLen(mid)
	left := s.Field.LaneLen(mid - 1)
	right := s.Field.LaneLen(mid + 1)
	if center > left || center > right {
		if left < right {
			return Decision{Left: true}, true
		}
		return Decision{Right: true}, true
	}
	return Decision{}, true
}

// Recheck guards a swerve against cubes immediately on that side. Steering
// into one upgrades to a jump, or cancels steering if already airborne.
func (a *Autopilot) Recheck(s Situation, d Decision) Decision {
	if !d.Left && !d.Right {
		return d
	}
	band := a.hit.Lateral + a.lateralStep*float64(a.minJumpTicks)
	reach := a.swerveReach(s.Step)
	blocked := false
	s.Field.Each(func(_ int, o Obstacle) bool {
		p := o.Position()
		dx := p.X() - s.Camera.X()
		if a.hit.Distance(p) >= reach {
			return true
		}
		if d.Right && dx > 0 && dx < band {
			blocked = true
		} else if !d.Right && d.Left && dx < 0 && dx > -band {
			blocked = true
		}
		return !blocked
	})
	if !blocked {
		return d
	}
	if !s.Jumping {
		d.Jump = true
		return d
	}
	return Decision{}
}
