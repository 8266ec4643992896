package cuberunner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cuberunner/internal/core"
	"github.com/vovakirdan/cuberunner/internal/rigid"
)

// Obstacle is a cube flowing toward the player.
type Obstacle struct {
	Pose  rigid.Transform
	Color core.RGB
}

// Position returns the obstacle center.
func (o Obstacle) Position() mgl64.Vec3 {
	return o.Pose.T
}

// Lane is an ordered queue of obstacles in spawn order.
type Lane struct {
	Obstacles []Obstacle
}

// Len returns the number of obstacles in the lane.
func (l Lane) Len() int {
	return len(l.Obstacles)
}

// Field is the set of parallel lanes obstacles spawn into.
type Field struct {
	lanes     []Lane
	width     float64
	furthestZ float64
	nearestZ  float64
	centerY   float64
	spin      rigid.Transform
	unspin    rigid.Transform
}

// FieldParams describes the spawn volume.
type FieldParams struct {
	Lanes       int
	Width       float64
	FurthestZ   float64
	NearestZ    float64
	GroundY     float64
	Side        float64
	SpinDegrees float64
}

// NewField creates an empty field.
func NewField(p FieldParams) *Field {
	return &Field{
		lanes:     make([]Lane, p.Lanes),
		width:     p.Width,
		furthestZ: p.FurthestZ,
		nearestZ:  p.NearestZ,
		centerY:   p.GroundY + 0.5*p.Side,
		spin:      rigid.FromRotation(rigid.RotY(p.SpinDegrees)),
		unspin:    rigid.FromRotation(rigid.RotY(-p.SpinDegrees)),
	}
}

// Lanes returns the lanes for read-only enumeration.
func (f *Field) Lanes() []Lane {
	return f.lanes
}

// NumLanes returns the number of lanes.
func (f *Field) NumLanes() int {
	return len(f.lanes)
}

// LaneLen returns the number of obstacles in lane i.
func (f *Field) LaneLen(i int) int {
	if i < 0 || i >= len(f.lanes) {
		return 0
	}
	return f.lanes[i].Len()
}

// Count returns the total number of obstacles.
func (f *Field) Count() int {
	n := 0
	for _, l := range f.lanes {
		n += l.Len()
	}
	return n
}

// Each calls fn for every obstacle, lane by lane in spawn order.
// It stops early if fn returns false.
func (f *Field) Each(fn func(lane int, o Obstacle) bool) {
	for i, l := range f.lanes {
		for _, o := range l.Obstacles {
			if !fn(i, o) {
				return
			}
		}
	}
}

// Clear removes every obstacle.
func (f *Field) Clear() {
	for i := range f.lanes {
		f.lanes[i].Obstacles = f.lanes[i].Obstacles[:0]
	}
}

// LaneFor maps a lateral fraction in [0, 1) to a lane index.
func (f *Field) LaneFor(fx float64) int {
	lane := int(math.Floor(fx * float64(len(f.lanes))))
	return core.Clamp(lane, 0, len(f.lanes)-1)
}

// Spawn places one obstacle. fx and fz are uniform samples in [0, 1) for
// the lateral and depth position; left is the current lateral start of the
// field. It returns the lane the obstacle was added to.
func (f *Field) Spawn(fx, fz, left float64, color core.RGB) int {
	pos := mgl64.Vec3{
		left + f.width*fx,
		f.centerY,
		f.furthestZ + (f.nearestZ-f.furthestZ)*fz,
	}
	lane := f.LaneFor(fx)
	f.lanes[lane].Obstacles = append(f.lanes[lane].Obstacles, Obstacle{
		Pose:  rigid.FromTranslation(pos),
		Color: color,
	})
	return lane
}

// Advance moves every obstacle step toward the camera, spins it about its
// own vertical axis, and erases the ones whose depth crossed removeZ.
// It returns the number of obstacles removed.
func (f *Field) Advance(step, removeZ float64) int {
	removed := 0
	for li := range f.lanes {
		obs := f.lanes[li].Obstacles
		for i := 0; i < len(obs); {
			moved := f.move(obs[i].Pose, step, f.spin)
			if moved.T.Z() > removeZ {
				obs = append(obs[:i], obs[i+1:]...)
				removed++
				continue
			}
			obs[i].Pose = moved
			i++
		}
		f.lanes[li].Obstacles = obs
	}
	return removed
}

// Nudge moves every obstacle by one step forward (or back) without spawning,
// removing or colliding. Used to inspect a stopped game frame by frame.
func (f *Field) Nudge(step float64, forward bool) {
	spin := f.spin
	if !forward {
		step, spin = -step, f.unspin
	}
	for li := range f.lanes {
		obs := f.lanes[li].Obstacles
		for i := range obs {
			obs[i].Pose = f.move(obs[i].Pose, step, spin)
		}
	}
}

func (f *Field) move(pose rigid.Transform, step float64, spin rigid.Transform) rigid.Transform {
	t := pose.T
	pose = pose.WithTranslation(mgl64.Vec3{t.X(), t.Y(), t.Z() + step})
	return rigid.ApplyInFrame(pose, pose, spin)
}
