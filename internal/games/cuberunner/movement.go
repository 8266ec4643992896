package cuberunner

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/cuberunner/internal/config"
	"github.com/vovakirdan/cuberunner/internal/rigid"
)

// Rig is the camera and runner pair. Movement, tilt and jump always update
// both together.
type Rig struct {
	Camera rigid.Transform
	Runner rigid.Transform
}

// Offsets are the world positions that follow the camera laterally so the
// field, ground and lights stay centered on the player.
type Offsets struct {
	FieldLeft float64
	GroundX   float64
	Light1X   float64
	Light2X   float64
}

func (o *Offsets) shift(dx float64) {
	o.FieldLeft += dx
	o.GroundX += dx
	o.Light1X += dx
	o.Light2X += dx
}

// steering moves and tilts the rig in response to held directions.
type steering struct {
	origin    rigid.Transform // untilted starting camera
	step      float64
	tiltStep  float64
	relaxStep float64
	relaxEps  float64
	maxSine   float64
}

func newSteering(cfg config.PlayerConfig) steering {
	cam := cfg.Camera
	return steering{
		origin:    rigid.FromTranslation(mgl64.Vec3{cam[0], cam[1], cam[2]}),
		step:      cfg.LateralStep,
		tiltStep:  cfg.TiltStepDegrees,
		relaxStep: cfg.RelaxStepDegrees,
		relaxEps:  cfg.RelaxEpsilon,
		maxSine:   rigid.HalfAngleSine(cfg.MaxTiltDegrees),
	}
}

// apply runs one tick of steering. Left has priority when both are held.
func (s steering) apply(rig *Rig, off *Offsets, left, right bool) {
	switch {
	case left:
		if rigid.TiltSine(rig.Camera.R) < s.maxSine {
			s.roll(rig, s.tiltStep)
		}
		s.slide(rig, off, -s.step)
	case right:
		if rigid.TiltSine(rig.Camera.R) > -s.maxSine {
			s.roll(rig, -s.tiltStep)
		}
		s.slide(rig, off, s.step)
	default:
		s.relax(rig)
	}
}

// roll tilts camera and runner about the current camera's view axis.
func (s steering) roll(rig *Rig, deg float64) {
	delta := rigid.FromRotation(rigid.RotZ(deg))
	rig.Camera = rigid.ApplyInFrame(rig.Camera, rig.Camera, delta)
	rig.Runner = rigid.ApplyInFrame(rig.Runner, rig.Camera, delta)
}

// slide translates along the untilted camera's X axis and drags the
// field offsets along.
func (s steering) slide(rig *Rig, off *Offsets, dx float64) {
	delta := rigid.FromTranslation(mgl64.Vec3{dx, 0, 0})
	rig.Camera = rigid.ApplyInFrame(rig.Camera, s.origin, delta)
	rig.Runner = rigid.ApplyInFrame(rig.Runner, s.origin, delta)
	off.shift(dx)
}

// lift raises or lowers camera and runner along the untilted vertical axis.
func (s steering) lift(rig *Rig, dy float64) {
	if dy == 0 {
		return
	}
	delta := rigid.FromTranslation(mgl64.Vec3{0, dy, 0})
	rig.Camera = rigid.ApplyInFrame(rig.Camera, s.origin, delta)
	rig.Runner = rigid.ApplyInFrame(rig.Runner, s.origin, delta)
}

// relax rolls the rig back toward level, snapping once nearly level.
func (s steering) relax(rig *Rig) {
	sine := rigid.TiltSine(rig.Camera.R)
	switch {
	case math.Abs(sine) < s.relaxEps:
		rig.Camera = rig.Camera.WithRotation(mgl64.QuatIdent())
		rt := rig.Runner.T
		rig.Runner = rigid.New(mgl64.Vec3{rig.Camera.T.X(), rt.Y(), rt.Z()}, mgl64.QuatIdent())
	case sine < 0:
		s.roll(rig, s.relaxStep)
	default:
		s.roll(rig, -s.relaxStep)
	}
}
