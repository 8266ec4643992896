// Package rigid provides the rigid-body transform algebra used for every pose
// in the game: camera, runner and obstacles. A Transform is a translation plus
// a unit quaternion rotation with no scale or shear.
package rigid

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is a rigid pose. Applying it to a point rotates first, then
// translates. Transforms are values; every operation returns a new one.
type Transform struct {
	T mgl64.Vec3 // translation
	R mgl64.Quat // rotation, always unit length
}

// Identity returns the transform that leaves every point in place.
func Identity() Transform {
	return Transform{R: mgl64.QuatIdent()}
}

// New creates a transform from a translation and a rotation.
// The rotation is normalized to keep the unit-norm invariant.
func New(t mgl64.Vec3, r mgl64.Quat) Transform {
	return Transform{T: t, R: r.Normalize()}
}

// FromTranslation creates a pure translation.
func FromTranslation(t mgl64.Vec3) Transform {
	return Transform{T: t, R: mgl64.QuatIdent()}
}

// FromRotation creates a pure rotation about the origin.
func FromRotation(r mgl64.Quat) Transform {
	return Transform{R: r.Normalize()}
}

// Translation returns the translation component.
func (a Transform) Translation() mgl64.Vec3 {
	return a.T
}

// Rotation returns the rotation component.
func (a Transform) Rotation() mgl64.Quat {
	return a.R
}

// WithTranslation returns a copy with the translation replaced.
func (a Transform) WithTranslation(t mgl64.Vec3) Transform {
	a.T = t
	return a
}

// WithRotation returns a copy with the rotation replaced.
func (a Transform) WithRotation(r mgl64.Quat) Transform {
	a.R = r.Normalize()
	return a
}

// Mul composes a with b. The result applies b first, then a.
func (a Transform) Mul(b Transform) Transform {
	return Transform{
		T: a.T.Add(a.R.Rotate(b.T)),
		R: a.R.Mul(b.R).Normalize(),
	}
}

// Compose is the function form of a.Mul(b).
func Compose(a, b Transform) Transform {
	return a.Mul(b)
}

// Inverse returns the transform that undoes a.
func Inverse(a Transform) Transform {
	ri := a.R.Inverse()
	return Transform{
		T: ri.Rotate(a.T).Mul(-1),
		R: ri,
	}
}

// Apply transforms a homogeneous vector. Positions (w=1) are rotated and
// translated; directions (w=0) are only rotated. W is carried through.
func (a Transform) Apply(v mgl64.Vec4) mgl64.Vec4 {
	r := a.R.Rotate(v.Vec3())
	if v.W() == 1 {
		r = r.Add(a.T)
	}
	return r.Vec4(v.W())
}

// ApplyPoint transforms a position.
func (a Transform) ApplyPoint(p mgl64.Vec3) mgl64.Vec3 {
	return a.Apply(p.Vec4(1)).Vec3()
}

// ApplyVector transforms a direction; translation does not affect it.
func (a Transform) ApplyVector(v mgl64.Vec3) mgl64.Vec3 {
	return a.Apply(v.Vec4(0)).Vec3()
}

// TranslationOnly returns the pure-translation factor of a.
func TranslationOnly(a Transform) Transform {
	return FromTranslation(a.T)
}

// RotationOnly returns the pure-rotation factor of a.
// a == TranslationOnly(a).Mul(RotationOnly(a)).
func RotationOnly(a Transform) Transform {
	return FromRotation(a.R)
}

// InFrame converts a delta expressed in pivot's local axes into the
// equivalent world-frame delta: pivot * delta * inverse(pivot).
func InFrame(pivot, delta Transform) Transform {
	return pivot.Mul(delta).Mul(Inverse(pivot))
}

// ApplyInFrame applies delta, expressed relative to pivot, to pose by left
// composition. With pivot == pose this spins or moves the object about its
// own axes; with a fixed pivot it moves the object along the pivot's axes
// regardless of the object's current orientation.
func ApplyInFrame(pose, pivot, delta Transform) Transform {
	return InFrame(pivot, delta).Mul(pose)
}

// Matrix returns the 4x4 homogeneous matrix T * R.
func (a Transform) Matrix() mgl64.Mat4 {
	return mgl64.Translate3D(a.T.X(), a.T.Y(), a.T.Z()).Mul4(a.R.Mat4())
}

// ApproxEqual reports whether a and b describe the same pose within eps.
// Translations are compared with an absolute tolerance per component.
// q and -q encode the same rotation and compare equal.
func (a Transform) ApproxEqual(b Transform, eps float64) bool {
	if !VecNear(a.T, b.T, eps) {
		return false
	}
	return math.Abs(math.Abs(a.R.Dot(b.R))-1) <= eps
}

// VecNear reports whether every component of a and b differs by at most eps.
func VecNear(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// RotX returns a rotation of deg degrees about the X axis.
func RotX(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), mgl64.Vec3{1, 0, 0})
}

// RotY returns a rotation of deg degrees about the Y axis.
func RotY(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), mgl64.Vec3{0, 1, 0})
}

// RotZ returns a rotation of deg degrees about the Z axis.
func RotZ(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), mgl64.Vec3{0, 0, 1})
}

// TiltSine returns the Z component of q. For a pure roll this is the sine of
// half the roll angle, positive for counter-clockwise roll.
func TiltSine(q mgl64.Quat) float64 {
	return q.V[2]
}

// HalfAngleSine returns sin(deg/2) for an angle in degrees.
func HalfAngleSine(deg float64) float64 {
	return math.Sin(0.5 * mgl64.DegToRad(deg))
}
