package behaviour

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Canonical world axes. Orientation vectors are these rotated by the
// current rotation.
var (
	ForwardVector = mgl32.Vec3{0, 0, -1}
	RightVector   = mgl32.Vec3{1, 0, 0}
	UpVector      = mgl32.Vec3{0, 1, 0}
)

// Transform is the placement state of anything in the world.
type Transform struct {
	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3

	forward mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3
}

// NewTransform returns a transform at the origin with identity rotation and unit scale.
func NewTransform() Transform {
	t := Transform{scale: mgl32.Vec3{1, 1, 1}}
	t.SetRotation(mgl32.QuatIdent())
	return t
}

func (t *Transform) Position() mgl32.Vec3 { return t.position }
func (t *Transform) Rotation() mgl32.Quat { return t.rotation }
func (t *Transform) Scale() mgl32.Vec3    { return t.scale }

func (t *Transform) ForwardVector() mgl32.Vec3 { return t.forward }
func (t *Transform) RightVector() mgl32.Vec3   { return t.right }
func (t *Transform) UpVector() mgl32.Vec3      { return t.up }

// SetPosition places the transform at p.
func (t *Transform) SetPosition(p mgl32.Vec3) {
	t.position = p
}

// SetPositionXYZ is SetPosition with separate coordinates.
func (t *Transform) SetPositionXYZ(x, y, z float32) {
	t.SetPosition(mgl32.Vec3{x, y, z})
}

// Move translates the position by offset.
func (t *Transform) Move(offset mgl32.Vec3) {
	t.position = t.position.Add(offset)
}

// MoveXYZ is Move with separate coordinates.
func (t *Transform) MoveXYZ(x, y, z float32) {
	t.Move(mgl32.Vec3{x, y, z})
}

// SetRotation assigns q and rotates the orientation vectors to match.
func (t *Transform) SetRotation(q mgl32.Quat) {
	t.rotation = q
	t.forward = q.Rotate(ForwardVector).Normalize()
	t.right = q.Rotate(RightVector).Normalize()
	t.up = q.Rotate(UpVector).Normalize()
}

// SetRotationEuler sets the rotation from Euler angles in radians,
// applied as pitch (x), yaw (y), roll (z).
func (t *Transform) SetRotationEuler(angles mgl32.Vec3) {
	t.SetRotation(mgl32.AnglesToQuat(angles.X(), angles.Y(), angles.Z(), mgl32.XYZ))
}

// RotateBy rotates by degrees around axis. A global rotation happens in
// world space regardless of the current facing; a local one is relative to
// it.
func (t *Transform) RotateBy(degrees float32, axis mgl32.Vec3, global bool) {
	delta := mgl32.QuatRotate(mgl32.DegToRad(degrees), axis.Normalize())
	if global {
		t.SetRotation(delta.Mul(t.rotation))
	} else {
		t.SetRotation(t.rotation.Mul(delta))
	}
}

// SetScale assigns a per-axis scale.
func (t *Transform) SetScale(s mgl32.Vec3) {
	t.scale = s
}

// SetUniformScale scales every axis by s.
func (t *Transform) SetUniformScale(s float32) {
	t.SetScale(mgl32.Vec3{s, s, s})
}

// ModelMatrix composes translation, rotation and scale, translation outermost.
func (t *Transform) ModelMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.position.X(), t.position.Y(), t.position.Z())
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return translation.Mul4(t.rotation.Mat4()).Mul4(scale)
}
