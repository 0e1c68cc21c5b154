package util

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldDown    = mgl32.Vec3{0, -1, 0}
	localForward = mgl32.Vec3{0, 0, -1}
	localRight   = mgl32.Vec3{1, 0, 0}
)

type Transform struct {
	translation mgl32.Vec3
	rotation    mgl32.Quat
	scale       mgl32.Vec3
	nameOfOwner string
}

func (t *Transform) GetName() string {
	return t.nameOfOwner
}
func (t *Transform) SetName(name string) {
	t.nameOfOwner = name
}

func NewDefaultTransform(name string) *Transform {
	return &Transform{
		translation: mgl32.Vec3{0, 0, 0},
		rotation:    mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
		nameOfOwner: name,
	}
}

func NewTransform(position mgl32.Vec3, rotation mgl32.Quat, scale mgl32.Vec3) *Transform {
	return &Transform{
		translation: position,
		rotation:    rotation,
		scale:       scale,
	}
}

func NewTransformFromLookAt(position, target, up mgl32.Vec3) *Transform {
	t := &Transform{
		translation: position,
		rotation:    mgl32.QuatIdent(),
		scale:       mgl32.Vec3{1, 1, 1},
	}
	t.SetLookAt(target, up)
	return t
}

// GetTransformMatrix uses the translation, rotation, and scale to create a matrix that represents the transformation of the object.
func (t *Transform) GetTransformMatrix() mgl32.Mat4 {
	translation := mgl32.Translate3D(t.translation.X(), t.translation.Y(), t.translation.Z())
	rotation := t.rotation.Mat4()
	scale := mgl32.Scale3D(t.scale.X(), t.scale.Y(), t.scale.Z())
	return translation.Mul4(rotation).Mul4(scale)
}

// GetViewMatrix returns the inverse of the transform matrix. Use this for cameras.
func (t *Transform) GetViewMatrix() mgl32.Mat4 {
	return t.GetTransformMatrix().Inv()
}

func (t *Transform) GetPosition() mgl32.Vec3 {
	return t.translation
}
func (t *Transform) SetPosition(position mgl32.Vec3) {
	t.translation = position
}

// Translate moves the transform by delta in world space.
func (t *Transform) Translate(delta mgl32.Vec3) {
	t.translation = t.translation.Add(delta)
}

func (t *Transform) GetRotation() mgl32.Quat {
	return t.rotation
}
func (t *Transform) SetRotation(rotation mgl32.Quat) {
	t.rotation = rotation
}

func (t *Transform) GetScale() mgl32.Vec3 {
	return t.scale
}
func (t *Transform) SetScale(scale mgl32.Vec3) {
	t.scale = scale
}

func (t *Transform) GetForward() mgl32.Vec3 {
	return t.rotation.Rotate(localForward)
}

func (t *Transform) GetRight() mgl32.Vec3 {
	return t.rotation.Rotate(localRight)
}

func (t *Transform) GetUp() mgl32.Vec3 {
	return t.rotation.Rotate(WorldUp)
}

func (t *Transform) SetLookAt(target, up mgl32.Vec3) {
	direction := target.Sub(t.translation)
	if direction.Len() < 1e-6 {
		return
	}
	t.rotation = lookRotation(direction, up)
}

// RotateAround orbits the transform around point by angle degrees about axis.
// Position and orientation are both rotated.
func (t *Transform) RotateAround(point, axis mgl32.Vec3, angle float32) {
	q := mgl32.QuatRotate(mgl32.DegToRad(angle), axis.Normalize())
	t.translation = point.Add(q.Rotate(t.translation.Sub(point)))
	t.rotation = q.Mul(t.rotation).Normalize()
}

// lookRotation builds an orientation whose -Z axis points along forward.
func lookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	f := forward.Normalize()
	right := f.Cross(up)
	if right.Len() < 1e-6 {
		// looking straight along up, no roll reference available
		return mgl32.QuatBetweenVectors(localForward, f)
	}
	right = right.Normalize()
	trueUp := right.Cross(f)
	basis := mgl32.Mat3FromCols(right, trueUp, f.Mul(-1))
	return mgl32.Mat4ToQuat(basis.Mat4()).Normalize()
}

func (t *Transform) String() string {
	return fmt.Sprintf("%s pos: %v fwd: %v", t.nameOfOwner, t.translation, t.GetForward())
}
