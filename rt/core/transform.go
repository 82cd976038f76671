package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Placement is the decomposed form of an instance transform.
// Rotation holds Euler angles in radians.
type Placement struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

func NewPlacement(position mgl32.Vec3) Placement {
	return Placement{
		Position: position,
		Rotation: mgl32.Vec3{0, 0, 0},
		Scale:    mgl32.Vec3{1, 1, 1},
	}
}

// Matrix composes M = T * R * S.
func (p Placement) Matrix() mgl32.Mat4 {
	translate := mgl32.Translate3D(p.Position.X(), p.Position.Y(), p.Position.Z())
	rotate := EulerRotation(p.Rotation)
	scale := mgl32.Scale3D(p.Scale.X(), p.Scale.Y(), p.Scale.Z())

	return translate.Mul4(rotate).Mul4(scale)
}

// EulerQuat builds the quaternion for pitch/yaw/roll angles (x, y, z),
// applied as Rz * Ry * Rx.
func EulerQuat(euler mgl32.Vec3) mgl32.Quat {
	qx := mgl32.QuatRotate(euler.X(), mgl32.Vec3{1, 0, 0})
	qy := mgl32.QuatRotate(euler.Y(), mgl32.Vec3{0, 1, 0})
	qz := mgl32.QuatRotate(euler.Z(), mgl32.Vec3{0, 0, 1})
	return qz.Mul(qy).Mul(qx)
}

func EulerRotation(euler mgl32.Vec3) mgl32.Mat4 {
	return EulerQuat(euler).Mat4()
}
