package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera flies back and forth along Z between -Bound and Bound while
// rolling around Z at a constant rate.
type Camera struct {
	Position  mgl32.Vec3
	Rotation  mgl32.Vec3
	Direction mgl32.Vec3

	Bound       float32
	Speed       float32
	AngularRate float32
}

func NewCamera(cfg Config) *Camera {
	return &Camera{
		Position:    mgl32.Vec3{0, 0, -cfg.CameraBound},
		Rotation:    mgl32.Vec3{0, 0, 0},
		Direction:   mgl32.Vec3{0, 0, 1},
		Bound:       cfg.CameraBound,
		Speed:       cfg.CameraSpeed,
		AngularRate: cfg.CameraAngularRate,
	}
}

// Update advances the camera by dt seconds. The direction flips before the
// move, so z can overshoot a bound by at most one step.
func (c *Camera) Update(dt float32) {
	c.Rotation[2] += c.AngularRate * dt

	if c.Position.Z() >= c.Bound {
		c.Direction = mgl32.Vec3{0, 0, -1}
	} else if c.Position.Z() <= -c.Bound {
		c.Direction = mgl32.Vec3{0, 0, 1}
	}

	c.Position = c.Position.Add(c.Direction.Mul(c.Speed * dt))
}

// View is translate(Position) * rotate(Rotation), with no scale.
func (c *Camera) View() mgl32.Mat4 {
	translate := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())
	return translate.Mul4(EulerRotation(c.Rotation))
}

// Projection returns the GL style perspective matrix (clip z in [-w, w]).
func Projection(aspect float32, lens Lens) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(lens.FovY), aspect, lens.Near, lens.Far)
}
