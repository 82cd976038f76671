package core

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCameraStartsAtNegativeBound(t *testing.T) {
	cam := NewCamera(DefaultConfig())

	assert.Equal(t, mgl32.Vec3{0, 0, -1000}, cam.Position)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, cam.Direction)
	assert.Equal(t, mgl32.Vec3{}, cam.Rotation)
}

func TestCameraRollAccumulates(t *testing.T) {
	cam := NewCamera(DefaultConfig())
	for i := 0; i < 10; i++ {
		cam.Update(0.1)
	}
	assert.InDelta(t, 0.25, cam.Rotation.Z(), 1e-5)
	assert.Equal(t, float32(0), cam.Rotation.X())
	assert.Equal(t, float32(0), cam.Rotation.Y())
}

func TestCameraStaysWithinOneStepOfBound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CameraBound = 10
	cfg.CameraSpeed = 50
	cam := NewCamera(cfg)

	r := rand.New(rand.NewPCG(1, 2))
	const maxDt = float32(0.05)
	eps := cam.Speed*maxDt + 1e-3

	flips := 0
	prevDir := cam.Direction
	for i := 0; i < 20000; i++ {
		before := cam.Position.Z()
		cam.Update(r.Float32() * maxDt)

		z := cam.Position.Z()
		require.GreaterOrEqual(t, z, -cam.Bound-eps, "step %d", i)
		require.LessOrEqual(t, z, cam.Bound+eps, "step %d", i)

		if cam.Direction != prevDir {
			flips++
			// A flip happens only when the previous position reached a bound.
			if cam.Direction.Z() < 0 {
				assert.GreaterOrEqual(t, before, cam.Bound, "step %d", i)
			} else {
				assert.LessOrEqual(t, before, -cam.Bound, "step %d", i)
			}
		}
		prevDir = cam.Direction
	}
	assert.Greater(t, flips, 10)
}

func TestCameraReversesAtPositiveBound(t *testing.T) {
	cam := NewCamera(DefaultConfig())
	cam.Position = mgl32.Vec3{0, 0, 1000}

	cam.Update(1)

	assert.Equal(t, mgl32.Vec3{0, 0, -1}, cam.Direction)
	assert.InDelta(t, 950, cam.Position.Z(), 1e-3)
}

func TestCameraViewTranslationOnly(t *testing.T) {
	cam := NewCamera(DefaultConfig())
	view := cam.View()

	assert.Equal(t, mgl32.Vec4{0, 0, -1000, 1}, view.Col(3))
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			want := float32(0)
			if row == col {
				want = 1
			}
			assert.Equal(t, want, view.At(row, col))
		}
	}
}

func TestCameraViewIsTranslateTimesRotate(t *testing.T) {
	cam := NewCamera(DefaultConfig())
	cam.Position = mgl32.Vec3{1, 2, 3}
	cam.Rotation = mgl32.Vec3{0, 0, 0.7}

	want := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.HomogRotate3DZ(0.7))
	assert.True(t, cam.View().ApproxEqualThreshold(want, 1e-6))

	// Columns of the rotation block stay unit length: no scale term.
	view := cam.View()
	for col := 0; col < 3; col++ {
		assert.InDelta(t, 1, view.Col(col).Vec3().Len(), 1e-6)
	}
}

func TestProjectionMatchesPerspectiveFormula(t *testing.T) {
	lens := DefaultLens()
	aspect := float32(4.0 / 3.0)
	proj := Projection(aspect, lens)

	f := 1 / math.Tan(60*math.Pi/180/2)
	near, far := 0.1, 10000.0

	want := [4][4]float64{
		{f / (4.0 / 3.0), 0, 0, 0},
		{0, f, 0, 0},
		{0, 0, (far + near) / (near - far), 2 * far * near / (near - far)},
		{0, 0, -1, 0},
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			assert.InDelta(t, want[row][col], float64(proj.At(row, col)), 1e-4, "m[%d][%d]", row, col)
		}
	}
}
