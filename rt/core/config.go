package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultWindowWidth  = 800
	DefaultWindowHeight = 600
	DefaultWindowTitle  = "OPENGL | Instancing"

	// 3.5M cubes: 42M triangles, 28M vertices.
	DefaultMaxInstances = 3_500_000
	DefaultSceneExtent  = 2000

	DefaultCameraBound       = 1000.0
	DefaultCameraSpeed       = 50.0
	DefaultCameraAngularRate = 0.25
)

// Lens describes the perspective projection. FovY is in degrees.
type Lens struct {
	FovY float32
	Near float32
	Far  float32
}

func DefaultLens() Lens {
	return Lens{FovY: 60, Near: 0.1, Far: 10000}
}

type Config struct {
	WindowWidth  int
	WindowHeight int
	WindowTitle  string
	VSync        bool

	// MaxInstances sizes the instance buffers and the draw call.
	MaxInstances int
	// InstanceCount is the number of generated instances, 0 means MaxInstances.
	InstanceCount int
	// SceneExtent is the edge length of the cubic placement volume.
	SceneExtent int
	// Seed for instance placement; 0 picks a time based seed.
	Seed uint64

	CameraBound       float32
	CameraSpeed       float32
	CameraAngularRate float32

	Lens       Lens
	ClearColor mgl32.Vec4

	Debug bool
}

func DefaultConfig() Config {
	return Config{
		WindowWidth:       DefaultWindowWidth,
		WindowHeight:      DefaultWindowHeight,
		WindowTitle:       DefaultWindowTitle,
		VSync:             false,
		MaxInstances:      DefaultMaxInstances,
		SceneExtent:       DefaultSceneExtent,
		CameraBound:       DefaultCameraBound,
		CameraSpeed:       DefaultCameraSpeed,
		CameraAngularRate: DefaultCameraAngularRate,
		Lens:              DefaultLens(),
		ClearColor:        mgl32.Vec4{0.1, 0.2, 0.3, 1.0},
	}
}

// WithDefaults returns a copy where zero fields take their default values.
// InstanceCount is resolved against MaxInstances.
func (c Config) WithDefaults() Config {
	def := DefaultConfig()
	if c.WindowWidth <= 0 {
		c.WindowWidth = def.WindowWidth
	}
	if c.WindowHeight <= 0 {
		c.WindowHeight = def.WindowHeight
	}
	if c.WindowTitle == "" {
		c.WindowTitle = def.WindowTitle
	}
	if c.MaxInstances == 0 {
		c.MaxInstances = def.MaxInstances
	}
	if c.InstanceCount == 0 {
		c.InstanceCount = c.MaxInstances
	}
	if c.SceneExtent == 0 {
		c.SceneExtent = def.SceneExtent
	}
	if c.CameraBound == 0 {
		c.CameraBound = def.CameraBound
	}
	if c.CameraSpeed == 0 {
		c.CameraSpeed = def.CameraSpeed
	}
	if c.CameraAngularRate == 0 {
		c.CameraAngularRate = def.CameraAngularRate
	}
	if c.Lens == (Lens{}) {
		c.Lens = def.Lens
	}
	if c.ClearColor == (mgl32.Vec4{}) {
		c.ClearColor = def.ClearColor
	}
	return c
}

// Validate rejects configurations that would fail later at upload or draw time.
func (c Config) Validate() error {
	if c.MaxInstances <= 0 {
		return fmt.Errorf("%w: max instances must be positive, got %d", ErrInvalidConfig, c.MaxInstances)
	}
	if c.InstanceCount < 0 || c.InstanceCount > c.MaxInstances {
		return fmt.Errorf("%w: requested %d, maximum %d", ErrInstanceLimit, c.InstanceCount, c.MaxInstances)
	}
	if c.SceneExtent <= 0 {
		return fmt.Errorf("%w: scene extent must be positive, got %d", ErrInvalidConfig, c.SceneExtent)
	}
	if c.CameraBound <= 0 {
		return fmt.Errorf("%w: camera bound must be positive, got %f", ErrInvalidConfig, c.CameraBound)
	}
	if c.Lens.Near <= 0 || c.Lens.Far <= c.Lens.Near {
		return fmt.Errorf("%w: bad clip planes near=%f far=%f", ErrInvalidConfig, c.Lens.Near, c.Lens.Far)
	}
	if c.Lens.FovY <= 0 || c.Lens.FovY >= 180 {
		return fmt.Errorf("%w: field of view must be in (0, 180), got %f", ErrInvalidConfig, c.Lens.FovY)
	}
	return nil
}
