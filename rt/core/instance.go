package core

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// ColorLevels is the number of discrete steps per color channel.
const ColorLevels = 256

// Instance is one drawn copy of the mesh.
type Instance struct {
	Transform mgl32.Mat4
	Color     mgl32.Vec3
}

// InstanceArena owns the per-instance streams for the whole process.
// Both slices are allocated once for the configured maximum and indexed by
// instance id; slots past Len stay zero.
type InstanceArena struct {
	Transforms []mgl32.Mat4
	Colors     []mgl32.Vec3
	count      int
}

func NewInstanceArena(maxInstances int) *InstanceArena {
	if maxInstances < 0 {
		maxInstances = 0
	}
	return &InstanceArena{
		Transforms: make([]mgl32.Mat4, maxInstances),
		Colors:     make([]mgl32.Vec3, maxInstances),
	}
}

func (a *InstanceArena) Len() int { return a.count }
func (a *InstanceArena) Cap() int { return len(a.Transforms) }

func (a *InstanceArena) At(i int) Instance {
	return Instance{Transform: a.Transforms[i], Color: a.Colors[i]}
}

// Generator places instances uniformly inside a cube of edge Extent
// centered on the origin.
type Generator struct {
	Extent int
	Rand   *rand.Rand
}

// NewGenerator returns a PCG backed generator. A zero seed uses the clock.
func NewGenerator(extent int, seed uint64) *Generator {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Generator{
		Extent: extent,
		Rand:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Generate fills the first count slots of the arena. It fails without
// touching the arena when count does not fit.
func (g *Generator) Generate(arena *InstanceArena, count int) error {
	if count < 0 || count > arena.Cap() {
		return fmt.Errorf("%w: requested %d, maximum %d", ErrInstanceLimit, count, arena.Cap())
	}
	if g.Extent <= 0 {
		return fmt.Errorf("%w: scene extent must be positive, got %d", ErrInvalidConfig, g.Extent)
	}

	for i := 0; i < count; i++ {
		placement := NewPlacement(g.position())
		arena.Transforms[i] = placement.Matrix()
		arena.Colors[i] = g.color()
	}
	arena.count = count
	return nil
}

// position samples each axis at unit resolution in [-Extent/2, Extent/2).
func (g *Generator) position() mgl32.Vec3 {
	half := float32(g.Extent) * 0.5
	return mgl32.Vec3{
		float32(g.Rand.IntN(g.Extent)) - half,
		float32(g.Rand.IntN(g.Extent)) - half,
		float32(g.Rand.IntN(g.Extent)) - half,
	}
}

func (g *Generator) color() mgl32.Vec3 {
	return mgl32.Vec3{
		float32(g.Rand.IntN(ColorLevels)) / ColorLevels,
		float32(g.Rand.IntN(ColorLevels)) / ColorLevels,
		float32(g.Rand.IntN(ColorLevels)) / ColorLevels,
	}
}
