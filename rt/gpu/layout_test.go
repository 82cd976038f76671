package gpu

import (
	"testing"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeometryStreamStepsPerVertex(t *testing.T) {
	layouts := InstancingLayouts()
	require.Len(t, layouts, 3)

	geo := layouts[SlotGeometry]
	assert.Equal(t, wgpu.VertexStepModeVertex, geo.StepMode)
	assert.Equal(t, uint64(12), geo.ArrayStride)
	require.Len(t, geo.Attributes, 1)
	assert.Equal(t, wgpu.VertexAttribute{
		Format:         wgpu.VertexFormatFloat32x3,
		Offset:         0,
		ShaderLocation: 0,
	}, geo.Attributes[0])
}

func TestTransformStreamStepsPerInstance(t *testing.T) {
	xf := InstancingLayouts()[SlotTransform]

	assert.Equal(t, wgpu.VertexStepModeInstance, xf.StepMode)
	assert.Equal(t, uint64(unsafe.Sizeof(mgl32.Mat4{})), xf.ArrayStride)
	require.Len(t, xf.Attributes, 4)
	for col, attr := range xf.Attributes {
		assert.Equal(t, uint32(3+col), attr.ShaderLocation)
		assert.Equal(t, uint64(16*col), attr.Offset)
		assert.Equal(t, wgpu.VertexFormatFloat32x4, attr.Format)
	}
}

func TestColorStreamStepsPerInstance(t *testing.T) {
	color := InstancingLayouts()[SlotColor]

	assert.Equal(t, wgpu.VertexStepModeInstance, color.StepMode)
	assert.Equal(t, uint64(unsafe.Sizeof(mgl32.Vec3{})), color.ArrayStride)
	require.Len(t, color.Attributes, 1)
	assert.Equal(t, uint32(7), color.Attributes[0].ShaderLocation)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, color.Attributes[0].Format)
}

func TestLayoutLocationsDoNotOverlap(t *testing.T) {
	seen := map[uint32]bool{}
	for _, layout := range InstancingLayouts() {
		for _, attr := range layout.Attributes {
			assert.False(t, seen[attr.ShaderLocation], "location %d bound twice", attr.ShaderLocation)
			seen[attr.ShaderLocation] = true
		}
	}
	assert.Len(t, seen, 6)
}

func TestCreateVertexBufferLayoutSkipsUntaggedFields(t *testing.T) {
	type padded struct {
		UV   [2]float32 `gekko:"layout" location:"1" format:"float2"`
		Pad  [2]float32
		Tint [4]float32 `gekko:"layout" location:"2" format:"float4"`
	}
	layout := createVertexBufferLayout(padded{}, wgpu.VertexStepModeVertex)

	assert.Equal(t, uint64(32), layout.ArrayStride)
	require.Len(t, layout.Attributes, 2)
	assert.Equal(t, uint64(16), layout.Attributes[1].Offset)
}

func TestCreateVertexBufferLayoutPanicsOnSizeMismatch(t *testing.T) {
	type wrong struct {
		P [2]float32 `gekko:"layout" location:"0" format:"float3"`
	}
	assert.Panics(t, func() {
		createVertexBufferLayout(wrong{}, wgpu.VertexStepModeVertex)
	})
	assert.Panics(t, func() {
		createVertexBufferLayout(42, wgpu.VertexStepModeVertex)
	})
}
