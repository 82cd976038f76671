package gpu

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseListFreesDependantsFirst(t *testing.T) {
	var order []string
	var l releaseList
	for _, name := range []string{"Instance", "Surface", "Adapter", "Device", "Queue", "Vertex Buffer", "Instancing Shader", "Instancing Pipeline"} {
		l.push(name, func() { order = append(order, name) })
	}

	released := l.releaseAll()

	assert.Equal(t, []string{"Instancing Pipeline", "Instancing Shader", "Vertex Buffer", "Queue", "Device", "Adapter", "Surface", "Instance"}, order)
	assert.Equal(t, order, released)
}

func TestReleaseListIsEmptyAfterRelease(t *testing.T) {
	calls := 0
	var l releaseList
	l.push("Buffer", func() { calls++ })

	l.releaseAll()
	assert.Empty(t, l.releaseAll())
	assert.Equal(t, 1, calls)
}

func TestInstanceBufferSizes(t *testing.T) {
	transforms, colors := instanceBufferSizes(3_500_000)
	assert.Equal(t, uint64(3_500_000*64), transforms)
	assert.Equal(t, uint64(3_500_000*12), colors)
}

func TestCheckAllocation(t *testing.T) {
	require.NoError(t, checkAllocation("Vertex Buffer", 96, 256<<20))
	require.NoError(t, checkAllocation("Vertex Buffer", 96, 0), "unknown limit is not enforced")

	transforms, _ := instanceBufferSizes(3_500_000)
	err := checkAllocation("Instance Transform Buffer", transforms, 128<<20)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Instance Transform Buffer")

	assert.Error(t, checkAllocation("Index Buffer", 0, 256<<20))
}

func TestChoosePresentMode(t *testing.T) {
	all := []wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeMailbox, wgpu.PresentModeImmediate}

	assert.Equal(t, wgpu.PresentModeFifo, choosePresentMode(all, true))
	assert.Equal(t, wgpu.PresentModeImmediate, choosePresentMode(all, false))
	assert.Equal(t, wgpu.PresentModeMailbox, choosePresentMode([]wgpu.PresentMode{wgpu.PresentModeFifo, wgpu.PresentModeMailbox}, false))
	assert.Equal(t, wgpu.PresentModeFifo, choosePresentMode([]wgpu.PresentMode{wgpu.PresentModeFifo}, false))
}
