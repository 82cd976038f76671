package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/instancing/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	transformStride = uint64(unsafe.Sizeof(mgl32.Mat4{}))
	colorStride     = uint64(unsafe.Sizeof(mgl32.Vec3{}))
)

// instanceBufferSizes returns the byte sizes of the transform and color
// streams for capacity instances.
func instanceBufferSizes(capacity int) (transforms, colors uint64) {
	return uint64(capacity) * transformStride, uint64(capacity) * colorStride
}

// checkAllocation fails when a buffer cannot exist on the device.
func checkAllocation(name string, size, limit uint64) error {
	if size == 0 {
		return fmt.Errorf("%w: %s buffer is empty", core.ErrAllocation, name)
	}
	if limit > 0 && size > limit {
		return fmt.Errorf("%w: %s buffer needs %d bytes, device limit is %d", core.ErrAllocation, name, size, limit)
	}
	return nil
}

func (r *Renderer) createBufferInit(name string, contents []byte, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	if err := checkAllocation(name, uint64(len(contents)), r.maxBufferSize); err != nil {
		return nil, err
	}
	buffer, err := r.device.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    name,
		Contents: contents,
		Usage:    usage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", core.ErrAllocation, name, err)
	}
	r.releases.push(name, buffer.Release)
	return buffer, nil
}

// Upload creates the geometry and instance buffers. Instance buffers cover
// the arena's full capacity and are never written again.
func (r *Renderer) Upload(mesh core.Mesh, instances *core.InstanceArena) error {
	if r.vertexBuffer != nil {
		return fmt.Errorf("%w: buffers already uploaded", core.ErrInitialization)
	}

	transformSize, colorSize := instanceBufferSizes(instances.Cap())
	if err := checkAllocation("Instance Transform Buffer", transformSize, r.maxBufferSize); err != nil {
		return err
	}
	if err := checkAllocation("Instance Color Buffer", colorSize, r.maxBufferSize); err != nil {
		return err
	}

	var err error
	if r.vertexBuffer, err = r.createBufferInit("Vertex Buffer", wgpu.ToBytes(mesh.Vertices), wgpu.BufferUsageVertex); err != nil {
		return err
	}
	if r.indexBuffer, err = r.createBufferInit("Index Buffer", wgpu.ToBytes(mesh.Indices), wgpu.BufferUsageIndex); err != nil {
		return err
	}
	if r.transformBuffer, err = r.createBufferInit("Instance Transform Buffer", wgpu.ToBytes(instances.Transforms), wgpu.BufferUsageVertex); err != nil {
		return err
	}
	if r.colorBuffer, err = r.createBufferInit("Instance Color Buffer", wgpu.ToBytes(instances.Colors), wgpu.BufferUsageVertex); err != nil {
		return err
	}
	r.indexCount = mesh.IndexCount()
	r.instanceCapacity = uint32(instances.Cap())

	r.logger.Infof("Uploaded %d instances (%d live), %.1f MiB of instance data",
		instances.Cap(), instances.Len(), float64(transformSize+colorSize)/(1024*1024))
	return nil
}

// UploadCamera writes u_View and u_Projection.
func (r *Renderer) UploadCamera(view, projection mgl32.Mat4) error {
	if err := r.queue.WriteBuffer(r.viewBuffer, 0, wgpu.ToBytes(view[:])); err != nil {
		return err
	}
	return r.queue.WriteBuffer(r.projectionBuffer, 0, wgpu.ToBytes(projection[:]))
}
