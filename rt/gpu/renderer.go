package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/gekko3d/instancing/rt/core"
	"github.com/gekko3d/instancing/rt/logging"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

type RendererConfig struct {
	VSync      bool
	ClearColor mgl32.Vec4
}

// Renderer owns the WebGPU context and everything created from it.
type Renderer struct {
	logger logging.Logger

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	config   *wgpu.SurfaceConfiguration

	maxBufferSize uint64
	clearColor    wgpu.Color

	shader           *wgpu.ShaderModule
	pipeline         *wgpu.RenderPipeline
	bindGroup        *wgpu.BindGroup
	viewBuffer       *wgpu.Buffer
	projectionBuffer *wgpu.Buffer

	vertexBuffer     *wgpu.Buffer
	indexBuffer      *wgpu.Buffer
	transformBuffer  *wgpu.Buffer
	colorBuffer      *wgpu.Buffer
	indexCount       uint32
	instanceCapacity uint32

	depthTexture *wgpu.Texture
	depthView    *wgpu.TextureView

	frame    *frame
	releases releaseList
}

// frame is the in-flight target between Clear and Present.
type frame struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

func (f *frame) release() {
	if f.pass != nil {
		f.pass.Release()
	}
	if f.encoder != nil {
		f.encoder.Release()
	}
	if f.view != nil {
		f.view.Release()
	}
	if f.texture != nil {
		f.texture.Release()
	}
}

// NewRenderer brings up the device, configures the window surface and builds
// the instancing pipeline. Anything created before a failure is released.
func NewRenderer(window *glfw.Window, cfg RendererConfig, logger logging.Logger) (*Renderer, error) {
	r := &Renderer{
		logger:     logger,
		clearColor: wgpu.Color{R: float64(cfg.ClearColor[0]), G: float64(cfg.ClearColor[1]), B: float64(cfg.ClearColor[2]), A: float64(cfg.ClearColor[3])},
	}

	width, height := window.GetFramebufferSize()
	if err := r.createContext(window, width, height, cfg.VSync); err != nil {
		r.Release()
		return nil, err
	}
	if err := r.createDepthTexture(); err != nil {
		r.Release()
		return nil, err
	}
	if err := r.createPipeline(); err != nil {
		r.Release()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) createContext(window *glfw.Window, width, height int, vsync bool) error {
	r.instance = wgpu.CreateInstance(nil)
	if r.instance == nil {
		return fmt.Errorf("%w: webgpu instance unavailable", core.ErrInitialization)
	}
	r.releases.push("Instance", r.instance.Release)

	r.surface = r.instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	if r.surface == nil {
		return fmt.Errorf("%w: window surface unavailable", core.ErrInitialization)
	}
	r.releases.push("Surface", r.surface.Release)

	adapter, err := r.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: r.surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return fmt.Errorf("%w: request adapter: %v", core.ErrInitialization, err)
	}
	r.adapter = adapter
	r.releases.push("Adapter", adapter.Release)

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Instancing Device",
	})
	if err != nil {
		return fmt.Errorf("%w: request device: %v", core.ErrInitialization, err)
	}
	r.device = device
	r.releases.push("Device", device.Release)

	r.queue = device.GetQueue()
	r.releases.push("Queue", r.queue.Release)

	r.maxBufferSize = device.GetLimits().Limits.MaxBufferSize

	caps := r.surface.GetCapabilities(adapter)
	if len(caps.Formats) == 0 || len(caps.AlphaModes) == 0 {
		return fmt.Errorf("%w: surface is not presentable with this adapter", core.ErrInitialization)
	}
	r.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: choosePresentMode(caps.PresentModes, vsync),
		AlphaMode:   caps.AlphaModes[0],
	}
	r.surface.Configure(adapter, device, r.config)

	r.logger.Infof("Surface %dx%d format=%v present=%v, max buffer %d bytes",
		width, height, r.config.Format, r.config.PresentMode, r.maxBufferSize)
	return nil
}

// choosePresentMode prefers tearing-allowed presentation when vsync is off.
// Fifo is always supported.
func choosePresentMode(supported []wgpu.PresentMode, vsync bool) wgpu.PresentMode {
	if vsync {
		return wgpu.PresentModeFifo
	}
	for _, preferred := range []wgpu.PresentMode{wgpu.PresentModeImmediate, wgpu.PresentModeMailbox} {
		for _, mode := range supported {
			if mode == preferred {
				return mode
			}
		}
	}
	return wgpu.PresentModeFifo
}

// Resize reconfigures the surface and depth attachment. Zero sizes are
// ignored; a minimized window keeps the previous configuration.
func (r *Renderer) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if r.config.Width == uint32(width) && r.config.Height == uint32(height) {
		return nil
	}
	r.config.Width = uint32(width)
	r.config.Height = uint32(height)
	r.surface.Configure(r.adapter, r.device, r.config)
	return r.createDepthTexture()
}

// Clear acquires the next surface texture and opens a render pass that
// clears color and depth.
func (r *Renderer) Clear() error {
	if r.frame != nil {
		r.frame.release()
		r.frame = nil
	}

	f := &frame{}
	var err error
	if f.texture, err = r.surface.GetCurrentTexture(); err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	if f.view, err = f.texture.CreateView(nil); err != nil {
		f.release()
		return fmt.Errorf("surface view: %w", err)
	}
	if f.encoder, err = r.device.CreateCommandEncoder(nil); err != nil {
		f.release()
		return fmt.Errorf("command encoder: %w", err)
	}

	f.pass = f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Instancing Pass",
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       f.view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.clearColor,
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            r.depthView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	r.frame = f
	return nil
}

// DrawInstanced issues one indexed draw of the uploaded mesh for
// instanceCount instances.
func (r *Renderer) DrawInstanced(indexCount, instanceCount uint32) {
	if r.frame == nil || r.vertexBuffer == nil {
		return
	}
	if instanceCount > r.instanceCapacity {
		r.logger.Warnf("clamping draw of %d instances to buffer capacity %d", instanceCount, r.instanceCapacity)
		instanceCount = r.instanceCapacity
	}
	if indexCount > r.indexCount {
		indexCount = r.indexCount
	}

	pass := r.frame.pass
	pass.SetPipeline(r.pipeline)
	pass.SetBindGroup(0, r.bindGroup, nil)
	pass.SetVertexBuffer(SlotGeometry, r.vertexBuffer, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(SlotTransform, r.transformBuffer, 0, wgpu.WholeSize)
	pass.SetVertexBuffer(SlotColor, r.colorBuffer, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(r.indexBuffer, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
	pass.DrawIndexed(indexCount, instanceCount, 0, 0, 0)
}

// Present closes the pass, submits the frame and swaps.
func (r *Renderer) Present() error {
	f := r.frame
	if f == nil {
		return nil
	}
	r.frame = nil
	defer f.release()

	if err := f.pass.End(); err != nil {
		return fmt.Errorf("end render pass: %w", err)
	}
	cmd, err := f.encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	defer cmd.Release()

	r.queue.Submit(cmd)
	r.surface.Present()
	return nil
}

// Release frees GPU objects, dependants first, ending with the context.
// Safe to call more than once.
func (r *Renderer) Release() {
	if r.frame != nil {
		r.frame.release()
		r.frame = nil
	}
	r.releaseDepthTexture()
	released := r.releases.releaseAll()
	if len(released) > 0 {
		r.logger.Debugf("Released %v", released)
	}
	r.vertexBuffer = nil
}
