package gpu

import (
	"fmt"
	"unsafe"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/gekko3d/instancing/rt/core"
	"github.com/gekko3d/instancing/rt/shaders"
	"github.com/go-gl/mathgl/mgl32"
)

const depthFormat = wgpu.TextureFormatDepth24Plus

var matrixUniformSize = uint64(unsafe.Sizeof(mgl32.Mat4{}))

func (r *Renderer) createPipeline() error {
	shader, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "Instancing Shader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.InstancingWGSL},
	})
	if err != nil {
		return fmt.Errorf("%w: instancing.wgsl: %v", core.ErrShaderCompile, err)
	}
	r.shader = shader
	r.releases.push("Instancing Shader", shader.Release)

	if r.viewBuffer, err = r.createUniformBuffer("u_View"); err != nil {
		return err
	}
	if r.projectionBuffer, err = r.createUniformBuffer("u_Projection"); err != nil {
		return err
	}

	bgl, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Camera BGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformLayoutEntry(0),
			uniformLayoutEntry(1),
		},
	})
	if err != nil {
		return fmt.Errorf("%w: camera bind group layout: %v", core.ErrLink, err)
	}
	r.releases.push("Camera BGL", bgl.Release)

	pipelineLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Instancing Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{bgl},
	})
	if err != nil {
		return fmt.Errorf("%w: pipeline layout: %v", core.ErrLink, err)
	}
	r.releases.push("Instancing Layout", pipelineLayout.Release)

	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Instancing Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    InstancingLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    r.config.Format,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            depthFormat,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: instancing pipeline: %v", core.ErrLink, err)
	}
	r.pipeline = pipeline
	r.releases.push("Instancing Pipeline", pipeline.Release)

	bindGroup, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Camera BG",
		Layout: bgl,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: r.viewBuffer, Size: matrixUniformSize},
			{Binding: 1, Buffer: r.projectionBuffer, Size: matrixUniformSize},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: camera bind group: %v", core.ErrLink, err)
	}
	r.bindGroup = bindGroup
	r.releases.push("Camera BG", bindGroup.Release)

	return nil
}

func uniformLayoutEntry(binding uint32) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: wgpu.ShaderStageVertex,
		Buffer: wgpu.BufferBindingLayout{
			Type:             wgpu.BufferBindingTypeUniform,
			MinBindingSize:   matrixUniformSize,
			HasDynamicOffset: false,
		},
	}
}

func (r *Renderer) createUniformBuffer(name string) (*wgpu.Buffer, error) {
	identity := mgl32.Ident4()
	return r.createBufferInit(name, wgpu.ToBytes(identity[:]), wgpu.BufferUsageUniform|wgpu.BufferUsageCopyDst)
}

// createDepthTexture (re)builds the depth attachment for the current surface size.
func (r *Renderer) createDepthTexture() error {
	r.releaseDepthTexture()

	texture, err := r.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          wgpu.Extent3D{Width: r.config.Width, Height: r.config.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        depthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("%w: depth texture: %v", core.ErrAllocation, err)
	}
	view, err := texture.CreateView(nil)
	if err != nil {
		texture.Release()
		return fmt.Errorf("%w: depth view: %v", core.ErrAllocation, err)
	}
	r.depthTexture = texture
	r.depthView = view
	return nil
}

func (r *Renderer) releaseDepthTexture() {
	if r.depthView != nil {
		r.depthView.Release()
		r.depthView = nil
	}
	if r.depthTexture != nil {
		r.depthTexture.Release()
		r.depthTexture = nil
	}
}
