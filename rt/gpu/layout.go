package gpu

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex buffer slots used by the instancing pipeline.
const (
	SlotGeometry  = 0
	SlotTransform = 1
	SlotColor     = 2
)

// CubeVertex is the per-vertex stream.
type CubeVertex struct {
	Position mgl32.Vec3 `gekko:"layout" location:"0" format:"float3"`
}

// InstanceTransform is the per-instance model matrix. A mat4 cannot occupy
// one attribute location, so it spans locations 3..6, one column each.
type InstanceTransform struct {
	Model mgl32.Mat4 `gekko:"layout" location:"3" format:"float4x4"`
}

// InstanceColor is the per-instance color, bound right after the matrix.
type InstanceColor struct {
	Color mgl32.Vec3 `gekko:"layout" location:"7" format:"float3"`
}

// InstancingLayouts returns the layouts in slot order.
func InstancingLayouts() []wgpu.VertexBufferLayout {
	return []wgpu.VertexBufferLayout{
		SlotGeometry:  createVertexBufferLayout(CubeVertex{}, wgpu.VertexStepModeVertex),
		SlotTransform: createVertexBufferLayout(InstanceTransform{}, wgpu.VertexStepModeInstance),
		SlotColor:     createVertexBufferLayout(InstanceColor{}, wgpu.VertexStepModeInstance),
	}
}

type vertexFormat struct {
	format  wgpu.VertexFormat
	size    uint64
	columns int
}

func parseFormat(name string) vertexFormat {
	switch name {
	case "float2":
		return vertexFormat{format: wgpu.VertexFormatFloat32x2, size: 8, columns: 1}
	case "float3":
		return vertexFormat{format: wgpu.VertexFormatFloat32x3, size: 12, columns: 1}
	case "float4":
		return vertexFormat{format: wgpu.VertexFormatFloat32x4, size: 16, columns: 1}
	case "float4x4":
		return vertexFormat{format: wgpu.VertexFormatFloat32x4, size: 16, columns: 4}
	default:
		panic("unsupported vertex layout format: " + name)
	}
}

// createVertexBufferLayout reads `gekko:"layout"` tags off a struct. Matrix
// formats expand into one attribute per column at consecutive locations.
func createVertexBufferLayout(vertexType any, stepMode wgpu.VertexStepMode) wgpu.VertexBufferLayout {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		panic("Vertex must be a struct")
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64 = 0

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if "layout" == field.Tag.Get("gekko") {
			format := parseFormat(field.Tag.Get("format"))
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if nil != err {
				panic(err)
			}
			if uint64(format.columns)*format.size != uint64(field.Type.Size()) {
				panic(fmt.Sprintf("field %s.%s is %d bytes, format %q needs %d",
					t.Name(), field.Name, field.Type.Size(), field.Tag.Get("format"), uint64(format.columns)*format.size))
			}

			for col := 0; col < format.columns; col++ {
				attributes = append(attributes, wgpu.VertexAttribute{
					ShaderLocation: uint32(location + col),
					Offset:         offset + uint64(col)*format.size,
					Format:         format.format,
				})
			}
		}

		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    stepMode,
		Attributes:  attributes,
	}
}
