//go:build !nogpu

package wgpu

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/gogpu/ember"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
)

// Embedded batch shader source.
//
//go:embed shaders/batch.wgsl
var batchShaderSource string

// blendModeCount is the number of pipelines in the static set, one per
// blend mode.
const blendModeCount = int(ember.BlendMultiply) + 1

// batchVertexLayout returns the vertex buffer layout for the batch
// pipeline. Matches VertexInput in batch.wgsl.
func batchVertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: batchVertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x3, Offset: 8, ShaderLocation: 1},  // uv + page
				{Format: gputypes.VertexFormatFloat32x4, Offset: 20, ShaderLocation: 2}, // color
			},
		},
	}
}

// compileBatchShader compiles the embedded WGSL to SPIR-V words.
func compileBatchShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(batchShaderSource)
	if err != nil {
		return nil, fmt.Errorf("wgpu: compile batch shader: %w", err)
	}
	// SPIR-V is little-endian 32-bit words.
	words := make([]uint32, len(spirvBytes)/4)
	for i := range words {
		words[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return words, nil
}

// blendStateFor maps a blend mode to its fixed-function blend state.
// BlendNone returns nil, which disables blending entirely.
func blendStateFor(mode ember.BlendMode) *gputypes.BlendState {
	switch mode {
	case ember.BlendAlpha:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case ember.BlendAdditive:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	case ember.BlendMultiply:
		return &gputypes.BlendState{
			Color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
			Alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDstAlpha,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
		}
	default:
		return nil
	}
}

// createPipelines compiles the shader and builds the shared layouts,
// the sampler and one render pipeline per blend mode.
//
// Bind group layout:
//   - Binding 0: Uniform buffer with the view matrix (vertex + fragment)
//   - Binding 1: Texture array (fragment)
//   - Binding 2: Sampler (fragment)
func (b *Backend) createPipelines() error {
	spirv, err := compileBatchShader()
	if err != nil {
		return err
	}
	shader, err := b.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "batch_shader",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create shader module: %w", err)
	}
	b.shader = shader

	bindLayout, err := b.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "batch_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			},
			{
				Binding:    1,
				Visibility: gputypes.ShaderStageFragment,
				Texture: &gputypes.TextureBindingLayout{
					SampleType:    gputypes.TextureSampleTypeFloat,
					ViewDimension: gputypes.TextureViewDimension2DArray,
				},
			},
			{
				Binding:    2,
				Visibility: gputypes.ShaderStageFragment,
				Sampler:    &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create bind group layout: %w", err)
	}
	b.bindLayout = bindLayout

	pipeLayout, err := b.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "batch_pipe_layout",
		BindGroupLayouts: []hal.BindGroupLayout{b.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("wgpu: create pipeline layout: %w", err)
	}
	b.pipeLayout = pipeLayout

	filter := gputypes.FilterModeNearest
	if b.config.Filtering == FilterLinear {
		filter = gputypes.FilterModeLinear
	}
	sampler, err := b.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "batch_sampler",
		AddressModeU: gputypes.AddressModeClampToEdge,
		AddressModeV: gputypes.AddressModeClampToEdge,
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    filter,
		MinFilter:    filter,
		MipmapFilter: filter,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create sampler: %w", err)
	}
	b.sampler = sampler

	for i := 0; i < blendModeCount; i++ {
		mode := ember.BlendMode(i)
		pipeline, err := b.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
			Label:  fmt.Sprintf("batch_pipeline_%s", strings.ToLower(mode.String())),
			Layout: b.pipeLayout,
			Vertex: hal.VertexState{
				Module:     b.shader,
				EntryPoint: "vs_main",
				Buffers:    batchVertexLayout(),
			},
			Fragment: &hal.FragmentState{
				Module:     b.shader,
				EntryPoint: "fs_main",
				Targets: []gputypes.ColorTargetState{
					{
						Format:    gputypes.TextureFormatRGBA8Unorm,
						Blend:     blendStateFor(mode),
						WriteMask: gputypes.ColorWriteMaskAll,
					},
				},
			},
			Primitive: gputypes.PrimitiveState{
				Topology: gputypes.PrimitiveTopologyTriangleList,
				CullMode: gputypes.CullModeNone,
			},
			Multisample: gputypes.MultisampleState{
				Count: 1,
				Mask:  0xFFFFFFFF,
			},
		})
		if err != nil {
			return fmt.Errorf("wgpu: create %s pipeline: %w", mode, err)
		}
		b.pipelines[i] = pipeline
	}

	return nil
}

// destroyPipelines releases pipeline resources in reverse creation
// order. Unset fields are skipped, so it is safe after a partial
// createPipelines.
func (b *Backend) destroyPipelines() {
	if b.device == nil {
		return
	}
	for i, p := range b.pipelines {
		if p != nil {
			b.device.DestroyRenderPipeline(p)
			b.pipelines[i] = nil
		}
	}
	if b.sampler != nil {
		b.device.DestroySampler(b.sampler)
		b.sampler = nil
	}
	if b.pipeLayout != nil {
		b.device.DestroyPipelineLayout(b.pipeLayout)
		b.pipeLayout = nil
	}
	if b.bindLayout != nil {
		b.device.DestroyBindGroupLayout(b.bindLayout)
		b.bindLayout = nil
	}
	if b.shader != nil {
		b.device.DestroyShaderModule(b.shader)
		b.shader = nil
	}
}
