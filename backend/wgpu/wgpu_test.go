//go:build !nogpu

package wgpu

import (
	"testing"
	"time"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend"
	"github.com/gogpu/gputypes"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Filtering != FilterNearest {
		t.Errorf("Filtering = %d, want FilterNearest", cfg.Filtering)
	}
	if cfg.WaitTimeout != 5*time.Second {
		t.Errorf("WaitTimeout = %v, want 5s", cfg.WaitTimeout)
	}
}

func TestNewWithConfigZeroTimeout(t *testing.T) {
	b := NewWithConfig(Config{Filtering: FilterLinear})
	if b.config.WaitTimeout != DefaultConfig().WaitTimeout {
		t.Errorf("WaitTimeout = %v, want default %v",
			b.config.WaitTimeout, DefaultConfig().WaitTimeout)
	}
	if b.config.Filtering != FilterLinear {
		t.Errorf("Filtering = %d, want FilterLinear", b.config.Filtering)
	}
}

func TestBackendName(t *testing.T) {
	if got := New().Name(); got != backend.BackendWGPU {
		t.Errorf("Name() = %q, want %q", got, backend.BackendWGPU)
	}
}

func TestBackendRegistered(t *testing.T) {
	if !backend.IsRegistered(backend.BackendWGPU) {
		t.Error("wgpu backend should be auto-registered")
	}
}

type halTypeProvider struct {
	device any
	queue  any
}

func (p halTypeProvider) HalDevice() any { return p.device }
func (p halTypeProvider) HalQueue() any  { return p.queue }

// TestSetDeviceProviderRejectsBadShapes checks providers that cannot
// hand over a usable device are refused before Init.
func TestSetDeviceProviderRejectsBadShapes(t *testing.T) {
	b := New()

	if err := b.SetDeviceProvider(struct{}{}); err == nil {
		t.Error("provider without HAL accessors accepted")
	}
	if err := b.SetDeviceProvider(halTypeProvider{device: "nope", queue: "nope"}); err == nil {
		t.Error("provider with non-HAL device accepted")
	}
	if err := b.SetDeviceProvider(halTypeProvider{}); err == nil {
		t.Error("provider with nil device accepted")
	}
	if b.externalDevice {
		t.Error("rejected provider left the backend marked external")
	}
}

// TestBlendStateFactors pins the fixed-function factors each blend
// mode translates to.
func TestBlendStateFactors(t *testing.T) {
	if bs := blendStateFor(ember.BlendNone); bs != nil {
		t.Errorf("BlendNone state = %+v, want nil", bs)
	}

	tests := []struct {
		mode  ember.BlendMode
		color gputypes.BlendComponent
		alpha gputypes.BlendComponent
	}{
		{
			mode: ember.BlendAlpha,
			color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
			alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorSrcAlpha,
				DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
				Operation: gputypes.BlendOperationAdd,
			},
		},
		{
			mode: ember.BlendAdditive,
			color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
			alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorOne,
				DstFactor: gputypes.BlendFactorOne,
				Operation: gputypes.BlendOperationAdd,
			},
		},
		{
			mode: ember.BlendMultiply,
			color: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDst,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
			alpha: gputypes.BlendComponent{
				SrcFactor: gputypes.BlendFactorDstAlpha,
				DstFactor: gputypes.BlendFactorZero,
				Operation: gputypes.BlendOperationAdd,
			},
		},
	}
	for _, tt := range tests {
		bs := blendStateFor(tt.mode)
		if bs == nil {
			t.Errorf("%v state = nil, want factors", tt.mode)
			continue
		}
		if bs.Color != tt.color {
			t.Errorf("%v color = %+v, want %+v", tt.mode, bs.Color, tt.color)
		}
		if bs.Alpha != tt.alpha {
			t.Errorf("%v alpha = %+v, want %+v", tt.mode, bs.Alpha, tt.alpha)
		}
	}
}

// TestBlendPipelineSlots checks every declared blend mode has a slot
// in the static pipeline set.
func TestBlendPipelineSlots(t *testing.T) {
	modes := []ember.BlendMode{
		ember.BlendNone,
		ember.BlendAlpha,
		ember.BlendAdditive,
		ember.BlendMultiply,
	}
	if len(modes) != blendModeCount {
		t.Fatalf("blendModeCount = %d, want %d", blendModeCount, len(modes))
	}
	for _, mode := range modes {
		if int(mode) < 0 || int(mode) >= blendModeCount {
			t.Errorf("mode %v has no pipeline slot", mode)
		}
	}
}

// TestBatchVertexLayout checks the attribute offsets against the
// serialized vertex layout buildVertexData produces.
func TestBatchVertexLayout(t *testing.T) {
	layouts := batchVertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("len(layouts) = %d, want 1", len(layouts))
	}
	layout := layouts[0]
	if layout.ArrayStride != batchVertexStride {
		t.Errorf("ArrayStride = %d, want %d", layout.ArrayStride, batchVertexStride)
	}
	if len(layout.Attributes) != 3 {
		t.Fatalf("len(Attributes) = %d, want 3", len(layout.Attributes))
	}

	want := []struct {
		format   gputypes.VertexFormat
		offset   uint64
		location uint32
	}{
		{gputypes.VertexFormatFloat32x2, 0, 0},
		{gputypes.VertexFormatFloat32x3, 8, 1},
		{gputypes.VertexFormatFloat32x4, 20, 2},
	}
	for i, w := range want {
		attr := layout.Attributes[i]
		if attr.Format != w.format {
			t.Errorf("attribute %d format = %v, want %v", i, attr.Format, w.format)
		}
		if uint64(attr.Offset) != w.offset {
			t.Errorf("attribute %d offset = %d, want %d", i, attr.Offset, w.offset)
		}
		if uint32(attr.ShaderLocation) != w.location {
			t.Errorf("attribute %d location = %d, want %d", i, attr.ShaderLocation, w.location)
		}
	}
}
