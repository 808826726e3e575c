//go:build !nogpu

package wgpu

import (
	"sync"
	"time"

	"github.com/gogpu/ember"
	"github.com/gogpu/ember/backend"
	"github.com/gogpu/wgpu/hal"
)

// Filtering selects how textures are sampled.
type Filtering uint8

const (
	// FilterNearest samples the closest texel.
	FilterNearest Filtering = iota
	// FilterLinear blends the four closest texels.
	FilterLinear
)

// Config holds wgpu backend parameters.
type Config struct {
	// Filtering selects the texture sampling mode for all textures.
	// Default: FilterNearest
	Filtering Filtering

	// WaitTimeout bounds how long Submit blocks on the frame fence.
	// Default: 5s
	WaitTimeout time.Duration
}

// DefaultConfig returns the default wgpu configuration.
func DefaultConfig() Config {
	return Config{
		Filtering:   FilterNearest,
		WaitTimeout: 5 * time.Second,
	}
}

// init registers the wgpu backend on package import.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.RenderBackend {
		return New()
	})
}

// Backend executes compiled frames on the GPU through gogpu/wgpu's
// hardware abstraction layer. Each draw range becomes exactly one
// DrawIndexed call; state binds map to pipeline, bind group and
// scissor changes.
//
// Materials select GPU pipelines at a higher layer; the backend draws
// every batch with the standard shader, texture times vertex color.
type Backend struct {
	mu          sync.Mutex
	config      Config
	initialized bool

	instance       hal.Instance
	device         hal.Device
	queue          hal.Queue
	externalDevice bool
	adapterName    string

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	sampler    hal.Sampler
	pipelines  [blendModeCount]hal.RenderPipeline

	white    *texture
	textures map[ember.TextureID]*texture
	targets  map[ember.TargetID]*renderTarget
	stack    []*renderTarget
	surface  *renderTarget

	nextHandle uint64
	stats      Stats
}

// Stats counts the work done by the most recent Submit.
type Stats struct {
	// StatesBound is the number of state binds processed.
	StatesBound int
	// DrawCalls is the number of DrawIndexed calls issued.
	DrawCalls int
	// Indices is the number of indices covered by the issued draws.
	Indices int
}

// New creates a wgpu backend with the default configuration.
func New() *Backend {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a wgpu backend with the given configuration.
// Zero fields fall back to their defaults.
func NewWithConfig(config Config) *Backend {
	if config.WaitTimeout <= 0 {
		config.WaitTimeout = DefaultConfig().WaitTimeout
	}
	return &Backend{config: config}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init acquires the GPU device and builds the static pipeline set.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}
	if err := b.acquireDevice(); err != nil {
		return err
	}
	if err := b.createPipelines(); err != nil {
		b.destroyPipelines()
		b.releaseDevice()
		return err
	}
	white, err := b.createWhiteTexture()
	if err != nil {
		b.destroyPipelines()
		b.releaseDevice()
		return err
	}
	b.white = white
	b.textures = make(map[ember.TextureID]*texture)
	b.targets = make(map[ember.TargetID]*renderTarget)
	b.initialized = true

	ember.Logger().Info("wgpu: backend initialized", "adapter", b.adapterName)
	return nil
}

// Close releases all backend resources in reverse creation order.
// Closing an uninitialized backend is a no-op.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	// Sample views of shared target storage go before the storage
	// itself, so textures drain first.
	for id, t := range b.textures {
		b.destroyTextureResources(t)
		delete(b.textures, id)
	}
	for id, rt := range b.targets {
		b.destroyTargetResources(rt)
		delete(b.targets, id)
	}
	if b.surface != nil {
		b.destroyTargetResources(b.surface)
		b.surface = nil
	}
	if b.white != nil {
		b.destroyTextureResources(b.white)
		b.white = nil
	}
	b.destroyPipelines()
	b.releaseDevice()

	b.textures = nil
	b.targets = nil
	b.stack = nil
	b.initialized = false
}

// LastStats returns the counters from the most recent Submit.
func (b *Backend) LastStats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}
