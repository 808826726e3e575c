package draw

import "github.com/gogpu/ember"

// ParticleInstance is one rendered particle: a quad like a sprite,
// minus the per-quad render state.
type ParticleInstance struct {
	// Region is the normalized texture subrectangle. Zero means the
	// full texture.
	Region ember.Rect
	// Page selects the texture array layer.
	Page float32
	// Tint multiplies the sampled texel. Zero means white.
	Tint [4]float32
	// Placement positions the quad.
	Placement Placement
	// Size is the quad extent in pixels. Zero takes the emitter
	// texture size.
	Size ember.Point
	// Pivot is the normalized anchor inside the quad.
	Pivot ember.Point
}

// ParticleEmitter carries the render state shared by the particles it
// emits. Everything per-particle lives on the instances.
type ParticleEmitter struct {
	// Material names the pipeline. The zero ref inherits the context
	// material stack.
	Material MaterialRef
	// Texture names the sampled texture.
	Texture TextureRef
	// Blend overrides the context blend stack.
	Blend ember.BlendMode
	// ScreenSpace draws in screen coordinates.
	ScreenSpace bool
}

// NewParticleEmitter creates an emitter with inherited blending.
func NewParticleEmitter(texture TextureRef) ParticleEmitter {
	return ParticleEmitter{Texture: texture, Blend: BlendInherit}
}

// Emit pairs the emitter with instances into a drawable.
func (e ParticleEmitter) Emit(instances []ParticleInstance) Particles {
	return Particles{Emitter: e, Instances: instances}
}

// Particles draws instances under one shared render state, one quad
// each, collapsing into a single batch.
type Particles struct {
	Emitter   ParticleEmitter
	Instances []ParticleInstance
}

// Draw records one quad per instance.
func (p Particles) Draw(ctx *Context) error {
	tex, err := ctx.resolveTexture(p.Emitter.Texture)
	if err != nil {
		return err
	}
	material, err := ctx.resolveMaterial(p.Emitter.Material)
	if err != nil {
		return err
	}
	state := ember.RenderState{
		Material: material,
		Texture:  tex.ID,
		Blend:    ctx.resolveBlend(p.Emitter.Blend),
		Space:    spaceOf(p.Emitter.ScreenSpace),
	}

	for _, instance := range p.Instances {
		size := instance.Size
		if size.X == 0 && size.Y == 0 {
			size = tex.Size()
		}
		if size.X == 0 && size.Y == 0 {
			continue
		}
		local := instance.Placement.Matrix()
		if instance.Pivot.X != 0 || instance.Pivot.Y != 0 {
			local = local.Multiply(ember.Translate(-size.X*instance.Pivot.X, -size.Y*instance.Pivot.Y))
		}
		quad := spriteQuad(size, regionOrFull(instance.Region), instance.Page, tintOrWhite(instance.Tint))
		if err := ctx.engine.PushQuad(quad, local, state); err != nil {
			return err
		}
	}
	return nil
}

// ParticleProcessor advances and renders particles of a system. D is
// the per-particle state, C the shared configuration.
type ParticleProcessor[D, C any] interface {
	// Process advances one particle by a step. Returning false
	// removes the particle from the system.
	Process(config *C, data D) (D, bool)
	// Emit renders one particle. Returning false skips it this frame
	// without removing it.
	Emit(config *C, data *D) (ParticleInstance, bool)
}

// ParticleSystem owns particle state and double-buffers it through a
// processor: Process drains the live buffer through the processor
// into the spare one and swaps them, so removal costs no shifting.
type ParticleSystem[D, C any] struct {
	// Config is the shared configuration handed to the processor.
	Config C

	processor ParticleProcessor[D, C]
	source    []D
	target    []D
	capacity  int
}

// NewParticleSystem creates a system with the given processor and
// configuration. A positive capacity bounds Push; zero or negative
// means unbounded.
func NewParticleSystem[D, C any](processor ParticleProcessor[D, C], config C, capacity int) *ParticleSystem[D, C] {
	reserve := capacity
	if reserve < 0 {
		reserve = 0
	}
	return &ParticleSystem[D, C]{
		Config:    config,
		processor: processor,
		source:    make([]D, 0, reserve),
		target:    make([]D, 0, reserve),
		capacity:  capacity,
	}
}

// Len returns the number of live particles.
func (s *ParticleSystem[D, C]) Len() int {
	return len(s.source)
}

// Push adds one particle, reporting false when the system is at
// capacity.
func (s *ParticleSystem[D, C]) Push(data D) bool {
	if s.capacity > 0 && len(s.source) >= s.capacity {
		return false
	}
	s.source = append(s.source, data)
	return true
}

// Extend adds particles without the capacity bound.
func (s *ParticleSystem[D, C]) Extend(data ...D) {
	s.source = append(s.source, data...)
}

// Clear removes all particles.
func (s *ParticleSystem[D, C]) Clear() {
	s.source = s.source[:0]
}

// Process advances every particle once, dropping the ones the
// processor retires.
func (s *ParticleSystem[D, C]) Process() {
	s.target = s.target[:0]
	for i := range s.source {
		if next, ok := s.processor.Process(&s.Config, s.source[i]); ok {
			s.target = append(s.target, next)
		}
	}
	s.source, s.target = s.target, s.source
}

// Emit renders the live particles into instances.
func (s *ParticleSystem[D, C]) Emit() []ParticleInstance {
	out := make([]ParticleInstance, 0, len(s.source))
	for i := range s.source {
		if instance, ok := s.processor.Emit(&s.Config, &s.source[i]); ok {
			out = append(out, instance)
		}
	}
	return out
}
