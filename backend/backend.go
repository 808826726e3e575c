package backend

import (
	"errors"

	"github.com/gogpu/ember"
)

// Backend name constants.
const (
	// BackendHeadless is the name of the CPU-based headless backend.
	BackendHeadless = "headless"
	// BackendWGPU is the name of the Pure Go GPU backend (gogpu/wgpu).
	BackendWGPU = "wgpu"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when operations are called before Init.
	ErrNotInitialized = errors.New("backend: not initialized")

	// ErrUnknownTexture is returned when a texture handle does not
	// name a live texture.
	ErrUnknownTexture = errors.New("backend: unknown texture")

	// ErrUnknownTarget is returned when a target handle does not
	// name a live render target.
	ErrUnknownTarget = errors.New("backend: unknown target")

	// ErrNoTarget is returned by PopTarget when no offscreen target
	// is active.
	ErrNoTarget = errors.New("backend: target stack is empty")
)

// Frame carries everything a backend needs to execute one compiled frame.
type Frame struct {
	// Buffers holds the frozen vertex and triangle data for the frame.
	// Backends upload these once per frame; the slices alias engine
	// storage and are stable until the next BeginFrame.
	Buffers ember.Buffers

	// Stream is the compiled command stream, in submission order.
	Stream *ember.DrawStream

	// View supplies the world and screen projection matrices. Each
	// batch selects between them through its Space field.
	View ember.View

	// Width and Height are the viewport size in pixels.
	Width, Height int

	// Clear, when non-nil, is the RGBA color the target is cleared to
	// before any draw runs. A nil Clear keeps the target's previous
	// contents.
	Clear *[4]float32
}

// RenderBackend is the interface for draw stream executors.
// It abstracts the rendering implementation, allowing the library to
// support multiple backends (headless CPU, GPU via wgpu, etc.).
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
//
// All methods except Name must only be called after a successful Init.
// Backends are safe for use from a single goroutine at a time, which
// matches the single-threaded engine that feeds them.
type RenderBackend interface {
	// Name returns the backend identifier (e.g. "wgpu", "headless").
	Name() string

	// Init acquires the backend's native resources.
	// This should be called before any rendering operations.
	Init() error

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()

	// Submit executes one compiled frame against the active target.
	// Each DrawRangeCommand in the stream becomes exactly one native
	// draw call, configured by the BindStateCommand that opened its
	// batch. Ranges are executed in stream order, never reordered.
	Submit(frame *Frame) error

	// CreateTexture allocates an RGBA texture array of the given size
	// and layer count and returns its handle. A plain 2D texture is an
	// array with one layer. Contents are undefined until uploaded.
	CreateTexture(width, height, layers int) (ember.TextureID, error)

	// UploadTexture writes pixels into a region of one texture layer.
	// The pixel slice is tightly packed RGBA, 4 bytes per pixel,
	// row-major, and must cover width*height pixels.
	UploadTexture(id ember.TextureID, layer, x, y, width, height int, pixels []byte) error

	// DestroyTexture releases a texture. Destroying an unknown or
	// zero handle is a no-op.
	DestroyTexture(id ember.TextureID)

	// CreateTarget allocates an offscreen render target backed by a
	// texture that can later be sampled like any other texture.
	CreateTarget(width, height int) (ember.TargetID, ember.TextureID, error)

	// DestroyTarget releases a render target together with its
	// backing texture. Destroying an unknown handle is a no-op.
	DestroyTarget(id ember.TargetID)

	// PushTarget redirects subsequent Submit calls into the given
	// offscreen target. Targets nest; each push must be matched by a
	// PopTarget.
	PushTarget(id ember.TargetID) error

	// PopTarget restores the previously active target.
	PopTarget() error
}
