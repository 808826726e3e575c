package ember

import "errors"

// Frame lifecycle and validation errors. All of them are frame-local:
// none poisons the Engine, and the next BeginFrame starts clean.
var (
	// ErrCapacityExceeded is returned by push operations when a configured
	// hard cap on vertices or triangles would be exceeded. Engines without
	// caps (the default) never return it.
	ErrCapacityExceeded = errors.New("ember: capacity exceeded")

	// ErrFrameClosed is returned when geometry is pushed outside an open
	// frame, either before the first BeginFrame or after EndFrame.
	ErrFrameClosed = errors.New("ember: frame closed")

	// ErrInvalidGeometry is returned when a push references vertices that
	// the same push does not supply, such as an index at or beyond the
	// vertex count.
	ErrInvalidGeometry = errors.New("ember: invalid geometry")

	// ErrUnbalancedTransformStack is returned by EndFrame when the number
	// of transform pushes and pops over the frame does not match.
	ErrUnbalancedTransformStack = errors.New("ember: unbalanced transform stack")

	// ErrEmptyFrame is returned by Compile in strict mode when the frame
	// contains no batches. Without strict mode an empty frame compiles to
	// an empty stream.
	ErrEmptyFrame = errors.New("ember: empty frame")
)
