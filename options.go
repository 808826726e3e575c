package ember

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Default configuration
//	e := ember.NewEngine()
//
//	// Bounded stream with strict empty-frame checking
//	e := ember.NewEngine(ember.WithMaxVertices(1 << 20), ember.WithStrictEmptyFrames())
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	chunkSize         int
	maxVertices       int
	maxTriangles      int
	strictEmptyFrames bool
}

// defaultEngineOptions returns the default engine options.
func defaultEngineOptions() engineOptions {
	return engineOptions{
		chunkSize:    DefaultChunkSize,
		maxVertices:  0, // unbounded
		maxTriangles: 0, // unbounded
	}
}

// WithChunkSize sets the reservation step for stream storage growth.
// Larger chunks mean fewer reallocations during the first frames of a
// geometry-heavy scene. Non-positive values keep the default.
func WithChunkSize(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.chunkSize = n
		}
	}
}

// WithMaxVertices caps the number of vertices a frame may hold.
// Pushes that would exceed the cap fail with ErrCapacityExceeded.
// Zero (the default) means unbounded.
func WithMaxVertices(n int) Option {
	return func(o *engineOptions) {
		o.maxVertices = n
	}
}

// WithMaxTriangles caps the number of triangles a frame may hold.
// Pushes that would exceed the cap fail with ErrCapacityExceeded.
// Zero (the default) means unbounded.
func WithMaxTriangles(n int) Option {
	return func(o *engineOptions) {
		o.maxTriangles = n
	}
}

// WithStrictEmptyFrames makes Compile fail with ErrEmptyFrame when a
// frame holds no batches. Without it an empty frame compiles to an
// empty stream, which most callers treat as a valid blank frame.
func WithStrictEmptyFrames() Option {
	return func(o *engineOptions) {
		o.strictEmptyFrames = true
	}
}
