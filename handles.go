package ember

// Resource handles
//
// These opaque IDs name backend resources from the caller's side. Each
// backend maintains its own mapping between IDs and native objects.
// IDs are uint64 to accommodate various backend handle sizes. The zero
// value is never a live resource.

// TextureID is an opaque handle to a backend texture or texture array.
type TextureID uint64

// MaterialID is an opaque handle to a backend material (shader program
// plus its uniform block).
type MaterialID uint64

// TargetID is an opaque handle to an offscreen render target.
type TargetID uint64

// IsZero reports whether the handle names no resource.
func (id TextureID) IsZero() bool { return id == 0 }

// IsZero reports whether the handle names no resource.
func (id MaterialID) IsZero() bool { return id == 0 }

// IsZero reports whether the handle names no resource.
func (id TargetID) IsZero() bool { return id == 0 }
