package input

import (
	"strings"
	"sync"
)

// Ref is a shared mutable value guarded by a read-write lock. Game
// systems hold refs to the actions and axes they care about while the
// context writes them from the event feed.
type Ref[T any] struct {
	mu    sync.RWMutex
	value T
}

// NewRef creates a ref holding the given value.
func NewRef[T any](value T) *Ref[T] {
	return &Ref[T]{value: value}
}

// Get returns a copy of the value.
func (r *Ref[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value
}

// Set replaces the value.
func (r *Ref[T]) Set(value T) {
	r.mu.Lock()
	r.value = value
	r.mu.Unlock()
}

// Edit runs f on the value under the write lock.
func (r *Ref[T]) Edit(f func(*T)) {
	r.mu.Lock()
	f(&r.value)
	r.mu.Unlock()
}

// ActionRef and AxisRef are the ref shapes mappings bind.
type (
	ActionRef = Ref[ActionState]
	AxisRef   = Ref[Axis]
)

// NewActionRef creates an idle action ref.
func NewActionRef() *ActionRef {
	return NewRef(Idle)
}

// NewAxisRef creates a zero axis ref.
func NewAxisRef() *AxisRef {
	return NewRef(Axis(0))
}

// Characters accumulates typed text between frames. The context
// appends in event order; text fields Take the buffer once per frame.
type Characters struct {
	mu   sync.Mutex
	text strings.Builder
}

// Append adds typed text to the buffer.
func (c *Characters) Append(s string) {
	c.mu.Lock()
	c.text.WriteString(s)
	c.mu.Unlock()
}

// Peek returns the buffered text without consuming it.
func (c *Characters) Peek() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text.String()
}

// Take returns the buffered text and empties the buffer.
func (c *Characters) Take() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.text.String()
	c.text.Reset()
	return s
}
