package input

// Source is a read-only view over one bound value, action or axis,
// for code that treats both uniformly. The zero source reads as
// released and zero.
type Source struct {
	action *ActionRef
	axis   *AxisRef
}

// ActionSource views an action ref.
func ActionSource(ref *ActionRef) Source {
	return Source{action: ref}
}

// AxisSource views an axis ref.
func AxisSource(ref *AxisRef) Source {
	return Source{axis: ref}
}

// IsZero reports whether the source views nothing.
func (s Source) IsZero() bool {
	return s.action == nil && s.axis == nil
}

// Scalar reads the source as an analog value. Actions map to truthy
// while down and falsy while up; axes return their value unchanged.
func (s Source) Scalar(falsy, truthy float32) float32 {
	switch {
	case s.action != nil:
		return s.action.Get().Scalar(falsy, truthy)
	case s.axis != nil:
		return float32(s.axis.Get())
	}
	return falsy
}

// Threshold reads the source as a digital value. Actions report down;
// axes compare against the given level.
func (s Source) Threshold(value float32) bool {
	switch {
	case s.action != nil:
		return s.action.Get().IsDown()
	case s.axis != nil:
		return s.axis.Get().Threshold(value)
	}
	return false
}

// Combinator derives one value from several sources on every Get.
// The zero combinator returns the zero value.
type Combinator[T any] struct {
	f func() T
}

// NewCombinator wraps a derivation function.
func NewCombinator[T any](f func() T) Combinator[T] {
	return Combinator[T]{f: f}
}

// Get evaluates the combinator.
func (c Combinator[T]) Get() T {
	if c.f == nil {
		var zero T
		return zero
	}
	return c.f()
}

// Cardinal combines four directional sources into a movement vector:
// left and up pull negative, right and down pull positive, opposing
// pairs cancel.
func Cardinal(left, right, up, down Source) Combinator[[2]float32] {
	return NewCombinator(func() [2]float32 {
		return [2]float32{
			left.Scalar(0, -1) + right.Scalar(0, 1),
			up.Scalar(0, -1) + down.Scalar(0, 1),
		}
	})
}

// Dual combines two opposing sources into one signed value.
func Dual(negative, positive Source) Combinator[float32] {
	return NewCombinator(func() float32 {
		return negative.Scalar(0, -1) + positive.Scalar(0, 1)
	})
}

// Scalars reads each source as a 0-or-value scalar.
func Scalars(sources ...Source) Combinator[[]float32] {
	return NewCombinator(func() []float32 {
		out := make([]float32, len(sources))
		for i, s := range sources {
			out[i] = s.Scalar(0, 1)
		}
		return out
	})
}
