package meta

// Annotated pairs an optional value with its Meta. The value may be absent
// (null or removed) while the meta persists — this is how the engine
// records that a field was redacted away entirely while still carrying the
// remark that explains why.
type Annotated[T any] struct {
	Value *T
	Meta  Meta
}

// New builds an Annotated with a present value.
func New[T any](value T, m Meta) Annotated[T] {
	return Annotated[T]{Value: &value, Meta: m}
}

// Absent builds an Annotated with no value, only meta.
func Absent[T any](m Meta) Annotated[T] {
	return Annotated[T]{Meta: m}
}

// FromValue wraps a present value with empty meta — the common case when
// building payloads in tests and example producers.
func FromValue[T any](value T) Annotated[T] {
	return New(value, Meta{})
}

// Present reports whether a value is attached.
func (a Annotated[T]) Present() bool {
	return a.Value != nil
}

// Get returns the value and whether it was present.
func (a Annotated[T]) Get() (T, bool) {
	if a.Value == nil {
		var zero T
		return zero, false
	}
	return *a.Value, true
}

// MustGet returns the value, panicking if absent. Intended for tests and
// call sites that have already checked Present().
func (a Annotated[T]) MustGet() T {
	if a.Value == nil {
		panic("meta: MustGet on absent Annotated")
	}
	return *a.Value
}

// WithRemovedValue clears the value and records a remark explaining why,
// satisfying the invariant that removal must be explained.
func (a Annotated[T]) WithRemovedValue(r Remark) Annotated[T] {
	return Annotated[T]{Value: nil, Meta: a.Meta.WithRemovedValue(r)}
}

// SetValue replaces the value in place, keeping meta untouched.
func (a Annotated[T]) SetValue(v *T) Annotated[T] {
	a.Value = v
	return a
}

// Map transforms the contained value if present, leaving an absent
// Annotated (and its meta) untouched.
func Map[T, U any](a Annotated[T], f func(T) U) Annotated[U] {
	if a.Value == nil {
		return Annotated[U]{Meta: a.Meta}
	}
	return New(f(*a.Value), a.Meta)
}
