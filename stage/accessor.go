package stage

// Accessor reads or replaces a value owned by someone else.
// Holders always see the owner's latest value because nothing is cached.
type Accessor[T any] struct {
	get func() T
	set func(T)
}

// NewAccessor binds a get/set pair. A nil get reads the zero value, a nil set ignores writes.
func NewAccessor[T any](get func() T, set func(T)) Accessor[T] {
	return Accessor[T]{get: get, set: set}
}

// Get returns the current value, or the zero value for an unbound accessor.
func (a Accessor[T]) Get() T {
	if a.get == nil {
		var zero T
		return zero
	}
	return a.get()
}

// Set replaces the value. It does nothing on an unbound accessor.
func (a Accessor[T]) Set(v T) {
	if a.set != nil {
		a.set(v)
	}
}

// Bound reports whether a getter has been installed.
func (a Accessor[T]) Bound() bool {
	return a.get != nil
}
