// Package valueobject contains domain value objects for the finance tracker client.
package valueobject

// Optional is a filter value that is either "all" (no constraint) or a single concrete value.
// The zero value is All.
type Optional[T comparable] struct {
	value T
	set   bool
}

// All returns the unconstrained variant.
func All[T comparable]() Optional[T] {
	return Optional[T]{}
}

// Only returns a variant constrained to v.
func Only[T comparable](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the concrete value and whether one is set.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// IsAll reports whether the value is the unconstrained variant.
func (o Optional[T]) IsAll() bool {
	return !o.set
}

// OrElse returns the concrete value, or fallback when unconstrained.
func (o Optional[T]) OrElse(fallback T) T {
	if !o.set {
		return fallback
	}
	return o.value
}
