package drivestore

// Result holds the outcome of a read that may legitimately find nothing.
// A zero Result is absent.
type Result[T any] struct {
	value   T
	present bool
}

// Found returns a present Result holding v.
func Found[T any](v T) Result[T] {
	return Result[T]{value: v, present: true}
}

// Absent returns a Result holding no value.
func Absent[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.present
}

func (r Result[T]) Present() bool {
	return r.present
}

// Value returns the value, or the zero value of T when absent.
func (r Result[T]) Value() T {
	return r.value
}

// OrElse returns the value if present and def otherwise.
func (r Result[T]) OrElse(def T) T {
	if !r.present {
		return def
	}
	return r.value
}
