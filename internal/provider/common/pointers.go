package common

// Deref returns the value ptr points at, or the zero value when ptr is nil.
// go-github models every optional field as a pointer.
func Deref[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}
