// Package pointer provides a helper for constructing pointers to values in
// a single expression.
package pointer

// To returns a pointer to the given value.
func To[T any](v T) *T {
	return &v
}
