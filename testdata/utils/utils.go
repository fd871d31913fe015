// Package utils holds small helpers shared across tests.
package utils

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}
