// Package collections has generic slice helpers.
package collections

// Apply maps each item through fn.
func Apply[T, V any](items []T, fn func(T) V) []V {
	result := make([]V, len(items))
	for i, item := range items {
		result[i] = fn(item)
	}

	return result
}
