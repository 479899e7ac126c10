package common

// Coalesce returns the first non-zero value, or the zero value if every value is zero.
// Used to fall back to built-in defaults when a config field is left empty.
//
// Parameters:
//   - values: candidate values in priority order
//
// Returns:
//   - T: the first non-zero value
func Coalesce[T comparable](values ...T) T {
	var zero T
	for _, v := range values {
		if v != zero {
			return v
		}
	}
	return zero
}
