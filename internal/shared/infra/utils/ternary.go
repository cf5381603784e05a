package utils

// Ternary devuelve a si cond es cierto y b en otro caso.
func Ternary[T any](cond bool, a, b T) T {
	if cond {
		return a
	}
	return b
}
