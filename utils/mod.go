package utils

func FindIndex[T comparable](slice []T, item T) int {
	for i, v := range slice {
		if v == item {
			return i
		}
	}
	return -1
}

// Remove deletes the first occurrence of item, keeping order. Reports whether it was found.
func Remove[T comparable](slice []T, item T) ([]T, bool) {
	i := FindIndex(slice, item)
	if i < 0 {
		return slice, false
	}
	return append(slice[:i], slice[i+1:]...), true
}

// CeilDiv divides rounding towards positive infinity.
func CeilDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) == (b < 0)) {
		q++
	}
	return q
}
