package utils

import "golang.org/x/exp/constraints"

// Min returns the smaller value between two numbers.
func Min[T constraints.Ordered](x, y T) T {
	if x < y {
		return x
	}
	return y
}

// Max returns the bigger value between two numbers.
func Max[T constraints.Ordered](x, y T) T {
	if x > y {
		return x
	}
	return y
}

// Clamp restricts x to the closed interval [lo, hi].
// NaN values are mapped to lo.
func Clamp[T constraints.Float](x, lo, hi T) T {
	if x != x {
		return lo
	}
	return Max(lo, Min(x, hi))
}
