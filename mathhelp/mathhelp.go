package mathhelp

import "golang.org/x/exp/constraints"

func Pow2[T constraints.Unsigned](n uint) T {
	return T(1) << n
}

// LowMask returns a value with the lowest n bits set
func LowMask[T constraints.Unsigned](n uint) T {
	return Pow2[T](n) - 1
}

func CeilDiv[T constraints.Unsigned](d, m T) T {
	return (d + m - 1) / m
}

// Cube returns n*n*n as a uint64
func Cube[T constraints.Unsigned](n T) uint64 {
	u := uint64(n)
	return u * u * u
}
