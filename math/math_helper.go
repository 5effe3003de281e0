// Package math includes important helpers for stake arithmetic.
package math

// SaturateAdd returns a+b, clamped at the maximum uint64 value instead of
// wrapping on overflow.
func SaturateAdd(a, b uint64) uint64 {
	if a > ^uint64(0)-b {
		return ^uint64(0)
	}
	return a + b
}
