// Package gohost is a dynop.Host over plain Go values.
//
// Numbers follow a small tower: bool, int64, *big.Int, float64 and
// complex128. Any Go integer, float or complex kind is normalized onto it
// before an operation and both operands are promoted to the higher class.
// Integer arithmetic is exact and results that fit are returned as int64.
// Division is true division. Remainder takes the sign of the divisor.
//
// Methods resolve first to the ones registered with Define and the
// built-ins conjugate, real, imag, bit_length and __abs__. Any other name
// is looked up on the receiver by reflection at call time.
package gohost
