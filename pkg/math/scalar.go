// Package math provides float32 math types and functions for real-time rendering.
package math

import "github.com/chewxy/math32"

// Pi is the float32 circle constant.
const Pi = math32.Pi

// Lerp returns the linear interpolation between a and b at t.
func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

// Clamp limits v to the range [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate clamps v to [0, 1].
func Saturate(v float32) float32 {
	return Clamp(v, 0, 1)
}

// Abs returns the absolute value of v.
func Abs(v float32) float32 {
	return math32.Abs(v)
}

// Sqrt returns the square root of v.
func Sqrt(v float32) float32 {
	return math32.Sqrt(v)
}

// Sin returns the sine of v (radians).
func Sin(v float32) float32 {
	return math32.Sin(v)
}

// Cos returns the cosine of v (radians).
func Cos(v float32) float32 {
	return math32.Cos(v)
}

// Floor returns the largest integer value less than or equal to v.
func Floor(v float32) float32 {
	return math32.Floor(v)
}

// Exp2 returns 2**v.
func Exp2(v float32) float32 {
	return math32.Exp2(v)
}

// Pow returns base**exp.
func Pow(base, exp float32) float32 {
	return math32.Pow(base, exp)
}

// Log2 returns the base-2 logarithm of v.
func Log2(v float32) float32 {
	return math32.Log2(v)
}
