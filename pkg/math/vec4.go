package math

// Vec4 is a 4D vector. It doubles as an RGBA color in shading code.
type Vec4 struct {
	X, Y, Z, W float32
}

// Add returns v + other.
func (v Vec4) Add(other Vec4) Vec4 {
	return Vec4{v.X + other.X, v.Y + other.Y, v.Z + other.Z, v.W + other.W}
}

// Sub returns v - other.
func (v Vec4) Sub(other Vec4) Vec4 {
	return Vec4{v.X - other.X, v.Y - other.Y, v.Z - other.Z, v.W - other.W}
}

// Scale returns v * scalar.
func (v Vec4) Scale(s float32) Vec4 {
	return Vec4{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

// Mul returns the component-wise product.
func (v Vec4) Mul(other Vec4) Vec4 {
	return Vec4{v.X * other.X, v.Y * other.Y, v.Z * other.Z, v.W * other.W}
}

// Lerp returns the component-wise interpolation toward other at t.
func (v Vec4) Lerp(other Vec4, t float32) Vec4 {
	return Vec4{
		Lerp(v.X, other.X, t),
		Lerp(v.Y, other.Y, t),
		Lerp(v.Z, other.Z, t),
		Lerp(v.W, other.W, t),
	}
}

// Vec3 returns the XYZ components, dropping W.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v.X, v.Y, v.Z}
}
