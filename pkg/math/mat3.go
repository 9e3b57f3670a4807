package math

import "github.com/chewxy/math32"

// Mat3 is a 3x3 matrix in column-major order.
// Layout: [m0 m3 m6]
//
//	[m1 m4 m7]
//	[m2 m5 m8]
type Mat3 [9]float32

// Identity3 returns an identity matrix.
func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

// Mat3FromCols builds a matrix from three column vectors. Used to construct
// tangent-space bases where the columns are tangent, bitangent and normal.
func Mat3FromCols(c0, c1, c2 Vec3) Mat3 {
	return Mat3{
		c0.X, c0.Y, c0.Z,
		c1.X, c1.Y, c1.Z,
		c2.X, c2.Y, c2.Z,
	}
}

// RotateAxis3 creates a rotation matrix around an arbitrary unit axis.
// angle is in radians.
func RotateAxis3(axis Vec3, angle float32) Mat3 {
	c := math32.Cos(angle)
	s := math32.Sin(angle)
	t := 1 - c
	x, y, z := axis.X, axis.Y, axis.Z

	return Mat3{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat3) Mul(other Mat3) Mat3 {
	var result Mat3
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			result[col*3+row] =
				m[0*3+row]*other[col*3+0] +
					m[1*3+row]*other[col*3+1] +
					m[2*3+row]*other[col*3+2]
		}
	}
	return result
}

// MulVec3 transforms a vector by this matrix.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}

// Transpose returns the transposed matrix. For pure rotations this is the
// inverse.
func (m Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}
