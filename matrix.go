package warp

import "math"

// Matrix3x3 represents a 2D homographic transformation in homogeneous
// coordinates. It uses a 3x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//	| G  H  I |
//
// This represents the transformation:
//
//	x' = (A*x + B*y + C) / (G*x + H*y + I)
//	y' = (D*x + E*y + F) / (G*x + H*y + I)
//
// No invariant is imposed on the coefficients: a Matrix3x3 may be
// singular. A zero determinant signals "non-invertible" to callers.
type Matrix3x3 struct {
	A, B, C float64
	D, E, F float64
	G, H, I float64
}

// Identity3x3 returns the identity transformation matrix.
func Identity3x3() Matrix3x3 {
	return Matrix3x3{
		A: 1, B: 0, C: 0,
		D: 0, E: 1, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Translation creates a translation matrix.
func Translation(x, y float64) Matrix3x3 {
	return Matrix3x3{
		A: 1, B: 0, C: x,
		D: 0, E: 1, F: y,
		G: 0, H: 0, I: 1,
	}
}

// Scaling creates a scaling matrix.
func Scaling(x, y float64) Matrix3x3 {
	return Matrix3x3{
		A: x, B: 0, C: 0,
		D: 0, E: y, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Rotation creates a rotation matrix (angle in radians,
// counter-clockwise).
func Rotation(angle float64) Matrix3x3 {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Matrix3x3{
		A: cos, B: -sin, C: 0,
		D: sin, E: cos, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Skew creates a skew matrix. When orderYX is false the result is the
// product SkewX * SkewY; when true, SkewY * SkewX. The order matters
// only when both skews are nonzero.
func Skew(x, y float64, orderYX bool) Matrix3x3 {
	if orderYX {
		return Matrix3x3{
			A: 1, B: x, C: 0,
			D: y, E: 1 + x*y, F: 0,
			G: 0, H: 0, I: 1,
		}
	}
	return Matrix3x3{
		A: 1 + x*y, B: x, C: 0,
		D: y, E: 1, F: 0,
		G: 0, H: 0, I: 1,
	}
}

// Mul multiplies two matrices (m * other). Matrix products apply right
// to left: in outer.Mul(middle).Mul(inner), inner is applied first.
func (m Matrix3x3) Mul(other Matrix3x3) Matrix3x3 {
	return Matrix3x3{
		A: m.A*other.A + m.B*other.D + m.C*other.G,
		B: m.A*other.B + m.B*other.E + m.C*other.H,
		C: m.A*other.C + m.B*other.F + m.C*other.I,
		D: m.D*other.A + m.E*other.D + m.F*other.G,
		E: m.D*other.B + m.E*other.E + m.F*other.H,
		F: m.D*other.C + m.E*other.F + m.F*other.I,
		G: m.G*other.A + m.H*other.D + m.I*other.G,
		H: m.G*other.B + m.H*other.E + m.I*other.H,
		I: m.G*other.C + m.H*other.F + m.I*other.I,
	}
}

// Apply transforms a homogeneous point.
func (m Matrix3x3) Apply(p Point3D) Point3D {
	return Point3D{
		X: m.A*p.X + m.B*p.Y + m.C*p.Z,
		Y: m.D*p.X + m.E*p.Y + m.F*p.Z,
		Z: m.G*p.X + m.H*p.Y + m.I*p.Z,
	}
}

// Determinant returns the determinant of the matrix. A zero result
// means the matrix is degenerate (non-invertible).
func (m Matrix3x3) Determinant() float64 {
	return m.A*(m.E*m.I-m.F*m.H) -
		m.B*(m.D*m.I-m.F*m.G) +
		m.C*(m.D*m.H-m.E*m.G)
}

// Inverse returns the inverse matrix, dividing by the supplied
// determinant. The caller must have already checked det != 0; passing
// the determinant in avoids recomputing it when the caller needed it
// anyway for the singularity check.
func (m Matrix3x3) Inverse(det float64) Matrix3x3 {
	return Matrix3x3{
		A: (m.E*m.I - m.F*m.H) / det,
		B: (m.C*m.H - m.B*m.I) / det,
		C: (m.B*m.F - m.C*m.E) / det,
		D: (m.F*m.G - m.D*m.I) / det,
		E: (m.A*m.I - m.C*m.G) / det,
		F: (m.C*m.D - m.A*m.F) / det,
		G: (m.D*m.H - m.E*m.G) / det,
		H: (m.B*m.G - m.A*m.H) / det,
		I: (m.A*m.E - m.B*m.D) / det,
	}
}

// Eq reports whether the two matrices have bit-for-bit equal
// coefficients. Sample collapsing relies on exact comparison, not an
// epsilon: two transforms that differ in the last ulp still blur.
func (m Matrix3x3) Eq(other Matrix3x3) bool {
	return m == other
}

// IsIdentity returns true if the matrix is exactly the identity.
func (m Matrix3x3) IsIdentity() bool {
	return m == Identity3x3()
}

// CanonicalToPixel returns the matrix converting canonical
// (resolution-independent) coordinates to pixel coordinates for the
// given pixel aspect ratio and render scale. fielded selects the
// half-height vertical scale used for interlaced delivery, where each
// field holds every other scanline.
func CanonicalToPixel(pixelAspectRatio, scaleX, scaleY float64, fielded bool) Matrix3x3 {
	fieldScale := 1.0
	if fielded {
		fieldScale = 0.5
	}
	return Scaling(scaleX/pixelAspectRatio, scaleY*fieldScale)
}

// PixelToCanonical returns the inverse of CanonicalToPixel for the same
// arguments.
func PixelToCanonical(pixelAspectRatio, scaleX, scaleY float64, fielded bool) Matrix3x3 {
	fieldScale := 1.0
	if fielded {
		fieldScale = 0.5
	}
	return Scaling(pixelAspectRatio/scaleX, 1/(scaleY*fieldScale))
}
