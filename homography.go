package warp

import "math"

// Homography computes the 3x3 matrix H mapping from[i] to to[i] for
// four point correspondences, with H's bottom-right coefficient fixed
// to 1. ok is false when the correspondences are degenerate (three
// collinear points, coincident points).
func Homography(from, to [4]Point) (Matrix3x3, bool) {
	// Build the 8x8 system A*h = b for the 8 unknowns, from
	//
	//	x' = (h0*X + h1*Y + h2) / (h6*X + h7*Y + 1)
	//	y' = (h3*X + h4*Y + h5) / (h6*X + h7*Y + 1)
	var a [8][8]float64
	var b [8]float64
	for i := 0; i < 4; i++ {
		X, Y := from[i].X, from[i].Y
		x, y := to[i].X, to[i].Y
		r := 2 * i
		a[r] = [8]float64{X, Y, 1, 0, 0, 0, -X * x, -Y * x}
		b[r] = x
		a[r+1] = [8]float64{0, 0, 0, X, Y, 1, -X * y, -Y * y}
		b[r+1] = y
	}

	h, ok := solve8x8(a, b)
	if !ok {
		return Matrix3x3{}, false
	}
	return Matrix3x3{
		A: h[0], B: h[1], C: h[2],
		D: h[3], E: h[4], F: h[5],
		G: h[6], H: h[7], I: 1,
	}, true
}

// solve8x8 solves a*x = b by Gaussian elimination with partial
// pivoting.
func solve8x8(a [8][8]float64, b [8]float64) ([8]float64, bool) {
	for col := 0; col < 8; col++ {
		// Find the largest remaining pivot in this column.
		pivot := col
		for r := col + 1; r < 8; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return [8]float64{}, false
		}
		if pivot != col {
			a[col], a[pivot] = a[pivot], a[col]
			b[col], b[pivot] = b[pivot], b[col]
		}

		inv := 1 / a[col][col]
		for c := col; c < 8; c++ {
			a[col][c] *= inv
		}
		b[col] *= inv
		for r := 0; r < 8; r++ {
			if r == col || a[r][col] == 0 {
				continue
			}
			f := a[r][col]
			for c := col; c < 8; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}
	return b, true
}
