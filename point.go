package warp

// Point represents a 2D point or vector.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Lerp linearly interpolates between p and q. t=0 returns p, t=1
// returns q.
func (p Point) Lerp(q Point, t float64) Point {
	return Point{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// Point3D represents a point in homogeneous coordinates. A finite 2D
// point (x, y) lifts to (x, y, 1); after a projective transform the
// 2D position is (X/Z, Y/Z). A sign change of Z between two
// transformed points means the segment between them crosses the line
// at infinity.
type Point3D struct {
	X, Y, Z float64
}

// Pt3 is a convenience function to create a Point3D.
func Pt3(x, y, z float64) Point3D {
	return Point3D{X: x, Y: y, Z: z}
}

// Project returns the 2D point (X/Z, Y/Z). The caller must have
// checked Z != 0.
func (p Point3D) Project() Point {
	return Point{X: p.X / p.Z, Y: p.Y / p.Z}
}
