package warp

import "math"

// Sentinel bounds for the unbounded rectangle. A side at or beyond the
// sentinel means "extends to infinity on that side". The values follow
// the host convention of using the 32-bit integer range as flags, so
// finite arithmetic near a sentinel stays well away from float
// overflow.
const (
	InfiniteMin float64 = math.MinInt32
	InfiniteMax float64 = math.MaxInt32
)

// Rect is an axis-aligned rectangle, in either canonical or pixel
// coordinates. X1 <= X2 and Y1 <= Y2, except for the internal
// "reversed" empty rectangle used as a union seed.
type Rect struct {
	X1, Y1, X2, Y2 float64
}

// NewRect creates a rectangle from two corner coordinate pairs,
// normalized so X1 <= X2 and Y1 <= Y2.
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		X1: math.Min(x1, x2),
		Y1: math.Min(y1, y2),
		X2: math.Max(x1, x2),
		Y2: math.Max(y1, y2),
	}
}

// Infinite returns the sentinel unbounded rectangle.
func Infinite() Rect {
	return Rect{X1: InfiniteMin, Y1: InfiniteMin, X2: InfiniteMax, Y2: InfiniteMax}
}

// IsInfinite reports whether any side of the rectangle is unbounded.
func (r Rect) IsInfinite() bool {
	return r.X1 <= InfiniteMin || r.X2 >= InfiniteMax ||
		r.Y1 <= InfiniteMin || r.Y2 >= InfiniteMax
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		X1: math.Min(r.X1, other.X1),
		Y1: math.Min(r.Y1, other.Y1),
		X2: math.Max(r.X2, other.X2),
		Y2: math.Max(r.Y2, other.Y2),
	}
}

// Expand grows every finite side of the rectangle outward by dx
// horizontally and dy vertically. Sides already at a sentinel stay
// unbounded.
func (r Rect) Expand(dx, dy float64) Rect {
	if r.X1 > InfiniteMin {
		r.X1 -= dx
	}
	if r.X2 < InfiniteMax {
		r.X2 += dx
	}
	if r.Y1 > InfiniteMin {
		r.Y1 -= dy
	}
	if r.Y2 < InfiniteMax {
		r.Y2 += dy
	}
	return r
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	return r.X2 - r.X1
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	return r.Y2 - r.Y1
}

// Corners returns the four corners of the rectangle, counter-clockwise
// from (X1, Y1).
func (r Rect) Corners() [4]Point {
	return [4]Point{
		{X: r.X1, Y: r.Y1},
		{X: r.X1, Y: r.Y2},
		{X: r.X2, Y: r.Y2},
		{X: r.X2, Y: r.Y1},
	}
}
