package warp

import "math"

// projectRect lifts the four corners of a rectangle to homogeneous
// coordinates and transforms them.
func projectRect(r Rect, m Matrix3x3) [4]Point3D {
	var p [4]Point3D
	for i, c := range r.Corners() {
		p[i] = m.Apply(Point3D{X: c.X, Y: c.Y, Z: 1})
	}
	return p
}

// regionFromPoints returns the axis-aligned bounding box of four
// transformed corners. If the four homogeneous z coordinates do not
// share a sign, the transformed rectangle straddles the line at
// infinity and the result is the unbounded rectangle on both axes.
// That answer is conservative, not exact, and intentionally so:
// computing the true unbounded region exactly is not attempted.
func regionFromPoints(p [4]Point3D) Rect {
	allPositive := true
	allNegative := true
	for i := 0; i < 4; i++ {
		allNegative = allNegative && p[i].Z < 0
		allPositive = allPositive && p[i].Z > 0
	}
	if !allPositive && !allNegative {
		return Infinite()
	}

	q0 := p[0].Project()
	r := Rect{X1: q0.X, Y1: q0.Y, X2: q0.X, Y2: q0.Y}
	for i := 1; i < 4; i++ {
		q := p[i].Project()
		if q.X < r.X1 {
			r.X1 = q.X
		} else if q.X > r.X2 {
			r.X2 = q.X
		}
		if q.Y < r.Y1 {
			r.Y1 = q.Y
		} else if q.Y > r.Y2 {
			r.Y2 = q.Y
		}
	}
	return r
}

// RegionQuery describes one region propagation: the rectangle to push
// through the effect's transform and the sampling domain to cover.
type RegionQuery struct {
	Rect Rect
	Time float64

	Invert     bool
	MotionBlur float64
	Shutter    ShutterConfig

	DirectionalBlur      bool
	AmountFrom, AmountTo float64

	// Identity short-circuits the walk: when the effect is a no-op and
	// there is no motion blur, the input rectangle is returned
	// unchanged. The displacement expansion below must never inflate
	// an identity region.
	Identity bool
}

// TransformRegion propagates a rectangle through the effect's
// transform over the query's time or amount domain and returns a
// conservative axis-aligned bound of everywhere it lands.
//
// The walk visits the shutter open and close times and every multiple
// of a quarter frame in between (or a fixed number of amount steps for
// directional blur). Each visited transform's projected corners are
// folded into a running bounding box, and the box is finally expanded
// by the maximum L-infinity displacement of any corner between
// consecutive steps, to bound the continuous motion path that the
// discrete samples straddle.
//
// If the effect cannot produce a transform at any visited step, the
// result is the unbounded rectangle: fail safe, never a partial box.
func TransformRegion(e Effect, q RegionQuery) Rect {
	hasMotionBlur := (q.Shutter.Duration != 0 || q.DirectionalBlur) && q.MotionBlur != 0

	var rng TimeRange
	if hasMotionBlur && !q.DirectionalBlur {
		rng = q.Shutter.Range(q.Time)
	} else {
		if q.Identity {
			return q.Rect
		}
		rng = TimeRange{Min: q.Time, Max: q.Time}
	}

	// Union seed: a reversed-infinite rectangle that any real box
	// replaces on the first fold.
	out := Rect{X1: InfiniteMax, Y1: InfiniteMax, X2: InfiniteMin, Y2: InfiniteMin}

	t := rng.Min
	first := true
	last := !hasMotionBlur
	expand := 0.0
	amount := 1.0
	dirBlurStep := 0
	var prev [4]Point3D
	for {
		m, ok := e.InverseTransformCanonical(t, q.AmountFrom+amount*(q.AmountTo-q.AmountFrom), q.Invert)
		if !ok {
			return Infinite()
		}
		p := projectRect(q.Rect, m)
		out = out.Union(regionFromPoints(p))

		if first {
			first = false
		} else {
			for i := 0; i < 4; i++ {
				expand = math.Max(expand, math.Abs(prev[i].X-p[i].X))
				expand = math.Max(expand, math.Abs(prev[i].Y-p[i].Y))
			}
		}

		if last {
			break
		}
		prev = p
		if q.DirectionalBlur {
			dirBlurStep++
			amount = 1 - float64(dirBlurStep)/float64(DirBlurRegionSteps)
			last = dirBlurStep == DirBlurRegionSteps
		} else {
			// Advance to the next quarter-frame boundary; the final
			// step lands exactly on the shutter close time.
			t = math.Floor(t*4+1) / 4
			if t >= rng.Max {
				t = rng.Max
				last = true
			}
		}
	}

	return out.Expand(expand, expand)
}
