package warp

import "math"

// TransformParams is the evaluated parameter set of a
// translate/rotate/scale/skew effect at one instant.
type TransformParams struct {
	Translate Point

	// Rotate is the rotation angle in radians, counter-clockwise about
	// Center.
	Rotate float64

	// Scale components of zero are treated as 1, so the zero value of
	// TransformParams is the identity.
	Scale Point

	SkewX, SkewY float64
	SkewOrderYX  bool

	// Center is the fixed point of rotation, scale and skew, in
	// canonical coordinates.
	Center Point
}

// scale returns the effective scale factors.
func (p TransformParams) scale() (sx, sy float64) {
	sx, sy = p.Scale.X, p.Scale.Y
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	return sx, sy
}

// TransformEffect is the classic homographic transform: translation,
// rotation, scale and skew about a center point, with per-time
// animated parameters. It implements Effect.
type TransformEffect struct {
	// ParamsAt evaluates the animated parameters at a time. ok false
	// means no transform is defined at that time.
	ParamsAt func(time float64) (TransformParams, bool)
}

// matrixAt builds the forward canonical-space matrix at the given
// time, with the parameters scaled toward identity by amount.
func (e *TransformEffect) matrixAt(time, amount float64) (Matrix3x3, bool) {
	p, ok := e.ParamsAt(time)
	if !ok {
		return Matrix3x3{}, false
	}
	sx, sy := p.scale()
	if amount != 1 {
		p.Translate = p.Translate.Mul(amount)
		p.Rotate *= amount
		p.SkewX *= amount
		p.SkewY *= amount
		sx = powScale(sx, amount)
		sy = powScale(sy, amount)
	}
	m := Translation(p.Center.X+p.Translate.X, p.Center.Y+p.Translate.Y).
		Mul(Rotation(p.Rotate)).
		Mul(Skew(p.SkewX, p.SkewY, p.SkewOrderYX)).
		Mul(Scaling(sx, sy)).
		Mul(Translation(-p.Center.X, -p.Center.Y))
	return m, true
}

// powScale blends a scale factor toward 1 by amount. Positive factors
// blend geometrically so that half of a doubling is sqrt(2), not 1.5;
// non-positive factors fall back to linear blending, which keeps the
// path through zero continuous.
func powScale(s, amount float64) float64 {
	if s > 0 {
		return math.Pow(s, amount)
	}
	return 1 + (s-1)*amount
}

// InverseTransformCanonical implements Effect.
func (e *TransformEffect) InverseTransformCanonical(time, amount float64, invert bool) (Matrix3x3, bool) {
	m, ok := e.matrixAt(time, amount)
	if !ok {
		return Matrix3x3{}, false
	}
	if invert {
		// The inverted effect applies the inverse transform, so its
		// inverse is the forward matrix.
		return m, true
	}
	det := m.Determinant()
	if det == 0 {
		return Matrix3x3{}, false
	}
	return m.Inverse(det), true
}

// IsIdentity implements Effect.
func (e *TransformEffect) IsIdentity(time float64) bool {
	p, ok := e.ParamsAt(time)
	if !ok {
		return false
	}
	sx, sy := p.scale()
	return p.Translate == Point{} && p.Rotate == 0 &&
		p.SkewX == 0 && p.SkewY == 0 && sx == 1 && sy == 1
}

// CornerPinEffect maps a source quadrilateral onto an animated
// destination quadrilateral with a 4-point homography. It implements
// Effect.
type CornerPinEffect struct {
	// From holds the source corners in canonical coordinates.
	From [4]Point

	// ToAt evaluates the destination corners at a time. ok false means
	// no transform is defined at that time.
	ToAt func(time float64) ([4]Point, bool)
}

// cornersAt returns the destination corners blended toward the source
// corners by amount.
func (e *CornerPinEffect) cornersAt(time, amount float64) ([4]Point, bool) {
	to, ok := e.ToAt(time)
	if !ok {
		return [4]Point{}, false
	}
	if amount != 1 {
		for i := range to {
			to[i] = e.From[i].Lerp(to[i], amount)
		}
	}
	return to, true
}

// InverseTransformCanonical implements Effect.
func (e *CornerPinEffect) InverseTransformCanonical(time, amount float64, invert bool) (Matrix3x3, bool) {
	to, ok := e.cornersAt(time, amount)
	if !ok {
		return Matrix3x3{}, false
	}
	if invert {
		return Homography(e.From, to)
	}
	return Homography(to, e.From)
}

// IsIdentity implements Effect.
func (e *CornerPinEffect) IsIdentity(time float64) bool {
	to, ok := e.ToAt(time)
	return ok && to == e.From
}
