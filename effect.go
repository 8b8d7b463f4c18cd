package warp

// Effect is the capability a concrete transform variant (rotation,
// corner pin, mirror, ...) supplies to the engine. The engine depends
// only on this interface, never on a concrete variant list.
type Effect interface {
	// InverseTransformCanonical returns the inverse of the effect's
	// transform at the given time, in canonical coordinates. amount
	// scales the effect toward identity (1 is the full effect, 0 is
	// none); it is exercised by directional blur. invert true asks for
	// the inverse of the inverted effect, i.e. the forward transform.
	//
	// ok is false when no transform is defined at that time. Such a
	// failure is legitimate and must not be retried.
	InverseTransformCanonical(time, amount float64, invert bool) (m Matrix3x3, ok bool)

	// IsIdentity reports whether the effect is a no-op at the given
	// time.
	IsIdentity(time float64) bool
}

// Field identifies which interlace field (if any) a render call
// targets.
type Field int

const (
	// FieldNone is progressive (non-interlaced) delivery.
	FieldNone Field = iota

	// FieldBoth renders both fields interleaved.
	FieldBoth

	// FieldLower renders the lower (even) field only.
	FieldLower

	// FieldUpper renders the upper (odd) field only.
	FieldUpper
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldNone:
		return "None"
	case FieldBoth:
		return "Both"
	case FieldLower:
		return "Lower"
	case FieldUpper:
		return "Upper"
	default:
		return "Unknown"
	}
}

// Fielded reports whether the field selects half-height (single field)
// delivery.
func (f Field) Fielded() bool {
	return f == FieldLower || f == FieldUpper
}

// ParamsType selects which parameter group an effect carries. It
// mirrors the two families of homographic effects: those with
// shutter-based motion blur, and those built around an amount blend
// (directional blur).
type ParamsType int

const (
	// ParamsTypeNone is an effect with neither blur parameter group.
	ParamsTypeNone ParamsType = iota

	// ParamsTypeMotionBlur carries shutter parameters and a
	// directional-blur toggle.
	ParamsTypeMotionBlur

	// ParamsTypeDirBlur carries amount, centered and fading parameters;
	// directional blur is always active for this family.
	ParamsTypeDirBlur
)

// Params is the read-only snapshot of every parameter value the engine
// needs, evaluated once at the frame time before a render or region
// call. Build it once per call and pass it through; never re-read a
// live parameter mid-computation, or concurrent parameter edits could
// produce an internally inconsistent sample set.
type Params struct {
	Type ParamsType

	Invert       bool
	Filter       Filter
	Clamp        bool
	BlackOutside bool

	// MotionBlur is the blur strength. Zero disables shutter sampling
	// regardless of shutter duration.
	MotionBlur float64
	Shutter    ShutterConfig

	// DirectionalBlur toggles amount-blend sampling for
	// ParamsTypeMotionBlur effects. ParamsTypeDirBlur effects blend
	// unconditionally.
	DirectionalBlur bool

	// Amount is the blend endpoint for directional blur. Centered
	// extends the blend range to [-Amount, Amount]. Fading is the
	// gamma exponent applied to sample alphas; zero or negative keeps
	// all alphas at 1.
	Amount   float64
	Centered bool
	Fading   float64

	// Masked marks effects that composite through a mask/mix stage.
	Masked        bool
	Mix           float64
	MaskApply     bool
	MaskConnected bool
	MaskInvert    bool
}

// DefaultParams returns the parameter snapshot with the neutral values
// for the given effect family: full amount and mix, no blur, no
// inversion.
func DefaultParams(typ ParamsType) Params {
	p := Params{
		Type:   typ,
		Filter: FilterCubic,
		Amount: 1,
		Mix:    1,
	}
	if typ == ParamsTypeDirBlur {
		// The amount blend replaces the shutter for this family; a
		// nonzero strength keeps region propagation walking the range.
		p.MotionBlur = 1
	}
	return p
}

// directionalBlur reports whether amount-blend sampling is active.
func (p Params) directionalBlur() bool {
	switch p.Type {
	case ParamsTypeDirBlur:
		return true
	case ParamsTypeMotionBlur:
		return p.DirectionalBlur
	default:
		return false
	}
}

// amountRange returns the [from, to] blend interval.
func (p Params) amountRange() (from, to float64) {
	to = 1
	if p.Type == ParamsTypeDirBlur {
		to = p.Amount
	}
	if p.Centered {
		from = -to
	}
	return from, to
}

// doMasking reports whether the mask input participates in this call.
func (p Params) doMasking() bool {
	return p.Masked && p.MaskApply && p.MaskConnected
}

// Geometry is the host-supplied spatial context of a render or region
// call.
type Geometry struct {
	RenderScale      Point
	PixelAspectRatio float64
	Field            Field

	// ProjectSize and ProjectOffset bound the project area. They are
	// the fallback finite bound when a region of interest would
	// otherwise be unbounded.
	ProjectSize   Point
	ProjectOffset Point
}

// canonicalPixelSize returns the size of one pixel in canonical
// coordinates.
func (g Geometry) canonicalPixelSize() (dx, dy float64) {
	dx = g.PixelAspectRatio / g.RenderScale.X
	dy = 1 / g.RenderScale.Y
	if g.Field.Fielded() {
		dy *= 2
	}
	return dx, dy
}
