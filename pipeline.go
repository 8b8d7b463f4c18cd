package warp

import (
	"errors"
	"fmt"
)

// ErrImageMismatch is returned when the destination buffer the host
// supplied does not match the render arguments. Rendering into a
// mismatched buffer would silently produce garbage, so the call fails
// outright instead.
var ErrImageMismatch = errors.New("warp: host gave image with wrong properties")

// ErrNoTransform is returned when the effect cannot produce a
// transform for a single-sample render.
var ErrNoTransform = errors.New("warp: no transform available")

// BitDepth is the pixel storage depth of a host image buffer.
type BitDepth int

const (
	BitDepthNone BitDepth = iota
	BitDepthUByte
	BitDepthUShort
	BitDepthFloat
)

// String returns the bit depth name.
func (d BitDepth) String() string {
	switch d {
	case BitDepthNone:
		return "None"
	case BitDepthUByte:
		return "UByte"
	case BitDepthUShort:
		return "UShort"
	case BitDepthFloat:
		return "Float"
	default:
		return "Unknown"
	}
}

// ImageDesc describes a host image buffer's properties. The engine
// never reads pixels; it only checks that the buffers it is asked to
// plan a render for are consistent with each other and with the render
// arguments.
type ImageDesc struct {
	BitDepth         BitDepth
	Components       int
	RenderScale      Point
	Field            Field
	PixelAspectRatio float64
}

// SourceImage is the fetched source buffer plus the transform the host
// may have baked into it. Transform maps source to destination in
// pixel space; TransformIsIdentity marks sources with no baked
// transform.
type SourceImage struct {
	Desc                ImageDesc
	RoD                 Rect
	Transform           Matrix3x3
	TransformIsIdentity bool
}

// RenderArgs is the per-call render request from the host.
type RenderArgs struct {
	Time          float64
	RenderScale   Point
	FieldToRender Field
}

// RenderPlan is everything the external resampler needs for one frame:
// the pixel-space inverse transform samples, the effective motion-blur
// strength (zero when the set collapsed to a single sample), and the
// pass-through compositing parameters.
type RenderPlan struct {
	Samples      TransformSampleSet
	MotionBlur   float64
	BlackOutside bool
	Mix          float64
	DoMasking    bool
	MaskInvert   bool
}

// BuildRenderPlan assembles the transform package for one render call.
//
// Sampling mode is decided once from the parameter snapshot:
// directional blur when enabled, else shutter motion blur when both
// shutter duration and blur strength are nonzero, else a single sample
// at the frame time. The sample set is then composed with the inverse
// of any transform already baked into the source image (skipped when
// that transform is singular), so the resampler reads the
// untransformed upstream pixels directly.
//
// A nil src yields a single-identity plan: with no source there is
// nothing to transform, but the render itself still succeeds. A
// destination buffer whose properties contradict the render arguments
// fails with ErrImageMismatch; a single-sample render for which the
// effect has no transform fails with ErrNoTransform.
func BuildRenderPlan(e Effect, p Params, args RenderArgs, dst ImageDesc, src *SourceImage) (RenderPlan, error) {
	if dst.RenderScale != args.RenderScale {
		return RenderPlan{}, fmt.Errorf("%w: render scale (%g,%g), want (%g,%g)",
			ErrImageMismatch, dst.RenderScale.X, dst.RenderScale.Y, args.RenderScale.X, args.RenderScale.Y)
	}
	// Some hosts deliver progressive buffers for fielded renders;
	// FieldNone is accepted for compatibility with them.
	if dst.Field != FieldNone && dst.Field != args.FieldToRender {
		return RenderPlan{}, fmt.Errorf("%w: field %v, want %v", ErrImageMismatch, dst.Field, args.FieldToRender)
	}

	if src == nil {
		// No source image: plan a dummy identity transform.
		return RenderPlan{
			Samples: TransformSampleSet{Samples: []TransformSample{{Matrix: Identity3x3()}}},
			Mix:     1,
		}, nil
	}
	if src.Desc.BitDepth != dst.BitDepth || src.Desc.Components != dst.Components {
		return RenderPlan{}, fmt.Errorf("%w: source %v/%d components, destination %v/%d components",
			ErrImageMismatch, src.Desc.BitDepth, src.Desc.Components, dst.BitDepth, dst.Components)
	}

	sg := Geometry{
		RenderScale:      args.RenderScale,
		PixelAspectRatio: src.Desc.PixelAspectRatio,
		Field:            args.FieldToRender,
	}
	amountFrom, amountTo := p.amountRange()

	var set TransformSampleSet
	switch {
	case p.directionalBlur():
		set = InverseTransformsBlur(e, args.Time, sg, p.Invert, amountFrom, amountTo, MotionBlurSampleCount)
		set.ApplyFading(p.Fading, amountTo)
	case p.Shutter.Duration != 0 && p.MotionBlur != 0:
		set = InverseTransforms(e, args.Time, sg, p.Invert, p.Shutter, MotionBlurSampleCount)
	default:
		m, ok := e.InverseTransformCanonical(args.Time, 1, p.Invert)
		if !ok {
			return RenderPlan{}, fmt.Errorf("%w: at time %g", ErrNoTransform, args.Time)
		}
		fielded := args.FieldToRender.Fielded()
		pixel := CanonicalToPixel(src.Desc.PixelAspectRatio, args.RenderScale.X, args.RenderScale.Y, fielded).
			Mul(m).
			Mul(PixelToCanonical(src.Desc.PixelAspectRatio, args.RenderScale.X, args.RenderScale.Y, fielded))
		set = TransformSampleSet{Samples: []TransformSample{{Matrix: pixel}}}
	}

	motionBlur := p.MotionBlur
	if set.Len() == 1 {
		// A collapsed set means the transform is effectively static;
		// spare the resampler the blur accumulation.
		motionBlur = 0
	}

	// Compose with the transform the source image already carries.
	if !src.TransformIsIdentity {
		det := src.Transform.Determinant()
		if det != 0 {
			inv := src.Transform.Inverse(det)
			for i := range set.Samples {
				set.Samples[i].Matrix = inv.Mul(set.Samples[i].Matrix)
			}
		} else {
			Logger().Warn("warp: singular source transform, composition skipped")
		}
	}

	Logger().Debug("warp: render plan built",
		"samples", set.Len(), "motionblur", motionBlur)

	return RenderPlan{
		Samples:      set,
		MotionBlur:   motionBlur,
		BlackOutside: p.BlackOutside,
		Mix:          p.Mix,
		DoMasking:    p.doMasking(),
		MaskInvert:   p.MaskInvert,
	}, nil
}

// IsIdentity reports whether a render at the given time would be a
// no-op, so the host can reuse the source buffer unchanged. Motion
// blur, a clamping filter with clamp enabled, and partial mixing all
// defeat identity even when the effect itself is a no-op.
func IsIdentity(e Effect, p Params, time float64) bool {
	if p.Type == ParamsTypeDirBlur && p.Amount == 0 {
		return true
	}

	// With motion blur the transform is assumed non-static.
	if p.Shutter.Duration != 0 && p.MotionBlur != 0 {
		return false
	}

	// Values above 1 would be clamped even by an identity transform.
	if p.Clamp && p.Filter.Clamps() {
		return false
	}

	if e.IsIdentity(time) {
		return true
	}

	if p.Masked && p.Mix == 0 {
		return true
	}
	return false
}

// RegionOfDefinition returns the region outside which the effect's
// output is empty, given the source's own region of definition in
// canonical coordinates.
//
// The propagation uses the forward mapping, so the invert flag is
// flipped relative to render and RegionOfInterest: the output extent
// is where the source's pixels land, not where they are read from.
// Keep the two conventions distinct; unifying them breaks one side or
// the other.
func RegionOfDefinition(e Effect, p Params, g Geometry, time float64, srcRoD Rect) Rect {
	if srcRoD.IsInfinite() {
		return Infinite()
	}
	if p.doMasking() && p.Mix == 0 {
		// Identity mix: the output is the source.
		return srcRoD
	}

	amountFrom, amountTo := p.amountRange()
	identity := e.IsIdentity(time)
	rod := TransformRegion(e, RegionQuery{
		Rect:            srcRoD,
		Time:            time,
		Invert:          !p.Invert, // forward mapping
		MotionBlur:      p.MotionBlur,
		Shutter:         p.Shutter,
		DirectionalBlur: p.directionalBlur(),
		AmountFrom:      amountFrom,
		AmountTo:        amountTo,
		Identity:        identity,
	})

	// Identity must not be inflated, or the output would never equal
	// the source exactly.
	if !identity && p.BlackOutside {
		rod = expandForBlackOutside(rod, g)
	}

	if p.doMasking() {
		// The unprocessed source shows through where the mask is zero
		// or the mix is partial, so the output covers the source too.
		rod = rod.Union(srcRoD)
	}
	return rod
}

// RegionOfInterest returns the source rectangle required to render the
// given output rectangle, expanded by the interpolation filter's
// support radius. A region that would be unbounded (line-at-infinity
// crossing or a failed sample) is clamped to the project area: not
// mathematically exact, but a usable finite answer where none exists.
func RegionOfInterest(e Effect, p Params, g Geometry, time float64, roi Rect) Rect {
	if p.doMasking() && p.Mix == 0 {
		return roi
	}

	amountFrom, amountTo := p.amountRange()
	srcRoI := TransformRegion(e, RegionQuery{
		Rect:            roi,
		Time:            time,
		Invert:          p.Invert,
		MotionBlur:      p.MotionBlur,
		Shutter:         p.Shutter,
		DirectionalBlur: p.directionalBlur(),
		AmountFrom:      amountFrom,
		AmountTo:        amountTo,
		Identity:        e.IsIdentity(time),
	})

	srcRoI = expandForFilter(srcRoI, p.Filter, g)

	if srcRoI.IsInfinite() {
		if srcRoI.X1 <= InfiniteMin {
			srcRoI.X1 = g.ProjectOffset.X
		}
		if srcRoI.X2 >= InfiniteMax {
			srcRoI.X2 = g.ProjectOffset.X + g.ProjectSize.X
		}
		if srcRoI.Y1 <= InfiniteMin {
			srcRoI.Y1 = g.ProjectOffset.Y
		}
		if srcRoI.Y2 >= InfiniteMax {
			srcRoI.Y2 = g.ProjectOffset.Y + g.ProjectSize.Y
		}
	}

	if p.Masked && p.Mix != 1 {
		// Mixing reads the unprocessed source under the output area.
		srcRoI = srcRoI.Union(roi)
	}
	return srcRoI
}

// ForwardTransform exports the effect's forward transform at the given
// time as a single pixel-space matrix, for host-level transform
// chaining. ok is false when the effect has no transform at that time
// or the transform is degenerate; the host then falls back to full
// resampling.
func ForwardTransform(e Effect, p Params, g Geometry, time float64) (Matrix3x3, bool) {
	inv, ok := e.InverseTransformCanonical(time, 1, p.Invert)
	if !ok {
		return Matrix3x3{}, false
	}
	det := inv.Determinant()
	if det == 0 {
		return Matrix3x3{}, false
	}
	fielded := g.Field.Fielded()
	pixel := CanonicalToPixel(g.PixelAspectRatio, g.RenderScale.X, g.RenderScale.Y, fielded).
		Mul(inv.Inverse(det)).
		Mul(PixelToCanonical(g.PixelAspectRatio, g.RenderScale.X, g.RenderScale.Y, fielded))
	return pixel, true
}
