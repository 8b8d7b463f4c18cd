package warp

// Filter identifies the interpolation filter the external resampler
// will use. The engine does not implement the kernels; it only needs
// each filter's support radius to expand regions of interest, and
// whether the kernel can overshoot (which makes the clamp parameter
// meaningful).
type Filter int

const (
	// FilterImpulse is nearest-neighbor sampling.
	FilterImpulse Filter = iota

	// FilterBilinear interpolates over a 2x2 neighborhood.
	FilterBilinear

	// FilterCubic is a smooth 4x4 keys-family cubic with no overshoot.
	FilterCubic

	// FilterKeys is the Catmull-Rom cubic (sharp, can overshoot).
	FilterKeys

	// FilterSimon is a sharper cubic (can overshoot).
	FilterSimon

	// FilterRifman is the sharpest cubic (can overshoot).
	FilterRifman

	// FilterMitchell is the Mitchell-Netravali cubic (can overshoot).
	FilterMitchell

	// FilterParzen is the B-spline cubic (softest, no overshoot).
	FilterParzen

	// FilterNotch is a flat kernel that hides moire patterns.
	FilterNotch
)

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterImpulse:
		return "Impulse"
	case FilterBilinear:
		return "Bilinear"
	case FilterCubic:
		return "Cubic"
	case FilterKeys:
		return "Keys"
	case FilterSimon:
		return "Simon"
	case FilterRifman:
		return "Rifman"
	case FilterMitchell:
		return "Mitchell"
	case FilterParzen:
		return "Parzen"
	case FilterNotch:
		return "Notch"
	default:
		return "Unknown"
	}
}

// Support returns the kernel's support radius in pixels: how far from
// the sampled position the filter reads source pixels.
func (f Filter) Support() float64 {
	switch f {
	case FilterImpulse:
		return 0
	case FilterBilinear:
		return 1
	default:
		return 2
	}
}

// Clamps reports whether the kernel can overshoot the source value
// range, making an explicit clamp meaningful. Kernels without
// overshoot are clamped by construction.
func (f Filter) Clamps() bool {
	switch f {
	case FilterKeys, FilterSimon, FilterRifman, FilterMitchell:
		return true
	default:
		return false
	}
}

// expandForFilter grows every finite side of a canonical-space region
// by the filter's support radius, converted from pixels to canonical
// units.
func expandForFilter(r Rect, f Filter, g Geometry) Rect {
	support := f.Support()
	if support == 0 {
		return r
	}
	dx, dy := g.canonicalPixelSize()
	return r.Expand(support*dx, support*dy)
}

// expandForBlackOutside grows every finite side of a canonical-space
// region by one pixel, so the resampler has the transparent border it
// needs to fade out at the edge.
func expandForBlackOutside(r Rect, g Geometry) Rect {
	dx, dy := g.canonicalPixelSize()
	return r.Expand(dx, dy)
}
