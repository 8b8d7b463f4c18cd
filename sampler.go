package warp

import "math"

// MotionBlurSampleCount is the hard ceiling on the number of transform
// samples generated for one frame. It bounds the cost of a render call
// no matter how long the shutter is.
const MotionBlurSampleCount = 1000

// DirBlurRegionSteps is the number of amount steps walked by region
// propagation in directional-blur mode.
const DirBlurRegionSteps = 8

// TransformSample is one inverse transform produced for one instant
// (motion blur) or one blend amount (directional blur). Alpha carries
// the sample's blend weight for directional blur; it is the raw amount
// until ApplyFading normalizes it.
type TransformSample struct {
	Matrix Matrix3x3
	Alpha  float64
}

// TransformSampleSet is the ordered sequence of transform samples for
// one frame. The order follows sampling time (or amount) but carries
// no meaning beyond reproducibility; only the set of samples and their
// count matter downstream. If every sample's coefficients are
// bit-for-bit equal the set is collapsed to a single sample, which
// lets the resampler skip the whole blur accumulation.
type TransformSampleSet struct {
	Samples []TransformSample

	// HasAlpha marks sets whose Alpha values are meaningful
	// (directional blur).
	HasAlpha bool
}

// Len returns the number of samples in the set.
func (s TransformSampleSet) Len() int {
	return len(s.Samples)
}

// collapse truncates the set to one sample when every sample equals
// the first. Exact comparison: this is an identity optimization, and
// transforms that differ at all still need the full set.
func (s *TransformSampleSet) collapse() {
	if len(s.Samples) < 2 {
		return
	}
	first := s.Samples[0].Matrix
	for _, smp := range s.Samples[1:] {
		if !smp.Matrix.Eq(first) {
			return
		}
	}
	s.Samples = s.Samples[:1]
}

// ApplyFading normalizes the alpha weights of a directional-blur
// sample set. A fading exponent of zero or less forces every alpha to
// 1; otherwise each raw amount a is replaced by
// (1 - |a|/amountTo)^fading.
func (s *TransformSampleSet) ApplyFading(fading, amountTo float64) {
	if fading <= 0 || amountTo == 0 {
		for i := range s.Samples {
			s.Samples[i].Alpha = 1
		}
		return
	}
	for i := range s.Samples {
		s.Samples[i].Alpha = math.Pow(1-math.Abs(s.Samples[i].Alpha)/amountTo, fading)
	}
}

// InverseTransforms samples the effect's inverse transform across the
// shutter interval around time, producing up to capacity samples in
// pixel space, linearly spaced from shutter open to shutter close. The
// first sample lands exactly on the open time so rounding drift cannot
// shift it. When the effect cannot produce a transform at a sampled
// time, the identity is substituted for that sample and the set keeps
// its size, so one bad instant never aborts a whole blur. A set whose
// samples are all equal is collapsed to a single sample. A capacity
// below 1 is treated as 1.
func InverseTransforms(e Effect, time float64, g Geometry, invert bool, shutter ShutterConfig, capacity int) TransformSampleSet {
	if capacity < 1 {
		capacity = 1
	}
	rng := shutter.Range(time)
	tStart, tEnd := rng.Min, rng.Max

	fielded := g.Field.Fielded()
	toPixel := CanonicalToPixel(g.PixelAspectRatio, g.RenderScale.X, g.RenderScale.Y, fielded)
	toCanonical := PixelToCanonical(g.PixelAspectRatio, g.RenderScale.X, g.RenderScale.Y, fielded)

	set := TransformSampleSet{Samples: make([]TransformSample, capacity)}
	for i := range set.Samples {
		t := tStart
		if i > 0 {
			t = tStart + float64(i)*(tEnd-tStart)/float64(capacity-1)
		}
		m, ok := e.InverseTransformCanonical(t, 1, invert)
		if ok {
			set.Samples[i].Matrix = toPixel.Mul(m).Mul(toCanonical)
		} else {
			set.Samples[i].Matrix = Identity3x3()
		}
	}
	set.collapse()
	return set
}

// InverseTransformsBlur samples the effect's inverse transform across
// the [amountFrom, amountTo] blend interval at the frame time,
// producing up to capacity weighted samples in pixel space. Iteration
// i uses the blend fraction 1 - (i+1)/capacity; this spacing skips
// amountFrom itself and ends on the smallest positive step, matching
// the established directional-blur convention — do not replace it with
// the symmetric i/(capacity-1) spacing, that changes rendered output.
//
// Samples the effect cannot produce are dropped, shrinking the set.
// Each kept sample's Alpha is the raw blend amount; the caller
// normalizes with ApplyFading. A set whose samples are all equal is
// collapsed to a single sample.
func InverseTransformsBlur(e Effect, time float64, g Geometry, invert bool, amountFrom, amountTo float64, capacity int) TransformSampleSet {
	if capacity < 1 {
		capacity = 1
	}
	fielded := g.Field.Fielded()
	toPixel := CanonicalToPixel(g.PixelAspectRatio, g.RenderScale.X, g.RenderScale.Y, fielded)
	toCanonical := PixelToCanonical(g.PixelAspectRatio, g.RenderScale.X, g.RenderScale.Y, fielded)

	set := TransformSampleSet{
		Samples:  make([]TransformSample, 0, capacity),
		HasAlpha: true,
	}
	for i := 0; i < capacity; i++ {
		a := 1 - float64(i+1)/float64(capacity)
		amt := amountFrom + (amountTo-amountFrom)*a
		m, ok := e.InverseTransformCanonical(time, amt, invert)
		if !ok {
			continue
		}
		set.Samples = append(set.Samples, TransformSample{
			Matrix: toPixel.Mul(m).Mul(toCanonical),
			Alpha:  amt,
		})
	}
	set.collapse()
	return set
}
