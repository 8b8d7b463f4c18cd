// Package warp computes time-sampled inverse 3x3 transforms and
// conservative source/destination regions for 2D homographic effects
// (rotation, perspective warp, corner pin, directional blur).
//
// # Overview
//
// A homographic effect moves pixels with a 3x3 matrix in homogeneous
// coordinates. Rendering one needs more than a single matrix: under
// motion blur the transform varies across the shutter interval, and the
// regions an effect reads from (region of interest) and writes to
// (region of definition) must bound that whole motion, not just one
// instant. warp produces:
//
//   - a bounded set of pixel-space inverse transforms covering the
//     shutter interval or a directional-blur amount range, collapsed to
//     one sample when the transform turns out to be static,
//   - the conservative axis-aligned region a rectangle maps to under
//     that whole family of transforms, including correct handling of
//     rectangles that cross the line at infinity,
//   - a single exportable forward transform for host-level transform
//     concatenation, when one exists.
//
// warp does not touch pixels. The actual resampling filter, mask
// compositing and parameter animation live in the caller; warp consumes
// already-evaluated parameter values and hands back transform and
// region data. See cmd/warpdemo for a minimal consumer built on
// golang.org/x/image.
//
// # Coordinate Spaces
//
// Effects define their transforms in canonical coordinates (resolution
// independent, square pixels). The engine sandwiches them between
// CanonicalToPixel and PixelToCanonical, which account for pixel aspect
// ratio, render scale and interlaced (fielded) delivery, so the
// transforms handed to a resampler are in pixel space.
//
// # Quick Start
//
//	effect := &warp.TransformEffect{
//		ParamsAt: func(t float64) (warp.TransformParams, bool) {
//			return warp.TransformParams{Rotate: t * math.Pi / 8}, true
//		},
//	}
//	params := warp.DefaultParams(warp.ParamsTypeMotionBlur)
//	params.MotionBlur = 1
//	params.Shutter = warp.ShutterConfig{Duration: 0.5}
//	plan, err := warp.BuildRenderPlan(effect, params, args, dst, src)
//
// # Concurrency
//
// All operations are pure functions of their inputs: parameter values
// are snapshotted into a Params value before the call and never
// re-read, and no state is shared between calls. Render and region
// queries may run concurrently across tiles, threads and frames without
// synchronization.
package warp
