// Command warpdemo resamples a PNG through a time-sampled transform
// plan, acting as the external resampler the warp engine normally
// hands its output to. It demonstrates motion blur by averaging the
// plan's transform samples.
//
// Only affine sample sets are supported: the demo resamples with
// golang.org/x/image/draw, whose transforms are affine. A projective
// corner pin needs a per-pixel homography loop, which is out of scope
// here.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/drewp/warp"
)

func main() {
	var (
		input      = flag.String("input", "", "input PNG file")
		output     = flag.String("output", "out.png", "output PNG file")
		translateX = flag.Float64("tx", 0, "translation x at shutter close")
		translateY = flag.Float64("ty", 0, "translation y at shutter close")
		rotate     = flag.Float64("rotate", 0, "rotation in degrees at shutter close")
		scale      = flag.Float64("scale", 1, "uniform scale at shutter close")
		shutter    = flag.Float64("shutter", 0, "shutter duration in frames")
		motionBlur = flag.Float64("motionblur", 1, "motion blur strength")
		samples    = flag.Int("samples", 32, "maximum transform samples")
	)
	flag.Parse()

	if *input == "" {
		flag.Usage()
		os.Exit(2)
	}

	src, err := loadPNG(*input)
	if err != nil {
		log.Fatalf("Failed to load %s: %v", *input, err)
	}
	bounds := src.Bounds()
	center := warp.Pt(float64(bounds.Dx())/2, float64(bounds.Dy())/2)

	// Parameters animate linearly from identity at time 0 to the flag
	// values at time 1, so a shutter interval inside [0, 1] produces a
	// visible blur trail.
	effect := &warp.TransformEffect{
		ParamsAt: func(t float64) (warp.TransformParams, bool) {
			s := 1 + (*scale-1)*t
			return warp.TransformParams{
				Translate: warp.Pt(*translateX*t, *translateY*t),
				Rotate:    *rotate * math.Pi / 180 * t,
				Scale:     warp.Pt(s, s),
				Center:    center,
			}, true
		},
	}

	geom := warp.Geometry{
		RenderScale:      warp.Pt(1, 1),
		PixelAspectRatio: 1,
	}
	duration := *shutter
	if *motionBlur == 0 {
		duration = 0
	}
	if *samples < 1 {
		*samples = 1
	}
	set := warp.InverseTransforms(effect, 1, geom, false,
		warp.ShutterConfig{Duration: duration, Offset: warp.ShutterOffsetEnd},
		*samples)

	dst, err := resample(src, set)
	if err != nil {
		log.Fatalf("Resampling failed: %v", err)
	}
	if err := savePNG(*output, dst); err != nil {
		log.Fatalf("Failed to save %s: %v", *output, err)
	}
	log.Printf("Wrote %s (%d transform samples)", *output, set.Len())
}

// resample accumulates the source image through every sample's inverse
// transform and averages the result.
func resample(src *image.RGBA, set warp.TransformSampleSet) (*image.RGBA, error) {
	bounds := src.Bounds()
	acc := make([]float64, 4*bounds.Dx()*bounds.Dy())
	tmp := image.NewRGBA(bounds)

	for _, sample := range set.Samples {
		aff, err := srcToDst(sample.Matrix)
		if err != nil {
			return nil, err
		}
		clear(tmp.Pix)
		draw.CatmullRom.Transform(tmp, aff, src, bounds, draw.Src, nil)
		for i, v := range tmp.Pix {
			acc[i] += float64(v)
		}
	}

	dst := image.NewRGBA(bounds)
	n := float64(set.Len())
	for i, v := range acc {
		dst.Pix[i] = uint8(math.Round(v / n))
	}
	return dst, nil
}

// srcToDst converts a pixel-space inverse transform (destination to
// source) into the source-to-destination affine matrix that
// draw.Transform expects.
func srcToDst(m warp.Matrix3x3) (f64.Aff3, error) {
	det := m.Determinant()
	if det == 0 {
		return f64.Aff3{}, fmt.Errorf("singular transform sample")
	}
	fwd := m.Inverse(det)
	if fwd.I == 0 {
		return f64.Aff3{}, fmt.Errorf("degenerate transform sample")
	}
	// Normalize the homogeneous scale, then require an affine matrix.
	const eps = 1e-12
	if math.Abs(fwd.G/fwd.I) > eps || math.Abs(fwd.H/fwd.I) > eps {
		return f64.Aff3{}, fmt.Errorf("projective transform sample, only affine supported")
	}
	return f64.Aff3{
		fwd.A / fwd.I, fwd.B / fwd.I, fwd.C / fwd.I,
		fwd.D / fwd.I, fwd.E / fwd.I, fwd.F / fwd.I,
	}, nil
}

func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, err
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Copy(rgba, img.Bounds().Min, img, img.Bounds(), draw.Src, nil)
	return rgba, nil
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
