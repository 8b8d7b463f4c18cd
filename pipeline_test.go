package warp

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func unitDesc() ImageDesc {
	return ImageDesc{
		BitDepth:         BitDepthFloat,
		Components:       4,
		RenderScale:      Pt(1, 1),
		Field:            FieldNone,
		PixelAspectRatio: 1,
	}
}

func unitArgs() RenderArgs {
	return RenderArgs{Time: 0, RenderScale: Pt(1, 1), FieldToRender: FieldNone}
}

func unitSource() *SourceImage {
	return &SourceImage{
		Desc:                unitDesc(),
		RoD:                 Rect{X1: 0, Y1: 0, X2: 100, Y2: 100},
		TransformIsIdentity: true,
	}
}

func TestBuildRenderPlanSingleSample(t *testing.T) {
	e := staticEffect(Translation(10, -5))
	plan, err := BuildRenderPlan(e, DefaultParams(ParamsTypeMotionBlur), unitArgs(), unitDesc(), unitSource())
	if err != nil {
		t.Fatalf("BuildRenderPlan: %v", err)
	}
	if plan.Samples.Len() != 1 {
		t.Fatalf("got %d samples, want 1", plan.Samples.Len())
	}
	if got := plan.Samples.Samples[0].Matrix; !matrixNear(got, Translation(10, -5)) {
		t.Errorf("sample = %+v, want Translation(10,-5)", got)
	}
	if plan.MotionBlur != 0 {
		t.Errorf("single-sample plan must report zero motion blur, got %v", plan.MotionBlur)
	}
	if plan.Mix != 1 {
		t.Errorf("Mix = %v, want 1", plan.Mix)
	}
}

func TestBuildRenderPlanMismatch(t *testing.T) {
	e := staticEffect(Identity3x3())
	p := DefaultParams(ParamsTypeMotionBlur)

	t.Run("render scale", func(t *testing.T) {
		dst := unitDesc()
		dst.RenderScale = Pt(0.5, 0.5)
		_, err := BuildRenderPlan(e, p, unitArgs(), dst, unitSource())
		if !errors.Is(err, ErrImageMismatch) {
			t.Errorf("err = %v, want ErrImageMismatch", err)
		}
	})

	t.Run("field", func(t *testing.T) {
		dst := unitDesc()
		dst.Field = FieldUpper
		args := unitArgs()
		args.FieldToRender = FieldLower
		_, err := BuildRenderPlan(e, p, args, dst, unitSource())
		if !errors.Is(err, ErrImageMismatch) {
			t.Errorf("err = %v, want ErrImageMismatch", err)
		}
	})

	t.Run("progressive buffer for fielded render is accepted", func(t *testing.T) {
		args := unitArgs()
		args.FieldToRender = FieldLower
		if _, err := BuildRenderPlan(e, p, args, unitDesc(), unitSource()); err != nil {
			t.Errorf("FieldNone destination must be accepted: %v", err)
		}
	})

	t.Run("source depth", func(t *testing.T) {
		src := unitSource()
		src.Desc.BitDepth = BitDepthUByte
		_, err := BuildRenderPlan(e, p, unitArgs(), unitDesc(), src)
		if !errors.Is(err, ErrImageMismatch) {
			t.Errorf("err = %v, want ErrImageMismatch", err)
		}
	})
}

func TestBuildRenderPlanNoSource(t *testing.T) {
	e := staticEffect(Translation(10, 0))
	plan, err := BuildRenderPlan(e, DefaultParams(ParamsTypeMotionBlur), unitArgs(), unitDesc(), nil)
	if err != nil {
		t.Fatalf("BuildRenderPlan: %v", err)
	}
	if plan.Samples.Len() != 1 || !plan.Samples.Samples[0].Matrix.IsIdentity() {
		t.Errorf("no-source plan must hold a single identity sample, got %+v", plan.Samples)
	}
	if plan.Mix != 1 {
		t.Errorf("Mix = %v, want 1", plan.Mix)
	}
}

func TestBuildRenderPlanNoTransform(t *testing.T) {
	e := funcEffect{at: func(time, amount float64, invert bool) (Matrix3x3, bool) {
		return Matrix3x3{}, false
	}}
	_, err := BuildRenderPlan(e, DefaultParams(ParamsTypeMotionBlur), unitArgs(), unitDesc(), unitSource())
	if !errors.Is(err, ErrNoTransform) {
		t.Errorf("err = %v, want ErrNoTransform", err)
	}
}

func TestBuildRenderPlanMotionBlur(t *testing.T) {
	moving := funcEffect{at: func(time, amount float64, invert bool) (Matrix3x3, bool) {
		return Translation(time*20, 0), true
	}}
	p := DefaultParams(ParamsTypeMotionBlur)
	p.MotionBlur = 1
	p.Shutter = ShutterConfig{Duration: 1, Offset: ShutterOffsetEnd}
	args := unitArgs()
	args.Time = 1

	plan, err := BuildRenderPlan(moving, p, args, unitDesc(), unitSource())
	if err != nil {
		t.Fatalf("BuildRenderPlan: %v", err)
	}
	if plan.Samples.Len() != MotionBlurSampleCount {
		t.Errorf("got %d samples, want %d", plan.Samples.Len(), MotionBlurSampleCount)
	}
	if plan.MotionBlur != 1 {
		t.Errorf("MotionBlur = %v, want 1", plan.MotionBlur)
	}
}

func TestBuildRenderPlanMotionBlurCollapse(t *testing.T) {
	p := DefaultParams(ParamsTypeMotionBlur)
	p.MotionBlur = 1
	p.Shutter = ShutterConfig{Duration: 1, Offset: ShutterOffsetCentered}

	plan, err := BuildRenderPlan(staticEffect(Rotation(0.3)), p, unitArgs(), unitDesc(), unitSource())
	if err != nil {
		t.Fatalf("BuildRenderPlan: %v", err)
	}
	if plan.Samples.Len() != 1 {
		t.Errorf("static transform under blur must collapse to 1 sample, got %d", plan.Samples.Len())
	}
	if plan.MotionBlur != 0 {
		t.Errorf("collapsed plan must force MotionBlur to 0, got %v", plan.MotionBlur)
	}
}

func TestBuildRenderPlanDirectionalBlur(t *testing.T) {
	e := funcEffect{at: func(time, amount float64, invert bool) (Matrix3x3, bool) {
		return Translation(amount*10, 0), true
	}}
	p := DefaultParams(ParamsTypeDirBlur)
	p.Fading = 0

	plan, err := BuildRenderPlan(e, p, unitArgs(), unitDesc(), unitSource())
	if err != nil {
		t.Fatalf("BuildRenderPlan: %v", err)
	}
	if plan.Samples.Len() != MotionBlurSampleCount {
		t.Errorf("got %d samples, want %d", plan.Samples.Len(), MotionBlurSampleCount)
	}
	if !plan.Samples.HasAlpha {
		t.Error("directional-blur plan must carry alphas")
	}
	for i, smp := range plan.Samples.Samples {
		if smp.Alpha != 1 {
			t.Fatalf("zero fading must force alpha %d to 1, got %v", i, smp.Alpha)
		}
	}
}

func TestBuildRenderPlanUpstreamCompose(t *testing.T) {
	e := staticEffect(Translation(3, 0))
	src := unitSource()
	src.Transform = Translation(5, 0)
	src.TransformIsIdentity = false

	plan, err := BuildRenderPlan(e, DefaultParams(ParamsTypeMotionBlur), unitArgs(), unitDesc(), src)
	if err != nil {
		t.Fatalf("BuildRenderPlan: %v", err)
	}
	// upstreamInverse * sample = Translation(-5) * Translation(3).
	if got := plan.Samples.Samples[0].Matrix; !matrixNear(got, Translation(-2, 0)) {
		t.Errorf("composed sample = %+v, want Translation(-2,0)", got)
	}
}

func TestBuildRenderPlanUpstreamSingularSkipped(t *testing.T) {
	e := staticEffect(Translation(3, 0))
	src := unitSource()
	src.Transform = Matrix3x3{} // singular
	src.TransformIsIdentity = false

	plan, err := BuildRenderPlan(e, DefaultParams(ParamsTypeMotionBlur), unitArgs(), unitDesc(), src)
	if err != nil {
		t.Fatalf("BuildRenderPlan: %v", err)
	}
	if got := plan.Samples.Samples[0].Matrix; !matrixNear(got, Translation(3, 0)) {
		t.Errorf("singular upstream must leave the sample alone, got %+v", got)
	}
}

func TestIsIdentity(t *testing.T) {
	identityEffect := funcEffect{
		at: func(time, amount float64, invert bool) (Matrix3x3, bool) {
			return Identity3x3(), true
		},
		identity: func(time float64) bool { return true },
	}
	movingEffect := staticEffect(Translation(1, 0))

	tests := []struct {
		name   string
		e      Effect
		mutate func(*Params)
		want   bool
	}{
		{"identity effect", identityEffect, nil, true},
		{"non-identity effect", movingEffect, nil, false},
		{
			"zero amount is identity",
			movingEffect,
			func(p *Params) { p.Type = ParamsTypeDirBlur; p.Amount = 0 },
			true,
		},
		{
			"motion blur defeats identity",
			identityEffect,
			func(p *Params) { p.MotionBlur = 1; p.Shutter.Duration = 1 },
			false,
		},
		{
			"clamping filter with clamp defeats identity",
			identityEffect,
			func(p *Params) { p.Clamp = true; p.Filter = FilterKeys },
			false,
		},
		{
			"clamp with non-overshooting filter keeps identity",
			identityEffect,
			func(p *Params) { p.Clamp = true; p.Filter = FilterCubic },
			true,
		},
		{
			"zero mix is identity",
			movingEffect,
			func(p *Params) { p.Masked = true; p.Mix = 0 },
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultParams(ParamsTypeMotionBlur)
			if tt.mutate != nil {
				tt.mutate(&p)
			}
			if got := IsIdentity(tt.e, p, 0); got != tt.want {
				t.Errorf("IsIdentity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRegionOfDefinition(t *testing.T) {
	effect := &TransformEffect{
		ParamsAt: func(time float64) (TransformParams, bool) {
			return TransformParams{Translate: Pt(10, -5)}, true
		},
	}
	g := Geometry{RenderScale: Pt(1, 1), PixelAspectRatio: 1}
	srcRoD := Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}

	t.Run("forward mapping", func(t *testing.T) {
		got := RegionOfDefinition(effect, DefaultParams(ParamsTypeMotionBlur), g, 0, srcRoD)
		want := Rect{X1: 10, Y1: -5, X2: 110, Y2: 95}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("RoD mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("black outside expands by one pixel", func(t *testing.T) {
		p := DefaultParams(ParamsTypeMotionBlur)
		p.BlackOutside = true
		got := RegionOfDefinition(effect, p, g, 0, srcRoD)
		want := Rect{X1: 9, Y1: -6, X2: 111, Y2: 96}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("RoD mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("identity is not expanded", func(t *testing.T) {
		still := &TransformEffect{
			ParamsAt: func(time float64) (TransformParams, bool) {
				return TransformParams{}, true
			},
		}
		p := DefaultParams(ParamsTypeMotionBlur)
		p.BlackOutside = true
		got := RegionOfDefinition(still, p, g, 0, srcRoD)
		if got != srcRoD {
			t.Errorf("identity RoD = %+v, want source RoD %+v", got, srcRoD)
		}
	})

	t.Run("infinite source passes through", func(t *testing.T) {
		got := RegionOfDefinition(effect, DefaultParams(ParamsTypeMotionBlur), g, 0, Infinite())
		if got != Infinite() {
			t.Errorf("infinite source RoD = %+v, want infinite", got)
		}
	})

	t.Run("zero mix returns source", func(t *testing.T) {
		p := DefaultParams(ParamsTypeMotionBlur)
		p.Masked = true
		p.MaskApply = true
		p.MaskConnected = true
		p.Mix = 0
		got := RegionOfDefinition(effect, p, g, 0, srcRoD)
		if got != srcRoD {
			t.Errorf("zero-mix RoD = %+v, want source RoD %+v", got, srcRoD)
		}
	})

	t.Run("masked full mix unions source", func(t *testing.T) {
		far := &TransformEffect{
			ParamsAt: func(time float64) (TransformParams, bool) {
				return TransformParams{Translate: Pt(500, 500)}, true
			},
		}
		p := DefaultParams(ParamsTypeMotionBlur)
		p.Masked = true
		p.MaskApply = true
		p.MaskConnected = true
		got := RegionOfDefinition(far, p, g, 0, srcRoD)
		want := Rect{X1: 0, Y1: 0, X2: 600, Y2: 600}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("masked RoD mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("clamp does not defeat identity", func(t *testing.T) {
		still := &TransformEffect{
			ParamsAt: func(time float64) (TransformParams, bool) {
				return TransformParams{}, true
			},
		}
		// Clamping changes pixel values, not geometry: the region must
		// stay the source region even though a render is not a no-op.
		p := DefaultParams(ParamsTypeMotionBlur)
		p.Clamp = true
		p.Filter = FilterKeys
		p.BlackOutside = true
		got := RegionOfDefinition(still, p, g, 0, srcRoD)
		if got != srcRoD {
			t.Errorf("clamped identity RoD = %+v, want source RoD %+v", got, srcRoD)
		}
	})
}

func TestRegionOfInterest(t *testing.T) {
	effect := &TransformEffect{
		ParamsAt: func(time float64) (TransformParams, bool) {
			return TransformParams{Translate: Pt(10, -5)}, true
		},
	}
	g := Geometry{
		RenderScale:      Pt(1, 1),
		PixelAspectRatio: 1,
		ProjectSize:      Pt(200, 150),
	}
	roi := Rect{X1: 0, Y1: 0, X2: 100, Y2: 100}

	t.Run("inverse mapping", func(t *testing.T) {
		p := DefaultParams(ParamsTypeMotionBlur)
		p.Filter = FilterImpulse
		got := RegionOfInterest(effect, p, g, 0, roi)
		want := Rect{X1: -10, Y1: 5, X2: 90, Y2: 105}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("RoI mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("filter support expands", func(t *testing.T) {
		p := DefaultParams(ParamsTypeMotionBlur)
		p.Filter = FilterCubic
		got := RegionOfInterest(effect, p, g, 0, roi)
		want := Rect{X1: -12, Y1: 3, X2: 92, Y2: 107}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("RoI mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unbounded clamps to project", func(t *testing.T) {
		projective := staticEffect(Matrix3x3{A: 1, E: 1, G: -0.02, I: 1})
		p := DefaultParams(ParamsTypeMotionBlur)
		p.Filter = FilterImpulse
		got := RegionOfInterest(projective, p, g, 0, roi)
		want := Rect{X1: 0, Y1: 0, X2: 200, Y2: 150}
		if got != want {
			t.Errorf("unbounded RoI = %+v, want project area %+v", got, want)
		}
	})

	t.Run("partial mix unions with output", func(t *testing.T) {
		p := DefaultParams(ParamsTypeMotionBlur)
		p.Filter = FilterImpulse
		p.Masked = true
		p.Mix = 0.5
		got := RegionOfInterest(effect, p, g, 0, roi)
		want := Rect{X1: -10, Y1: 0, X2: 100, Y2: 105}
		if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
			t.Errorf("RoI mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestForwardTransform(t *testing.T) {
	g := Geometry{RenderScale: Pt(1, 1), PixelAspectRatio: 1}

	t.Run("exports forward pixel matrix", func(t *testing.T) {
		effect := &TransformEffect{
			ParamsAt: func(time float64) (TransformParams, bool) {
				return TransformParams{Translate: Pt(10, -5)}, true
			},
		}
		got, ok := ForwardTransform(effect, DefaultParams(ParamsTypeMotionBlur), g, 0)
		if !ok {
			t.Fatal("ForwardTransform failed")
		}
		if !matrixNear(got, Translation(10, -5)) {
			t.Errorf("forward transform = %+v, want Translation(10,-5)", got)
		}
	})

	t.Run("no transform reports unavailable", func(t *testing.T) {
		e := funcEffect{at: func(time, amount float64, invert bool) (Matrix3x3, bool) {
			return Matrix3x3{}, false
		}}
		if _, ok := ForwardTransform(e, DefaultParams(ParamsTypeMotionBlur), g, 0); ok {
			t.Error("ForwardTransform must fail when the effect has no transform")
		}
	})

	t.Run("singular reports unavailable", func(t *testing.T) {
		e := staticEffect(Scaling(0, 1))
		if _, ok := ForwardTransform(e, DefaultParams(ParamsTypeMotionBlur), g, 0); ok {
			t.Error("ForwardTransform must fail on a degenerate transform")
		}
	})
}
