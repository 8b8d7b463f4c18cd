package warp

import "testing"

func TestFilterSupport(t *testing.T) {
	tests := []struct {
		f    Filter
		want float64
	}{
		{FilterImpulse, 0},
		{FilterBilinear, 1},
		{FilterCubic, 2},
		{FilterKeys, 2},
		{FilterNotch, 2},
	}
	for _, tt := range tests {
		if got := tt.f.Support(); got != tt.want {
			t.Errorf("%v.Support() = %v, want %v", tt.f, got, tt.want)
		}
	}
}

func TestFilterClamps(t *testing.T) {
	clamping := map[Filter]bool{
		FilterImpulse:  false,
		FilterBilinear: false,
		FilterCubic:    false,
		FilterKeys:     true,
		FilterSimon:    true,
		FilterRifman:   true,
		FilterMitchell: true,
		FilterParzen:   false,
		FilterNotch:    false,
	}
	for f, want := range clamping {
		if got := f.Clamps(); got != want {
			t.Errorf("%v.Clamps() = %v, want %v", f, got, want)
		}
	}
}

func TestExpandForFilterRespectsSentinels(t *testing.T) {
	g := Geometry{RenderScale: Pt(1, 1), PixelAspectRatio: 1}
	r := Rect{X1: InfiniteMin, Y1: 0, X2: 10, Y2: 10}
	got := expandForFilter(r, FilterCubic, g)
	if got.X1 != InfiniteMin {
		t.Errorf("expansion moved the unbounded side: %+v", got)
	}
	if got.X2 != 12 || got.Y1 != -2 || got.Y2 != 12 {
		t.Errorf("expansion = %+v, want finite sides grown by 2", got)
	}
}

func TestExpandForFilterAnamorphic(t *testing.T) {
	// Support is in pixels; with PAR 2 and half-res render scale a
	// 2-pixel support is 8 canonical units horizontally and 4
	// vertically.
	g := Geometry{RenderScale: Pt(0.5, 0.5), PixelAspectRatio: 2}
	r := Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}
	got := expandForFilter(r, FilterCubic, g)
	want := Rect{X1: -8, Y1: -4, X2: 18, Y2: 14}
	if got != want {
		t.Errorf("expansion = %+v, want %+v", got, want)
	}
}
