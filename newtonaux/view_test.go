package newtonaux

import (
	"math/cmplx"
	"testing"

	"github.com/soypat/geometry/ms2"
)

const viewTol = 1e-4

func TestViewCorners(t *testing.T) {
	v := View{Width: 200, Height: 100, Real: ms2.Vec{X: -3, Y: 1}, Imag: ms2.Vec{X: -1, Y: 1}}
	var tests = []struct {
		x, y float64
		want complex128
	}{
		{x: 0, y: 0, want: complex(-3, 1)}, // Top left is minimum real and maximum imaginary.
		{x: 200, y: 0, want: complex(1, 1)},
		{x: 0, y: 100, want: complex(-3, -1)},
		{x: 200, y: 100, want: complex(1, -1)},
		{x: 100, y: 50, want: complex(-1, 0)},
	}
	for _, test := range tests {
		got := v.ToComplex(test.x, test.y)
		if cmplx.Abs(got-test.want) > viewTol {
			t.Errorf("(%v,%v): want %v, got %v", test.x, test.y, test.want, got)
		}
		x, y := v.ToScreen(test.want)
		if abs(x-test.x) > viewTol*200 || abs(y-test.y) > viewTol*100 {
			t.Errorf("%v: want screen (%v,%v), got (%v,%v)", test.want, test.x, test.y, x, y)
		}
	}
}

func TestViewToClip(t *testing.T) {
	v := FitView(100, 100, complex(1, 1), 2)
	if got := v.ToClip(complex(1, 1)); ms2.Norm(got) > viewTol {
		t.Errorf("center should map to clip origin, got %v", got)
	}
	if got := v.ToClip(complex(3, -1)); ms2.Norm(ms2.Sub(got, ms2.Vec{X: 1, Y: -1})) > viewTol {
		t.Errorf("corner should map to (1,-1), got %v", got)
	}
}

func TestViewZoomKeepsCenter(t *testing.T) {
	v := FitView(300, 200, 0, 2)
	center := v.ToComplex(240, 30)
	zoomed := v.Zoom(center, 0.5)
	if got := zoomed.ToComplex(240, 30); cmplx.Abs(got-center) > viewTol {
		t.Errorf("zoom moved point under cursor: %v -> %v", center, got)
	}
	if zoomed.PixelSize() >= v.PixelSize() {
		t.Error("factor below one should zoom in")
	}
	if v.Zoom(center, 0) != v || v.Zoom(center, -1) != v {
		t.Error("invalid factors should leave view unchanged")
	}
}

func TestViewPanResize(t *testing.T) {
	v := FitView(100, 100, 0, 2)
	p := v.Pan(0.25, -0.5)
	want := View{Width: 100, Height: 100, Real: ms2.Vec{X: -1, Y: 3}, Imag: ms2.Vec{X: -4, Y: 0}}
	if p != want {
		t.Errorf("want %v, got %v", want, p)
	}
	r := p.Resize(200, 100)
	if r.Width != 200 || r.Imag != p.Imag || r.Real != (ms2.Vec{X: -3, Y: 5}) {
		t.Errorf("unexpected resized view %+v", r)
	}
	if p.Resize(0, 10) != p {
		t.Error("empty size should leave view unchanged")
	}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
