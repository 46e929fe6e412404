package newtonaux

import (
	"math"
	"math/cmplx"

	"github.com/Robotechnic/newtonfractal"
	"github.com/soypat/geometry/ms2"
)

// DefaultMaxIterations is the iteration cap used when none is configured.
const DefaultMaxIterations = 40

// UnityRoots returns the n complex n'th roots of unity, the zeros of x^n-1,
// starting at 1 and going counter clockwise.
func UnityRoots(n int) []complex128 {
	roots := make([]complex128, n)
	for k := range roots {
		roots[k] = cmplx.Rect(1, 2*math.Pi*float64(k)/float64(n))
	}
	return roots
}

// DefaultConfig returns a model configuration for the n'th roots of unity with
// default colors and a view centered at the origin fitting a width x height viewport.
func DefaultConfig(n, width, height int) newtonfractal.Config {
	view := FitView(width, height, 0, 2)
	return newtonfractal.Config{
		Roots:         UnityRoots(n),
		Colors:        DefaultColors(n),
		MaxIterations: DefaultMaxIterations,
		RealRange:     view.Real,
		ImagRange:     view.Imag,
	}
}

// NearestRoot returns the index of the root closest to z that lies within radius
// of it, or -1 if there is none. Ties resolve to the lowest index.
func NearestRoot(roots []complex128, z complex128, radius float64) int {
	best := -1
	bestDist := radius
	for i, r := range roots {
		d := cmplx.Abs(z - r)
		if d <= bestDist && (best < 0 || d < bestDist) {
			best = i
			bestDist = d
		}
	}
	return best
}

// viewFromConfig returns the view of a configuration, fitting one to the
// viewport if the configured ranges are empty.
func viewFromConfig(width, height int, realRange, imagRange ms2.Vec) View {
	if realRange == (ms2.Vec{}) || imagRange == (ms2.Vec{}) {
		return FitView(width, height, 0, 2)
	}
	return View{Width: width, Height: height, Real: realRange, Imag: imagRange}
}
