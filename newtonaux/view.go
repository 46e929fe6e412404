package newtonaux

import (
	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/glgl/math/ms1"
)

// View maps a viewport of Width x Height pixels onto a window of the complex plane.
// Screen coordinates have their origin at the top left and grow downwards.
// Real and Imag hold the window minimum in X and maximum in Y.
type View struct {
	Width, Height int
	Real, Imag    ms2.Vec
}

// FitView returns a view centered at center spanning halfHeight above and below it
// along the imaginary axis. The real span follows the viewport aspect ratio.
func FitView(width, height int, center complex128, halfHeight float32) View {
	aspect := float32(width) / float32(max(height, 1))
	halfWidth := halfHeight * aspect
	cx, cy := float32(real(center)), float32(imag(center))
	return View{
		Width:  width,
		Height: height,
		Real:   ms2.Vec{X: cx - halfWidth, Y: cx + halfWidth},
		Imag:   ms2.Vec{X: cy - halfHeight, Y: cy + halfHeight},
	}
}

// ToComplex returns the point of the complex plane under screen position x,y.
func (v View) ToComplex(x, y float64) complex128 {
	tx := float32(x) / float32(v.Width)
	ty := float32(y) / float32(v.Height)
	re := ms1.Interp(v.Real.X, v.Real.Y, tx)
	im := ms1.Interp(v.Imag.Y, v.Imag.X, ty)
	return complex(float64(re), float64(im))
}

// ToScreen returns the screen position of z. It is the inverse of [View.ToComplex].
func (v View) ToScreen(z complex128) (x, y float64) {
	tx := (float32(real(z)) - v.Real.X) / (v.Real.Y - v.Real.X)
	ty := (v.Imag.Y - float32(imag(z))) / (v.Imag.Y - v.Imag.X)
	return float64(tx * float32(v.Width)), float64(ty * float32(v.Height))
}

// ToClip returns z in OpenGL clip coordinates where the view spans [-1,1] on both axes.
func (v View) ToClip(z complex128) ms2.Vec {
	tx := (float32(real(z)) - v.Real.X) / (v.Real.Y - v.Real.X)
	ty := (float32(imag(z)) - v.Imag.X) / (v.Imag.Y - v.Imag.X)
	return ms2.Vec{X: 2*tx - 1, Y: 2*ty - 1}
}

// PixelSize returns the distance in the complex plane spanned by one horizontal pixel.
func (v View) PixelSize() float32 {
	return math.Abs(v.Real.Y-v.Real.X) / float32(v.Width)
}

// Pan moves the window by fx and fy fractions of its span along the real and
// imaginary axes respectively.
func (v View) Pan(fx, fy float32) View {
	dx := fx * (v.Real.Y - v.Real.X)
	dy := fy * (v.Imag.Y - v.Imag.X)
	v.Real = ms2.Add(v.Real, ms2.Vec{X: dx, Y: dx})
	v.Imag = ms2.Add(v.Imag, ms2.Vec{X: dy, Y: dy})
	return v
}

// Zoom scales the window around center by factor. Factors below one zoom in.
// The point at center stays at the same screen position.
func (v View) Zoom(center complex128, factor float32) View {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return v
	}
	cx, cy := float32(real(center)), float32(imag(center))
	v.Real = ms2.Vec{X: cx + (v.Real.X-cx)*factor, Y: cx + (v.Real.Y-cx)*factor}
	v.Imag = ms2.Vec{X: cy + (v.Imag.X-cy)*factor, Y: cy + (v.Imag.Y-cy)*factor}
	return v
}

// Resize changes the viewport size keeping the window center and vertical span.
func (v View) Resize(width, height int) View {
	if width <= 0 || height <= 0 {
		return v
	}
	center := complex(float64(v.Real.X+v.Real.Y)/2, float64(v.Imag.X+v.Imag.Y)/2)
	return FitView(width, height, center, (v.Imag.Y-v.Imag.X)/2)
}
