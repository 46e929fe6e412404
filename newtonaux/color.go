package newtonaux

import (
	"image/color"

	math "github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/math/ms1"
)

// goldenRatioConj spreads consecutive hues as far apart as possible.
const goldenRatioConj = 0.6180339887498949

// Palette saturation and value. Kept below 1 so markers stay visible on top.
const (
	paletteSat = 0.7
	paletteVal = 0.9
)

// RootColor returns the default color of the i'th root. Colors are deterministic
// and neighbouring indices get well separated hues.
func RootColor(i int) ms3.Vec {
	h := math.Mod(float32(i)*goldenRatioConj, 1)
	r, g, b := hsvToRGB(h, paletteSat, paletteVal)
	return ms3.Vec{X: r, Y: g, Z: b}
}

// DefaultColors returns the first n root colors.
func DefaultColors(n int) []ms3.Vec {
	colors := make([]ms3.Vec, n)
	for i := range colors {
		colors[i] = RootColor(i)
	}
	return colors
}

// RGBA converts a color with components in 0..1 to 8 bit RGBA. Components are clamped.
func RGBA(c ms3.Vec) color.RGBA {
	return color.RGBA{
		R: uint8(ms1.Clamp(c.X, 0, 1)*math.MaxUint8 + 0.5),
		G: uint8(ms1.Clamp(c.Y, 0, 1)*math.MaxUint8 + 0.5),
		B: uint8(ms1.Clamp(c.Z, 0, 1)*math.MaxUint8 + 0.5),
		A: math.MaxUint8,
	}
}

// markerColor is white for the hovered root and black for the rest.
func markerColor(hovered bool) ms3.Vec {
	if hovered {
		return ms3.Vec{X: 1, Y: 1, Z: 1}
	}
	return ms3.Vec{}
}

// hsvToRGB converts hue, saturation and brightness values on the range of 0.0
// to 1.0 to RGB floating point values on the range of 0.0 to 1.0
func hsvToRGB(h, s, v float32) (r, g, b float32) {
	var (
		c = s * v
		x = c * (1 - math.Abs(math.Mod(h*6, 2)-1))
		m = v - c
	)

	switch {
	case h >= 0 && h <= 1.0/6:
		r, g, b = c, x, 0
	case h > 1.0/6 && h <= 2.0/6:
		r, g, b = x, c, 0
	case h > 2.0/6 && h <= 3.0/6:
		r, g, b = 0, c, x
	case h > 3.0/6 && h <= 4.0/6:
		r, g, b = 0, x, c
	case h > 4.0/6 && h <= 5.0/6:
		r, g, b = x, 0, c
	case h > 5.0/6 && h <= 1.0:
		r, g, b = c, 0, x
	}

	r, g, b = r+m, g+m, b+m
	return r, g, b
}
