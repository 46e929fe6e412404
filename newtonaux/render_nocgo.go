//go:build tinygo || !cgo

package newtonaux

import (
	"errors"
	"image"

	"github.com/Robotechnic/newtonfractal"
)

func RenderImage(cfg newtonfractal.Config, width, height int) (*image.RGBA, error) {
	return nil, errors.New("require cgo for fractal rendering")
}
