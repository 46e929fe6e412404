//go:build !tinygo && cgo

package newtonaux

import (
	"image"

	"github.com/Robotechnic/newtonfractal"
	"github.com/Robotechnic/newtonfractal/glrender"
)

// RenderImage renders the fractal described by cfg into a width x height image.
// A GL context must be current on the calling thread, see [glrender.Init1x1GLFW].
func RenderImage(cfg newtonfractal.Config, width, height int) (*image.RGBA, error) {
	model, err := newtonfractal.New(glrender.CompileProgram, cfg)
	if err != nil {
		return nil, err
	}
	defer model.Close()
	quad, err := glrender.NewQuad()
	if err != nil {
		return nil, err
	}
	defer quad.Delete()
	target, err := glrender.NewTarget(width, height)
	if err != nil {
		return nil, err
	}
	defer target.Delete()
	return target.Render(quad, model.Program().(*glrender.Program))
}
