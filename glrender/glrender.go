// Package glrender compiles and draws Newton fractal programs with OpenGL.
// All functions must be called from the goroutine that owns the current GL context.
// Without CGo every entry point returns an error.
package glrender

import (
	"image"

	"github.com/Robotechnic/newtonfractal"
	"github.com/Robotechnic/newtonfractal/glbuild"
)

// AttribPosition is the vertex attribute location bound to [glbuild.VertexAttribPosition].
const AttribPosition = 0

var (
	_ newtonfractal.Program     = (*Program)(nil)
	_ newtonfractal.CompileFunc = CompileProgram
)

// quadVertices are two triangles covering clip space.
var quadVertices = []float32{
	-1.0, -1.0,
	1.0, -1.0,
	-1.0, 1.0,
	-1.0, 1.0,
	1.0, -1.0,
	1.0, 1.0,
}

// CompileProgram is [Compile] with a signature usable as a [newtonfractal.CompileFunc].
func CompileProgram(src glbuild.ShaderSource, schema []glbuild.Uniform) (newtonfractal.Program, error) {
	prog, err := Compile(src, schema)
	if err != nil {
		return nil, err // Avoid returning typed nil.
	}
	return prog, nil
}

// flipRows mirrors img vertically in place. OpenGL stores the bottom row first.
func flipRows(img *image.RGBA) {
	h := img.Rect.Dy()
	rowlen := 4 * img.Rect.Dx()
	tmp := make([]byte, rowlen)
	for top, bot := 0, h-1; top < bot; top, bot = top+1, bot-1 {
		rowTop := img.Pix[top*img.Stride : top*img.Stride+rowlen]
		rowBot := img.Pix[bot*img.Stride : bot*img.Stride+rowlen]
		copy(tmp, rowTop)
		copy(rowTop, rowBot)
		copy(rowBot, tmp)
	}
}
