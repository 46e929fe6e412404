// Package newtonfractal renders Newton fractals of arbitrary degree on the GPU.
// A [Model] owns a set of complex roots with their colors, the monic polynomial
// those roots define and a shader program synthesized for the current root count.
// Adding or removing a root recompiles the program, moving roots only rewrites uniforms.
package newtonfractal

import (
	"errors"

	"github.com/Robotechnic/newtonfractal/glbuild"
)

var (
	// ErrRootColorMismatch is returned when root and color lists differ in length.
	ErrRootColorMismatch = errors.New("root and color count mismatch")
	// ErrNoRoots is returned when building a model without roots.
	ErrNoRoots = errors.New("fractal requires at least one root")
	// ErrLastRoot is returned when removing the only remaining root.
	ErrLastRoot = errors.New("cannot remove last root")
)

// Program is a compiled Newton fractal program bound to a fixed root count.
type Program interface {
	glbuild.UniformSetter
	// Delete releases the program's graphics resources.
	Delete()
}

// CompileFunc compiles synthesized sources into a [Program] which resolves every
// uniform named in schema. Compilation failures should be returned as *[glbuild.CompileError].
type CompileFunc func(src glbuild.ShaderSource, schema []glbuild.Uniform) (Program, error)
