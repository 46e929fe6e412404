package glbuild

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Names of the root count independent uniforms.
const (
	NameMaxIterations = "maxIterations"
	NameRealRange     = "realRange"
	NameImagRange     = "imagRange"
)

// UniformType is the GLSL type of a uniform in a Newton fractal program.
type UniformType uint8

const (
	uniformUndefined UniformType = iota
	UniformInt                   // int
	UniformVec2                  // vec2
	UniformVec3                  // vec3
)

// String returns the GLSL type name.
func (tp UniformType) String() string {
	switch tp {
	case UniformInt:
		return "int"
	case UniformVec2:
		return "vec2"
	case UniformVec3:
		return "vec3"
	}
	return "UniformType(" + strconv.Itoa(int(tp)) + ")"
}

// Uniform is a single entry of a program's uniform schema.
type Uniform struct {
	Name string
	Type UniformType
}

func (u Uniform) String() string { return u.Name + ":" + u.Type.String() }

// SchemaLen returns the number of uniforms of a program synthesized for nroots roots.
func SchemaLen(nroots int) int { return 3 + 3*nroots }

// AppendUniformSchema appends the ordered uniform schema of a program with nroots roots:
//
//	maxIterations:int, realRange:vec2, imagRange:vec2,
//	root0:vec2, color0:vec3, dcoeff0:vec2, root1:vec2, ...
func AppendUniformSchema(dst []Uniform, nroots int) []Uniform {
	mustRoots(nroots)
	dst = append(dst,
		Uniform{Name: NameMaxIterations, Type: UniformInt},
		Uniform{Name: NameRealRange, Type: UniformVec2},
		Uniform{Name: NameImagRange, Type: UniformVec2},
	)
	for i := 0; i < nroots; i++ {
		dst = append(dst, Uniform{Name: uniformName(PrefixRoot, i), Type: UniformVec2})
		dst = append(dst, Uniform{Name: uniformName(PrefixColor, i), Type: UniformVec3})
		dst = append(dst, Uniform{Name: uniformName(PrefixDerivative, i), Type: UniformVec2})
	}
	return dst
}

// uniformName returns prefix followed by index i. Each call owns its buffer.
func uniformName(prefix string, i int) string {
	var buf [32]byte
	return string(AppendUniformName(buf[:0], prefix, i))
}

// UniformSetter writes uniform values into a compiled program by name.
type UniformSetter interface {
	SetUniformi(name string, v int32) error
	SetUniform2f(name string, v ms2.Vec) error
	SetUniform3f(name string, v ms3.Vec) error
}

var errRootColorMismatch = errors.New("root and color count mismatch")

// SetRoots writes root<i> and color<i> for every root. The program must have been
// synthesized for len(roots) roots.
func SetRoots(p UniformSetter, roots []complex128, colors []ms3.Vec) error {
	if len(roots) != len(colors) {
		return fmt.Errorf("%w: %d roots, %d colors", errRootColorMismatch, len(roots), len(colors))
	}
	var buf [32]byte
	for i, r := range roots {
		err := p.SetUniform2f(string(AppendUniformName(buf[:0], PrefixRoot, i)), Vec(r))
		if err != nil {
			return err
		}
		err = p.SetUniform3f(string(AppendUniformName(buf[:0], PrefixColor, i)), colors[i])
		if err != nil {
			return err
		}
	}
	return nil
}

// SetDerivativeCoefficients writes dcoeff<i> for every coefficient of the derivative,
// highest degree first. A program for n roots expects n coefficients.
func SetDerivativeCoefficients(p UniformSetter, coeffs []complex128) error {
	var buf [32]byte
	for i, c := range coeffs {
		err := p.SetUniform2f(string(AppendUniformName(buf[:0], PrefixDerivative, i)), Vec(c))
		if err != nil {
			return err
		}
	}
	return nil
}

// SetMaxIterations writes the Newton iteration cap.
func SetMaxIterations(p UniformSetter, maxIterations int) error {
	if maxIterations < 0 || int64(maxIterations) > 1<<31-1 {
		return fmt.Errorf("max iterations out of range: %d", maxIterations)
	}
	return p.SetUniformi(NameMaxIterations, int32(maxIterations))
}

// SetViewRange writes the complex plane window. Each range stores the minimum in X and maximum in Y.
func SetViewRange(p UniformSetter, realRange, imagRange ms2.Vec) error {
	err := p.SetUniform2f(NameRealRange, realRange)
	if err != nil {
		return err
	}
	return p.SetUniform2f(NameImagRange, imagRange)
}

// Vec converts a complex number to a single precision 2D vector as used by vec2 uniforms.
func Vec(c complex128) ms2.Vec {
	return ms2.Vec{X: float32(real(c)), Y: float32(imag(c))}
}

// Complex converts a vec2 value back to a complex number.
func Complex(v ms2.Vec) complex128 {
	return complex(float64(v.X), float64(v.Y))
}
