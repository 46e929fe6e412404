package newtonfractal

import (
	"errors"
	"fmt"
	"slices"

	"github.com/Robotechnic/newtonfractal/glbuild"
	"github.com/Robotechnic/newtonfractal/poly"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Config is the initial state of a [Model].
type Config struct {
	// Roots of the polynomial. Each root colors the pixels that converge to it.
	Roots  []complex128
	Colors []ms3.Vec
	// MaxIterations is the number of Newton steps run per pixel.
	MaxIterations int
	// RealRange and ImagRange define the visible window of the complex plane.
	// X holds the minimum and Y the maximum. Reversed ranges mirror the image.
	RealRange ms2.Vec
	ImagRange ms2.Vec
}

// Model keeps the root set of a Newton fractal in sync with the GPU program that draws it.
// The active program is always synthesized for the current root count.
// Model is not safe for concurrent use and must be driven from the thread owning the graphics context.
type Model struct {
	compile    CompileFunc
	programmer *glbuild.Programmer
	program    Program
	schema     []glbuild.Uniform

	roots     []complex128
	colors    []ms3.Vec
	p         poly.Polynomial
	dp        poly.Polynomial
	maxIter   int
	realRange ms2.Vec
	imagRange ms2.Vec
}

// New builds a model from cfg and compiles its first program with compile.
// The configuration slices are copied.
func New(compile CompileFunc, cfg Config) (*Model, error) {
	if compile == nil {
		return nil, errors.New("nil compile function")
	} else if len(cfg.Roots) != len(cfg.Colors) {
		return nil, fmt.Errorf("%w: %d roots, %d colors", ErrRootColorMismatch, len(cfg.Roots), len(cfg.Colors))
	} else if len(cfg.Roots) == 0 {
		return nil, ErrNoRoots
	} else if cfg.MaxIterations < 0 {
		return nil, fmt.Errorf("negative max iterations %d", cfg.MaxIterations)
	}
	m := &Model{
		compile:    compile,
		programmer: glbuild.NewDefaultProgrammer(),
		roots:      slices.Clone(cfg.Roots),
		colors:     slices.Clone(cfg.Colors),
		maxIter:    cfg.MaxIterations,
		realRange:  cfg.RealRange,
		imagRange:  cfg.ImagRange,
	}
	program, schema, err := m.build(len(m.roots))
	if err != nil {
		return nil, fmt.Errorf("compiling initial program: %w", err)
	}
	m.program = program
	m.schema = schema
	err = m.Refresh()
	if err != nil {
		m.Close()
		return nil, err
	}
	return m, nil
}

func (m *Model) build(nroots int) (Program, []glbuild.Uniform, error) {
	src, schema, err := m.programmer.Synthesize(nroots)
	if err != nil {
		return nil, nil, err
	}
	program, err := m.compile(src, schema)
	if err != nil {
		return nil, nil, err
	}
	return program, schema, nil
}

// swap replaces the active program, releasing the previous one.
func (m *Model) swap(program Program, schema []glbuild.Uniform) {
	if m.program != nil {
		m.program.Delete()
	}
	m.program = program
	m.schema = schema
}

// AddRoot appends a root with its color. A program for one more root is compiled
// before any state changes: on failure the error is returned and the model keeps
// its previous roots and program.
func (m *Model) AddRoot(pos complex128, color ms3.Vec) error {
	program, schema, err := m.build(len(m.roots) + 1)
	if err != nil {
		return fmt.Errorf("adding root: %w", err)
	}
	m.swap(program, schema)
	m.roots = append(m.roots, pos)
	m.colors = append(m.colors, color)
	return m.Refresh()
}

// RemoveRoot removes the i'th root and its color. Roots after i shift down one index.
// Removing the only root returns [ErrLastRoot]. Compile failures leave the model unchanged.
// It panics if i is out of range.
func (m *Model) RemoveRoot(i int) error {
	_ = m.roots[i] // Bounds check before doing any work.
	if len(m.roots) == 1 {
		return ErrLastRoot
	}
	program, schema, err := m.build(len(m.roots) - 1)
	if err != nil {
		return fmt.Errorf("removing root %d: %w", i, err)
	}
	m.swap(program, schema)
	m.roots = slices.Delete(m.roots, i, i+1)
	m.colors = slices.Delete(m.colors, i, i+1)
	return m.Refresh()
}

// Refresh recomputes the polynomial and its derivative from the current roots
// and writes every uniform of the active program. Call it after editing the
// slices returned by [Model.Roots] or [Model.Colors] in place.
func (m *Model) Refresh() error {
	m.p = poly.FromRoots(m.roots...)
	m.dp = m.p.Derivative()
	return errors.Join(
		glbuild.SetMaxIterations(m.program, m.maxIter),
		glbuild.SetViewRange(m.program, m.realRange, m.imagRange),
		glbuild.SetRoots(m.program, m.roots, m.colors),
		glbuild.SetDerivativeCoefficients(m.program, m.dp.Coefficients()),
	)
}

// SetRoot moves the i'th root and updates the program. It panics if i is out of range.
func (m *Model) SetRoot(i int, pos complex128) error {
	m.roots[i] = pos
	return m.Refresh()
}

// SetColor changes the i'th root's color. It panics if i is out of range.
func (m *Model) SetColor(i int, color ms3.Vec) error {
	m.colors[i] = color
	var buf [32]byte
	return m.program.SetUniform3f(string(glbuild.AppendUniformName(buf[:0], glbuild.PrefixColor, i)), color)
}

// Roots returns the live root slice. Edits made through it take effect after [Model.Refresh].
func (m *Model) Roots() []complex128 { return m.roots }

// Colors returns the live color slice. Edits made through it take effect after [Model.Refresh].
func (m *Model) Colors() []ms3.Vec { return m.colors }

// Len returns the number of roots.
func (m *Model) Len() int { return len(m.roots) }

// Polynomial returns the monic polynomial whose zeros are the model's roots.
func (m *Model) Polynomial() poly.Polynomial { return m.p }

// Derivative returns the derivative of [Model.Polynomial].
func (m *Model) Derivative() poly.Polynomial { return m.dp }

func (m *Model) MaxIterations() int { return m.maxIter }

// SetMaxIterations sets the number of Newton steps per pixel.
func (m *Model) SetMaxIterations(n int) error {
	err := glbuild.SetMaxIterations(m.program, n)
	if err != nil {
		return err
	}
	m.maxIter = n
	return nil
}

func (m *Model) RealRange() ms2.Vec { return m.realRange }

func (m *Model) ImagRange() ms2.Vec { return m.imagRange }

// SetRealRange sets the visible span of the real axis, minimum in X and maximum in Y.
func (m *Model) SetRealRange(r ms2.Vec) error {
	m.realRange = r
	return m.program.SetUniform2f(glbuild.NameRealRange, r)
}

// SetImagRange sets the visible span of the imaginary axis, minimum in X and maximum in Y.
func (m *Model) SetImagRange(r ms2.Vec) error {
	m.imagRange = r
	return m.program.SetUniform2f(glbuild.NameImagRange, r)
}

// SetView sets both axis ranges.
func (m *Model) SetView(realRange, imagRange ms2.Vec) error {
	m.realRange = realRange
	m.imagRange = imagRange
	return glbuild.SetViewRange(m.program, realRange, imagRange)
}

// Program returns the active program for rendering. The handle is invalidated
// by the next successful [Model.AddRoot] or [Model.RemoveRoot].
func (m *Model) Program() Program { return m.program }

// Schema returns the uniform schema of the active program.
func (m *Model) Schema() []glbuild.Uniform { return m.schema }

// SchemaLen returns the number of uniforms of the active program.
func (m *Model) SchemaLen() int { return len(m.schema) }

// Close releases the active program. The model must not be used afterwards.
func (m *Model) Close() {
	if m.program != nil {
		m.program.Delete()
		m.program = nil
	}
}
