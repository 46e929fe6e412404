//go:build tinygo || !cgo

package glrender

import (
	"errors"
	"image"

	"github.com/Robotechnic/newtonfractal/glbuild"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

var errNoCGO = errors.New("OpenGL rendering requires CGo and is not supported on TinyGo")

func Init1x1GLFW() (terminate func(), err error) {
	return func() {}, errNoCGO
}

type Program struct{}

func Compile(src glbuild.ShaderSource, schema []glbuild.Uniform) (*Program, error) {
	return nil, errNoCGO
}

func (p *Program) SetUniformi(name string, v int32) error    { return errNoCGO }
func (p *Program) SetUniform2f(name string, v ms2.Vec) error { return errNoCGO }
func (p *Program) SetUniform3f(name string, v ms3.Vec) error { return errNoCGO }
func (p *Program) ID() uint32                                { return 0 }
func (p *Program) Bind()                                     {}
func (p *Program) Unbind()                                   {}
func (p *Program) Delete()                                   {}

type Quad struct{}

func NewQuad() (*Quad, error)       { return nil, errNoCGO }
func (q *Quad) Draw(*Program) error { return errNoCGO }
func (q *Quad) Delete()             {}

type Target struct{}

func NewTarget(width, height int) (*Target, error)                { return nil, errNoCGO }
func (t *Target) Bind()                                           {}
func (t *Target) Unbind()                                         {}
func (t *Target) Bounds() image.Rectangle                         { return image.Rectangle{} }
func (t *Target) Render(q *Quad, p *Program) (*image.RGBA, error) { return nil, errNoCGO }
func (t *Target) Delete()                                         {}

func ReadPixels(x, y, width, height int) (*image.RGBA, error) {
	return nil, errNoCGO
}
