//go:build !tinygo && cgo

package glrender

import (
	"errors"
	"fmt"
	"image"
	"runtime"

	"github.com/Robotechnic/newtonfractal/glbuild"
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Init1x1GLFW starts a 1x1 sized GLFW window with a current GL 4.6 context
// for offscreen rendering. The returned function terminates GLFW.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "newtonfractal",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

type uniform struct {
	loc int32
	tp  glbuild.UniformType
}

// Program is a linked Newton fractal program with resolved uniform locations.
type Program struct {
	id       uint32
	uniforms map[string]uniform
}

// Compile compiles the vertex and fragment stages of src, links them and resolves
// the location of every uniform in schema. Compilation and link failures are
// returned as *[glbuild.CompileError].
func Compile(src glbuild.ShaderSource, schema []glbuild.Uniform) (*Program, error) {
	vs, err := compileShader(src.Vertex, gl.VERTEX_SHADER, glbuild.StageVertex)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(vs)
	fs, err := compileShader(src.Fragment, gl.FRAGMENT_SHADER, glbuild.StageFragment)
	if err != nil {
		return nil, err
	}
	defer gl.DeleteShader(fs)

	id := gl.CreateProgram()
	gl.AttachShader(id, vs)
	gl.AttachShader(id, fs)
	gl.BindAttribLocation(id, AttribPosition, gl.Str(glbuild.VertexAttribPosition+"\x00"))
	gl.LinkProgram(id)
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &l)
		log := infoLog(l, func(buf *uint8) { gl.GetProgramInfoLog(id, l, nil, buf) })
		gl.DeleteProgram(id)
		return nil, &glbuild.CompileError{Stage: glbuild.StageLink, Log: log}
	}

	p := &Program{
		id:       id,
		uniforms: make(map[string]uniform, len(schema)),
	}
	for _, u := range schema {
		// Location is -1 for uniforms the compiler optimized out.
		loc := gl.GetUniformLocation(id, gl.Str(u.Name+"\x00"))
		p.uniforms[u.Name] = uniform{loc: loc, tp: u.Type}
	}
	if err := glgl.Err(); err != nil {
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("resolving uniforms: %w", err)
	}
	return p, nil
}

func compileShader(source string, shaderType uint32, stage glbuild.ShaderStage) (uint32, error) {
	defer runtime.KeepAlive(source)
	cstring, free := gl.Strs(source + "\x00")
	defer free()

	shader := gl.CreateShader(shaderType)
	gl.ShaderSource(shader, 1, cstring, nil)
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var l int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &l)
		log := infoLog(l, func(buf *uint8) { gl.GetShaderInfoLog(shader, l, nil, buf) })
		gl.DeleteShader(shader)
		return 0, &glbuild.CompileError{Stage: stage, Log: log, Source: source}
	}
	return shader, nil
}

func infoLog(length int32, get func(buf *uint8)) string {
	if length <= 0 {
		return "no info log"
	}
	buf := make([]byte, length+1)
	get(&buf[0])
	n := 0
	for n < len(buf) && buf[n] != 0 {
		n++
	}
	return string(buf[:n])
}

func (p *Program) location(name string, tp glbuild.UniformType) (int32, error) {
	if p.id == 0 {
		return -1, errors.New("use of deleted program")
	}
	u, ok := p.uniforms[name]
	if !ok {
		return -1, fmt.Errorf("uniform %q not in program schema", name)
	} else if u.tp != tp {
		return -1, fmt.Errorf("uniform %q has type %s, not %s", name, u.tp, tp)
	}
	return u.loc, nil
}

// SetUniformi writes an int uniform. Uniforms optimized out of the program are ignored.
func (p *Program) SetUniformi(name string, v int32) error {
	loc, err := p.location(name, glbuild.UniformInt)
	if err != nil || loc < 0 {
		return err
	}
	gl.ProgramUniform1i(p.id, loc, v)
	return nil
}

// SetUniform2f writes a vec2 uniform. Uniforms optimized out of the program are ignored.
func (p *Program) SetUniform2f(name string, v ms2.Vec) error {
	loc, err := p.location(name, glbuild.UniformVec2)
	if err != nil || loc < 0 {
		return err
	}
	gl.ProgramUniform2f(p.id, loc, v.X, v.Y)
	return nil
}

// SetUniform3f writes a vec3 uniform. Uniforms optimized out of the program are ignored.
func (p *Program) SetUniform3f(name string, v ms3.Vec) error {
	loc, err := p.location(name, glbuild.UniformVec3)
	if err != nil || loc < 0 {
		return err
	}
	gl.ProgramUniform3f(p.id, loc, v.X, v.Y, v.Z)
	return nil
}

// ID returns the GL program name. It is zero after Delete.
func (p *Program) ID() uint32 { return p.id }

func (p *Program) Bind() { gl.UseProgram(p.id) }

func (p *Program) Unbind() { gl.UseProgram(0) }

// Delete releases the program. Deleting twice is a no-op.
func (p *Program) Delete() {
	if p.id != 0 {
		gl.DeleteProgram(p.id)
		p.id = 0
	}
}

// Quad is a full screen quad feeding the position attribute of a Newton fractal program.
type Quad struct {
	vao, vbo uint32
}

func NewQuad() (*Quad, error) {
	q := &Quad{}
	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)
	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, 4*len(quadVertices), gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(AttribPosition)
	gl.VertexAttribPointerWithOffset(AttribPosition, 2, gl.FLOAT, false, 0, 0)
	gl.BindVertexArray(0)
	err := glgl.Err()
	if err != nil {
		q.Delete()
		return nil, err
	}
	return q, nil
}

// Draw runs p over every pixel of the current viewport.
func (q *Quad) Draw(p *Program) error {
	if p.id == 0 {
		return errors.New("draw with deleted program")
	}
	p.Bind()
	gl.BindVertexArray(q.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, int32(len(quadVertices)/2))
	gl.BindVertexArray(0)
	return glgl.Err()
}

func (q *Quad) Delete() {
	gl.DeleteBuffers(1, &q.vbo)
	gl.DeleteVertexArrays(1, &q.vao)
	q.vao, q.vbo = 0, 0
}

// Target is an offscreen RGBA framebuffer, used to render images at a resolution
// independent of the window.
type Target struct {
	fbo, rbo      uint32
	width, height int
}

func NewTarget(width, height int) (*Target, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid target size %dx%d", width, height)
	}
	t := &Target{width: width, height: height}
	gl.GenFramebuffers(1, &t.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.GenRenderbuffers(1, &t.rbo)
	gl.BindRenderbuffer(gl.RENDERBUFFER, t.rbo)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.RGBA8, int32(width), int32(height))
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.RENDERBUFFER, t.rbo)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		t.Delete()
		return nil, fmt.Errorf("incomplete framebuffer: status 0x%x", status)
	}
	if err := glgl.Err(); err != nil {
		t.Delete()
		return nil, err
	}
	return t, nil
}

// Bind makes t the draw and read framebuffer and sets the viewport to cover it.
func (t *Target) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, t.fbo)
	gl.Viewport(0, 0, int32(t.width), int32(t.height))
}

func (t *Target) Unbind() { gl.BindFramebuffer(gl.FRAMEBUFFER, 0) }

func (t *Target) Bounds() image.Rectangle { return image.Rect(0, 0, t.width, t.height) }

// Render draws p onto the target with q and reads back the result.
func (t *Target) Render(q *Quad, p *Program) (*image.RGBA, error) {
	t.Bind()
	defer t.Unbind()
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)
	err := q.Draw(p)
	if err != nil {
		return nil, err
	}
	return ReadPixels(0, 0, t.width, t.height)
}

func (t *Target) Delete() {
	gl.DeleteRenderbuffers(1, &t.rbo)
	gl.DeleteFramebuffers(1, &t.fbo)
	t.fbo, t.rbo = 0, 0
}

// ReadPixels reads a rectangle of the bound read framebuffer with x,y at its
// bottom left corner. The returned image has its first row at the top.
func ReadPixels(x, y, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid read size %dx%d", width, height)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	if err := glgl.Err(); err != nil {
		return nil, fmt.Errorf("reading pixels: %w", err)
	}
	flipRows(img)
	return img, nil
}
