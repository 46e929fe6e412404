package glbuild

import (
	"encoding/binary"
	"errors"
	"io"
	"strconv"
)

const VersionStr = "#version 300 es\n"

// Newton fractal shaders are synthesized for a fixed root count. The fragment
// program below is assembled from a fixed header, per-root uniform
// declarations, three generated functions and a fixed footer.
const (
	fragHeaderPrelude = "\nprecision highp float;\nin vec2 complex;\nout vec4 fragColor;\n\nuniform int maxIterations;\n\n"

	cxPowSource = `vec2 cx_pow(vec2 a, float n) {
	float angle = atan(a.y, a.x);
	float r = pow(length(a), n);
	return vec2(r*cos(n*angle), r*sin(n*angle));
}

`

	fragFooter = `
void newton(inout vec2 z) {
	vec2 num = evaluate_polynomial(z);
	vec2 den = evaluate_derivative(z);
	z = z - cx_div(num, den);
}

void iterate(inout vec2 z) {
	for (int i = 0; i < maxIterations; i++) {
		newton(z);
	}
}

void main() {
	vec2 z = complex;
	iterate(z);
	closestRoot(z, fragColor);
}
`

	// vertexSource maps the full screen quad in [-1,1]x[-1,1] onto the
	// complex plane window given by realRange and imagRange (x=min, y=max).
	vertexSource = VersionStr + `precision highp float;
in vec2 position;
out vec2 complex;

uniform vec2 realRange;
uniform vec2 imagRange;

void main() {
	vec2 t = position*0.5 + 0.5;
	complex = vec2(mix(realRange.x, realRange.y, t.x), mix(imagRange.x, imagRange.y, t.y));
	gl_Position = vec4(position, 0.0, 1.0);
}
`
)

// VertexAttribPosition is the name of the vertex attribute holding quad positions.
const VertexAttribPosition = "position"

var errNoRoots = errors.New("shader requires at least one root")

// ShaderSource holds the GLSL sources of a Newton fractal program. Sources are not NUL terminated.
type ShaderSource struct {
	Vertex   string
	Fragment string
}

// Programmer implements shader generation logic for Newton fractals of arbitrary degree.
// Output is a pure function of the root count: identical counts yield byte-identical sources.
type Programmer struct {
	scratch []byte
}

// NewDefaultProgrammer returns a Programmer ready to synthesize shaders.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		scratch: make([]byte, 0, 4096),
	}
}

// WriteFragment writes the fragment shader for a polynomial with nroots roots to w.
func (p *Programmer) WriteFragment(w io.Writer, nroots int) (int, error) {
	if nroots < 1 {
		return 0, errNoRoots
	}
	p.scratch = AppendFragmentSource(p.scratch[:0], nroots)
	return w.Write(p.scratch)
}

// WriteVertex writes the vertex shader to w. It does not depend on the root count.
func (p *Programmer) WriteVertex(w io.Writer) (int, error) {
	return io.WriteString(w, vertexSource)
}

// Synthesize returns the vertex and fragment sources for nroots roots along with
// the ordered uniform schema the host must bind. See [AppendUniformSchema].
func (p *Programmer) Synthesize(nroots int) (ShaderSource, []Uniform, error) {
	if nroots < 1 {
		return ShaderSource{}, nil, errNoRoots
	}
	p.scratch = AppendFragmentSource(p.scratch[:0], nroots)
	src := ShaderSource{
		Vertex:   vertexSource,
		Fragment: string(p.scratch),
	}
	return src, AppendUniformSchema(nil, nroots), nil
}

// AppendFragmentSource appends the complete fragment shader for nroots roots to b.
// It panics if nroots is less than one.
func AppendFragmentSource(b []byte, nroots int) []byte {
	mustRoots(nroots)
	b = AppendFragmentHeader(b)
	b = AppendUniformDecls(b, nroots)
	b = AppendClosestRoot(b, nroots)
	b = AppendPolynomialEval(b, nroots)
	b = AppendDerivativeEval(b, nroots)
	b = append(b, fragFooter...)
	return b
}

// AppendFragmentHeader appends the root count independent fragment shader header:
// version, complex arithmetic macros, precision, I/O, the iteration uniform and cx_pow.
func AppendFragmentHeader(b []byte) []byte {
	b = append(b, VersionStr...)
	b = AppendDefineDecl(b, "cx_mul(a, b)", "vec2(a.x*b.x-a.y*b.y, a.x*b.y+a.y*b.x)")
	b = AppendDefineDecl(b, "cx_div(a, b)", "vec2(((a.x*b.x+a.y*b.y)/(b.x*b.x+b.y*b.y)),((a.y*b.x-a.x*b.y)/(b.x*b.x+b.y*b.y)))")
	b = append(b, fragHeaderPrelude...)
	b = append(b, cxPowSource...)
	return b
}

func AppendDefineDecl(b []byte, aliasToDefine, aliasReplace string) []byte {
	b = append(b, "#define "...)
	b = append(b, aliasToDefine...)
	b = append(b, ' ')
	b = append(b, aliasReplace...)
	b = append(b, '\n')
	return b
}

// AppendVertexSource appends the vertex shader source to b.
func AppendVertexSource(b []byte) []byte {
	return append(b, vertexSource...)
}

func mustRoots(nroots int) {
	if nroots < 1 {
		panic("glbuild: need at least one root, got " + strconv.Itoa(nroots))
	}
}

// Fingerprint returns a 64 bit hash of both shader sources. Equal root counts
// produce equal fingerprints which lets hosts cache compiled programs.
func Fingerprint(src ShaderSource) uint64 {
	h := hash([]byte(src.Vertex), 0xff51afd7ed558ccd)
	return hash([]byte(src.Fragment), h)
}

func hash(b []byte, in uint64) uint64 {
	x := in
	for len(b) >= 8 {
		x ^= binary.LittleEndian.Uint64(b)
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
		b = b[8:]
	}
	if len(b) > 0 {
		var buf [8]byte
		copy(buf[:], b)
		x ^= binary.LittleEndian.Uint64(buf[:])
		x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
		x = (x ^ (x >> 27)) * 0x94d049bb133111eb
		x ^= x >> 31
	}
	return x
}
