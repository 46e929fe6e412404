package glbuild

import "strconv"

// Prefixes of per-root uniform names. The i'th root's uniforms are
// named by appending the decimal index to the prefix, i.e: "root3".
const (
	PrefixRoot       = "root"
	PrefixColor      = "color"
	PrefixDerivative = "dcoeff"
	prefixDist       = "dist"
)

// AppendUniformName appends prefix followed by the decimal representation of i.
func AppendUniformName(b []byte, prefix string, i int) []byte {
	b = append(b, prefix...)
	return strconv.AppendInt(b, int64(i), 10)
}

// AppendUniformDecls appends the per-root uniform declarations, three per root:
//
//	uniform vec2 root<i>;
//	uniform vec3 color<i>;
//	uniform vec2 dcoeff<i>;
func AppendUniformDecls(b []byte, nroots int) []byte {
	mustRoots(nroots)
	for i := 0; i < nroots; i++ {
		b = appendUniformDecl(b, UniformVec2, PrefixRoot, i)
		b = appendUniformDecl(b, UniformVec3, PrefixColor, i)
		b = appendUniformDecl(b, UniformVec2, PrefixDerivative, i)
	}
	return b
}

func appendUniformDecl(b []byte, tp UniformType, prefix string, i int) []byte {
	b = append(b, "uniform "...)
	b = append(b, tp.String()...)
	b = append(b, ' ')
	b = AppendUniformName(b, prefix, i)
	b = append(b, ";\n"...)
	return b
}

// AppendClosestRoot appends the closestRoot function which writes the color of the root
// nearest to z. The comparisons form a cascading if/else chain ordered by increasing
// root index where branch i requires dist<i> to be less or equal than every later distance.
// Exactly one branch executes and ties resolve to the lowest root index.
// The operator is <= because a strict < chain hands ties to the higher index.
//
//	void closestRoot(vec2 z, out vec4 color)
func AppendClosestRoot(b []byte, nroots int) []byte {
	mustRoots(nroots)
	b = append(b, "void closestRoot(vec2 z, out vec4 color) {\n"...)
	for i := 0; i < nroots; i++ {
		b = append(b, "\tfloat "...)
		b = AppendUniformName(b, prefixDist, i)
		b = append(b, " = length(z - "...)
		b = AppendUniformName(b, PrefixRoot, i)
		b = append(b, ");\n"...)
	}
	if nroots == 1 {
		b = appendColorAssign(b, "\t", 0)
		b = append(b, "}\n"...)
		return b
	}
	last := nroots - 1
	for i := 0; i < nroots; i++ {
		switch i {
		case 0:
			b = append(b, "\tif ("...)
		case last:
			b = append(b, "\t} else {\n"...)
		default:
			b = append(b, "\t} else if ("...)
		}
		if i != last {
			for j := i + 1; j < nroots; j++ {
				b = AppendUniformName(b, prefixDist, i)
				b = append(b, " <= "...)
				b = AppendUniformName(b, prefixDist, j)
				if j != last {
					b = append(b, " && "...)
				}
			}
			b = append(b, ") {\n"...)
		}
		b = appendColorAssign(b, "\t\t", i)
	}
	b = append(b, "\t}\n}\n"...)
	return b
}

func appendColorAssign(b []byte, indent string, i int) []byte {
	b = append(b, indent...)
	b = append(b, "color = vec4("...)
	b = AppendUniformName(b, PrefixColor, i)
	b = append(b, ", 1.0);\n"...)
	return b
}

// AppendPolynomialEval appends the evaluate_polynomial function computing the product
// of (z - root<i>) over all roots. The left nested product is written as an accumulator
// so that cx_mul macro expansion grows linearly with the root count.
//
//	vec2 evaluate_polynomial(vec2 z)
func AppendPolynomialEval(b []byte, nroots int) []byte {
	mustRoots(nroots)
	b = append(b, "vec2 evaluate_polynomial(vec2 z) {\n\tvec2 p = (z - "...)
	b = AppendUniformName(b, PrefixRoot, 0)
	b = append(b, ");\n"...)
	for i := 1; i < nroots; i++ {
		b = append(b, "\tp = cx_mul(p, (z - "...)
		b = AppendUniformName(b, PrefixRoot, i)
		b = append(b, "));\n"...)
	}
	b = append(b, "\treturn p;\n}\n"...)
	return b
}

// AppendDerivativeEval appends the evaluate_derivative function which evaluates the
// derivative polynomial from its coefficients, highest degree first:
//
//	dcoeff0*z^(n-1) + dcoeff1*z^(n-2) + ... + dcoeff<n-1>
//
// Powers above one use cx_pow, the linear term a single cx_mul and the constant term is the bare coefficient.
func AppendDerivativeEval(b []byte, nroots int) []byte {
	mustRoots(nroots)
	b = append(b, "vec2 evaluate_derivative(vec2 z) {\n\treturn "...)
	for i := 0; i < nroots; i++ {
		if i != 0 {
			b = append(b, " + "...)
		}
		power := nroots - 1 - i
		switch power {
		case 0:
			b = AppendUniformName(b, PrefixDerivative, i)
		case 1:
			b = append(b, "cx_mul("...)
			b = AppendUniformName(b, PrefixDerivative, i)
			b = append(b, ", z)"...)
		default:
			b = append(b, "cx_mul("...)
			b = AppendUniformName(b, PrefixDerivative, i)
			b = append(b, ", cx_pow(z, "...)
			b = strconv.AppendInt(b, int64(power), 10)
			b = append(b, ".0))"...)
		}
	}
	b = append(b, ";\n}\n"...)
	return b
}
