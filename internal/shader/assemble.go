package shader

import (
	"strings"

	"github.com/specialistvlad/texgrid/internal/property"
)

// Names shared between the assembled source and the code that binds it.
const (
	PositionAttribute = "a_pos"
	TexCoordAttribute = "a_texCoord"
	TexCoordVarying   = "v_texCoord"
	SizeUniform       = "_textureSize"
	SeedUniform       = "_seed"
)

// LineReset restarts source line numbering so compiler diagnostics point
// into the author's body.
const LineReset = "#line 0\n"

// VertexSource is identical for every node.
const VertexSource = `precision highp float;

attribute vec3 a_pos;
attribute vec2 a_texCoord;

varying vec2 v_texCoord;

void main() {
    gl_Position = vec4(a_pos, 1.0);
    v_texCoord = a_texCoord;
}
`

// Preamble opens every fragment source.
const Preamble = `precision highp float;

varying vec2 v_texCoord;

vec4 sample(vec2 uv);
void initRandom();

uniform vec2 _textureSize;

void main() {
    initRandom();
    gl_FragColor = sample(v_texCoord);
}

`

// Source is the assembled program text of one node.
type Source struct {
	Vertex   string
	Fragment string
}

// Assemble builds the program source for a node from its ordered inputs,
// ordered properties and sampling function body. The result depends only on
// the arguments.
func Assemble(inputs []string, props []*property.Property, body string) Source {
	var b strings.Builder
	b.WriteString(Preamble)
	b.WriteString(RandomLibrary)
	b.WriteString(InputDeclarations(inputs))
	b.WriteString(PropertyDeclarations(props))
	b.WriteString(LineReset)
	b.WriteString(body)

	return Source{
		Vertex:   VertexSource,
		Fragment: b.String(),
	}
}

// InputDeclarations declares one sampler per input, in order.
func InputDeclarations(inputs []string) string {
	var b strings.Builder
	for _, name := range inputs {
		b.WriteString("uniform sampler2D ")
		b.WriteString(name)
		b.WriteString(";\n")
	}
	return b.String()
}

// PropertyDeclarations declares one prop_ uniform per property, in order,
// followed by a blank line. Kinds without a uniform are skipped.
func PropertyDeclarations(props []*property.Property) string {
	var b strings.Builder
	for _, p := range props {
		b.WriteString(p.Declaration())
	}
	b.WriteString("\n")
	return b.String()
}
