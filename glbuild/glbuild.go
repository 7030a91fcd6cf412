// Package glbuild generates the GLSL programs used by the viewer and the GPU
// evaluator. Programs are written in the combined format understood by
// glgl.ParseCombined, each stage starting with a "#shader <stage>" line.
package glbuild

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/cgfdemo/porcelain"
	"github.com/cgfdemo/porcelain/glbuild/glsllib"
	"github.com/cgfdemo/porcelain/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const VersionStr = "#version 430\n"

var (
	computeHeader  = "#shader compute\n" + VersionStr
	vertexHeader   = "#shader vertex\n" + VersionStr
	fragmentHeader = "#shader fragment\n" + VersionStr
)

// Programmer writes GLSL programs. It reuses an internal buffer and is not safe for concurrent use.
type Programmer struct {
	scratch []byte
	// Invocations size in X (local group size) to give each compute work group.
	invocX int
}

// NewDefaultProgrammer returns a Programmer with reasonable default parameters for use with glgl package on the local machine.
func NewDefaultProgrammer() *Programmer {
	return &Programmer{
		scratch: make([]byte, 0, 4096),
		invocX:  32,
	}
}

// SetComputeInvocations sets the work group local size in x.
func (p *Programmer) SetComputeInvocations(x int) error {
	if x < 1 {
		return errors.New("zero or negative X invocation size")
	}
	p.invocX = x
	return nil
}

// ComputeInvocations returns the worker group invocation size in x y and z.
func (p *Programmer) ComputeInvocations() (int, int, int) {
	return p.invocX, 1, 1
}

// WriteComputeMotif writes a compute program evaluating the motif pattern.
// Positions (offsets from the motif center) are read from SSBO binding 0 and
// patterns written to SSBO binding 1.
func (p *Programmer) WriteComputeMotif(w io.Writer, m porcelain.Motif) (int, error) {
	if err := m.Validate(); err != nil {
		return 0, err
	}
	b := append(p.scratch[:0], computeHeader...)
	b = append(b, glsllib.MotifPattern()...)
	b = fmt.Appendf(b, `
layout(local_size_x = %d, local_size_y = 1, local_size_z = 1) in;

// Input: offsets from motif center.
layout(std430, binding = 0) buffer PositionsBuffer {
	vec2 vbo_positions[];
};

// Output: motif pattern for each position.
layout(std430, binding = 1) buffer PatternBuffer {
	float vbo_patterns[];
};

void main() {
	int idx = int( gl_GlobalInvocationID.x );
	if (idx >= vbo_positions.length()) {
		return;
	}
	vbo_patterns[idx] = motifPattern(vbo_positions[idx], `, p.invocX)
	b = appendFloats(b, m.Petals, m.AngularRing, m.RadialFreq)
	b = append(b, ");\n}\n"...)
	p.scratch = b
	return w.Write(b)
}

// WriteShadedProgram writes the teapot program: two positional lights in eye
// space, a glossy material whose diffuse color comes from uColor, and
// object-linear texture coordinates. Uniforms:
//
//	mat4 uModel, uView, uProjection; mat3 uNormalMatrix; vec3 uColor; int uTextured; sampler2D uTexture
func (p *Programmer) WriteShadedProgram(w io.Writer, l scene.Lighting) (int, error) {
	if l.TexGenScale == 0 {
		return 0, errors.New("zero texture generation scale")
	} else if l.Material.Shininess < 0 || l.Material.Shininess > 128 {
		return 0, fmt.Errorf("material shininess %g outside [0, 128]", l.Material.Shininess)
	}
	b := append(p.scratch[:0], vertexHeader...)
	b = append(b, `layout(location = 0) in vec3 aPos;
layout(location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;
uniform mat3 uNormalMatrix;

out vec3 vEyePos;
out vec3 vNormal;
out vec2 vTexCoord;

void main() {
	vec4 eye = uView * uModel * vec4(aPos, 1.0);
	vEyePos = eye.xyz;
	vNormal = uNormalMatrix * aNormal;
	vTexCoord = `...)
	b = appendFloats(b, l.TexGenScale)
	b = append(b, ` * aPos.xy;
	gl_Position = uProjection * eye;
}
`...)
	b = append(b, fragmentHeader...)
	b = append(b, glsllib.BlinnPhong()...)
	b = append(b, `
in vec3 vEyePos;
in vec3 vNormal;
in vec2 vTexCoord;

uniform vec3 uColor;
uniform int uTextured;
uniform sampler2D uTexture;

out vec4 fragColor;

void main() {
	vec3 N = normalize(vNormal);
	if (!gl_FrontFacing) {
		N = -N;
	}
	vec3 V = normalize(-vEyePos);
	vec3 col = `...)
	b = appendVec3(b, mgl32.Vec3{
		l.GlobalAmbient[0] * l.Material.Ambient[0],
		l.GlobalAmbient[1] * l.Material.Ambient[1],
		l.GlobalAmbient[2] * l.Material.Ambient[2],
	})
	b = append(b, ";\n"...)
	for _, light := range l.Lights {
		b = append(b, "\tcol += "...)
		b = appendVec3(b, mgl32.Vec3{
			light.Ambient[0] * l.Material.Ambient[0],
			light.Ambient[1] * l.Material.Ambient[1],
			light.Ambient[2] * l.Material.Ambient[2],
		})
		b = append(b, " + blinnPhong(N, V, vEyePos, "...)
		b = appendVec3(b, light.Position)
		b = append(b, ", "...)
		b = appendVec3(b, light.Diffuse)
		b = append(b, ", "...)
		b = appendVec3(b, light.Specular)
		b = append(b, ", uColor, "...)
		b = appendVec3(b, l.Material.Specular)
		b = append(b, ", "...)
		b = appendFloats(b, l.Material.Shininess)
		b = append(b, ");\n"...)
	}
	b = append(b, `	if (uTextured != 0) {
		col *= texture(uTexture, vTexCoord).rgb;
	}
	fragColor = vec4(clamp(col, 0.0, 1.0), 1.0);
}
`...)
	p.scratch = b
	return w.Write(b)
}

// WriteOverlayProgram writes a program drawing a screen covering quad with
// texture uOverlay, where image row zero is the top of the screen. Fully
// transparent texels are discarded. The only attribute is vec2 aPos at location 0.
func (p *Programmer) WriteOverlayProgram(w io.Writer) (int, error) {
	b := append(p.scratch[:0], vertexHeader...)
	b = append(b, `layout(location = 0) in vec2 aPos;
out vec2 vTexCoord;
void main() {
	vTexCoord = vec2(aPos.x * 0.5 + 0.5, 0.5 - aPos.y * 0.5);
	gl_Position = vec4(aPos, 0.0, 1.0);
}
`...)
	b = append(b, fragmentHeader...)
	b = append(b, `in vec2 vTexCoord;
uniform sampler2D uOverlay;
out vec4 fragColor;
void main() {
	vec4 c = texture(uOverlay, vTexCoord);
	if (c.a == 0.0) {
		discard;
	}
	fragColor = c;
}
`...)
	p.scratch = b
	return w.Write(b)
}

// appendFloats appends comma separated GLSL float literals.
func appendFloats(b []byte, v ...float32) []byte {
	for i, f := range v {
		if i > 0 {
			b = append(b, ", "...)
		}
		start := len(b)
		b = strconv.AppendFloat(b, float64(f), 'g', -1, 32)
		if !bytes.ContainsAny(b[start:], ".eEn") {
			b = append(b, ".0"...)
		}
	}
	return b
}

func appendVec3(b []byte, v mgl32.Vec3) []byte {
	b = append(b, "vec3("...)
	b = appendFloats(b, v[0], v[1], v[2])
	return append(b, ')')
}
