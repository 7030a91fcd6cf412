// Package mesh generates triangle meshes for the viewer.
package mesh

import (
	"errors"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

// Vertex is a mesh vertex with a unit normal.
type Vertex struct {
	Pos    ms3.Vec
	Normal ms3.Vec
}

// Mesh is an indexed triangle mesh. Triangles are counter-clockwise when seen
// from the side their vertex normals point to.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// FloatsPerVertex is the stride in floats of [Mesh.Interleaved].
const FloatsPerVertex = 6

// Interleaved returns the vertices as position followed by normal, suitable for a GL array buffer.
func (m *Mesh) Interleaved() []float32 {
	buf := make([]float32, 0, FloatsPerVertex*len(m.Vertices))
	for _, v := range m.Vertices {
		buf = append(buf, v.Pos.X, v.Pos.Y, v.Pos.Z, v.Normal.X, v.Normal.Y, v.Normal.Z)
	}
	return buf
}

// Triangles returns the mesh's triangles, for example to write an STL file.
func (m *Mesh) Triangles() []ms3.Triangle {
	tris := make([]ms3.Triangle, len(m.Indices)/3)
	for i := range tris {
		tris[i] = ms3.Triangle{
			m.Vertices[m.Indices[3*i]].Pos,
			m.Vertices[m.Indices[3*i+1]].Pos,
			m.Vertices[m.Indices[3*i+2]].Pos,
		}
	}
	return tris
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() ms3.Box {
	if len(m.Vertices) == 0 {
		return ms3.Box{}
	}
	bb := ms3.Box{Min: m.Vertices[0].Pos, Max: m.Vertices[0].Pos}
	for _, v := range m.Vertices[1:] {
		bb.Min = ms3.MinElem(bb.Min, v.Pos)
		bb.Max = ms3.MaxElem(bb.Max, v.Pos)
	}
	return bb
}

// builder accumulates vertices and triangles, orienting each triangle so its
// geometric normal agrees with its vertex normals.
type builder struct {
	m Mesh
	// xf maps construction coordinates to output coordinates and must be a
	// rotation with uniform positive scaling.
	xf func(ms3.Vec) ms3.Vec
	// rot maps construction directions to output directions.
	rot func(ms3.Vec) ms3.Vec
}

func (b *builder) vertex(pos, normal ms3.Vec) uint32 {
	b.m.Vertices = append(b.m.Vertices, Vertex{
		Pos:    b.xf(pos),
		Normal: ms3.Unit(b.rot(normal)),
	})
	return uint32(len(b.m.Vertices) - 1)
}

func (b *builder) triangle(i, j, k uint32) {
	v := b.m.Vertices
	e1 := ms3.Sub(v[j].Pos, v[i].Pos)
	e2 := ms3.Sub(v[k].Pos, v[i].Pos)
	n := ms3.Cross(e1, e2)
	if ms3.Norm(n) < 1e-12 {
		return // Degenerate, happens at the lathe axis.
	}
	vn := ms3.Add(ms3.Add(v[i].Normal, v[j].Normal), v[k].Normal)
	if ms3.Dot(n, vn) < 0 {
		j, k = k, j
	}
	b.m.Indices = append(b.m.Indices, i, j, k)
}

// grid connects a rows by cols grid of vertices starting at index start
// laid out row-major.
func (b *builder) grid(start uint32, rows, cols int) {
	for r := 0; r < rows-1; r++ {
		for c := 0; c < cols-1; c++ {
			a := start + uint32(r*cols+c)
			bb := a + 1
			cc := a + uint32(cols)
			d := cc + 1
			b.triangle(a, cc, bb)
			b.triangle(bb, cc, d)
		}
	}
}

var errBadSize = errors.New("mesh size must be positive and finite")

func validSize(size float32) bool {
	return size > 0 && !math32.IsInf(size, 1)
}
