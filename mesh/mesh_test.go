package mesh

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms3"
)

func TestTeapotErrors(t *testing.T) {
	for _, test := range []struct {
		size   float32
		slices int
	}{
		{size: 0, slices: 32},
		{size: -1, slices: 32},
		{size: math32.NaN(), slices: 32},
		{size: math32.Inf(1), slices: 32},
		{size: 1, slices: 7},
	} {
		m, err := Teapot(test.size, test.slices)
		if err == nil || m != nil {
			t.Errorf("size=%g slices=%d: expected error", test.size, test.slices)
		}
	}
}

func TestTeapotShape(t *testing.T) {
	const tol = 1e-4
	const size = 1.2
	m, err := Teapot(size, 32)
	if err != nil {
		t.Fatal(err)
	}
	if len(m.Indices)%3 != 0 || len(m.Indices) == 0 {
		t.Fatalf("bad index count %d", len(m.Indices))
	}
	for _, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	bb := m.Bounds()
	if math32.Abs(bb.Max.Y-0.825*size) > tol || math32.Abs(bb.Min.Y+0.75*size) > tol {
		t.Errorf("vertical range [%g, %g], want [%g, %g]", bb.Min.Y, bb.Max.Y, -0.75*size, 0.825*size)
	}
	if bb.Max.X <= size {
		t.Errorf("spout should extend past the body, max x %g", bb.Max.X)
	}
	if bb.Min.X >= -size {
		t.Errorf("handle should extend past the body, min x %g", bb.Min.X)
	}
	if math32.Abs(bb.Max.Z-size) > tol || math32.Abs(bb.Min.Z+size) > 10*tol {
		t.Errorf("depth range [%g, %g] should match body radius %g", bb.Min.Z, bb.Max.Z, size)
	}
	for i, v := range m.Vertices {
		if math32.Abs(ms3.Norm(v.Normal)-1) > tol {
			t.Fatalf("vertex %d normal not unit: %v", i, v.Normal)
		}
	}
	tris := m.Triangles()
	if len(tris) != len(m.Indices)/3 {
		t.Fatal("triangle count mismatch")
	}
	for i, tri := range tris {
		n := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		vn := ms3.Add(ms3.Add(m.Vertices[m.Indices[3*i]].Normal, m.Vertices[m.Indices[3*i+1]].Normal), m.Vertices[m.Indices[3*i+2]].Normal)
		if ms3.Dot(n, vn) < 0 {
			t.Fatalf("triangle %d winding disagrees with its normals", i)
		}
	}
	buf := m.Interleaved()
	if len(buf) != FloatsPerVertex*len(m.Vertices) {
		t.Fatalf("interleaved length %d", len(buf))
	}
	if buf[FloatsPerVertex] != m.Vertices[1].Pos.X || buf[FloatsPerVertex+3] != m.Vertices[1].Normal.X {
		t.Error("interleaved layout mismatch")
	}
}

func TestTeapotResolution(t *testing.T) {
	lo, err := Teapot(1, 8)
	if err != nil {
		t.Fatal(err)
	}
	hi, err := Teapot(1, 64)
	if err != nil {
		t.Fatal(err)
	}
	if len(hi.Indices) <= len(lo.Indices) {
		t.Errorf("more slices should yield more triangles: %d <= %d", len(hi.Indices), len(lo.Indices))
	}
}

func TestEmptyBounds(t *testing.T) {
	var m Mesh
	if m.Bounds() != (ms3.Box{}) {
		t.Error("empty mesh should have zero bounds")
	}
}
