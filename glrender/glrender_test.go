package glrender

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/cgfdemo/porcelain"
	"github.com/cgfdemo/porcelain/gleval"
	"github.com/soypat/geometry/ms3"
	"github.com/soypat/glgl/math/ms2"
)

func TestFieldRendererMatchesSynthesize(t *testing.T) {
	const w, h = 64, 48
	m := porcelain.DefaultMotif()
	want, err := porcelain.Synthesize(w, h, m)
	if err != nil {
		t.Fatal(err)
	}
	fr, err := NewFieldRenderer(w, func(v float32) color.Color { return m.Color(v) })
	if err != nil {
		t.Fatal(err)
	}
	field := &gleval.CountingField{Field: &m}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	err = fr.Render(field, img, ms2.Vec{X: w / 2, Y: h / 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if field.Calls() != h || field.Evaluations() != w*h {
		t.Errorf("want %d row calls and %d evaluations, got %d and %d", h, w*h, field.Calls(), field.Evaluations())
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if got, exp := img.RGBAAt(x, y), want.RGBAAt(x, y); got != exp {
				t.Fatalf("pixel (%d,%d): got %v, want %v", x, y, got, exp)
			}
		}
	}
}

func TestFieldRendererErrors(t *testing.T) {
	conv := func(float32) color.Color { return color.Black }
	if _, err := NewFieldRenderer(0, conv); err == nil {
		t.Error("expected error for zero buffer")
	}
	if _, err := NewFieldRenderer(8, nil); err == nil {
		t.Error("expected error for nil conversion")
	}
	fr, err := NewFieldRenderer(8, conv)
	if err != nil {
		t.Fatal(err)
	}
	m := porcelain.DefaultMotif()
	if err := fr.Render(&m, image.NewRGBA(image.Rect(0, 0, 16, 4)), ms2.Vec{}, nil); err == nil {
		t.Error("expected error for row wider than buffer")
	}
	if err := fr.Render(&m, image.NewRGBA(image.Rect(0, 0, 0, 4)), ms2.Vec{}, nil); err == nil {
		t.Error("expected error for empty image")
	}
}

func TestMipmaps(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 512, 512))
	for i := range src.Pix {
		src.Pix[i] = 200
	}
	levels := Mipmaps(src)
	if len(levels) != 10 {
		t.Fatalf("want 10 levels for 512x512, got %d", len(levels))
	}
	for i, lvl := range levels {
		size := 512 >> i
		if lvl.Rect.Dx() != size || lvl.Rect.Dy() != size {
			t.Errorf("level %d: size %v, want %d", i, lvl.Rect.Size(), size)
		}
		c := lvl.RGBAAt(size/2, size/2)
		for _, v := range [4]uint8{c.R, c.G, c.B, c.A} {
			if v < 199 || v > 200 {
				t.Errorf("level %d: uniform color not preserved, got %v", i, c)
				break
			}
		}
	}
	levels = Mipmaps(image.NewRGBA(image.Rect(0, 0, 8, 2)))
	last := levels[len(levels)-1]
	if len(levels) != 4 || last.Rect.Dx() != 1 || last.Rect.Dy() != 1 {
		t.Errorf("non-square chain should end at 1x1 after 4 levels, got %d levels ending %v", len(levels), last.Rect.Size())
	}
	if Mipmaps(image.NewRGBA(image.Rectangle{})) != nil {
		t.Error("empty image should have no levels")
	}
}

func TestWritePNG(t *testing.T) {
	raster, err := porcelain.Synthesize(16, 16, porcelain.DefaultMotif())
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, raster); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != raster.Bounds() {
		t.Errorf("decoded bounds %v", img.Bounds())
	}
}

func TestWriteBinarySTL(t *testing.T) {
	tris := []ms3.Triangle{
		{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}},
		{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}},
	}
	var buf bytes.Buffer
	n, err := WriteBinarySTL(&buf, tris)
	if err != nil {
		t.Fatal(err)
	}
	const wantLen = 84 + 2*50
	if n != wantLen || buf.Len() != wantLen {
		t.Fatalf("wrote %d bytes (buffer %d), want %d", n, buf.Len(), wantLen)
	}
	b := buf.Bytes()
	if binary.LittleEndian.Uint32(b[80:]) != 2 {
		t.Error("bad triangle count")
	}
	nz0 := math.Float32frombits(binary.LittleEndian.Uint32(b[84+8:]))
	nz1 := math.Float32frombits(binary.LittleEndian.Uint32(b[84+50+8:]))
	if nz0 != 1 || nz1 != -1 {
		t.Errorf("facet normals z: got %g and %g, want 1 and -1", nz0, nz1)
	}
	vx := math.Float32frombits(binary.LittleEndian.Uint32(b[84+24:]))
	if vx != 1 {
		t.Errorf("second vertex x: got %g", vx)
	}
}
