package porcelain_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/cgfdemo/porcelain"
	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

func TestSynthesizeCenterIsInk(t *testing.T) {
	m := porcelain.DefaultMotif()
	r, err := porcelain.Synthesize(porcelain.TextureWidth, porcelain.TextureHeight, m)
	if err != nil {
		t.Fatal(err)
	}
	got := r.RGBAAt(porcelain.TextureWidth/2, porcelain.TextureHeight/2)
	want := color.RGBA{R: 0, G: 40, B: 120, A: 255}
	if got != want {
		t.Errorf("center pixel: want %v, got %v", want, got)
	}
	if p := m.Pattern(0, 0); p != 1 {
		t.Errorf("center pattern: want 1, got %v", p)
	}
}

func TestSynthesizePaletteOnly(t *testing.T) {
	m := porcelain.DefaultMotif()
	r, err := porcelain.Synthesize(porcelain.TextureWidth, porcelain.TextureHeight, m)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Pix) != 3*porcelain.TextureWidth*porcelain.TextureHeight {
		t.Fatalf("unexpected pixel buffer length %d", len(r.Pix))
	}
	var counts [3]int
	for y := 0; y < r.Height; y++ {
		for x := 0; x < r.Width; x++ {
			switch r.RGBAAt(x, y) {
			case m.Palette.Ink:
				counts[0]++
			case m.Palette.Highlight:
				counts[1]++
			case m.Palette.Background:
				counts[2]++
			default:
				t.Fatalf("pixel (%d,%d) not in palette: %v", x, y, r.RGBAAt(x, y))
			}
		}
	}
	for i, c := range counts {
		if c == 0 {
			t.Errorf("palette color %d never used", i)
		}
	}
}

func TestSynthesizeDeterministic(t *testing.T) {
	m := porcelain.DefaultMotif()
	r1, err := porcelain.Synthesize(porcelain.TextureWidth, porcelain.TextureHeight, m)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := porcelain.Synthesize(porcelain.TextureWidth, porcelain.TextureHeight, m)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(r1.Pix, r2.Pix) {
		t.Error("two syntheses differ")
	}
}

func TestSynthesizeInvalidArgument(t *testing.T) {
	m := porcelain.DefaultMotif()
	for _, dims := range [][2]int{{0, 512}, {512, 0}, {-1, 4}, {0, 0}, {4, math.MaxInt / 2}, {math.MaxInt / 2, 4}, {math.MaxInt, math.MaxInt}} {
		r, err := porcelain.Synthesize(dims[0], dims[1], m)
		if !errors.Is(err, porcelain.ErrInvalidArgument) {
			t.Errorf("%v: want ErrInvalidArgument, got %v", dims, err)
		}
		if r != nil {
			t.Errorf("%v: want nil raster on error", dims)
		}
	}
	bad := m
	bad.HighlightThreshold = 2
	_, err := porcelain.Synthesize(8, 8, bad)
	if !errors.Is(err, porcelain.ErrInvalidArgument) {
		t.Errorf("misordered thresholds: want ErrInvalidArgument, got %v", err)
	}
	bad = m
	bad.Petals = math32.NaN()
	_, err = porcelain.Synthesize(8, 8, bad)
	if !errors.Is(err, porcelain.ErrInvalidArgument) {
		t.Errorf("NaN petals: want ErrInvalidArgument, got %v", err)
	}
}

func TestPatternAngularSymmetry(t *testing.T) {
	const tol = 1e-3
	m := porcelain.DefaultMotif()
	step := 2 * math32.Pi / m.Petals
	for _, radius := range []float32{1, 17.5, 100, 250} {
		for k := 0; k < 24; k++ {
			a := float32(k) * 0.137
			p0 := m.Pattern(radius*math32.Cos(a), radius*math32.Sin(a))
			p1 := m.Pattern(radius*math32.Cos(a+step), radius*math32.Sin(a+step))
			if math32.Abs(p0-p1) > tol {
				t.Errorf("radius=%g angle=%g: pattern %g != rotated %g", radius, a, p0, p1)
			}
		}
	}
}

func TestPatternRadialPeriod(t *testing.T) {
	const tol = 1e-3
	m := porcelain.DefaultMotif()
	period := 2 * math32.Pi / m.RadialFreq
	for _, d := range []float32{3, 20, 57.5, 120} {
		// Along the positive x axis the angle is zero.
		got := m.Pattern(d+period, 0)
		s := math32.Sin((d + period) * m.AngularRing)
		c := math32.Cos(d * m.RadialFreq)
		want := (s + c) * (s + c)
		if math32.Abs(got-want) > tol {
			t.Errorf("dist=%g: want %g, got %g", d, want, got)
		}
		// Classification follows the value: no discontinuity across a radial period.
		if distToThreshold(m, want) > tol {
			if gotC, wantC := m.Classify(got), m.Classify(want); gotC != wantC {
				t.Errorf("dist=%g: classified %v, want %v", d, gotC, wantC)
			}
		}
	}
}

func TestClassifyThresholds(t *testing.T) {
	m := porcelain.DefaultMotif()
	for _, test := range []struct {
		p    float32
		want color.RGBA
	}{
		{p: 4, want: m.Palette.Ink},
		{p: 0.8001, want: m.Palette.Ink},
		{p: 0.8, want: m.Palette.Highlight},
		{p: 0.5, want: m.Palette.Highlight},
		{p: 0.2, want: m.Palette.Background},
		{p: 0, want: m.Palette.Background},
		{p: math32.NaN(), want: m.Palette.Background},
	} {
		got := m.Classify(test.p)
		if got != test.want {
			t.Errorf("Classify(%g): want %v, got %v", test.p, test.want, got)
		}
	}
}

func TestEvaluateBuffers(t *testing.T) {
	m := porcelain.DefaultMotif()
	err := m.Evaluate(nil, nil, nil)
	if err == nil {
		t.Error("expected error for empty buffers")
	}
	err = m.Evaluate(make([]ms2.Vec, 3), make([]float32, 2), nil)
	if err == nil {
		t.Error("expected error for mismatched buffers")
	}
	pos := []ms2.Vec{{X: 0, Y: 0}, {X: 3, Y: -4}, {X: -10, Y: 2}}
	dst := make([]float32, len(pos))
	err = m.Evaluate(pos, dst, nil)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range pos {
		if want := m.Pattern(p.X, p.Y); dst[i] != want {
			t.Errorf("pos %v: want %g, got %g", p, want, dst[i])
		}
	}
}

func TestRasterImage(t *testing.T) {
	m := porcelain.DefaultMotif()
	r, err := porcelain.Synthesize(64, 32, m)
	if err != nil {
		t.Fatal(err)
	}
	if r.Bounds() != image.Rect(0, 0, 64, 32) {
		t.Errorf("unexpected bounds %v", r.Bounds())
	}
	if r.Stride() != 3*64 {
		t.Errorf("unexpected stride %d", r.Stride())
	}
	var buf bytes.Buffer
	err = png.Encode(&buf, r)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 32; y++ {
		for x := 0; x < 64; x++ {
			r0, g0, b0, _ := decoded.At(x, y).RGBA()
			want := r.RGBAAt(x, y)
			if uint8(r0>>8) != want.R || uint8(g0>>8) != want.G || uint8(b0>>8) != want.B {
				t.Fatalf("pixel (%d,%d) mismatch after PNG round trip", x, y)
			}
		}
	}
	r.Set(0, 0, color.White)
	if r.RGBAAt(0, 0) != (color.RGBA{255, 255, 255, 255}) {
		t.Error("Set did not store white")
	}
	if r.RGBAAt(-1, 0) != (color.RGBA{}) {
		t.Error("out of bounds should be transparent")
	}
}

func distToThreshold(m porcelain.Motif, p float32) float32 {
	return min(math32.Abs(p-m.InkThreshold), math32.Abs(p-m.HighlightThreshold))
}
