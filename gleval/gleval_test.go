package gleval_test

import (
	"testing"

	"github.com/cgfdemo/porcelain"
	"github.com/cgfdemo/porcelain/gleval"
	"github.com/soypat/glgl/math/ms2"
)

func TestCountingField(t *testing.T) {
	m := porcelain.DefaultMotif()
	field := gleval.CountingField{Field: m}
	pos := []ms2.Vec{{X: 0, Y: 0}, {X: 3, Y: 4}, {X: -10, Y: 2}}
	dst := make([]float32, len(pos))
	for i := 0; i < 2; i++ {
		if err := field.Evaluate(pos, dst, nil); err != nil {
			t.Fatal(err)
		}
	}
	if field.Calls() != 2 || field.Evaluations() != 6 {
		t.Errorf("calls=%d evaluations=%d", field.Calls(), field.Evaluations())
	}
	if dst[0] != 1 {
		t.Errorf("pattern at center %g, want 1", dst[0])
	}
	for i, p := range pos {
		if want := m.Pattern(p.X, p.Y); dst[i] != want {
			t.Errorf("pos %v: got %g, want %g", p, dst[i], want)
		}
	}
	if field.Evaluate(pos, dst[:1], nil) == nil {
		t.Error("expected error for mismatched buffers")
	}
	if field.Evaluate(nil, nil, nil) == nil {
		t.Error("expected error for empty buffers")
	}
	if field.Calls() != 2 {
		t.Error("failed evaluations should not be counted")
	}
}
