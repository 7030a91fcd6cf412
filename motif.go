package porcelain

import (
	"errors"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/soypat/glgl/math/ms2"
)

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and pattern buffer length mismatch")
)

// Pattern evaluates the motif at offset (dx, dy) from the motif center.
// The result is non-negative.
func (m Motif) Pattern(dx, dy float32) float32 {
	dist := math32.Sqrt(dx*dx + dy*dy)
	angle := math32.Atan2(dy, dx)
	p := math32.Sin(angle*m.Petals+dist*m.AngularRing) + math32.Cos(dist*m.RadialFreq)
	return p * p
}

// Classify maps a pattern value to its palette color. NaN falls to the background.
func (m Motif) Classify(pattern float32) color.RGBA {
	switch {
	case pattern > m.InkThreshold:
		return m.Palette.Ink
	case pattern > m.HighlightThreshold:
		return m.Palette.Highlight
	default:
		return m.Palette.Background
	}
}

// Color returns the motif's color as a [color.Color], suitable as a conversion
// function for image renderers.
func (m Motif) Color(pattern float32) color.Color {
	return m.Classify(pattern)
}

// Evaluate computes the pattern for each position, which are offsets from the
// motif center, and stores the results in dst. pos and dst must be of equal length.
// userData is unused by the CPU evaluator.
func (m Motif) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	if len(pos) != len(dst) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	for i, p := range pos {
		dst[i] = m.Pattern(p.X, p.Y)
	}
	return nil
}
