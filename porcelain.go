// Package porcelain synthesizes the blue-and-white floral motif used as the
// teapot's surface texture.
//
// The motif is a scalar field over the plane evaluated relative to the raster
// center. Each pixel is classified into one of three palette colors depending
// on two thresholds. See [Synthesize] and [Motif].
package porcelain

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/chewxy/math32"
)

// Reference texture dimensions.
const (
	TextureWidth  = 512
	TextureHeight = 512
)

// ErrInvalidArgument is returned (wrapped) for non-positive raster dimensions
// and badly configured motifs.
var ErrInvalidArgument = errors.New("invalid argument")

// Palette holds the three colors a motif pixel may take.
type Palette struct {
	// Ink is the deep motif color used where the pattern is strongest.
	Ink color.RGBA
	// Highlight is the mid motif color.
	Highlight color.RGBA
	// Background is the porcelain tone.
	Background color.RGBA
}

// Motif configures the floral pattern:
//
//	pattern = (sin(angle*Petals + dist*AngularRing) + cos(dist*RadialFreq))²
type Motif struct {
	// Petals is the angular frequency. The pattern repeats every 2π/Petals radians.
	Petals float32
	// AngularRing twists the petals with distance from the center.
	AngularRing float32
	// RadialFreq sets the ring frequency.
	RadialFreq float32
	// InkThreshold: pattern values strictly above it are painted Ink.
	InkThreshold float32
	// HighlightThreshold: pattern values strictly above it (and not Ink) are painted Highlight.
	HighlightThreshold float32
	Palette            Palette
}

// DefaultMotif returns the cobalt on porcelain motif with twelve petals.
func DefaultMotif() Motif {
	return Motif{
		Petals:             12,
		AngularRing:        0.05,
		RadialFreq:         0.1,
		InkThreshold:       0.8,
		HighlightThreshold: 0.2,
		Palette:            DefaultPalette(),
	}
}

// DefaultPalette returns cobalt blue, light blue and porcelain white.
func DefaultPalette() Palette {
	return Palette{
		Ink:        color.RGBA{R: 0, G: 40, B: 120, A: 255},
		Highlight:  color.RGBA{R: 100, G: 150, B: 255, A: 255},
		Background: color.RGBA{R: 245, G: 245, B: 250, A: 255},
	}
}

// Validate checks the motif constants are finite and thresholds are ordered.
func (m Motif) Validate() error {
	for _, v := range [...]struct {
		name string
		v    float32
	}{
		{"petals", m.Petals},
		{"angular ring", m.AngularRing},
		{"radial frequency", m.RadialFreq},
		{"ink threshold", m.InkThreshold},
		{"highlight threshold", m.HighlightThreshold},
	} {
		if math32.IsNaN(v.v) || math32.IsInf(v.v, 0) {
			return fmt.Errorf("%w: motif %s is not finite", ErrInvalidArgument, v.name)
		}
	}
	if m.HighlightThreshold > m.InkThreshold {
		return fmt.Errorf("%w: highlight threshold %g above ink threshold %g", ErrInvalidArgument, m.HighlightThreshold, m.InkThreshold)
	}
	return nil
}
