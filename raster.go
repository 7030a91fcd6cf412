package porcelain

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/soypat/glgl/math/ms2"
)

// Raster is a packed 8-bit RGB image, the layout expected by
// glTexImage2D with GL_RGB/GL_UNSIGNED_BYTE.
type Raster struct {
	// Pix holds RGB triples in row-major order. The pixel at (x, y) starts at Pix[3*(y*Width+x)].
	Pix    []uint8
	Width  int
	Height int
}

// NewRaster allocates a zeroed raster of the given dimensions.
func NewRaster(width, height int) (*Raster, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: raster dimensions must be positive, got %dx%d", ErrInvalidArgument, width, height)
	} else if width > math.MaxInt/3/height {
		return nil, fmt.Errorf("%w: raster dimensions %dx%d too large", ErrInvalidArgument, width, height)
	}
	return &Raster{
		Pix:    make([]uint8, 3*width*height),
		Width:  width,
		Height: height,
	}, nil
}

// Synthesize returns a width by height raster of the motif centered at
// (width/2, height/2). The result is a pure function of its arguments.
func Synthesize(width, height int, m Motif) (*Raster, error) {
	err := m.Validate()
	if err != nil {
		return nil, err
	}
	r, err := NewRaster(width, height)
	if err != nil {
		return nil, err
	}
	cx := float32(width) / 2
	cy := float32(height) / 2
	pos := make([]ms2.Vec, width)
	pattern := make([]float32, width)
	for i := 0; i < height; i++ {
		dy := float32(i) - cy
		for j := range pos {
			pos[j] = ms2.Vec{X: float32(j) - cx, Y: dy}
		}
		err = m.Evaluate(pos, pattern, nil)
		if err != nil {
			return nil, err
		}
		row := r.Pix[3*i*width : 3*(i+1)*width]
		for j, p := range pattern {
			c := m.Classify(p)
			row[3*j] = c.R
			row[3*j+1] = c.G
			row[3*j+2] = c.B
		}
	}
	return r, nil
}

// Stride returns the byte length of a raster row.
func (r *Raster) Stride() int { return 3 * r.Width }

func (r *Raster) ColorModel() color.Model { return color.RGBAModel }

func (r *Raster) Bounds() image.Rectangle { return image.Rect(0, 0, r.Width, r.Height) }

func (r *Raster) At(x, y int) color.Color { return r.RGBAAt(x, y) }

// RGBAAt returns the opaque color at (x, y) or transparent black when out of bounds.
func (r *Raster) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return color.RGBA{}
	}
	off := 3 * (y*r.Width + x)
	return color.RGBA{R: r.Pix[off], G: r.Pix[off+1], B: r.Pix[off+2], A: 255}
}

// Set stores c at (x, y) discarding alpha. Out of bounds points are ignored.
func (r *Raster) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(r.Bounds())) {
		return
	}
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	off := 3 * (y*r.Width + x)
	r.Pix[off] = rgba.R
	r.Pix[off+1] = rgba.G
	r.Pix[off+2] = rgba.B
}
