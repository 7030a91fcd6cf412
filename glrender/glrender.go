// Package glrender turns evaluated fields and meshes into images and files:
// field images, texture mip chains, PNG and binary STL output.
package glrender

import (
	"encoding/binary"
	"errors"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/soypat/geometry/ms3"
	"golang.org/x/image/draw"
)

// Mipmaps returns the mip chain of img: level 0 is a copy of img and each
// following level halves both dimensions (never below 1) until 1x1.
func Mipmaps(img image.Image) []*image.RGBA {
	bb := img.Bounds()
	if bb.Empty() {
		return nil
	}
	base := image.NewRGBA(image.Rect(0, 0, bb.Dx(), bb.Dy()))
	draw.Draw(base, base.Bounds(), img, bb.Min, draw.Src)
	levels := []*image.RGBA{base}
	for prev := base; prev.Rect.Dx() > 1 || prev.Rect.Dy() > 1; {
		w := max(1, prev.Rect.Dx()/2)
		h := max(1, prev.Rect.Dy()/2)
		next := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.BiLinear.Scale(next, next.Rect, prev, prev.Rect, draw.Src, nil)
		levels = append(levels, next)
		prev = next
	}
	return levels
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// WriteBinarySTL writes triangles as a binary STL file and returns the bytes written.
// Facet normals are computed from the triangle winding.
func WriteBinarySTL(w io.Writer, triangles []ms3.Triangle) (int, error) {
	const triSize = 4 * 3 * 4 // normal and 3 vertices.
	if uint64(len(triangles)) > math.MaxUint32 {
		return 0, errors.New("too many triangles for binary STL")
	}
	var header [84]byte
	copy(header[:], "binary STL")
	binary.LittleEndian.PutUint32(header[80:], uint32(len(triangles)))
	n, err := w.Write(header[:])
	if err != nil {
		return n, err
	}
	var buf [triSize + 2]byte
	for _, tri := range triangles {
		nrm := ms3.Cross(ms3.Sub(tri[1], tri[0]), ms3.Sub(tri[2], tri[0]))
		if l := ms3.Norm(nrm); l > 0 {
			nrm = ms3.Scale(1/l, nrm)
		}
		putVec(buf[0:], nrm)
		putVec(buf[12:], tri[0])
		putVec(buf[24:], tri[1])
		putVec(buf[36:], tri[2])
		ngot, err := w.Write(buf[:])
		n += ngot
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

func putVec(b []byte, v ms3.Vec) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v.X))
	binary.LittleEndian.PutUint32(b[4:], math.Float32bits(v.Y))
	binary.LittleEndian.PutUint32(b[8:], math.Float32bits(v.Z))
}
