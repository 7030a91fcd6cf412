package glrender

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/cgfdemo/porcelain/gleval"
	"github.com/soypat/glgl/math/ms2"
)

type setImage = interface {
	image.Image
	Set(x, y int, c color.Color)
}

// FieldRenderer converts 2D fields to images.
type FieldRenderer struct {
	conv func(f float32) color.Color
	pos  []ms2.Vec
	vals []float32
}

// NewFieldRenderer instances a new [FieldRenderer] with room for rows up to
// evalBufferSize pixels wide.
func NewFieldRenderer(evalBufferSize int, conversion func(float32) color.Color) (*FieldRenderer, error) {
	if evalBufferSize <= 0 {
		return nil, errors.New("non-positive evaluation buffer size")
	} else if conversion == nil {
		return nil, errors.New("nil color conversion")
	}
	return &FieldRenderer{
		conv: conversion,
		pos:  make([]ms2.Vec, evalBufferSize),
		vals: make([]float32, evalBufferSize),
	}, nil
}

// Render evaluates the field at every pixel of img and stores the converted color.
// Pixels are evaluated at their offset from center, with x growing right and y
// growing down the image rows. It uses userData as an argument to all [gleval.Field.Evaluate] calls.
func (fr *FieldRenderer) Render(field gleval.Field, img setImage, center ms2.Vec, userData any) error {
	bb := img.Bounds()
	dxi := bb.Dx()
	if dxi == 0 || bb.Dy() == 0 {
		return errors.New("empty image")
	} else if len(fr.vals) < dxi {
		return fmt.Errorf("require evaluation buffer (%d) to be at least of length of image rows (%d)", len(fr.vals), dxi)
	}
	for row := 0; row < bb.Dy(); row++ {
		err := fr.renderRow(field, row, center, bb, img, userData)
		if err != nil {
			return err
		}
	}
	return nil
}

func (fr *FieldRenderer) renderRow(field gleval.Field, row int, center ms2.Vec, bb image.Rectangle, img setImage, userData any) error {
	dxi := bb.Dx()
	y := float32(row) - center.Y
	for j := 0; j < dxi; j++ {
		fr.pos[j] = ms2.Vec{X: float32(j) - center.X, Y: y}
	}
	err := field.Evaluate(fr.pos[:dxi], fr.vals[:dxi], userData)
	if err != nil {
		return err
	}
	conv := fr.conv
	for j, v := range fr.vals[:dxi] {
		img.Set(bb.Min.X+j, bb.Min.Y+row, conv(v))
	}
	return nil
}
