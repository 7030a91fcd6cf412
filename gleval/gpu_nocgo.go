//go:build tinygo || !cgo

package gleval

import (
	"errors"
	"io"

	"github.com/soypat/glgl/math/ms2"
)

var errNoCGO = errors.New("GPU evaluation requires CGo and is not supported on TinyGo")

// Init1x1GLFW is not supported without CGo.
func Init1x1GLFW() (terminate func(), err error) {
	return nil, errNoCGO
}

// NewComputeGPUField is not supported without CGo.
func NewComputeGPUField(glglSourceCode io.Reader, cfg ComputeConfig) (*FieldCompute, error) {
	return nil, errNoCGO
}

type FieldCompute struct{}

func (f *FieldCompute) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	return errNoCGO
}

func (f *FieldCompute) Delete() {}
