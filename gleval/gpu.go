//go:build !tinygo && cgo

package gleval

import (
	"errors"
	"fmt"
	"io"

	"github.com/soypat/glgl/math/ms2"
	"github.com/soypat/glgl/v4.6-core/glgl"
)

// Init1x1GLFW starts a 1x1 sized GLFW so that user can start working with GPU.
// It returns a termination function that should be called when user is done running loads on GPU.
func Init1x1GLFW() (terminate func(), err error) {
	_, terminate, err = glgl.InitWithCurrentWindow33(glgl.WindowConfig{
		Title:   "compute",
		Version: [2]int{4, 6},
		Width:   1,
		Height:  1,
	})
	return terminate, err
}

// NewComputeGPUField instantiates a [Field] that runs on the GPU. The source
// is a glgl combined source with a single compute shader that reads positions
// from SSBO binding 0 and writes values to SSBO binding 1.
func NewComputeGPUField(glglSourceCode io.Reader, cfg ComputeConfig) (*FieldCompute, error) {
	if cfg.InvocX < 1 {
		return nil, errZeroInvoc
	}
	combinedSource, err := glgl.ParseCombined(glglSourceCode)
	if err != nil {
		return nil, err
	}
	glprog, err := glgl.CompileProgram(combinedSource)
	if err != nil {
		return nil, errors.New(string(combinedSource.Compute) + "\n" + err.Error())
	}
	return &FieldCompute{
		prog:   glprog,
		invocX: cfg.InvocX,
	}, nil
}

// FieldCompute is a [Field] evaluated by a compute shader.
type FieldCompute struct {
	prog   glgl.Program
	invocX int
}

// Evaluate implements [Field].
func (f *FieldCompute) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	if len(pos) != len(dst) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	} else if f.prog.ID() == 0 {
		return errors.New("program id is 0, did you create FieldCompute with NewComputeGPUField?")
	}
	f.prog.Bind()
	defer f.prog.Unbind()
	err := computeEvaluate(pos, dst, f.invocX)
	if err != nil {
		return fmt.Errorf("evaluating field on GPU: %w", err)
	}
	return nil
}

// Delete releases the GPU program.
func (f *FieldCompute) Delete() {
	f.prog.Delete()
}
