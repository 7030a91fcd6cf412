// Package gleval evaluates scalar fields over batches of 2D positions on the
// CPU or the GPU.
package gleval

import (
	"errors"

	"github.com/soypat/glgl/math/ms2"
)

// Field implements a 2D scalar field in vectorized form suitable for running on GPU.
// [porcelain.Motif] is the CPU implementation.
type Field interface {
	// Evaluate evaluates the field over pos positions.
	// dst and pos must be of same length. Resulting values are stored in dst.
	//
	// userData facilitates getting data to the evaluators for use in processing.
	Evaluate(pos []ms2.Vec, dst []float32, userData any) error
}

var (
	errEmptyBuffers         = errors.New("empty buffers")
	errMismatchBufferLength = errors.New("position and value buffer length mismatch")
	errZeroInvoc            = errors.New("zero or negative invocation size")
)

// ComputeConfig configures GPU compute evaluation.
type ComputeConfig struct {
	// InvocX is the local work group size in x, which must match
	// the local_size_x of the compiled compute shader.
	InvocX int
}

// CountingField wraps a Field and keeps track of evaluation statistics.
type CountingField struct {
	Field Field
	evals uint64
	calls uint64
}

// Evaluate implements [Field] and counts successful evaluations.
func (c *CountingField) Evaluate(pos []ms2.Vec, dst []float32, userData any) error {
	if len(pos) != len(dst) {
		return errMismatchBufferLength
	} else if len(pos) == 0 {
		return errEmptyBuffers
	}
	err := c.Field.Evaluate(pos, dst, userData)
	if err != nil {
		return err
	}
	c.evals += uint64(len(pos))
	c.calls++
	return nil
}

// Evaluations returns total positions evaluated successfully during the field's lifetime.
func (c *CountingField) Evaluations() uint64 { return c.evals }

// Calls returns the amount of successful Evaluate calls.
func (c *CountingField) Calls() uint64 { return c.calls }
