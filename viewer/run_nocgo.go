//go:build tinygo || !cgo

package viewer

import (
	"context"
	"errors"
)

// Run requires CGo.
func Run(ctx context.Context, cfg Config) error {
	return errors.New("require cgo for the teapot viewer")
}
