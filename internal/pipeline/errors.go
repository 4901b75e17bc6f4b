package pipeline

import (
	"errors"
	"fmt"
)

var (
	// ErrNotBuilt indicates Process was called before Build.
	ErrNotBuilt = errors.New("pipeline: family not built")

	// ErrAsymmetric indicates a generation matrix failed the symmetry check.
	ErrAsymmetric = errors.New("pipeline: matrix is not symmetric")

	// ErrCrossCheck indicates the dense matrix disagrees with the matrix-free operator.
	ErrCrossCheck = errors.New("pipeline: dense and operator products differ")

	// ErrAborted indicates a per-generation failure stopped the run.
	ErrAborted = errors.New("pipeline: run aborted")
)

// GenerationError wraps a failure with the generation it happened in.
type GenerationError struct {
	Generation int
	Wrapped    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation %d: %v", e.Generation, e.Wrapped)
}

func (e *GenerationError) Unwrap() error {
	return e.Wrapped
}
