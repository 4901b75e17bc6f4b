// Package spectrum computes eigenvalue spectra of family matrices.
//
// The numeric work is delegated to an external dense symmetric eigensolver;
// this package only adapts [matrix.Matrix] to it and normalizes the result
// into an ascending slice.
package spectrum

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/recmat/internal/matrix"
	"gonum.org/v1/gonum/mat"
)

// ErrEigenDecomposition indicates the solver did not produce a spectrum.
var ErrEigenDecomposition = errors.New("spectrum: eigen decomposition failed")

// DecompositionError wraps a solver failure with the matrix dimension.
type DecompositionError struct {
	Dim    int
	Reason string
}

func (e *DecompositionError) Error() string {
	return fmt.Sprintf("spectrum: eigen decomposition of %dx%d matrix failed: %s", e.Dim, e.Dim, e.Reason)
}

func (e *DecompositionError) Unwrap() error {
	return ErrEigenDecomposition
}

// Solver returns the ascending eigenvalues of a symmetric matrix.
type Solver interface {
	Eigenvalues(m *matrix.Matrix) ([]float64, error)
}

// Name returns a solver's Name method result, or its type name.
func Name(s Solver) string {
	if n, ok := s.(interface{ Name() string }); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", s)
}

// SymmetricSolver reads the upper triangle of its input and treats the matrix
// as symmetric, like LAPACK dsyev with uplo='U'. No symmetry check is made.
type SymmetricSolver struct{}

func NewSymmetricSolver() *SymmetricSolver {
	return &SymmetricSolver{}
}

func (s *SymmetricSolver) Name() string { return "gonum-eigensym" }

func (s *SymmetricSolver) Eigenvalues(m *matrix.Matrix) ([]float64, error) {
	if m == nil {
		return nil, &DecompositionError{Reason: "nil matrix"}
	}
	n := m.Size()

	sym := mat.NewSymDense(n, m.RowMajor())

	var eig mat.EigenSym
	if ok := eig.Factorize(sym, false); !ok {
		return nil, &DecompositionError{Dim: n, Reason: "factorization did not converge"}
	}

	values := eig.Values(nil)
	if len(values) != n {
		return nil, &DecompositionError{Dim: n, Reason: fmt.Sprintf("got %d eigenvalues", len(values))}
	}
	sort.Float64s(values)
	return values, nil
}
