package spectrum

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/san-kum/recmat/internal/family"
	"github.com/san-kum/recmat/internal/matrix"
)

func TestSeedEigenvalues(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{2, 1}, {1, 2}})
	if err != nil {
		t.Fatalf("from rows: %v", err)
	}

	vals, err := NewSymmetricSolver().Eigenvalues(m)
	if err != nil {
		t.Fatalf("eigenvalues: %v", err)
	}

	want := []float64{1, 3}
	if len(vals) != len(want) {
		t.Fatalf("expected %d eigenvalues, got %d", len(want), len(vals))
	}
	for i := range want {
		if math.Abs(vals[i]-want[i]) > 1e-12 {
			t.Errorf("eigenvalue %d: expected %v, got %v", i, want[i], vals[i])
		}
	}
}

func TestFamilySpectra(t *testing.T) {
	f, err := family.Build(6)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	solver := NewSymmetricSolver()

	for _, g := range f.Generations() {
		vals, err := solver.Eigenvalues(g.M)
		if err != nil {
			t.Fatalf("generation %d: %v", g.Index, err)
		}
		if len(vals) != g.Dim() {
			t.Errorf("generation %d: expected %d eigenvalues, got %d", g.Index, g.Dim(), len(vals))
		}
		if !sort.Float64sAreSorted(vals) {
			t.Errorf("generation %d: eigenvalues not ascending", g.Index)
		}
		// every row sums to 3, so 3 is the largest eigenvalue
		if top := vals[len(vals)-1]; math.Abs(top-3) > 1e-9 {
			t.Errorf("generation %d: expected largest eigenvalue 3, got %v", g.Index, top)
		}

		trace := 0.0
		for i := 0; i < g.Dim(); i++ {
			v, _ := g.M.At(i, i)
			trace += v
		}
		sum := 0.0
		for _, v := range vals {
			sum += v
		}
		if math.Abs(sum-trace) > 1e-8 {
			t.Errorf("generation %d: eigenvalue sum %v does not match trace %v", g.Index, sum, trace)
		}
	}
}

func TestUpperTriangleOnly(t *testing.T) {
	// the lower triangle is ignored, so this solves [[2,1],[1,2]]
	m, _ := matrix.FromRows([][]float64{{2, 1}, {100, 2}})
	vals, err := NewSymmetricSolver().Eigenvalues(m)
	if err != nil {
		t.Fatalf("eigenvalues: %v", err)
	}
	if math.Abs(vals[0]-1) > 1e-12 || math.Abs(vals[1]-3) > 1e-12 {
		t.Errorf("expected [1 3], got %v", vals)
	}
}

func TestNilMatrix(t *testing.T) {
	_, err := NewSymmetricSolver().Eigenvalues(nil)
	if !errors.Is(err, ErrEigenDecomposition) {
		t.Errorf("expected ErrEigenDecomposition, got %v", err)
	}
	var de *DecompositionError
	if !errors.As(err, &de) {
		t.Errorf("expected DecompositionError, got %T", err)
	}
}

type anonymousSolver struct{}

func (anonymousSolver) Eigenvalues(m *matrix.Matrix) ([]float64, error) { return nil, nil }

func TestName(t *testing.T) {
	if got := Name(NewSymmetricSolver()); got != "gonum-eigensym" {
		t.Errorf("unexpected name %q", got)
	}
	if got := Name(anonymousSolver{}); got != "spectrum.anonymousSolver" {
		t.Errorf("unexpected fallback name %q", got)
	}
}
