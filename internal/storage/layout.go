package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout names the output roots of a run.
type Layout struct {
	EigenDir  string
	MatrixDir string
	GraphDir  string
}

// Init creates the eigenvalue and matrix roots. It is safe to call repeatedly.
func (l Layout) Init() error {
	for _, dir := range []string{l.EigenDir, l.MatrixDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &ExportError{Path: dir, Op: "mkdir", Err: err}
		}
	}
	return nil
}

// EigenvaluePath returns <EigenDir>/eigenvalues_<gen>.csv.
func (l Layout) EigenvaluePath(gen int) string {
	return filepath.Join(l.EigenDir, fmt.Sprintf("eigenvalues_%d.csv", gen))
}

// MatrixPath returns <MatrixDir>/matrix_m<gen>.csv.
func (l Layout) MatrixPath(gen int) string {
	return filepath.Join(l.MatrixDir, fmt.Sprintf("matrix_m%d.csv", gen))
}

// EdgesPath returns <GraphDir>/edges_m<gen>.csv.
func (l Layout) EdgesPath(gen int) string {
	return filepath.Join(l.GraphDir, fmt.Sprintf("edges_m%d.csv", gen))
}

// SummaryPath returns <EigenDir>/summary.json.
func (l Layout) SummaryPath() string {
	return filepath.Join(l.EigenDir, "summary.json")
}

// ExportsMatrix reports whether generation gen gets a matrix file.
// The first generation is not exported.
func ExportsMatrix(gen int) bool {
	return gen >= 2
}
