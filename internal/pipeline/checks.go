package pipeline

import (
	"fmt"

	"github.com/san-kum/recmat/internal/family"
)

func (r *Runner) check(g *family.Generation) error {
	if r.opts.VerifySymmetry && !g.M.IsSymmetric() {
		return ErrAsymmetric
	}
	if r.opts.CrossCheck {
		if err := crossCheck(g); err != nil {
			return err
		}
	}
	return nil
}

// crossCheck compares M v against the matrix-free operator for a fixed probe
// vector with small integer entries, so both sides are exact.
func crossCheck(g *family.Generation) error {
	n := g.Dim()
	probe := make([]float64, n)
	for j := range probe {
		probe[j] = float64(j%5 + 1)
	}

	want, err := family.Operator{K: g.Index}.Apply(probe)
	if err != nil {
		return err
	}

	for i := 0; i < n; i++ {
		row, err := g.M.Row(i)
		if err != nil {
			return err
		}
		got := 0.0
		for j, v := range row {
			got += v * probe[j]
		}
		if got != want[i] {
			return fmt.Errorf("%w: row %d: dense %v, operator %v", ErrCrossCheck, i, got, want[i])
		}
	}
	return nil
}
