package family

import (
	"errors"
	"testing"
)

func denseApply(t *testing.T, g *Generation, v []float64) []float64 {
	t.Helper()
	n := g.Dim()
	out := make([]float64, n)
	for r := 0; r < n; r++ {
		row, err := g.M.Row(r)
		if err != nil {
			t.Fatalf("row: %v", err)
		}
		for c, x := range row {
			out[r] += x * v[c]
		}
	}
	return out
}

func TestOperatorMatchesDense(t *testing.T) {
	f, err := Build(6)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for _, g := range f.Generations() {
		v := make([]float64, g.Dim())
		for j := range v {
			v[j] = float64(j%7) - 2.5
		}

		got, err := Operator{K: g.Index}.Apply(v)
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		want := denseApply(t, g, v)
		for j := range want {
			if got[j] != want[j] {
				t.Fatalf("k=%d entry %d: expected %v, got %v", g.Index, j, want[j], got[j])
			}
		}
	}
}

func TestOperatorInvalid(t *testing.T) {
	if _, err := (Operator{K: 0}).Apply([]float64{1}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for K=0, got %v", err)
	}
	if _, err := (Operator{K: 2}).Apply([]float64{1, 2}); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for short vector, got %v", err)
	}
}
