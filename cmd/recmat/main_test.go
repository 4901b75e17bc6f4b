package main

import (
	"path/filepath"
	"testing"

	"github.com/san-kum/recmat/internal/storage"
)

func TestParseGeneration(t *testing.T) {
	tests := []struct {
		arg     string
		want    int
		wantErr bool
	}{
		{"1", 1, false},
		{"11", 11, false},
		{"0", 0, true},
		{"-2", 0, true},
		{"x", 0, true},
	}

	for _, tt := range tests {
		got, err := parseGeneration(tt.arg)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: unexpected error state: %v", tt.arg, err)
		}
		if got != tt.want {
			t.Errorf("%q: expected %d, got %d", tt.arg, tt.want, got)
		}
	}
}

func TestStoredGenerations(t *testing.T) {
	layout := storage.Layout{EigenDir: filepath.Join(t.TempDir(), "eigenCSV")}
	for _, gen := range []int{1, 3} {
		if err := storage.WriteEigenvalues(layout.EigenvaluePath(gen), []float64{1, 3}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	gens := storedGenerations(layout, 5)
	if len(gens) != 2 || gens[0] != 1 || gens[1] != 3 {
		t.Errorf("expected [1 3], got %v", gens)
	}
}
