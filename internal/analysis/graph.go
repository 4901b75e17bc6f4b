package analysis

import "github.com/san-kum/recmat/internal/matrix"

// Edge joins two 1-indexed vertices. A self loop has From == To.
type Edge struct {
	From int
	To   int
}

// Edges returns the simple edges of m: cells equal to 1 in the upper
// triangle, plus a self loop for every diagonal cell equal to 1. Cells with
// multiplicity above 1 are ignored.
func Edges(m *matrix.Matrix) ([]Edge, error) {
	n := m.Size()
	if n == 0 {
		return nil, matrix.ErrNilMatrix
	}

	var edges []Edge
	for i := 0; i < n; i++ {
		row, err := m.Row(i)
		if err != nil {
			return nil, err
		}
		for j := i + 1; j < n; j++ {
			if row[j] == 1 {
				edges = append(edges, Edge{From: i + 1, To: j + 1})
			}
		}
		if row[i] == 1 {
			edges = append(edges, Edge{From: i + 1, To: i + 1})
		}
	}
	return edges, nil
}
