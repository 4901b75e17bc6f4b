// Package family builds the recursive block-matrix sequence M_1..M_k.
//
// Generation i holds three 2^i x 2^i matrices A_i, B_i, C_i and their sum
// M_i. Generation 1 is a fixed seed; every later generation is assembled
// from quadrant copies of the one immediately before it:
//
//	A_i = | 0       C_{i-1} |   B_i = | A_{i-1} 0       |   C_i = | B_{i-1} 0       |
//	      | C_{i-1} 0       |         | 0       B_{i-1} |         | 0       A_{i-1} |
package family

import (
	"errors"
	"fmt"

	"github.com/san-kum/recmat/internal/matrix"
)

// ErrInvalidArgument indicates a generation count below one.
var ErrInvalidArgument = errors.New("family: invalid argument")

// Generation is one step of the family. It is never mutated once built.
type Generation struct {
	Index int
	A     *matrix.Matrix
	B     *matrix.Matrix
	C     *matrix.Matrix
	M     *matrix.Matrix
}

// Dim returns the dimension 2^Index.
func (g *Generation) Dim() int {
	return g.M.Size()
}

// Family is the ordered list of generations 1..k.
type Family struct {
	gens []*Generation
}

// Len returns k.
func (f *Family) Len() int {
	return len(f.gens)
}

// Generation returns generation i, 1-indexed.
func (f *Family) Generation(i int) (*Generation, error) {
	if i < 1 || i > len(f.gens) {
		return nil, fmt.Errorf("%w: generation %d not in [1,%d]", ErrInvalidArgument, i, len(f.gens))
	}
	return f.gens[i-1], nil
}

// Generations returns the generations in order.
func (f *Family) Generations() []*Generation {
	out := make([]*Generation, len(f.gens))
	copy(out, f.gens)
	return out
}

// Matrices returns M_1..M_k.
func (f *Family) Matrices() []*matrix.Matrix {
	out := make([]*matrix.Matrix, len(f.gens))
	for i, g := range f.gens {
		out[i] = g.M
	}
	return out
}

// Seed returns generation 1.
func Seed() (*Generation, error) {
	a, err := matrix.FromRows([][]float64{{0, 1}, {1, 0}})
	if err != nil {
		return nil, err
	}
	b, err := matrix.FromRows([][]float64{{1, 0}, {0, 1}})
	if err != nil {
		return nil, err
	}
	c := b.Clone()
	return assemble(1, a, b, c)
}

// Next builds generation prev.Index+1 from prev alone.
func Next(prev *Generation) (*Generation, error) {
	if prev == nil {
		return nil, fmt.Errorf("%w: nil previous generation", ErrInvalidArgument)
	}
	n := 2 * prev.Dim()

	a, err := place(n, placement{matrix.TopRight: prev.C, matrix.BottomLeft: prev.C})
	if err != nil {
		return nil, fmt.Errorf("generation %d: A: %w", prev.Index+1, err)
	}
	b, err := place(n, placement{matrix.TopLeft: prev.A, matrix.BottomRight: prev.B})
	if err != nil {
		return nil, fmt.Errorf("generation %d: B: %w", prev.Index+1, err)
	}
	c, err := place(n, placement{matrix.TopLeft: prev.B, matrix.BottomRight: prev.A})
	if err != nil {
		return nil, fmt.Errorf("generation %d: C: %w", prev.Index+1, err)
	}
	return assemble(prev.Index+1, a, b, c)
}

// Build returns generations 1..k.
func Build(k int) (*Family, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k must be >= 1, got %d", ErrInvalidArgument, k)
	}

	gen, err := Seed()
	if err != nil {
		return nil, err
	}
	f := &Family{gens: make([]*Generation, 0, k)}
	f.gens = append(f.gens, gen)

	for i := 2; i <= k; i++ {
		if gen, err = Next(gen); err != nil {
			return nil, err
		}
		f.gens = append(f.gens, gen)
	}
	return f, nil
}

// placement maps quadrants to their source; missing quadrants stay zero.
type placement map[matrix.Quadrant]*matrix.Matrix

func place(n int, p placement) (*matrix.Matrix, error) {
	m, err := matrix.New(n)
	if err != nil {
		return nil, err
	}
	for _, q := range []matrix.Quadrant{matrix.TopLeft, matrix.TopRight, matrix.BottomLeft, matrix.BottomRight} {
		src, ok := p[q]
		if !ok {
			continue
		}
		if err := m.CopyQuadrant(q, src); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func assemble(index int, a, b, c *matrix.Matrix) (*Generation, error) {
	m, err := matrix.Sum(a, b, c)
	if err != nil {
		return nil, fmt.Errorf("generation %d: M: %w", index, err)
	}
	return &Generation{Index: index, A: a, B: b, C: c, M: m}, nil
}
