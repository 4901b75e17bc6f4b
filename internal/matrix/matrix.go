package matrix

import "fmt"

// Quadrant names one of the four (n/2)x(n/2) blocks of an n x n matrix.
type Quadrant int

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return fmt.Sprintf("quadrant(%d)", int(q))
	}
}

// offset returns the row and column where quadrant q starts in a matrix of size n.
func (q Quadrant) offset(n int) (int, int, error) {
	half := n / 2
	switch q {
	case TopLeft:
		return 0, 0, nil
	case TopRight:
		return 0, half, nil
	case BottomLeft:
		return half, 0, nil
	case BottomRight:
		return half, half, nil
	default:
		return 0, 0, fmt.Errorf("%w: unknown %s", ErrOutOfRange, q)
	}
}

// Matrix is an n x n grid of float64 values stored row-major.
type Matrix struct {
	n    int
	data []float64
}

// New returns a zero-filled n x n matrix.
func New(n int) (*Matrix, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: size %d", ErrBadShape, n)
	}
	return &Matrix{n: n, data: make([]float64, n*n)}, nil
}

// FromRows builds a matrix from a square slice of rows. The rows are copied.
func FromRows(rows [][]float64) (*Matrix, error) {
	m, err := New(len(rows))
	if err != nil {
		return nil, err
	}
	for i, row := range rows {
		if len(row) != m.n {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrBadShape, i, len(row), m.n)
		}
		copy(m.data[i*m.n:(i+1)*m.n], row)
	}
	return m, nil
}

func (m *Matrix) Size() int {
	if m == nil {
		return 0
	}
	return m.n
}

func (m *Matrix) check(i, j int) error {
	if m == nil {
		return ErrNilMatrix
	}
	if i < 0 || i >= m.n || j < 0 || j >= m.n {
		return &IndexError{Row: i, Col: j, Size: m.n}
	}
	return nil
}

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) (float64, error) {
	if err := m.check(i, j); err != nil {
		return 0, err
	}
	return m.data[i*m.n+j], nil
}

// Set stores v at row i, column j.
func (m *Matrix) Set(i, j int, v float64) error {
	if err := m.check(i, j); err != nil {
		return err
	}
	m.data[i*m.n+j] = v
	return nil
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) ([]float64, error) {
	if err := m.check(i, 0); err != nil {
		return nil, err
	}
	row := make([]float64, m.n)
	copy(row, m.data[i*m.n:(i+1)*m.n])
	return row, nil
}

// RowMajor returns a copy of the backing storage, row after row.
func (m *Matrix) RowMajor() []float64 {
	if m == nil {
		return nil
	}
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

func (m *Matrix) Clone() *Matrix {
	if m == nil {
		return nil
	}
	return &Matrix{n: m.n, data: m.RowMajor()}
}

// Add returns the elementwise sum m + other as a new matrix.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if m == nil || other == nil {
		return nil, ErrNilMatrix
	}
	if m.n != other.n {
		return nil, fmt.Errorf("%w: %dx%d + %dx%d", ErrDimensionMismatch, m.n, m.n, other.n, other.n)
	}
	out := &Matrix{n: m.n, data: make([]float64, len(m.data))}
	for k := range m.data {
		out.data[k] = m.data[k] + other.data[k]
	}
	return out, nil
}

// Sum folds Add from the left: Sum(a, b, c) is (a+b)+c.
func Sum(first *Matrix, rest ...*Matrix) (*Matrix, error) {
	if first == nil {
		return nil, ErrNilMatrix
	}
	acc := first.Clone()
	for _, next := range rest {
		var err error
		if acc, err = acc.Add(next); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// CopyQuadrant copies src, which must be half the size of m, into quadrant q
// cell for cell: src(r,c) lands at (r,c) offset by the quadrant origin.
func (m *Matrix) CopyQuadrant(q Quadrant, src *Matrix) error {
	if m == nil || src == nil {
		return ErrNilMatrix
	}
	if m.n%2 != 0 || src.n*2 != m.n {
		return fmt.Errorf("%w: cannot place %dx%d into %s of %dx%d",
			ErrDimensionMismatch, src.n, src.n, q, m.n, m.n)
	}
	r0, c0, err := q.offset(m.n)
	if err != nil {
		return err
	}
	for r := 0; r < src.n; r++ {
		dst := m.data[(r0+r)*m.n+c0 : (r0+r)*m.n+c0+src.n]
		copy(dst, src.data[r*src.n:(r+1)*src.n])
	}
	return nil
}

// Equal reports whether both matrices have the same size and identical values.
func (m *Matrix) Equal(other *Matrix) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.n != other.n {
		return false
	}
	for k := range m.data {
		if m.data[k] != other.data[k] {
			return false
		}
	}
	return true
}

// IsSymmetric reports whether m(i,j) == m(j,i) exactly for every pair.
func (m *Matrix) IsSymmetric() bool {
	if m == nil {
		return false
	}
	for i := 0; i < m.n; i++ {
		for j := i + 1; j < m.n; j++ {
			if m.data[i*m.n+j] != m.data[j*m.n+i] {
				return false
			}
		}
	}
	return true
}
