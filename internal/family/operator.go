package family

import "fmt"

// Operator applies M_K to a vector without materializing it.
//
// It runs the same block recurrence on vectors of length 2^K, starting from
// 1x1 identities for A_0, B_0 and C_0. At level i every block of 2^i entries
// is split into halves (x1, x2) and
//
//	A_i x = [C x2, C x1],  B_i x = [A x1, B x2],  C_i x = [B x1, A x2].
type Operator struct {
	K int
}

// Dim returns 2^K.
func (o Operator) Dim() int {
	return 1 << o.K
}

// Apply returns M_K v.
func (o Operator) Apply(v []float64) ([]float64, error) {
	if o.K < 1 {
		return nil, fmt.Errorf("%w: operator level %d", ErrInvalidArgument, o.K)
	}
	size := o.Dim()
	if len(v) != size {
		return nil, fmt.Errorf("%w: vector length %d, want %d", ErrInvalidArgument, len(v), size)
	}

	srcA, srcB, srcC := clone(v), clone(v), clone(v)
	dstA, dstB, dstC := make([]float64, size), make([]float64, size), make([]float64, size)

	for i := 1; i <= o.K; i++ {
		block := 1 << i
		half := block / 2
		for start := 0; start < size; start += block {
			mid, end := start+half, start+block

			copy(dstA[start:mid], srcC[mid:end])
			copy(dstA[mid:end], srcC[start:mid])

			copy(dstB[start:mid], srcA[start:mid])
			copy(dstB[mid:end], srcB[mid:end])

			copy(dstC[start:mid], srcB[start:mid])
			copy(dstC[mid:end], srcA[mid:end])
		}
		srcA, dstA = dstA, srcA
		srcB, dstB = dstB, srcB
		srcC, dstC = dstC, srcC
	}

	out := make([]float64, size)
	for j := range out {
		out[j] = (srcA[j] + srcB[j]) + srcC[j]
	}
	return out, nil
}

func clone(v []float64) []float64 {
	c := make([]float64, len(v))
	copy(c, v)
	return c
}
