package analysis

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Degree is the row sum of every family matrix.
const Degree = 3

// RamanujanBound is 2*sqrt(Degree-1).
var RamanujanBound = 2 * math.Sqrt(Degree-1)

var ErrTooFewValues = errors.New("analysis: not enough eigenvalues")

type Gap struct {
	Largest    float64
	Second     float64
	Gap        float64
	BelowBound bool
}

// SpectralGap reports the two largest eigenvalues of an unsorted spectrum.
func SpectralGap(values []float64) (Gap, error) {
	if len(values) < 2 {
		return Gap{}, fmt.Errorf("%w: need 2, got %d", ErrTooFewValues, len(values))
	}
	sorted := sortedCopy(values)
	l1 := sorted[len(sorted)-1]
	l2 := sorted[len(sorted)-2]
	return Gap{
		Largest:    l1,
		Second:     l2,
		Gap:        l1 - l2,
		BelowBound: l2 < RamanujanBound,
	}, nil
}

func sortedCopy(values []float64) []float64 {
	s := make([]float64, len(values))
	copy(s, values)
	sort.Float64s(s)
	return s
}
