package analysis

import (
	"errors"
	"fmt"
	"math"
)

var ErrBadBins = errors.New("analysis: bin count must be positive")

// NormalizedLimit is RamanujanBound scaled into [-1, 1].
var NormalizedLimit = RamanujanBound / Degree

// Histogram counts normalized eigenvalues in equal subintervals of [-1, 1].
type Histogram struct {
	Edges  []float64
	Counts []int

	// Min and Max skip the extreme value at each end: the trivial
	// eigenvalue 1 and its bipartite partner -1 when present.
	Min float64
	Max float64

	PeakCenter float64
	PeakCount  int
	Outside    int
}

// Total returns the number of values that landed in a bin.
func (h *Histogram) Total() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// NormalizedHistogram divides every eigenvalue by Degree and bins the results.
// The last bin is closed on the right so that 1.0 is counted.
func NormalizedHistogram(values []float64, bins int) (*Histogram, error) {
	if bins < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBadBins, bins)
	}
	if len(values) < 3 {
		return nil, fmt.Errorf("%w: need 3, got %d", ErrTooFewValues, len(values))
	}

	normalized := sortedCopy(values)
	for i := range normalized {
		normalized[i] /= Degree
	}

	h := &Histogram{
		Edges:  make([]float64, bins+1),
		Counts: make([]int, bins),
		Min:    normalized[1],
		Max:    normalized[len(normalized)-2],
	}
	width := 2.0 / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = -1 + float64(i)*width
	}
	h.Edges[bins] = 1

	for _, v := range normalized {
		if v < -1 || v > 1 || math.IsNaN(v) {
			h.Outside++
			continue
		}
		idx := int((v + 1) / width)
		if idx >= bins {
			idx = bins - 1
		}
		h.Counts[idx]++
	}

	// first bin with the highest count wins ties
	for i, c := range h.Counts {
		if c > h.PeakCount {
			h.PeakCount = c
			h.PeakCenter = (h.Edges[i] + h.Edges[i+1]) / 2
		}
	}
	return h, nil
}
