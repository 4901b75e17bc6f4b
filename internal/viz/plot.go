package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/recmat/internal/analysis"
)

const (
	plotHeight = 15
	plotWidth  = 80
)

// PlotSpectrum draws the ascending eigenvalues of one generation.
func PlotSpectrum(gen int, values []float64) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("eigenvalues of M_%d (n=%d)", gen, len(values))),
	)
}

// PlotHistogram draws bin counts of a normalized histogram followed by its
// reference values.
func PlotHistogram(gen int, h *analysis.Histogram) string {
	if h == nil || len(h.Counts) == 0 {
		return ""
	}
	counts := make([]float64, len(h.Counts))
	for i, c := range h.Counts {
		counts[i] = float64(c)
	}

	var sb strings.Builder
	sb.WriteString(asciigraph.Plot(counts,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(0),
		asciigraph.LowerBound(0),
		asciigraph.Caption(fmt.Sprintf("normalized eigenvalues of M_%d over [-1,1] in %d subintervals", gen, len(h.Counts))),
	))
	sb.WriteString("\n\n")
	sb.WriteString(Metric("max", h.Max) + "\n")
	sb.WriteString(Metric("min", h.Min) + "\n")
	sb.WriteString(Metric("±2√2/3", analysis.NormalizedLimit) + "\n")
	sb.WriteString(Metric("most common bin", h.PeakCenter) + " " +
		MetricLabel.Render(fmt.Sprintf("(count %d)", h.PeakCount)) + "\n")
	if h.Outside > 0 {
		sb.WriteString(StatusWarn.Render(fmt.Sprintf("%d values outside [-1,1]", h.Outside)) + "\n")
	}
	return sb.String()
}
