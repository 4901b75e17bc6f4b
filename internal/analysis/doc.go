// Package analysis provides spectral diagnostics for the matrix family.
//
// Every M_i is the adjacency matrix of a 3-regular multigraph (each row sums
// to 3), so its spectrum lies in [-3, 3] with 3 as the top eigenvalue. The
// package offers:
//
//   - [SpectralGap]: the two largest eigenvalues, compared against 2*sqrt(2)
//   - [NormalizedHistogram]: eigenvalues scaled by 1/3 and binned over [-1, 1]
//   - [Edges]: the simple-edge list of a matrix
//
// # Ramanujan Bound
//
// A d-regular graph is Ramanujan when every non-trivial eigenvalue has
// magnitude at most 2*sqrt(d-1). For d = 3 that is [RamanujanBound]:
//
//	gap, _ := analysis.SpectralGap(values)
//	if gap.BelowBound {
//	    // λ2 < 2√2
//	}
package analysis
