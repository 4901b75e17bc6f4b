// Package matrix provides the dense square container used by the
// recursive family builder.
//
// A [Matrix] owns its row-major backing storage; no two matrices share it.
// The package deliberately stops at what the builder needs:
//
//   - [Matrix.At] / [Matrix.Set]: bounds-checked element access
//   - [Matrix.Add] / [Sum]: elementwise addition
//   - [Matrix.CopyQuadrant]: block placement into one of four quadrants
//   - [Matrix.RowMajor]: flattening for external solvers
//
// There is no multiplication, inversion or transpose.
package matrix
