// Package despeckle implements an iterative Crimmins-style speckle suppressor
// for grayscale rasters.
//
// # Algorithm
//
// Each pass compares every pixel against its eight neighbors in a snapshot of
// the image taken at the start of the pass. For every direction:
//
//  1. If the neighbor is brighter by at least threshold, the pixel is raised by 1
//  2. If the neighbor is darker by at least threshold, the pixel is lowered by 1
//
// After all eight directions the pass result is clamped to [0,255] and becomes
// the input of the next pass. Isolated spikes shrink toward their surroundings
// while flat regions and strong step edges are left largely intact.
//
// # Edge Policy
//
// Neighbor lookups wrap around the image borders (toroidal addressing): the
// left neighbor of column 0 is the last column, the upper neighbor of row 0 is
// the last row. This keeps results bit-compatible with array-roll based
// implementations of the same filter.
//
// # Concurrency
//
// Rows of a pass are split into strips processed by separate goroutines. All
// strips read the same pass-start snapshot and write disjoint rows, so the
// output is identical to a sequential run.
package despeckle
