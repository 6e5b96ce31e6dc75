// Package labeling finds 8-connected components in binary rasters and filters
// them by area.
//
// # Labeling
//
// Label scans the grid in row-major order. The first unlabeled foreground cell
// it meets seeds an iterative flood fill that claims every foreground cell
// reachable through edge or corner contact, assigning the next free label.
// Labels are therefore numbered 1..n in order of each component's top-left-most
// cell. Callers should not rely on the numbering; only the partition of cells
// and the per-component areas are significant.
//
// # Area Filtering
//
// FilterByArea keeps the cells of components whose area is at least minArea
// and clears everything else. Small speckle blobs are removed entirely rather
// than shrunk.
//
// # Guarantees
//
//   - Background cells always carry label 0
//   - The sum of component areas equals the foreground cell count
//   - Raising minArea never sets a cell that a lower minArea cleared
package labeling
