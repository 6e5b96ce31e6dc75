// Package raster provides the grid data model shared by the denoising pipeline.
//
// A Raster is a rectangular grid of 8-bit grayscale samples stored in row-major
// order. Rasters are immutable once constructed: every transform in this module
// returns a new Raster instead of modifying its input, so pipeline stages never
// alias each other's storage.
//
// # Coordinate System
//
// Cells are addressed as (row, col), both 0-based, with (0,0) at the top-left
// corner. Rows increase downward, columns increase rightward. When converting
// to or from image.Image, row maps to Y and col maps to X.
//
// # Companion Grids
//
//   - BinaryRaster: foreground/background booleans of the same shape
//   - LabelMap: connected-component labels, 0 for background
//   - ComponentStats: label to pixel area
//
// # Error Handling
//
// Invalid input is reported with errors wrapping one of two sentinel kinds:
//   - ErrInvalidParameter: non-positive passes, threshold or min_area
//   - ErrShape: zero-sized grids or mismatched shapes
//
// Test for them with errors.Is.
package raster
