// Package cleaning orchestrates the binary cleanup variants and the optional
// smoothing and despeckle steps of the denoising pipeline.
//
// # Variants
//
// Every variant binarizes the raster, cleans the binary mask and renders it
// back to 0/255 intensities:
//
//   - closing-only: 2x2 closing, no labeling
//   - component-only: 8-connected labeling and area filtering, no morphology
//   - both: closing, then labeling and area filtering
//
// # Polarity
//
// Scanned documents and most medical films show dark structures on a light
// background. With the default DarkOnLight polarity the raster is inverted
// before binarization, so dark pixels become foreground, and the cleaned mask
// is inverted back to the original polarity. LightOnDark skips both
// inversions and treats bright pixels as foreground.
//
// # Smoothing
//
// Smooth runs a chain of standard linear and rank filters (median, Gaussian,
// box) backed by github.com/anthonynsimon/bild. Despeckle composes such a
// chain with the Crimmins filter.
//
// # Removed Noise
//
// Diff of the original and a cleaned raster shows exactly what was removed;
// Summarize reduces such a diff to a few statistics.
package cleaning
