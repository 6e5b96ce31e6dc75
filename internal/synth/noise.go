// Package synth generates synthetic noisy rasters for exercising the
// denoising pipeline.
//
// Noise is drawn from a seeded github.com/valyala/fastrand generator, so the
// same seed always yields the same speckle pattern.
package synth

import (
	"fmt"
	"math"

	"github.com/valyala/fastrand"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// probabilityScale is the resolution of density comparisons.
const probabilityScale = 1 << 24

// newRNG returns a generator seeded with seed. fastrand reseeds a zero state
// from the runtime, so seed 0 is mapped to a fixed non-zero value.
func newRNG(seed uint32) *fastrand.RNG {
	if seed == 0 {
		seed = 0x9e3779b9
	}
	var rng fastrand.RNG
	rng.Seed(seed)
	return &rng
}

// SaltAndPepper returns a copy of r in which each pixel is, with probability
// density, replaced by black (0) or white (255) with equal odds.
//
// Parameters:
//   - r: Source raster. It is not modified.
//   - density: Fraction of pixels to corrupt, in [0, 1].
//   - seed: Generator seed. Equal seeds give equal output.
//
// Returns raster.ErrInvalidParameter when density is outside [0, 1] and
// raster.ErrShape for a nil or empty raster.
func SaltAndPepper(r *raster.Raster, density float64, seed uint32) (*raster.Raster, error) {
	if err := raster.Validate(r); err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}
	if math.IsNaN(density) || density < 0 || density > 1 {
		return nil, fmt.Errorf("%w: density must be in [0,1], got %v", raster.ErrInvalidParameter, density)
	}

	rng := newRNG(seed)

	cut := uint32(density * probabilityScale)
	pix := r.Pix()
	for i := range pix {
		if rng.Uint32n(probabilityScale) >= cut {
			continue
		}
		if rng.Uint32n(2) == 0 {
			pix[i] = 0
		} else {
			pix[i] = 255
		}
	}
	return raster.New(r.Rows(), r.Cols(), pix)
}

// Specks returns a copy of r with n single-pixel specks of value v placed at
// distinct pseudo-random positions. Every speck is isolated: no two specks are
// 8-connected to each other. Fewer than n specks are placed if the raster
// runs out of room.
func Specks(r *raster.Raster, n int, v uint8, seed uint32) (*raster.Raster, error) {
	if err := raster.Validate(r); err != nil {
		return nil, fmt.Errorf("synth: %w", err)
	}
	if n < 0 {
		return nil, fmt.Errorf("%w: speck count must be >= 0, got %d", raster.ErrInvalidParameter, n)
	}

	rng := newRNG(seed)

	rows, cols := r.Rows(), r.Cols()
	pix := r.Pix()
	taken := make([]bool, rows*cols)
	placed := 0
	for attempts := 0; placed < n && attempts < 16*rows*cols; attempts++ {
		row := int(rng.Uint32n(uint32(rows)))
		col := int(rng.Uint32n(uint32(cols)))
		if taken[row*cols+col] {
			continue
		}
		pix[row*cols+col] = v
		placed++
		// Reserve the 3x3 neighborhood so the next speck stays isolated.
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				nr, nc := row+dr, col+dc
				if nr >= 0 && nr < rows && nc >= 0 && nc < cols {
					taken[nr*cols+nc] = true
				}
			}
		}
	}
	return raster.New(rows, cols, pix)
}
