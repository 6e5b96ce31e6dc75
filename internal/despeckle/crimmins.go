package despeckle

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

const (
	// DefaultPasses is the pass count used when a caller does not choose one.
	DefaultPasses = 3

	// DefaultThreshold is the neighbor difference that triggers an adjustment.
	DefaultThreshold = 2
)

// directions lists the eight neighbor offsets as (dRow, dCol).
var directions = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Filter configures a Crimmins speckle suppression run.
type Filter struct {
	// Passes is the number of full 8-direction iterations. Must be >= 1.
	Passes int

	// Threshold is the minimum neighbor difference that moves a pixel. Must be >= 1.
	Threshold int

	// Workers bounds the number of goroutines per pass. Zero or negative
	// means runtime.NumCPU().
	Workers int
}

// Apply runs a Crimmins filter with the given passes and threshold using all
// available CPUs.
//
// Parameters:
//   - r: Source raster. It is not modified.
//   - passes: Number of iterations (>= 1). Typical: 3-5.
//   - threshold: Neighbor difference that triggers a +/-1 adjustment (>= 1).
//     Use 1 for maximum smoothing of speckle, larger values to only touch
//     strong spikes.
//
// Returns:
//   - *raster.Raster: Filtered raster with the same shape as r.
//   - error: raster.ErrInvalidParameter for passes or threshold < 1,
//     raster.ErrShape for a nil or empty raster.
func Apply(r *raster.Raster, passes, threshold int) (*raster.Raster, error) {
	return Filter{Passes: passes, Threshold: threshold}.Apply(r)
}

// Apply runs the filter on r and returns a new raster.
func (f Filter) Apply(r *raster.Raster) (*raster.Raster, error) {
	if f.Passes < 1 {
		return nil, raster.InvalidParameter("passes", f.Passes)
	}
	if f.Threshold < 1 {
		return nil, raster.InvalidParameter("threshold", f.Threshold)
	}
	if err := raster.Validate(r); err != nil {
		return nil, fmt.Errorf("crimmins: %w", err)
	}

	out := raster.NewSigned(r)
	for p := 0; p < f.Passes; p++ {
		current := out.Clone()
		f.pass(current, out)
		out.Clamp()
	}
	return out.Narrow(), nil
}

// pass applies one round of directional adjustments to out, reading neighbor
// values only from current.
func (f Filter) pass(current, out *raster.SignedRaster) {
	rows := current.Rows

	workers := f.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > rows {
		workers = rows
	}
	stripSize := (rows + workers - 1) / workers

	// Samples are in [0,255], so no threshold above 256 can ever fire.
	threshold := int16(256)
	if f.Threshold < 256 {
		threshold = int16(f.Threshold)
	}

	var wg sync.WaitGroup
	for start := 0; start < rows; start += stripSize {
		end := start + stripSize
		if end > rows {
			end = rows
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			adjustRows(current, out, start, end, threshold)
		}(start, end)
	}
	wg.Wait()
}

// adjustRows updates rows [start, end) of out. The neighbor of (row, col) in
// direction (dr, dc) is current[(row-dr) mod rows][(col-dc) mod cols].
func adjustRows(current, out *raster.SignedRaster, start, end int, threshold int16) {
	rows, cols := current.Rows, current.Cols
	for row := start; row < end; row++ {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			v := current.Pix[i]
			var delta int16
			for _, d := range directions {
				nr := wrapIndex(row-d[0], rows)
				nc := wrapIndex(col-d[1], cols)
				n := current.Pix[nr*cols+nc]
				if n >= v+threshold {
					delta++
				}
				if n <= v-threshold {
					delta--
				}
			}
			out.Pix[i] += delta
		}
	}
}

// wrapIndex maps i into [0, n) modulo n. Inputs are at most one step outside.
func wrapIndex(i, n int) int {
	if i < 0 {
		return i + n
	}
	if i >= n {
		return i - n
	}
	return i
}
