// Package morphology provides binary dilation, erosion and closing with a
// fixed 2x2 structuring element.
//
// The element covers offsets (0,0), (0,1), (1,0) and (1,1) relative to the
// output cell, i.e. it is anchored at the top-left of the 2x2 window. Borders
// do not wrap: cells outside the grid count as background for Dilate and as
// foreground for Erode, so neither operation is biased by the image edge.
package morphology

import (
	"fmt"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// element lists the structuring element offsets as (dRow, dCol).
var element = [4][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}

// Dilate sets a cell when any cell under the structuring element is set.
func Dilate(b *raster.BinaryRaster) (*raster.BinaryRaster, error) {
	return apply(b, false, func(acc, v bool) bool { return acc || v }, false)
}

// Erode keeps a cell only when every cell under the structuring element is set.
func Erode(b *raster.BinaryRaster) (*raster.BinaryRaster, error) {
	return apply(b, true, func(acc, v bool) bool { return acc && v }, true)
}

// Closing dilates then erodes b. It fills gaps and holes narrower than the
// structuring element while keeping the outline of larger regions.
func Closing(b *raster.BinaryRaster) (*raster.BinaryRaster, error) {
	d, err := Dilate(b)
	if err != nil {
		return nil, err
	}
	return Erode(d)
}

// apply folds the cells under the structuring element with combine, starting
// from init. Cells outside the grid contribute outside.
func apply(b *raster.BinaryRaster, init bool, combine func(acc, v bool) bool, outside bool) (*raster.BinaryRaster, error) {
	if err := raster.ValidateBinary(b); err != nil {
		return nil, fmt.Errorf("morphology: %w", err)
	}
	rows, cols := b.Rows(), b.Cols()
	out := raster.NewBinaryBuilder(rows, cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			acc := init
			for _, e := range element {
				nr, nc := r+e[0], c+e[1]
				v := outside
				if nr < rows && nc < cols {
					v = b.At(nr, nc)
				}
				acc = combine(acc, v)
			}
			out.Set(r, c, acc)
		}
	}
	return out.Build(), nil
}
