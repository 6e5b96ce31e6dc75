package labeling

import (
	"fmt"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// cell is a (row, col) grid position.
type cell struct {
	row, col int
}

// Label assigns a distinct positive label to every maximal 8-connected
// foreground component of b.
//
// Returns:
//   - *raster.LabelMap: Labels per cell, 0 for background.
//   - raster.ComponentStats: Area of each label.
//   - error: raster.ErrShape if b is nil or empty.
func Label(b *raster.BinaryRaster) (*raster.LabelMap, raster.ComponentStats, error) {
	if err := raster.ValidateBinary(b); err != nil {
		return nil, nil, fmt.Errorf("labeling: %w", err)
	}

	rows, cols := b.Rows(), b.Cols()
	labels := raster.NewLabelMap(rows, cols)
	stats := make(raster.ComponentStats)

	var stack []cell
	next := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if !b.At(r, c) || labels.Labels[r*cols+c] != 0 {
				continue
			}
			next++
			stats[next], stack = floodFill(b, labels, r, c, next, stack[:0])
		}
	}

	return labels, stats, nil
}

// floodFill labels the component containing (startRow, startCol) and returns
// its area along with the stack buffer for reuse. It uses an explicit stack
// so large components cannot overflow the goroutine stack. Cells are labeled
// when pushed, so each is visited once.
func floodFill(b *raster.BinaryRaster, labels *raster.LabelMap, startRow, startCol, label int, stack []cell) (int, []cell) {
	rows, cols := b.Rows(), b.Cols()

	labels.Labels[startRow*cols+startCol] = label
	stack = append(stack, cell{startRow, startCol})
	area := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		area++

		// 8-connected neighbors
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				nr, nc := p.row+dr, p.col+dc
				if nr < 0 || nr >= rows || nc < 0 || nc >= cols {
					continue
				}
				if !b.At(nr, nc) || labels.Labels[nr*cols+nc] != 0 {
					continue
				}
				labels.Labels[nr*cols+nc] = label
				stack = append(stack, cell{nr, nc})
			}
		}
	}

	return area, stack
}
