package labeling

import (
	"fmt"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// DefaultMinArea is the smallest component kept by the reference cleaning
// configuration. Single-pixel specks are removed.
const DefaultMinArea = 2

// FilterByArea returns a BinaryRaster that is set exactly where the covering
// component's area is at least minArea.
//
// Returns raster.ErrInvalidParameter when minArea < 1 and raster.ErrShape when
// labels is nil, empty or inconsistent with its dimensions.
func FilterByArea(labels *raster.LabelMap, stats raster.ComponentStats, minArea int) (*raster.BinaryRaster, error) {
	if minArea < 1 {
		return nil, raster.InvalidParameter("min_area", minArea)
	}
	if labels == nil || labels.Rows <= 0 || labels.Cols <= 0 || len(labels.Labels) != labels.Rows*labels.Cols {
		return nil, fmt.Errorf("area filter: %w", raster.ErrShape)
	}

	out := raster.NewBinaryBuilder(labels.Rows, labels.Cols)
	for r := 0; r < labels.Rows; r++ {
		for c := 0; c < labels.Cols; c++ {
			l := labels.Labels[r*labels.Cols+c]
			if l != 0 && stats[l] >= minArea {
				out.Set(r, c, true)
			}
		}
	}
	return out.Build(), nil
}

// RemoveSmall labels b and drops every component smaller than minArea.
func RemoveSmall(b *raster.BinaryRaster, minArea int) (*raster.BinaryRaster, error) {
	if minArea < 1 {
		return nil, raster.InvalidParameter("min_area", minArea)
	}
	labels, stats, err := Label(b)
	if err != nil {
		return nil, err
	}
	return FilterByArea(labels, stats, minArea)
}
