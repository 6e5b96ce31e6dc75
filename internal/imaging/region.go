package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// Region is a rectangle in image coordinates. (X1,Y1) is inclusive and (X2,Y2)
// is exclusive.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Rect returns the region as an image.Rectangle.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

// Crop extracts region from img. The result is anchored at (0,0).
//
// The region must lie inside the image bounds and be non-empty; both failures
// wrap raster.ErrShape.
func Crop(img image.Image, region Region) (image.Image, error) {
	bounds := img.Bounds()
	x1, y1, x2, y2 := region.X1, region.Y1, region.X2, region.Y2

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("%w: crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			raster.ErrShape, x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("%w: invalid crop region: x1 must be < x2, y1 must be < y2", raster.ErrShape)
	}

	return imaging.Crop(img, region.Rect()), nil
}

// NamedRegion resolves a named area of a width x height image.
//
// Supported names: top-left, top-right, bottom-left, bottom-right, top-half,
// bottom-half, left-half, right-half, center (the middle 50% of each axis).
func NamedRegion(name string, width, height int) (Region, error) {
	midX := width / 2
	midY := height / 2

	switch name {
	case "top-left":
		return Region{0, 0, midX, midY}, nil
	case "top-right":
		return Region{midX, 0, width, midY}, nil
	case "bottom-left":
		return Region{0, midY, midX, height}, nil
	case "bottom-right":
		return Region{midX, midY, width, height}, nil
	case "top-half":
		return Region{0, 0, width, midY}, nil
	case "bottom-half":
		return Region{0, midY, width, height}, nil
	case "left-half":
		return Region{0, 0, midX, height}, nil
	case "right-half":
		return Region{midX, 0, width, height}, nil
	case "center":
		qW := width / 4
		qH := height / 4
		return Region{qW, qH, width - qW, height - qH}, nil
	}
	return Region{}, fmt.Errorf("%w: unknown region: %s", raster.ErrInvalidParameter, name)
}
