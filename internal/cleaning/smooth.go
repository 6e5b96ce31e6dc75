package cleaning

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// StepKind names a smoothing primitive.
type StepKind string

// Supported smoothing primitives.
const (
	Median   StepKind = "median"
	Gaussian StepKind = "gaussian"
	Box      StepKind = "box"
)

// Step is one smoothing primitive applied with a square window of Size pixels.
type Step struct {
	Kind StepKind `json:"kind"`
	Size int      `json:"size"`
}

// Chain is an ordered list of smoothing steps.
type Chain []Step

// DefaultChain is the reference smoothing chain: median 3, Gaussian 3,
// box 3, then median 5.
func DefaultChain() Chain {
	return Chain{
		{Kind: Median, Size: 3},
		{Kind: Gaussian, Size: 3},
		{Kind: Box, Size: 3},
		{Kind: Median, Size: 5},
	}
}

// Smooth applies chain to r and returns a new raster.
//
// Each step's window Size must be a positive odd number; it maps to a bild
// radius of (Size-1)/2. A window of 1 is the identity and is skipped.
func Smooth(r *raster.Raster, chain Chain) (*raster.Raster, error) {
	if err := raster.Validate(r); err != nil {
		return nil, fmt.Errorf("smooth: %w", err)
	}
	for i, s := range chain {
		if s.Size < 1 || s.Size%2 == 0 {
			return nil, fmt.Errorf("%w: step %d (%s) size must be a positive odd number, got %d",
				raster.ErrInvalidParameter, i, s.Kind, s.Size)
		}
		switch s.Kind {
		case Median, Gaussian, Box:
		default:
			return nil, fmt.Errorf("%w: step %d has unknown kind %q", raster.ErrInvalidParameter, i, s.Kind)
		}
	}

	var img image.Image = r.ToGray()
	for _, s := range chain {
		if s.Size == 1 {
			continue
		}
		radius := float64(s.Size-1) / 2
		switch s.Kind {
		case Median:
			img = effect.Median(img, radius)
		case Gaussian:
			img = blur.Gaussian(img, radius)
		case Box:
			img = blur.Box(img, radius)
		}
	}

	return grayRaster(img, r.Rows(), r.Cols())
}

// Sharpen applies the 3x3 sharpening kernel
//
//	 0 -1  0
//	-1  5 -1
//	 0 -1  0
//
// and returns a new raster. The kernel sums to one, so flat areas are
// unchanged; results are clamped to [0, 255].
func Sharpen(r *raster.Raster) (*raster.Raster, error) {
	if err := raster.Validate(r); err != nil {
		return nil, fmt.Errorf("sharpen: %w", err)
	}
	return grayRaster(effect.Sharpen(r.ToGray()), r.Rows(), r.Cols())
}

// grayRaster reads the luminance of a grayscale-valued image back into a Raster.
// bild returns RGBA with equal channels for gray input, so red suffices.
func grayRaster(img image.Image, rows, cols int) (*raster.Raster, error) {
	b := img.Bounds()
	if b.Dx() != cols || b.Dy() != rows {
		return nil, fmt.Errorf("smooth: %w: filter changed size to %dx%d", raster.ErrShape, b.Dy(), b.Dx())
	}
	pix := make([]uint8, rows*cols)
	switch src := img.(type) {
	case *image.RGBA:
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				pix[y*cols+x] = src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)]
			}
		}
	case *image.Gray:
		return raster.FromGray(src)
	default:
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				rr, _, _, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
				pix[y*cols+x] = uint8(rr >> 8)
			}
		}
	}
	return raster.New(rows, cols, pix)
}
