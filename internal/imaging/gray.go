package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/ironsheep/despeckle-mcp/internal/raster"
	"github.com/lucasb-eyer/go-colorful"
)

// GrayModel selects how color pixels are reduced to a single channel.
type GrayModel string

const (
	// GrayLuma uses ITU-R BT.601 luma weights.
	GrayLuma GrayModel = "luma"

	// GrayLightness uses CIE L* scaled from [0,1] to [0,255]. It tracks
	// perceived brightness more closely on saturated colors.
	GrayLightness GrayModel = "lightness"
)

// ParseGrayModel maps a tool argument to a GrayModel. The empty string selects
// GrayLuma.
func ParseGrayModel(s string) (GrayModel, error) {
	switch GrayModel(s) {
	case "", GrayLuma:
		return GrayLuma, nil
	case GrayLightness:
		return GrayLightness, nil
	}
	return "", fmt.Errorf("%w: unknown gray model %q (use luma or lightness)", raster.ErrInvalidParameter, s)
}

// ToRaster converts img to a single-channel Raster.
//
// *image.Gray input is copied directly regardless of model. Other images are
// converted per model; alpha is ignored.
func ToRaster(img image.Image, model GrayModel) (*raster.Raster, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", raster.ErrShape)
	}
	if g, ok := img.(*image.Gray); ok {
		return raster.FromGray(g)
	}

	b := img.Bounds()
	rows, cols := b.Dy(), b.Dx()
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: image bounds %v are empty", raster.ErrShape, b)
	}

	pix := make([]uint8, rows*cols)
	switch model {
	case GrayLuma, "":
		// imaging.Grayscale writes the luma into all three channels.
		gray := imaging.Grayscale(img)
		for y := 0; y < rows; y++ {
			row := gray.Pix[y*gray.Stride:]
			for x := 0; x < cols; x++ {
				pix[y*cols+x] = row[x*4]
			}
		}
	case GrayLightness:
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				c, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
				l, _, _ := c.Lab()
				pix[y*cols+x] = uint8(math.Round(clampUnit(l) * 255))
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown gray model %q", raster.ErrInvalidParameter, model)
	}
	return raster.New(rows, cols, pix)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// LoadRaster loads path through cache, optionally crops it to region and
// converts the result to a Raster.
//
// A nil region selects the whole image.
func LoadRaster(cache *ImageCache, path string, model GrayModel, region *Region) (*raster.Raster, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	if region != nil {
		img, err = Crop(img, *region)
		if err != nil {
			return nil, err
		}
	}
	return ToRaster(img, model)
}
