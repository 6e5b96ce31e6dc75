package cleaning

import (
	"fmt"

	"github.com/ironsheep/despeckle-mcp/internal/despeckle"
	"github.com/ironsheep/despeckle-mcp/internal/labeling"
	"github.com/ironsheep/despeckle-mcp/internal/morphology"
	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// Config is the configuration surface exposed to callers of the pipeline.
type Config struct {
	// Passes and Threshold configure the Crimmins filter.
	Passes    int `json:"passes"`
	Threshold int `json:"threshold"`

	// MinArea is the smallest component kept by the area filter.
	MinArea int `json:"min_area"`

	// Variant selects the binary cleanup steps.
	Variant Variant `json:"variant"`

	// Polarity selects which intensities are foreground.
	Polarity Polarity `json:"polarity"`
}

// DefaultConfig returns the reference configuration: 5 Crimmins passes at
// threshold 1, minimum component area 2, both cleanup steps, dark foreground.
func DefaultConfig() Config {
	return Config{
		Passes:    5,
		Threshold: 1,
		MinArea:   labeling.DefaultMinArea,
		Variant:   Both,
		Polarity:  DarkOnLight,
	}
}

// Validate reports the first out-of-range field.
func (c Config) Validate() error {
	if c.Passes < 1 {
		return raster.InvalidParameter("passes", c.Passes)
	}
	if c.Threshold < 1 {
		return raster.InvalidParameter("threshold", c.Threshold)
	}
	if c.MinArea < 1 {
		return raster.InvalidParameter("min_area", c.MinArea)
	}
	if c.Variant < ClosingOnly || c.Variant > Both {
		return fmt.Errorf("%w: unknown variant %d", raster.ErrInvalidParameter, int(c.Variant))
	}
	if c.Polarity != DarkOnLight && c.Polarity != LightOnDark {
		return fmt.Errorf("%w: unknown polarity %d", raster.ErrInvalidParameter, int(c.Polarity))
	}
	return nil
}

// Result holds the three cleanup variants of one input raster.
type Result struct {
	ClosingOnly   *raster.Raster
	ComponentOnly *raster.Raster
	Both          *raster.Raster
}

// Get returns the raster for v, or nil for an unknown variant.
func (r *Result) Get(v Variant) *raster.Raster {
	switch v {
	case ClosingOnly:
		return r.ClosingOnly
	case ComponentOnly:
		return r.ComponentOnly
	case Both:
		return r.Both
	default:
		return nil
	}
}

// Cleaner binarizes rasters and applies the binary cleanup variants.
type Cleaner struct {
	// Polarity selects which intensities are foreground.
	Polarity Polarity

	// Level is the binarization cut: after the optional inversion, samples
	// strictly above Level are foreground.
	Level uint8
}

// NewCleaner returns a Cleaner with the default binarization level.
func NewCleaner(p Polarity) Cleaner {
	return Cleaner{Polarity: p, Level: raster.DefaultBinarizeLevel}
}

// Clean produces all three cleanup variants of r with dark-on-light polarity.
// Dark specks on a light page are removed; bright specks on a dark background
// count as background here and are kept. Use NewCleaner(LightOnDark) for
// bright-on-dark input.
//
// Parameters:
//   - r: Source raster. It is not modified.
//   - minArea: Smallest component kept by the area filter (>= 1). The
//     reference configuration uses 2.
//
// Returns:
//   - *Result: The closing-only, component-only and both variants.
//   - error: raster.ErrInvalidParameter for minArea < 1, raster.ErrShape for
//     a nil or empty raster.
func Clean(r *raster.Raster, minArea int) (*Result, error) {
	return NewCleaner(DarkOnLight).Clean(r, minArea)
}

// Clean produces all three cleanup variants of r.
func (c Cleaner) Clean(r *raster.Raster, minArea int) (*Result, error) {
	if minArea < 1 {
		return nil, raster.InvalidParameter("min_area", minArea)
	}
	mask, err := c.binarize(r)
	if err != nil {
		return nil, err
	}

	closed, err := morphology.Closing(mask)
	if err != nil {
		return nil, err
	}
	componentMask, err := labeling.RemoveSmall(mask, minArea)
	if err != nil {
		return nil, err
	}
	bothMask, err := labeling.RemoveSmall(closed, minArea)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	if res.ClosingOnly, err = c.render(closed); err != nil {
		return nil, err
	}
	if res.ComponentOnly, err = c.render(componentMask); err != nil {
		return nil, err
	}
	if res.Both, err = c.render(bothMask); err != nil {
		return nil, err
	}
	return res, nil
}

// Variant produces a single cleanup variant of r.
func (c Cleaner) Variant(r *raster.Raster, v Variant, minArea int) (*raster.Raster, error) {
	if minArea < 1 {
		return nil, raster.InvalidParameter("min_area", minArea)
	}
	mask, err := c.binarize(r)
	if err != nil {
		return nil, err
	}

	switch v {
	case ClosingOnly:
		mask, err = morphology.Closing(mask)
	case ComponentOnly:
		mask, err = labeling.RemoveSmall(mask, minArea)
	case Both:
		mask, err = morphology.Closing(mask)
		if err == nil {
			mask, err = labeling.RemoveSmall(mask, minArea)
		}
	default:
		return nil, fmt.Errorf("%w: unknown variant %d", raster.ErrInvalidParameter, int(v))
	}
	if err != nil {
		return nil, err
	}
	return c.render(mask)
}

// binarize maps r to a foreground mask according to the polarity.
func (c Cleaner) binarize(r *raster.Raster) (*raster.BinaryRaster, error) {
	src := r
	if c.Polarity == DarkOnLight {
		inv, err := raster.Invert(r)
		if err != nil {
			return nil, fmt.Errorf("cleaning: %w", err)
		}
		src = inv
	}
	mask, err := raster.Binarize(src, c.Level)
	if err != nil {
		return nil, fmt.Errorf("cleaning: %w", err)
	}
	return mask, nil
}

// render maps a foreground mask back to intensities in the original polarity.
func (c Cleaner) render(mask *raster.BinaryRaster) (*raster.Raster, error) {
	if c.Polarity == DarkOnLight {
		// Foreground 255 inverted back is 0.
		return raster.FromBinary(mask, 0, 255)
	}
	return raster.FromBinary(mask, 255, 0)
}

// Output is the product of Run: the cleaned raster, the removed noise and its
// summary.
type Output struct {
	Cleaned *raster.Raster
	Removed *raster.Raster
	Report  Report
}

// Run applies the variant selected by cfg and computes the removed-noise diff
// against the input.
func Run(r *raster.Raster, cfg Config) (*Output, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cleaned, err := NewCleaner(cfg.Polarity).Variant(r, cfg.Variant, cfg.MinArea)
	if err != nil {
		return nil, err
	}
	removed, err := raster.Diff(r, cleaned)
	if err != nil {
		return nil, err
	}
	return &Output{
		Cleaned: cleaned,
		Removed: removed,
		Report:  Summarize(removed),
	}, nil
}

// Despeckle runs the Crimmins filter on r, optionally preceded by a smoothing
// chain. A nil or empty chain skips smoothing.
func Despeckle(r *raster.Raster, cfg Config, chain Chain) (*raster.Raster, error) {
	if cfg.Passes < 1 {
		return nil, raster.InvalidParameter("passes", cfg.Passes)
	}
	if cfg.Threshold < 1 {
		return nil, raster.InvalidParameter("threshold", cfg.Threshold)
	}
	src := r
	if len(chain) > 0 {
		smoothed, err := Smooth(r, chain)
		if err != nil {
			return nil, err
		}
		src = smoothed
	}
	return despeckle.Apply(src, cfg.Passes, cfg.Threshold)
}
