package server

import (
	"fmt"

	"github.com/ironsheep/despeckle-mcp/internal/cleaning"
	"github.com/ironsheep/despeckle-mcp/internal/imaging"
	"github.com/ironsheep/despeckle-mcp/internal/raster"
	"github.com/ironsheep/despeckle-mcp/internal/synth"
)

// ImageArgs are the arguments shared by every tool that reads an image.
type ImageArgs struct {
	// Path is the image file to read.
	Path string `json:"path"`

	// Gray selects the grayscale model: "luma" (default) or "lightness".
	Gray string `json:"gray,omitempty"`

	// Region restricts processing to a rectangle of the image.
	Region *imaging.Region `json:"region,omitempty"`

	// NamedRegion restricts processing to a named area such as "top-left".
	// It is ignored when Region is set.
	NamedRegion string `json:"named_region,omitempty"`

	// Format is the output encoding: "png" (default) or "webp".
	Format string `json:"format,omitempty"`
}

// DespeckleArgs are the arguments of image_despeckle.
type DespeckleArgs struct {
	ImageArgs

	// Passes and Threshold configure the Crimmins filter. Zero selects the
	// server default.
	Passes    int `json:"passes,omitempty"`
	Threshold int `json:"threshold,omitempty"`

	// SmoothFirst runs the default smoothing chain before the filter.
	SmoothFirst bool `json:"smooth_first,omitempty"`

	// Sharpen applies the sharpening kernel to the filtered image.
	Sharpen bool `json:"sharpen,omitempty"`
}

// SmoothArgs are the arguments of image_smooth.
type SmoothArgs struct {
	ImageArgs

	// Sharpen applies the sharpening kernel after the smoothing chain.
	Sharpen bool `json:"sharpen,omitempty"`
}

// UnloadResult is the output of image_unload.
type UnloadResult struct {
	Path    string `json:"path"`
	Evicted bool   `json:"evicted"`
	Cached  int    `json:"cached"`
}

// CleanArgs are the arguments of image_clean and image_noise_diff.
type CleanArgs struct {
	ImageArgs

	// MinArea is the smallest component kept. Zero selects the server default.
	MinArea int `json:"min_area,omitempty"`

	// Variant is "closing_only", "component_only" or "both". For image_clean
	// an empty value returns all three.
	Variant string `json:"variant,omitempty"`

	// Polarity is "dark_on_light" or "light_on_dark".
	Polarity string `json:"polarity,omitempty"`
}

// NoiseArgs are the arguments of image_add_noise.
type NoiseArgs struct {
	ImageArgs

	// Density is the salt-and-pepper fraction in [0, 1].
	Density float64 `json:"density,omitempty"`

	// Specks places this many isolated single-pixel specks in the foreground
	// color of Polarity.
	Specks int `json:"specks,omitempty"`

	// Polarity picks the speck color: black for "dark_on_light", white for
	// "light_on_dark".
	Polarity string `json:"polarity,omitempty"`

	// Seed makes the noise reproducible.
	Seed uint32 `json:"seed,omitempty"`
}

// DespeckleResult is the output of image_despeckle.
type DespeckleResult struct {
	Image     *imaging.EncodedImage `json:"image"`
	Passes    int                   `json:"passes"`
	Threshold int                   `json:"threshold"`
	Smoothed  bool                  `json:"smoothed"`
	Sharpened bool                  `json:"sharpened"`
	Changes   cleaning.Report       `json:"changes"`
}

// CleanResult is the output of image_clean. Variants is keyed by variant name.
type CleanResult struct {
	MinArea  int                              `json:"min_area"`
	Polarity string                           `json:"polarity"`
	Variants map[string]*imaging.EncodedImage `json:"variants"`
}

// NoiseDiffResult is the output of image_noise_diff.
type NoiseDiffResult struct {
	Variant string                `json:"variant"`
	Cleaned *imaging.EncodedImage `json:"cleaned"`
	Removed *imaging.EncodedImage `json:"removed"`
	Report  cleaning.Report       `json:"report"`
}

// Toolbox implements the image tools on top of an image cache. It is shared by
// the MCP and REST front ends.
type Toolbox struct {
	cache    *imaging.ImageCache
	defaults cleaning.Config
}

// NewToolbox returns a Toolbox that fills omitted parameters from defaults.
func NewToolbox(cache *imaging.ImageCache, defaults cleaning.Config) *Toolbox {
	return &Toolbox{cache: cache, defaults: defaults}
}

// Defaults returns the parameters applied when a call omits them.
func (tb *Toolbox) Defaults() cleaning.Config {
	return tb.defaults
}

// Load returns metadata for an image and warms the cache.
func (tb *Toolbox) Load(path string) (*imaging.ImageInfo, error) {
	return imaging.LoadImageInfo(tb.cache, path)
}

// Despeckle runs the Crimmins filter over the image.
func (tb *Toolbox) Despeckle(a DespeckleArgs) (*DespeckleResult, error) {
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	src, err := tb.raster(a.ImageArgs)
	if err != nil {
		return nil, err
	}

	cfg := tb.defaults
	if a.Passes != 0 {
		cfg.Passes = a.Passes
	}
	if a.Threshold != 0 {
		cfg.Threshold = a.Threshold
	}
	var chain cleaning.Chain
	if a.SmoothFirst {
		chain = cleaning.DefaultChain()
	}

	out, err := cleaning.Despeckle(src, cfg, chain)
	if err != nil {
		return nil, err
	}
	if a.Sharpen {
		if out, err = cleaning.Sharpen(out); err != nil {
			return nil, err
		}
	}
	diff, err := raster.Diff(src, out)
	if err != nil {
		return nil, err
	}
	enc, err := imaging.Encode(out, format)
	if err != nil {
		return nil, err
	}
	return &DespeckleResult{
		Image:     enc,
		Passes:    cfg.Passes,
		Threshold: cfg.Threshold,
		Smoothed:  a.SmoothFirst,
		Sharpened: a.Sharpen,
		Changes:   cleaning.Summarize(diff),
	}, nil
}

// Clean binarizes the image and applies the cleanup variants.
func (tb *Toolbox) Clean(a CleanArgs) (*CleanResult, error) {
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	cfg, err := tb.cleanConfig(a)
	if err != nil {
		return nil, err
	}
	src, err := tb.raster(a.ImageArgs)
	if err != nil {
		return nil, err
	}

	cleaner := cleaning.NewCleaner(cfg.Polarity)
	out := make(map[string]*raster.Raster)
	if a.Variant == "" {
		res, err := cleaner.Clean(src, cfg.MinArea)
		if err != nil {
			return nil, err
		}
		for _, v := range []cleaning.Variant{cleaning.ClosingOnly, cleaning.ComponentOnly, cleaning.Both} {
			out[v.String()] = res.Get(v)
		}
	} else {
		r, err := cleaner.Variant(src, cfg.Variant, cfg.MinArea)
		if err != nil {
			return nil, err
		}
		out[cfg.Variant.String()] = r
	}

	res := &CleanResult{
		MinArea:  cfg.MinArea,
		Polarity: cfg.Polarity.String(),
		Variants: make(map[string]*imaging.EncodedImage, len(out)),
	}
	for name, r := range out {
		if res.Variants[name], err = imaging.Encode(r, format); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Smooth applies the default smoothing chain, optionally followed by
// sharpening.
func (tb *Toolbox) Smooth(a SmoothArgs) (*imaging.EncodedImage, error) {
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	src, err := tb.raster(a.ImageArgs)
	if err != nil {
		return nil, err
	}
	out, err := cleaning.Smooth(src, cleaning.DefaultChain())
	if err != nil {
		return nil, err
	}
	if a.Sharpen {
		if out, err = cleaning.Sharpen(out); err != nil {
			return nil, err
		}
	}
	return imaging.Encode(out, format)
}

// Unload drops a file from the image cache.
func (tb *Toolbox) Unload(path string) (*UnloadResult, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", raster.ErrInvalidParameter)
	}
	evicted := tb.cache.Evict(path)
	return &UnloadResult{Path: path, Evicted: evicted, Cached: tb.cache.Len()}, nil
}

// NoiseDiff cleans the image with a single variant and reports what was
// removed.
func (tb *Toolbox) NoiseDiff(a CleanArgs) (*NoiseDiffResult, error) {
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	cfg, err := tb.cleanConfig(a)
	if err != nil {
		return nil, err
	}
	src, err := tb.raster(a.ImageArgs)
	if err != nil {
		return nil, err
	}

	out, err := cleaning.Run(src, cfg)
	if err != nil {
		return nil, err
	}
	cleaned, err := imaging.Encode(out.Cleaned, format)
	if err != nil {
		return nil, err
	}
	removed, err := imaging.Encode(out.Removed, format)
	if err != nil {
		return nil, err
	}
	return &NoiseDiffResult{
		Variant: cfg.Variant.String(),
		Cleaned: cleaned,
		Removed: removed,
		Report:  out.Report,
	}, nil
}

// AddNoise corrupts the image with seeded synthetic noise. Salt-and-pepper
// noise is applied first, then specks.
func (tb *Toolbox) AddNoise(a NoiseArgs) (*imaging.EncodedImage, error) {
	format, err := imaging.ParseFormat(a.Format)
	if err != nil {
		return nil, err
	}
	polarity := tb.defaults.Polarity
	if a.Polarity != "" {
		if polarity, err = cleaning.ParsePolarity(a.Polarity); err != nil {
			return nil, err
		}
	}
	if a.Density == 0 && a.Specks == 0 {
		return nil, fmt.Errorf("%w: one of density or specks must be set", raster.ErrInvalidParameter)
	}
	out, err := tb.raster(a.ImageArgs)
	if err != nil {
		return nil, err
	}

	if a.Density != 0 {
		if out, err = synth.SaltAndPepper(out, a.Density, a.Seed); err != nil {
			return nil, err
		}
	}
	if a.Specks != 0 {
		speck := uint8(0)
		if polarity == cleaning.LightOnDark {
			speck = 255
		}
		if out, err = synth.Specks(out, a.Specks, speck, a.Seed); err != nil {
			return nil, err
		}
	}
	return imaging.Encode(out, format)
}

// cleanConfig merges a over the defaults and validates the result.
func (tb *Toolbox) cleanConfig(a CleanArgs) (cleaning.Config, error) {
	cfg := tb.defaults
	if a.MinArea != 0 {
		cfg.MinArea = a.MinArea
	}
	if a.Variant != "" {
		v, err := cleaning.ParseVariant(a.Variant)
		if err != nil {
			return cfg, err
		}
		cfg.Variant = v
	}
	if a.Polarity != "" {
		p, err := cleaning.ParsePolarity(a.Polarity)
		if err != nil {
			return cfg, err
		}
		cfg.Polarity = p
	}
	return cfg, cfg.Validate()
}

// raster loads the image named by a and converts the selected region.
func (tb *Toolbox) raster(a ImageArgs) (*raster.Raster, error) {
	if a.Path == "" {
		return nil, fmt.Errorf("%w: path is required", raster.ErrInvalidParameter)
	}
	model, err := imaging.ParseGrayModel(a.Gray)
	if err != nil {
		return nil, err
	}

	region := a.Region
	if region == nil && a.NamedRegion != "" {
		img, err := tb.cache.Load(a.Path)
		if err != nil {
			return nil, err
		}
		named, err := imaging.NamedRegion(a.NamedRegion, img.Bounds().Dx(), img.Bounds().Dy())
		if err != nil {
			return nil, err
		}
		region = &named
	}
	return imaging.LoadRaster(tb.cache, a.Path, model, region)
}
