package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

// Format is an output encoding for result rasters.
type Format string

const (
	// FormatPNG is lossless 8-bit grayscale PNG, the default.
	FormatPNG Format = "png"
	// FormatWebP is lossless WebP.
	FormatWebP Format = "webp"
)

// ParseFormat maps a tool argument to a Format. The empty string selects PNG.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatPNG:
		return FormatPNG, nil
	case FormatWebP:
		return FormatWebP, nil
	}
	return "", fmt.Errorf("%w: unknown format %q (use png or webp)", raster.ErrInvalidParameter, s)
}

// MimeType returns the MIME type of the encoding.
func (f Format) MimeType() string {
	if f == FormatWebP {
		return "image/webp"
	}
	return "image/png"
}

// EncodedImage is a raster encoded for transport.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Encode renders r as a grayscale image in format f and base64-encodes it.
// WebP output is lossless, so decoding yields the original samples.
func Encode(r *raster.Raster, f Format) (*EncodedImage, error) {
	if err := raster.Validate(r); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	img := r.ToGray()

	var buf bytes.Buffer
	switch f {
	case FormatPNG, "":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	case FormatWebP:
		if err := nativewebp.Encode(&buf, img, nil); err != nil {
			return nil, fmt.Errorf("failed to encode webp: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", raster.ErrInvalidParameter, f)
	}

	return &EncodedImage{
		Width:       r.Cols(),
		Height:      r.Rows(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    f.MimeType(),
	}, nil
}
