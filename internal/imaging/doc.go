// Package imaging adapts image files to and from the rasters used by the
// denoising pipeline.
//
// This package is the boundary between the pure raster core and the outside
// world: it decodes image files, converts them to single-channel rasters,
// crops regions of interest and encodes result rasters for transport.
//
// # Supported Formats
//
// Decoding: PNG, JPEG and GIF (standard library), TIFF, BMP and WebP
// (golang.org/x/image) and TGA (github.com/ftrvxmtrx/tga). Results encoded as
// WebP can therefore be fed back in.
//
// Encoding: PNG (default) and lossless WebP (github.com/HugoSmits86/nativewebp).
//
// # Grayscale Conversion
//
// Color images are reduced to one channel with one of two models:
//   - GrayLuma: ITU-R BT.601 luma (0.299*R + 0.587*G + 0.114*B)
//   - GrayLightness: CIE L* lightness scaled to 0-255
//
// # Coordinate System
//
// Regions use image coordinates: (x1,y1) is inclusive (top-left), (x2,y2) is
// exclusive (bottom-right). Raster rows map to Y and columns to X.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. All other functions are stateless.
//
// # Memory
//
// ImageCache keeps decoded images until evicted. It is bounded by a byte
// budget derived from total system memory; when a new image would exceed the
// budget, older entries are dropped first.
package imaging
