package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"sync"

	_ "github.com/ftrvxmtrx/tga" // Register TGA format decoder
	"github.com/pbnjay/memory"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// budgetFraction is the share of total system memory the cache may hold.
const budgetFraction = 8

// minBudget keeps the cache usable on hosts that report no memory.
const minBudget = 64 << 20

// cacheEntry is one decoded image with its estimated footprint.
type cacheEntry struct {
	img    image.Image
	format string
	size   int64
}

// ImageCache provides thread-safe caching of decoded images keyed by path.
//
// Once an image is loaded, subsequent Load calls for the same path return the
// cached copy without disk I/O. Entries are dropped oldest-first when the
// estimated decoded size of all entries would exceed the budget.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	img, err := cache.Load("/path/to/scan.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cache.Evict("/path/to/scan.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*cacheEntry
	order  []string
	used   int64
	budget int64
}

// NewImageCache creates a cache whose budget is one eighth of total system
// memory, as reported by github.com/pbnjay/memory.
func NewImageCache() *ImageCache {
	budget := int64(memory.TotalMemory() / budgetFraction)
	if budget < minBudget {
		budget = minBudget
	}
	return NewImageCacheWithBudget(budget)
}

// NewImageCacheWithBudget creates a cache bounded to budget bytes of decoded
// pixel data. A single image larger than the budget is still returned by Load
// but is not retained.
func NewImageCacheWithBudget(budget int64) *ImageCache {
	return &ImageCache{
		images: make(map[string]*cacheEntry),
		budget: budget,
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Parameters:
//   - path: Absolute or relative file path. Supported formats are PNG, JPEG,
//     GIF, TIFF, BMP, TGA and WebP.
//
// Returns:
//   - image.Image: The decoded image in its native color model.
//   - error: Non-nil if the file cannot be opened or decoded.
//
// The image is cached under the exact path string provided. Different paths to
// the same file produce separate entries.
func (c *ImageCache) Load(path string) (image.Image, error) {
	e, err := c.load(path)
	if err != nil {
		return nil, err
	}
	return e.img, nil
}

func (c *ImageCache) load(path string) (*cacheEntry, error) {
	c.mu.RLock()
	if e, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return e, nil
	}
	c.mu.RUnlock()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	e := &cacheEntry{img: img, format: format, size: estimateSize(img)}
	c.store(path, e)
	return e, nil
}

// store inserts e, evicting the oldest entries until it fits.
func (c *ImageCache) store(path string, e *cacheEntry) {
	if e.size > c.budget {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.images[path]; ok {
		return
	}
	for c.used+e.size > c.budget && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if old, ok := c.images[oldest]; ok {
			c.used -= old.size
			delete(c.images, oldest)
		}
	}
	c.images[path] = e
	c.order = append(c.order, path)
	c.used += e.size
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*cacheEntry)
	c.order = nil
	c.used = 0
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path and reports
// whether it was cached.
func (c *ImageCache) Evict(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.images[path]
	if !ok {
		return false
	}
	c.used -= e.size
	delete(c.images, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// estimateSize approximates the decoded footprint of img in bytes.
func estimateSize(img image.Image) int64 {
	b := img.Bounds()
	bpp := int64(4)
	switch img.(type) {
	case *image.Gray:
		bpp = 1
	case *image.Gray16:
		bpp = 2
	case *image.RGBA64, *image.NRGBA64:
		bpp = 8
	}
	return int64(b.Dx()) * int64(b.Dy()) * bpp
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the decoder that read the file: "png", "jpeg", "gif",
	// "tiff", "bmp", "tga" or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// Grayscale reports whether the file is stored single-channel.
	Grayscale bool `json:"grayscale"`

	// HasAlpha indicates whether the image has an alpha channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	e, err := cache.load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	info := &ImageInfo{
		Width:         e.img.Bounds().Dx(),
		Height:        e.img.Bounds().Dy(),
		Format:        e.format,
		ColorDepth:    "8-bit",
		FileSizeBytes: stat.Size(),
	}
	switch e.img.(type) {
	case *image.Gray:
		info.Grayscale = true
	case *image.Gray16:
		info.Grayscale = true
		info.ColorDepth = "16-bit"
	case *image.RGBA, *image.NRGBA:
		info.HasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		info.HasAlpha = true
		info.ColorDepth = "16-bit"
	}
	return info, nil
}
