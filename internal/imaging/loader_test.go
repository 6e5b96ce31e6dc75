package imaging

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// createTestImage creates a simple test image file and returns its path.
// The file lives in t.TempDir and is removed with it.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return writeTestImage(t, "test-image.png", img, func(w io.Writer, m image.Image) error {
		return png.Encode(w, m)
	})
}

// createGrayImage writes a grayscale PNG built from rows.
func createGrayImage(t *testing.T, rows [][]uint8) string {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, v := range row {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return writeTestImage(t, "test-gray.png", img, func(w io.Writer, m image.Image) error {
		return png.Encode(w, m)
	})
}

func writeTestImage(t *testing.T, name string, img image.Image, encode func(io.Writer, image.Image) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()

	if err := encode(f, img); err != nil {
		t.Fatalf("failed to encode image: %v", err)
	}
	return path
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache()
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
	if cache.budget < minBudget {
		t.Errorf("budget %d below minimum %d", cache.budget, minBudget)
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})

	// First load
	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img1 == nil {
		t.Fatal("Load returned nil image")
	}

	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	// Second load should return cached image
	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := cache.Load("/nonexistent/path/to/image.png")
	if err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache()

	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	_, err := cache.Load(path)
	if err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	cache.Clear()

	if n := cache.Len(); n != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", n)
	}
	if cache.used != 0 {
		t.Errorf("Clear left %d bytes accounted", cache.used)
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cache.Evict(imgPath) {
		t.Error("Evict reported a cached image as missing")
	}

	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	used := cache.used
	cache.mu.RUnlock()

	if exists {
		t.Error("Evict did not remove image from cache")
	}
	if used != 0 {
		t.Errorf("Evict left %d bytes accounted", used)
	}
}

func TestImageCache_Evict_NonExistent(t *testing.T) {
	cache := NewImageCache()
	if cache.Evict("/nonexistent/path") {
		t.Error("Evict reported an uncached path as evicted")
	}
}

func TestImageCache_Budget(t *testing.T) {
	// 10x10 RGBA decodes to 400 bytes; room for two.
	cache := NewImageCacheWithBudget(900)
	a := createTestImage(t, 10, 10, color.RGBA{1, 1, 1, 255})
	b := createTestImage(t, 10, 10, color.RGBA{2, 2, 2, 255})
	c := createTestImage(t, 10, 10, color.RGBA{3, 3, 3, 255})

	for _, p := range []string{a, b, c} {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load(%s) failed: %v", p, err)
		}
	}

	if n := cache.Len(); n != 2 {
		t.Fatalf("cache holds %d images, want 2", n)
	}
	cache.mu.RLock()
	_, hasOldest := cache.images[a]
	_, hasNewest := cache.images[c]
	cache.mu.RUnlock()
	if hasOldest {
		t.Error("oldest entry should have been evicted")
	}
	if !hasNewest {
		t.Error("newest entry should be cached")
	}
}

func TestImageCache_OversizedNotRetained(t *testing.T) {
	cache := NewImageCacheWithBudget(100)
	p := createTestImage(t, 10, 10, color.RGBA{9, 9, 9, 255})

	img, err := cache.Load(p)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img == nil {
		t.Fatal("Load returned nil image")
	}
	if n := cache.Len(); n != 0 {
		t.Errorf("oversized image was cached (%d entries)", n)
	}
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errors := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Load(imgPath)
			if err != nil {
				errors <- err
			}
		}()
	}

	wg.Wait()
	close(errors)

	for err := range errors {
		t.Errorf("concurrent Load error: %v", err)
	}
	if n := cache.Len(); n != 1 {
		t.Errorf("cache holds %d entries, want 1", n)
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache()
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 {
		t.Errorf("Width: got %d, want 200", info.Width)
	}
	if info.Height != 150 {
		t.Errorf("Height: got %d, want 150", info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_Gray(t *testing.T) {
	cache := NewImageCache()
	imgPath := createGrayImage(t, [][]uint8{{0, 255}, {255, 0}})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}
	if !info.Grayscale {
		t.Error("Grayscale: got false, want true")
	}
	if info.HasAlpha {
		t.Error("HasAlpha: got true, want false")
	}
	if info.ColorDepth != "8-bit" {
		t.Errorf("ColorDepth: got %s, want 8-bit", info.ColorDepth)
	}
}

func TestLoadImageInfo_FormatDetection(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 10, 10))

	tests := []struct {
		name   string
		format string
		encode func(io.Writer, image.Image) error
	}{
		{"png", "png", func(w io.Writer, m image.Image) error { return png.Encode(w, m) }},
		{"jpeg", "jpeg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }},
		{"gif", "gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }},
		{"tiff", "tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }},
		{"bmp", "bmp", bmp.Encode},
		{"webp", "webp", func(w io.Writer, m image.Image) error { return nativewebp.Encode(w, m, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewImageCache()
			// The extension is deliberately wrong; detection reads content.
			path := writeTestImage(t, "test-format.xyz", src, tt.encode)

			info, err := LoadImageInfo(cache, path)
			if err != nil {
				t.Fatalf("LoadImageInfo failed: %v", err)
			}
			if info.Format != tt.format {
				t.Errorf("Format: got %s, want %s", info.Format, tt.format)
			}
			if info.Width != 10 || info.Height != 10 {
				t.Errorf("dimensions: got %dx%d, want 10x10", info.Width, info.Height)
			}
		})
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	cache := NewImageCache()
	_, err := LoadImageInfo(cache, "/nonexistent/image.png")
	if err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}
