package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/ironsheep/despeckle-mcp/internal/raster"
)

func TestParseGrayModel(t *testing.T) {
	tests := []struct {
		in      string
		want    GrayModel
		wantErr bool
	}{
		{"", GrayLuma, false},
		{"luma", GrayLuma, false},
		{"lightness", GrayLightness, false},
		{"hsv", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGrayModel(tt.in)
			if tt.wantErr {
				if !errors.Is(err, raster.ErrInvalidParameter) {
					t.Fatalf("expected ErrInvalidParameter, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToRaster_GrayCopiedDirectly(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.Pix = []uint8{0, 10, 20, 30, 40, 50}

	for _, model := range []GrayModel{GrayLuma, GrayLightness} {
		r, err := ToRaster(img, model)
		if err != nil {
			t.Fatalf("%s: %v", model, err)
		}
		if r.Rows() != 2 || r.Cols() != 3 {
			t.Fatalf("%s: shape %dx%d, want 2x3", model, r.Rows(), r.Cols())
		}
		if r.At(1, 2) != 50 {
			t.Errorf("%s: At(1,2) = %d, want 50", model, r.At(1, 2))
		}
	}
}

func TestToRaster_Luma(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	img.Set(1, 0, color.RGBA{0, 0, 0, 255})

	r, err := ToRaster(img, GrayLuma)
	if err != nil {
		t.Fatalf("ToRaster failed: %v", err)
	}
	if r.At(0, 0) != 255 || r.At(0, 1) != 0 {
		t.Errorf("got (%d,%d), want (255,0)", r.At(0, 0), r.At(0, 1))
	}
}

func TestToRaster_LumaWeights(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{255, 0, 0, 255})
	img.Set(1, 0, color.RGBA{0, 255, 0, 255})
	img.Set(2, 0, color.RGBA{0, 0, 255, 255})

	r, err := ToRaster(img, GrayLuma)
	if err != nil {
		t.Fatalf("ToRaster failed: %v", err)
	}
	red, green, blue := r.At(0, 0), r.At(0, 1), r.At(0, 2)
	if !(green > red && red > blue) {
		t.Errorf("expected green > red > blue, got %d %d %d", green, red, blue)
	}
}

func TestToRaster_Lightness(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))
	img.Set(0, 0, color.RGBA{255, 255, 255, 255})
	img.Set(1, 0, color.RGBA{0, 0, 0, 255})
	img.Set(2, 0, color.RGBA{0, 0, 255, 255})

	r, err := ToRaster(img, GrayLightness)
	if err != nil {
		t.Fatalf("ToRaster failed: %v", err)
	}
	if r.At(0, 0) < 254 {
		t.Errorf("white lightness = %d, want 255", r.At(0, 0))
	}
	if r.At(0, 1) != 0 {
		t.Errorf("black lightness = %d, want 0", r.At(0, 1))
	}
	// Pure blue has L* of about 32.
	if v := r.At(0, 2); v < 70 || v > 95 {
		t.Errorf("blue lightness = %d, want about 82", v)
	}
}

func TestToRaster_Errors(t *testing.T) {
	if _, err := ToRaster(nil, GrayLuma); !errors.Is(err, raster.ErrShape) {
		t.Errorf("nil image: expected ErrShape, got %v", err)
	}
	empty := image.NewRGBA(image.Rect(0, 0, 0, 0))
	if _, err := ToRaster(empty, GrayLuma); !errors.Is(err, raster.ErrShape) {
		t.Errorf("empty image: expected ErrShape, got %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if _, err := ToRaster(img, GrayModel("hsv")); !errors.Is(err, raster.ErrInvalidParameter) {
		t.Errorf("bad model: expected ErrInvalidParameter, got %v", err)
	}
}

func TestLoadRaster(t *testing.T) {
	cache := NewImageCache()
	path := createGrayImage(t, [][]uint8{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
	})

	r, err := LoadRaster(cache, path, GrayLuma, nil)
	if err != nil {
		t.Fatalf("LoadRaster failed: %v", err)
	}
	if r.Rows() != 3 || r.Cols() != 4 {
		t.Fatalf("shape %dx%d, want 3x4", r.Rows(), r.Cols())
	}
	if r.At(2, 3) != 12 {
		t.Errorf("At(2,3) = %d, want 12", r.At(2, 3))
	}

	cropped, err := LoadRaster(cache, path, GrayLuma, &Region{X1: 1, Y1: 1, X2: 3, Y2: 3})
	if err != nil {
		t.Fatalf("LoadRaster with region failed: %v", err)
	}
	want, _ := raster.FromRows([][]uint8{{6, 7}, {10, 11}})
	if !cropped.Equal(want) {
		t.Errorf("cropped raster = %v, want %v", cropped.Pix(), want.Pix())
	}
}

func TestLoadRaster_BadRegion(t *testing.T) {
	cache := NewImageCache()
	path := createGrayImage(t, [][]uint8{{1, 2}, {3, 4}})

	_, err := LoadRaster(cache, path, GrayLuma, &Region{X1: 0, Y1: 0, X2: 5, Y2: 5})
	if !errors.Is(err, raster.ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}

func TestLoadRaster_NonExistent(t *testing.T) {
	cache := NewImageCache()
	if _, err := LoadRaster(cache, "/nonexistent/image.png", GrayLuma, nil); err == nil {
		t.Error("LoadRaster should fail for non-existent file")
	}
}
