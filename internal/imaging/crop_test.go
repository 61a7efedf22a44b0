package imaging

import (
	"encoding/base64"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// createQuadrantImage creates an image with red, green, blue and white
// quadrants
func createQuadrantImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			switch {
			case x < width/2 && y < height/2:
				c = color.RGBA{255, 0, 0, 255}
			case x >= width/2 && y < height/2:
				c = color.RGBA{0, 255, 0, 255}
			case x < width/2:
				c = color.RGBA{0, 0, 255, 255}
			default:
				c = color.RGBA{255, 255, 255, 255}
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCrop(t *testing.T) {
	img := createQuadrantImage(100, 100)

	cropped, err := Crop(img, image.Rect(50, 0, 100, 50))
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}

	if cropped.Bounds() != image.Rect(0, 0, 50, 50) {
		t.Errorf("bounds: got %v, want (0,0)-(50,50)", cropped.Bounds())
	}
	r, g, b, _ := cropped.At(10, 10).RGBA()
	if r != 0 || g>>8 != 255 || b != 0 {
		t.Errorf("expected green crop, got %d,%d,%d", r>>8, g>>8, b>>8)
	}
}

func TestCrop_OutOfBounds(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)

	tests := []struct {
		name string
		r    image.Rectangle
	}{
		{"negative origin", image.Rect(-1, 0, 50, 50)},
		{"past right edge", image.Rect(50, 50, 101, 100)},
		{"past bottom edge", image.Rect(0, 90, 10, 110)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.r); err == nil {
				t.Error("expected error for out-of-bounds region")
			}
		})
	}
}

func TestCrop_EmptyRegion(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)
	if _, err := Crop(img, image.Rect(10, 10, 10, 20)); err == nil {
		t.Error("expected error for empty region")
	}
}

func TestScale(t *testing.T) {
	img := createInMemoryImage(100, 60, color.White)

	tests := []struct {
		factor       float64
		wantW, wantH int
	}{
		{1.0, 100, 60},
		{0, 100, 60},
		{-1, 100, 60},
		{0.5, 50, 30},
		{2.0, 200, 120},
	}
	for _, tt := range tests {
		got := Scale(img, tt.factor).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("Scale(%v): got %dx%d, want %dx%d", tt.factor, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestPyramidUp(t *testing.T) {
	img := createInMemoryImage(30, 20, color.White)

	tests := []struct {
		levels       int
		wantW, wantH int
	}{
		{0, 30, 20},
		{1, 60, 40},
		{2, 120, 80},
	}
	for _, tt := range tests {
		got := PyramidUp(img, tt.levels).Bounds()
		if got.Dx() != tt.wantW || got.Dy() != tt.wantH {
			t.Errorf("PyramidUp(%d): got %dx%d, want %dx%d", tt.levels, got.Dx(), got.Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "0_scan.png")

	if err := Save(createInMemoryImage(10, 10, color.Black), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("saved file missing: %v", err)
	}

	img, err := Decode(path)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 10 {
		t.Errorf("unexpected width %d", img.Bounds().Dx())
	}
}

func TestSave_UnknownExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.unknown")
	if err := Save(createInMemoryImage(1, 1, color.Black), path); err == nil {
		t.Error("expected error for unsupported extension")
	}
}

func TestPreview(t *testing.T) {
	img := createInMemoryImage(100, 100, color.RGBA{255, 0, 0, 255})

	result, err := Preview(img, 0.25)
	if err != nil {
		t.Fatalf("Preview failed: %v", err)
	}
	if result.Width != 25 || result.Height != 25 {
		t.Errorf("dimensions: got %dx%d, want 25x25", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}
	if _, err := base64.StdEncoding.DecodeString(result.ImageBase64); err != nil {
		t.Errorf("failed to decode base64: %v", err)
	}
}
