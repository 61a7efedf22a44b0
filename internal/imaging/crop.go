package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// Crop copies the pixels of r out of img. The result always starts at
// (0, 0) and owns its pixel buffer.
func Crop(img image.Image, r image.Rectangle) (*image.NRGBA, error) {
	bounds := img.Bounds()

	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if r.Empty() {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, r), nil
}

// Scale resizes img by factor with a Lanczos filter. A factor of 1 or less
// than or equal to 0 returns img unchanged.
func Scale(img image.Image, factor float64) image.Image {
	if factor == 1.0 || factor <= 0 {
		return img
	}
	b := img.Bounds()
	width := max(int(float64(b.Dx())*factor), 1)
	height := max(int(float64(b.Dy())*factor), 1)
	return imaging.Resize(img, width, height, imaging.Lanczos)
}

// PyramidUp doubles the dimensions of img levels times, smoothing with a
// Gaussian filter at each step.
func PyramidUp(img image.Image, levels int) image.Image {
	for i := 0; i < levels; i++ {
		b := img.Bounds()
		img = imaging.Resize(img, b.Dx()*2, b.Dy()*2, imaging.Gaussian)
	}
	return img
}

// Save writes img to path, creating the parent directory if needed. The
// encoder is chosen from the file extension.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}
	if err := imaging.Save(img, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// PreviewResult is a PNG preview of an image, ready to embed in a JSON
// response.
type PreviewResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Preview scales img by factor and encodes it as base64 PNG.
func Preview(img image.Image, factor float64) (*PreviewResult, error) {
	scaled := Scale(img, factor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	return &PreviewResult{
		Width:       scaled.Bounds().Dx(),
		Height:      scaled.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
