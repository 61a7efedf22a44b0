package splitter

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/ironsheep/scan-splitter/internal/archive"
	"github.com/ironsheep/scan-splitter/internal/geometry"
	"github.com/ironsheep/scan-splitter/internal/imaging"
)

// Cropper writes regions of one source scan to numbered PNG files named
// "{n}_{stem}.png", n counting from 0 for each Cropper.
type Cropper struct {
	dir   string
	stem  string
	next  int
	cache *imaging.ImageCache
}

// NewCropper creates dir if needed. Written crops are also stored in cache
// when it is not nil, so the merge step can use them without decoding.
func NewCropper(dir, sourcePath string, cache *imaging.ImageCache) (*Cropper, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create crop directory: %w", err)
	}
	return &Cropper{dir: dir, stem: archive.Stem(sourcePath), cache: cache}, nil
}

// Crop copies r out of src unchanged and writes it to disk. r must lie
// inside src.
func (c *Cropper) Crop(src image.Image, r geometry.Region) (Crop, error) {
	pixels, err := imaging.Crop(src, r.Rect())
	if err != nil {
		return Crop{}, err
	}

	path := filepath.Join(c.dir, fmt.Sprintf("%d_%s.png", c.next, c.stem))
	if err := imaging.Save(pixels, path); err != nil {
		return Crop{}, err
	}
	if c.cache != nil {
		c.cache.Put(path, pixels)
	}

	crop := Crop{Index: c.next, Region: r, Path: path}
	c.next++
	return crop, nil
}
