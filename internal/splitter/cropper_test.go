package splitter

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/scan-splitter/internal/geometry"
	"github.com/ironsheep/scan-splitter/internal/imaging"
)

func TestCropper_NamesAndCounter(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 100, 100))
	cache := imaging.NewImageCache()

	c, err := NewCropper(filepath.Join(dir, "crops"), "/scans/sheet 1.obverse.tiff", cache)
	require.NoError(t, err)

	first, err := c.Crop(src, geometry.Region{X: 10, Y: 10, W: 20, H: 30})
	require.NoError(t, err)
	second, err := c.Crop(src, geometry.Region{X: 50, Y: 40, W: 5, H: 5})
	require.NoError(t, err)

	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 1, second.Index)
	assert.Equal(t, "0_sheet 1.png", filepath.Base(first.Path))
	assert.Equal(t, "1_sheet 1.png", filepath.Base(second.Path))
	assert.Equal(t, 2, cache.Len())

	img, err := imaging.Decode(first.Path)
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())
	assert.Equal(t, 30, img.Bounds().Dy())
}

func TestCropper_OutOfBounds(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 50, 50))

	c, err := NewCropper(dir, "scan.png", nil)
	require.NoError(t, err)

	_, err = c.Crop(src, geometry.Region{X: 40, Y: 40, W: 20, H: 20})
	assert.Error(t, err)

	// a failed crop does not use up an index
	crop, err := c.Crop(src, geometry.Region{X: 0, Y: 0, W: 10, H: 10})
	require.NoError(t, err)
	assert.Equal(t, 0, crop.Index)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
