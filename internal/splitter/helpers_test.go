package splitter

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ironsheep/scan-splitter/internal/geometry"
)

// writeScan writes a white scan with a black square object at each
// rectangle and returns its path.
func writeScan(t *testing.T, dir, name string, width, height int, objects ...image.Rectangle) string {
	t.Helper()
	return writeColorScan(t, dir, name, width, height, color.Black, objects...)
}

// writeColorScan is writeScan with objects filled in c.
func writeColorScan(t *testing.T, dir, name string, width, height int, c color.Color, objects ...image.Rectangle) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	for _, r := range objects {
		draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// square returns a size×size rectangle with its top-left corner at (x, y).
func square(x, y, size int) image.Rectangle {
	return image.Rect(x, y, x+size, y+size)
}

// cropAt builds a Crop with the given region for matcher tests.
func cropAt(index, x, y, w, h int) Crop {
	return Crop{Index: index, Region: geometry.Region{X: x, Y: y, W: w, H: h}}
}

// writeCrop writes a solid crop image and returns a Crop pointing to it.
func writeCrop(t *testing.T, dir string, index, w, h int, c color.Color) Crop {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)

	path := filepath.Join(dir, filepath.Base(t.Name())+"_"+string(rune('a'+index))+".png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))

	return Crop{Index: index, Region: geometry.Region{W: w, H: h}, Path: path}
}

// testParams are the extraction settings used for the 1000×1000 synthetic
// scans.
func testParams() Params {
	p := DefaultParams()
	p.MinimumArea = 20000
	return p
}
