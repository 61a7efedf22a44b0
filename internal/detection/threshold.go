package detection

import (
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
)

// Grayscale converts an image to 8-bit luminance.
func Grayscale(img image.Image) *image.Gray {
	return toGray(effect.Grayscale(img))
}

// Blur applies a Gaussian blur with the given radius. A radius <= 0 returns
// an unmodified copy.
func Blur(gray *image.Gray, radius float64) *image.Gray {
	if radius <= 0 {
		return toGray(gray)
	}
	return toGray(blur.Gaussian(gray, radius))
}

// OtsuLevel computes the global threshold that maximises the between-class
// variance of the grey-level histogram. Pixels strictly above the returned
// level belong to the bright class.
//
// A uniform image has no second class and yields level 0.
func OtsuLevel(gray *image.Gray) uint8 {
	var hist [256]int
	bounds := gray.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := gray.Pix[gray.PixOffset(bounds.Min.X, y):]
		for x := 0; x < bounds.Dx(); x++ {
			hist[row[x]]++
		}
	}

	total := float64(bounds.Dx() * bounds.Dy())
	if total == 0 {
		return 0
	}

	var sum float64
	for level, count := range hist {
		sum += float64(level * count)
	}

	var (
		sumBack    float64
		weightBack float64
		best       = -1.0
		threshold  int
	)
	for level := 0; level < 256; level++ {
		weightBack += float64(hist[level])
		if weightBack == 0 {
			continue
		}
		weightFore := total - weightBack
		if weightFore == 0 {
			break
		}
		sumBack += float64(level * hist[level])

		meanBack := sumBack / weightBack
		meanFore := (sum - sumBack) / weightFore
		between := weightBack * weightFore * (meanBack - meanFore) * (meanBack - meanFore)
		if between > best {
			best = between
			threshold = level
		}
	}

	return uint8(threshold)
}

// Binarize maps pixels strictly above level to white and everything else
// to black.
func Binarize(gray *image.Gray, level uint8) *image.Gray {
	bounds := gray.Bounds()
	dst := image.NewGray(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		src := gray.Pix[gray.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			if src[x] > level {
				out[x] = 255
			}
		}
	}
	return dst
}

// Invert swaps black and white.
func Invert(gray *image.Gray) *image.Gray {
	return toGray(effect.Invert(gray))
}

// toGray copies any image into a fresh *image.Gray with the same bounds.
func toGray(img image.Image) *image.Gray {
	bounds := img.Bounds()
	dst := image.NewGray(bounds)
	draw.Draw(dst, bounds, img, bounds.Min, draw.Src)
	return dst
}
