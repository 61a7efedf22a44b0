package detection

import "image"

// Erode replaces every pixel with the minimum over a size×size square.
// For even sizes the square's anchor sits at (size/2, size/2), so the
// window covers offsets [-size/2, size-1-size/2]. Pixels outside the image
// are ignored.
func Erode(src *image.Gray, size int) *image.Gray {
	return squareFilter(src, -(size / 2), size-1-size/2, minByte)
}

// Dilate replaces every pixel with the maximum over the reflected square,
// so that Open and Close leave surviving shapes where they were.
func Dilate(src *image.Gray, size int) *image.Gray {
	return squareFilter(src, -(size - 1 - size/2), size/2, maxByte)
}

// Open erodes then dilates, removing white specks smaller than the square.
func Open(src *image.Gray, size int) *image.Gray {
	return Dilate(Erode(src, size), size)
}

// Close dilates then erodes, filling black gaps smaller than the square.
func Close(src *image.Gray, size int) *image.Gray {
	return Erode(Dilate(src, size), size)
}

func minByte(a, b uint8) uint8 {
	if b < a {
		return b
	}
	return a
}

func maxByte(a, b uint8) uint8 {
	if b > a {
		return b
	}
	return a
}

// squareFilter runs a separable rank filter over window offsets [lo, hi]:
// a row pass followed by a column pass.
func squareFilter(src *image.Gray, lo, hi int, pick func(a, b uint8) uint8) *image.Gray {
	bounds := src.Bounds()
	dst := image.NewGray(bounds)
	width, height := bounds.Dx(), bounds.Dy()
	if width == 0 || height == 0 {
		return dst
	}
	if hi <= lo {
		for y := 0; y < height; y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+width], src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):])
		}
		return dst
	}

	rows := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		row := src.Pix[src.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			from := max(x+lo, 0)
			to := min(x+hi, width-1)
			v := row[from]
			for i := from + 1; i <= to; i++ {
				v = pick(v, row[i])
			}
			rows[y*width+x] = v
		}
	}

	for y := 0; y < height; y++ {
		from := max(y+lo, 0)
		to := min(y+hi, height-1)
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < width; x++ {
			v := rows[from*width+x]
			for j := from + 1; j <= to; j++ {
				v = pick(v, rows[j*width+x])
			}
			out[x] = v
		}
	}

	return dst
}
