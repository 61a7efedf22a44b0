package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// NewCanvas returns an RGBA image filled with c.
func NewCanvas(bounds image.Rectangle, c color.Color) *image.RGBA {
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(c), image.Point{}, draw.Src)
	return canvas
}

// DrawRect outlines r on img with a stroke of the given thickness drawn
// inward from the rectangle's edge. Pixels outside img are skipped.
func DrawRect(img *image.RGBA, r image.Rectangle, thickness int, c color.Color) {
	if thickness < 1 {
		thickness = 1
	}
	r = r.Canon()
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+thickness), // top
		image.Rect(r.Min.X, r.Max.Y-thickness, r.Max.X, r.Max.Y), // bottom
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+thickness, r.Max.Y), // left
		image.Rect(r.Max.X-thickness, r.Min.Y, r.Max.X, r.Max.Y), // right
	}
	src := image.NewUniform(c)
	for _, e := range edges {
		e = e.Intersect(r).Intersect(img.Bounds())
		if e.Empty() {
			continue
		}
		draw.Draw(img, e, src, image.Point{}, draw.Over)
	}
}

// DrawPoints sets each point to c. Points outside img are skipped.
func DrawPoints(img *image.RGBA, points []image.Point, c color.Color) {
	bounds := img.Bounds()
	for _, p := range points {
		if p.In(bounds) {
			img.Set(p.X, p.Y, c)
		}
	}
}

// DrawIndex writes a numeric label on a dark box just inside the top-left
// corner of r.
func DrawIndex(img *image.RGBA, r image.Rectangle, index int, fg color.Color) {
	drawLabel(img, r.Min.X+3, r.Min.Y+3, strconv.Itoa(index), fg, color.RGBA{0, 0, 0, 180})
}

// drawLabel renders text in the 7x13 basic font with its top-left corner
// at (x, y) over a filled background box.
func drawLabel(img *image.RGBA, x, y int, text string, fg, bg color.Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(fg), Face: face}

	width := d.MeasureString(text).Ceil()
	box := image.Rect(x-1, y-1, x+width+1, y+face.Height+1).Intersect(img.Bounds())
	if !box.Empty() {
		draw.Draw(img, box, image.NewUniform(bg), image.Point{}, draw.Src)
	}

	d.Dot = fixed.P(x, y+face.Ascent)
	d.DrawString(text)
}
