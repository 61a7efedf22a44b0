package imaging

import (
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// goldenAngle spaces consecutive hues so neighbouring indices never get
// similar colours.
const goldenAngle = 137.50776405003785

// Palette returns n distinct, fully opaque, saturated colours. The same n
// always yields the same colours, so overlays for the obverse and reverse
// of a pair use matching colours for matching indices.
func Palette(n int) []color.RGBA {
	colors := make([]color.RGBA, n)
	for i := range colors {
		hue := math.Mod(float64(i)*goldenAngle, 360)
		c := colorful.Hsv(hue, 0.85, 0.95).Clamped()
		r, g, b := c.RGB255()
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// ParseHexColor parses "#RRGGBB" into an opaque colour.
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] != '#' {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
