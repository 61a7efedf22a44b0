package detection

import "image"

// ComponentSegmenter is a pure Go Segmenter built on connected-component
// labelling.
//
// Foreground (white) pixels are grouped with 8-connectivity and background
// pixels with 4-connectivity, the same pairing border-following contour
// tracers use, so a ring of foreground always separates its hole from the
// outside. Every background component that does not touch the image border
// is a hole and belongs to the foreground component directly above its
// first pixel. A foreground component whose first pixel has a hole to its
// left is nested under that hole's owner; otherwise it is top-level.
//
// Contours are numbered in raster order of their first (top-most, then
// left-most) pixel, which is also the order of TopLevel().
type ComponentSegmenter struct{}

const (
	outside   int32 = 0
	unlabeled int32 = -1
)

type component struct {
	first      image.Point
	minX, minY int
	maxX, maxY int
	outline    []image.Point
	parent     int
}

// Segment labels the binary image. Pixel values >= 128 are foreground.
func (ComponentSegmenter) Segment(binary *image.Gray) (*Forest, error) {
	bounds := binary.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return NewForest(nil, 0), nil
	}

	mask := make([]bool, width*height)
	for y := 0; y < height; y++ {
		row := binary.Pix[binary.PixOffset(bounds.Min.X, bounds.Min.Y+y):]
		for x := 0; x < width; x++ {
			mask[y*width+x] = row[x] >= 128
		}
	}

	fg := make([]int32, width*height)
	for i := range fg {
		fg[i] = unlabeled
	}
	components := make([]component, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if !mask[i] || fg[i] != unlabeled {
				continue
			}
			label := int32(len(components))
			components = append(components, labelForeground(mask, fg, x, y, width, height, label))
		}
	}

	holeOwner := labelBackground(mask, fg, width, height)

	for i := range components {
		c := &components[i]
		c.parent = -1
		if c.first.X == 0 {
			continue
		}
		// The pixel left of a component's first pixel is background and
		// belongs to whatever surrounds the component.
		hole := holeOwner.labels[c.first.Y*width+c.first.X-1]
		if hole != outside {
			c.parent = int(holeOwner.owner[hole])
		}
	}

	nodes := make([]*Contour, len(components))
	for i, c := range components {
		nodes[i] = &Contour{
			Bounds:  image.Rect(c.minX+bounds.Min.X, c.minY+bounds.Min.Y, c.maxX+1+bounds.Min.X, c.maxY+1+bounds.Min.Y),
			Outline: c.outline,
		}
	}
	roots := make([]*Contour, 0)
	for i, c := range components {
		if c.parent < 0 {
			roots = append(roots, nodes[i])
			continue
		}
		parent := nodes[c.parent]
		nodes[i].Parent = parent
		parent.Children = append(parent.Children, nodes[i])
	}

	return NewForest(roots, len(nodes)), nil
}

// labelForeground flood-fills one 8-connected foreground component from
// its raster-first pixel using an explicit stack.
func labelForeground(mask []bool, labels []int32, startX, startY, width, height int, label int32) component {
	c := component{
		first: image.Point{X: startX, Y: startY},
		minX:  startX, minY: startY,
		maxX:  startX, maxY: startY,
	}

	stack := []image.Point{{X: startX, Y: startY}}
	labels[startY*width+startX] = label

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < c.minX {
			c.minX = p.X
		}
		if p.X > c.maxX {
			c.maxX = p.X
		}
		if p.Y < c.minY {
			c.minY = p.Y
		}
		if p.Y > c.maxY {
			c.maxY = p.Y
		}
		if isBorderPixel(mask, p.X, p.Y, width, height) {
			c.outline = append(c.outline, p)
		}

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if mask[j] && labels[j] == unlabeled {
					labels[j] = label
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	return c
}

// isBorderPixel reports whether a foreground pixel has a background or
// out-of-image 4-neighbour.
func isBorderPixel(mask []bool, x, y, width, height int) bool {
	if x == 0 || y == 0 || x == width-1 || y == height-1 {
		return true
	}
	i := y*width + x
	return !mask[i-1] || !mask[i+1] || !mask[i-width] || !mask[i+width]
}

type backgroundLabels struct {
	labels []int32
	// owner maps a hole label to the foreground component enclosing it.
	// owner[outside] is unused.
	owner []int32
}

// labelBackground assigns every background pixel a 4-connected component
// label. Components touching the image border share the outside label.
func labelBackground(mask []bool, fg []int32, width, height int) backgroundLabels {
	labels := make([]int32, width*height)
	for i := range labels {
		labels[i] = unlabeled
	}
	owner := []int32{-1}

	var stack []image.Point
	fill := func(x, y int, label int32) {
		labels[y*width+x] = label
		stack = append(stack[:0], image.Point{X: x, Y: y})
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			for _, d := range [4]image.Point{{X: -1}, {X: 1}, {Y: -1}, {Y: 1}} {
				nx, ny := p.X+d.X, p.Y+d.Y
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				j := ny*width + nx
				if !mask[j] && labels[j] == unlabeled {
					labels[j] = label
					stack = append(stack, image.Point{X: nx, Y: ny})
				}
			}
		}
	}

	seedBorder := func(x, y int) {
		i := y*width + x
		if !mask[i] && labels[i] == unlabeled {
			fill(x, y, outside)
		}
	}
	for x := 0; x < width; x++ {
		seedBorder(x, 0)
		seedBorder(x, height-1)
	}
	for y := 0; y < height; y++ {
		seedBorder(0, y)
		seedBorder(width-1, y)
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			i := y*width + x
			if mask[i] || labels[i] != unlabeled {
				continue
			}
			// The pixel above a hole's first pixel is foreground: a
			// background pixel there would already share this label.
			label := int32(len(owner))
			owner = append(owner, fg[i-width])
			fill(x, y, label)
		}
	}

	return backgroundLabels{labels: labels, owner: owner}
}
