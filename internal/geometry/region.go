// Package geometry provides the axis-aligned bounding box used to describe
// an object detected on a scanned sheet.
//
// All coordinates are integer pixel positions in source-image space with the
// origin at the top-left corner. A Region is a value: every transform
// returns a new Region and leaves the receiver untouched.
package geometry

import (
	"fmt"
	"image"
	"math"
)

// Point is a position in continuous image space. Centroids are not
// necessarily integral, so Point uses float64 components.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Distance returns the Euclidean distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Region is an axis-aligned rectangle in source-image pixel coordinates.
//
// (X, Y) is the top-left corner (inclusive); W and H are the extents in
// pixels. A Region is valid only when both W and H are positive.
type Region struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// FromRect converts an image.Rectangle (exclusive Max) into a Region.
func FromRect(r image.Rectangle) Region {
	return Region{X: r.Min.X, Y: r.Min.Y, W: r.Dx(), H: r.Dy()}
}

// Valid reports whether the region has positive width and height.
func (r Region) Valid() bool {
	return r.W > 0 && r.H > 0
}

// Area returns W*H in square pixels.
func (r Region) Area() int {
	return r.W * r.H
}

// Centroid returns the geometric centre (X + W/2, Y + H/2).
func (r Region) Centroid() Point {
	return Point{
		X: float64(r.X) + float64(r.W)/2,
		Y: float64(r.Y) + float64(r.H)/2,
	}
}

// Expand maps a region found in a border-cropped working image back into
// full-scan coordinates and adds a margin around it.
//
// The origin moves by offset-padding on both axes and each dimension grows
// by 2*padding. offset is the number of pixels that were cut from each edge
// of the scan before detection; padding is the extra margin kept around the
// object so it is not clipped.
func (r Region) Expand(padding, offset int) Region {
	return Region{
		X: r.X + offset - padding,
		Y: r.Y + offset - padding,
		W: r.W + 2*padding,
		H: r.H + 2*padding,
	}
}

// Shrink is the exact inverse of Expand with the same arguments.
func (r Region) Shrink(padding, offset int) Region {
	return Region{
		X: r.X - offset + padding,
		Y: r.Y - offset + padding,
		W: r.W - 2*padding,
		H: r.H - 2*padding,
	}
}

// Translate moves the region by (dx, dy).
func (r Region) Translate(dx, dy int) Region {
	return Region{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Rect returns the region as an image.Rectangle with exclusive Max.
func (r Region) Rect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// Clip intersects the region with bounds. The boolean is false when
// nothing of the region lies inside bounds.
func (r Region) Clip(bounds image.Rectangle) (Region, bool) {
	clipped := r.Rect().Intersect(bounds)
	if clipped.Empty() {
		return Region{}, false
	}
	return FromRect(clipped), true
}

// AspectRatio returns H/W. It returns 0 for a region with no width.
func (r Region) AspectRatio() float64 {
	if r.W == 0 {
		return 0
	}
	return float64(r.H) / float64(r.W)
}

func (r Region) String() string {
	return fmt.Sprintf("Region(area=%d, w=%d, h=%d, upper_left=(%d,%d), lower_right=(%d,%d))",
		r.Area(), r.W, r.H, r.X, r.Y, r.X+r.W, r.Y+r.H)
}
