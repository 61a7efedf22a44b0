package detection

import "image"

// Segmenter turns a binary image (objects white, background black) into a
// forest of contours. Implementations differ in how they trace outlines but
// agree on nesting: a contour lying inside another one is that contour's
// descendant, and the roots are the outlines with no enclosing parent.
type Segmenter interface {
	Segment(binary *image.Gray) (*Forest, error)
}

// Contour is one node of a segmentation forest.
type Contour struct {
	// Bounds is the axis-aligned bounding rectangle of the outline in the
	// coordinate space of the segmented image (exclusive Max).
	Bounds image.Rectangle

	// Outline holds the border pixels of the contour. It is only used for
	// diagnostic overlays, so its density depends on the segmenter.
	Outline []image.Point

	// Parent is nil for top-level contours.
	Parent *Contour

	// Children are the contours directly enclosed by this one, in
	// traversal order.
	Children []*Contour
}

// Forest is the result of segmenting one binary image.
type Forest struct {
	roots []*Contour
	size  int
}

// NewForest builds a forest from its root contours. size is the total
// number of contours including nested ones.
func NewForest(roots []*Contour, size int) *Forest {
	return &Forest{roots: roots, size: size}
}

// TopLevel returns the contours that have no enclosing parent, in
// traversal order. Each one is treated as a separate physical object;
// nested contours are holes or markings inside an object.
func (f *Forest) TopLevel() []*Contour {
	if f == nil {
		return nil
	}
	return f.roots
}

// Len returns the total number of contours at every depth.
func (f *Forest) Len() int {
	if f == nil {
		return 0
	}
	return f.size
}

// Walk visits every contour depth-first, roots first, calling fn with the
// nesting depth (0 for top-level contours).
func (f *Forest) Walk(fn func(c *Contour, depth int)) {
	if f == nil {
		return
	}
	var visit func(c *Contour, depth int)
	visit = func(c *Contour, depth int) {
		fn(c, depth)
		for _, child := range c.Children {
			visit(child, depth+1)
		}
	}
	for _, root := range f.roots {
		visit(root, 0)
	}
}
