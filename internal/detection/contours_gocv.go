//go:build gocv

package detection

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// ContourSegmenter delegates contour tracing to OpenCV (findContours in
// tree retrieval mode with simple chain approximation).
//
// OpenCV reports holes as their own contours, so the levels below a
// top-level contour alternate between holes and nested objects.
type ContourSegmenter struct{}

// Segment traces all contours of the binary image and rebuilds the
// hierarchy as a Forest.
func (ContourSegmenter) Segment(binary *image.Gray) (*Forest, error) {
	mat, err := gocv.ImageGrayToMatGray(binary)
	if err != nil {
		return nil, fmt.Errorf("failed to convert binary image: %w", err)
	}
	defer mat.Close()

	hierarchy := gocv.NewMat()
	defer hierarchy.Close()

	contours := gocv.FindContoursWithParams(mat, &hierarchy, gocv.RetrievalTree, gocv.ChainApproxSimple)
	defer contours.Close()

	n := contours.Size()
	if n == 0 {
		return NewForest(nil, 0), nil
	}

	offset := binary.Bounds().Min
	nodes := make([]*Contour, n)
	for i := 0; i < n; i++ {
		pv := contours.At(i)
		points := pv.ToPoints()
		for j := range points {
			points[j] = points[j].Add(offset)
		}
		nodes[i] = &Contour{
			Bounds:  gocv.BoundingRect(pv).Add(offset),
			Outline: points,
		}
	}

	// Each hierarchy entry is [next, previous, first child, parent].
	entry := func(i int) gocv.Veci {
		return hierarchy.GetVeciAt(0, i)
	}

	for i := 0; i < n; i++ {
		if parent := int(entry(i)[3]); parent >= 0 {
			nodes[i].Parent = nodes[parent]
		}
	}

	// Contour 0 is always top-level; its next links enumerate the rest.
	var roots []*Contour
	for i := 0; i >= 0; i = int(entry(i)[0]) {
		roots = append(roots, nodes[i])
	}

	// Rebuild child lists in sibling order by following next links from
	// each first child.
	for i := 0; i < n; i++ {
		for c := int(entry(i)[2]); c >= 0; c = int(entry(c)[0]) {
			nodes[i].Children = append(nodes[i].Children, nodes[c])
		}
	}

	return NewForest(roots, n), nil
}
