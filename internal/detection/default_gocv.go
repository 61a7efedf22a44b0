//go:build gocv

package detection

// DefaultSegmenter returns the OpenCV-backed segmenter.
func DefaultSegmenter() Segmenter {
	return ContourSegmenter{}
}
