//go:build !gocv

package detection

// DefaultSegmenter returns the pure Go segmenter. Build with -tags gocv to
// use OpenCV instead.
func DefaultSegmenter() Segmenter {
	return ComponentSegmenter{}
}
