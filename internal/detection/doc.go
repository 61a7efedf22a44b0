// Package detection finds separate physical objects on a flatbed scan.
//
// The package provides the individual image-processing stages used to turn a
// scanned sheet into a set of object outlines, plus a Segmenter that groups
// the final binary image into a forest of nested contours.
//
// # Pipeline
//
// The stages are exported separately so the caller can archive every
// intermediate image:
//
//  1. Grayscale: collapse the colour scan to luminance
//  2. Blur: Gaussian smoothing to suppress paper texture and dust
//  3. Threshold: global binarisation at the Otsu level
//  4. Open (and optionally Close): square morphology to remove specks
//  5. Invert: objects become white on a black background
//  6. Segment: label the white regions and nest them into a forest
//
// Only top-level contours of the forest describe whole objects. Anything
// nested below a top-level contour is a hole or a marking on the object
// itself and is ignored by callers.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Segmenters
//
// ComponentSegmenter is a pure Go implementation based on connected-component
// labelling and is always available. Builds tagged with "gocv" also provide
// ContourSegmenter, which delegates to OpenCV's findContours, and make it the
// DefaultSegmenter. Both produce the same set of top-level bounding boxes for
// the same binary input.
//
// # Limitations
//
// The pipeline assumes objects are darker than the scanner lid. Objects that
// touch each other on the glass merge into a single region, and an object
// touching the sheet edge after border reduction is still detected but its
// box is clipped by the working image.
package detection
