// Package imaging provides the image I/O and drawing operations used by the
// scan splitter.
//
// It loads scans (TIFF from the scanner, or PNG/JPEG/GIF), crops detected
// regions out of them, writes results to disk, and draws the diagnostic
// overlays stored in the archive. All operations work with standard Go
// image.Image types.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The drawing helpers mutate
// the *image.RGBA they are given and must not be called concurrently on the
// same image.
//
// # Output Formats
//
// Save chooses the encoder from the file extension, so callers decide the
// output format by naming the file. Crops and merged images are written as
// PNG to stay lossless.
package imaging
