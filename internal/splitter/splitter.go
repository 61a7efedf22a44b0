// Package splitter cuts a flatbed scan of several coins or bars into one
// image per object and joins the obverse and reverse images of each object.
//
// A run takes two scans of the same sheet, one of each side:
//
//  1. Extractor finds every object on a scan and crops it from the raw image
//  2. Matcher pairs obverse crops with reverse crops by nearest centroid
//  3. Merger composites each pair into a single image
//
// Pipeline drives the three steps for one pair of scans. Every step is
// synchronous. An Extractor may be used from several goroutines as long as
// their output paths do not collide.
package splitter

import (
	"errors"
	"fmt"

	"github.com/ironsheep/scan-splitter/internal/geometry"
)

var (
	// ErrInvalidParams is returned when extraction parameters are out of range.
	ErrInvalidParams = errors.New("invalid split parameters")

	// ErrScanTooSmall is returned when the border reduction would remove
	// the whole scan.
	ErrScanTooSmall = errors.New("scan too small for border reduction")

	// ErrSameStem is returned when the obverse and reverse scans would
	// write crops under the same file names.
	ErrSameStem = errors.New("obverse and reverse scans share a file stem")
)

// Crop is one object cut out of a scan.
type Crop struct {
	// Index is the crop's position in the order it was produced, from 0.
	Index int `json:"index"`

	// Region is the crop's location in the raw scan.
	Region geometry.Region `json:"region"`

	// Path is the PNG written for this crop.
	Path string `json:"path"`
}

// Width returns the crop width in pixels.
func (c Crop) Width() int { return c.Region.W }

// Height returns the crop height in pixels.
func (c Crop) Height() int { return c.Region.H }

// Centroid returns the centre of the crop in scan coordinates.
func (c Crop) Centroid() geometry.Point { return c.Region.Centroid() }

// SplitScan is the ordered set of crops taken from one scan.
type SplitScan struct {
	Source string `json:"source"`
	Crops  []Crop `json:"crops"`
}

// Len returns the number of crops.
func (s SplitScan) Len() int { return len(s.Crops) }

// Params controls object extraction.
type Params struct {
	// BorderReduction is the margin kept around every detected object.
	BorderReduction int `json:"border_reduction" yaml:"border_reduction"`

	// ScanBorderReduction is cut from every edge of the scan before
	// detection, hiding the lid shadow along the glass edge.
	ScanBorderReduction int `json:"scan_border_reduction" yaml:"scan_border_reduction"`

	// MinimumArea is the bounding box area an object must exceed, in
	// square pixels. Smaller regions are dust or debris.
	MinimumArea int `json:"minimum_area" yaml:"minimum_area"`

	// BlurRadius is the Gaussian blur radius applied before thresholding.
	BlurRadius float64 `json:"blur_radius" yaml:"blur_radius"`

	// KernelSize is the side of the square morphology element.
	KernelSize int `json:"kernel_size" yaml:"kernel_size"`

	// Close adds a morphological closing after the opening.
	Close bool `json:"close" yaml:"close"`
}

// DefaultParams returns the settings tuned for 300 dpi scans of one-ounce
// coins.
func DefaultParams() Params {
	return Params{
		BorderReduction:     50,
		ScanBorderReduction: 50,
		MinimumArea:         22179,
		BlurRadius:          2,
		KernelSize:          8,
	}
}

// Validate reports the first out-of-range parameter.
func (p Params) Validate() error {
	switch {
	case p.BorderReduction < 0:
		return fmt.Errorf("%w: border_reduction must be >= 0, got %d", ErrInvalidParams, p.BorderReduction)
	case p.ScanBorderReduction < 0:
		return fmt.Errorf("%w: scan_border_reduction must be >= 0, got %d", ErrInvalidParams, p.ScanBorderReduction)
	case p.MinimumArea <= 0:
		return fmt.Errorf("%w: minimum_area must be > 0, got %d", ErrInvalidParams, p.MinimumArea)
	case p.BlurRadius < 0:
		return fmt.Errorf("%w: blur_radius must be >= 0, got %v", ErrInvalidParams, p.BlurRadius)
	case p.KernelSize <= 0:
		return fmt.Errorf("%w: kernel_size must be > 0, got %d", ErrInvalidParams, p.KernelSize)
	}
	return nil
}
