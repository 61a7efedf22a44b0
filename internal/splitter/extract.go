package splitter

import (
	"fmt"
	"image"
	"image/color"

	"github.com/rs/zerolog"

	"github.com/ironsheep/scan-splitter/internal/archive"
	"github.com/ironsheep/scan-splitter/internal/detection"
	"github.com/ironsheep/scan-splitter/internal/geometry"
	"github.com/ironsheep/scan-splitter/internal/imaging"
)

// Snapshot stage names, in the order they are archived.
const (
	StageGray          = "gray"
	StageBlurred       = "blurred"
	StageThreshold     = "threshold"
	StageOpening       = "opening"
	StageClosing       = "closing"
	StageNegated       = "negated"
	StageContours      = "contours"
	StageBoundingBoxes = "bounding_boxes"
)

// boxThickness is the stroke width of the bounding-box overlay.
const boxThickness = 10

// Extractor finds the objects on a scan and crops each one from the raw
// image.
type Extractor struct {
	Params Params

	// CropDir receives the "{n}_{stem}.png" crops.
	CropDir string

	Segmenter detection.Segmenter
	Archive   archive.Store
	Cache     *imaging.ImageCache

	// OutlineColor draws contour outlines in the contours snapshot.
	OutlineColor color.Color

	Logger zerolog.Logger
}

// NewExtractor creates an Extractor with the default segmenter, no
// archiving and no logging.
func NewExtractor(params Params, cropDir string) *Extractor {
	return &Extractor{
		Params:       params,
		CropDir:      cropDir,
		Segmenter:    detection.DefaultSegmenter(),
		Archive:      archive.Discard{},
		Cache:        imaging.NewImageCache(),
		OutlineColor: color.RGBA{0, 255, 0, 255},
		Logger:       zerolog.Nop(),
	}
}

// Extract runs detection on the scan at path and returns its crops in
// detection order. A scan with no object larger than MinimumArea yields an
// empty SplitScan and no error.
func (e *Extractor) Extract(path string) (SplitScan, error) {
	if err := e.Params.Validate(); err != nil {
		return SplitScan{}, err
	}

	raw, err := e.Cache.Load(path)
	if err != nil {
		return SplitScan{}, fmt.Errorf("failed to load scan: %w", err)
	}

	bounds := raw.Bounds()
	margin := e.Params.ScanBorderReduction
	if bounds.Dx() <= 2*margin || bounds.Dy() <= 2*margin {
		return SplitScan{}, fmt.Errorf("%w: %dx%d scan with %d px border", ErrScanTooSmall, bounds.Dx(), bounds.Dy(), margin)
	}

	arch, err := e.Archive.Open(path)
	if err != nil {
		return SplitScan{}, err
	}

	working, err := imaging.Crop(raw, bounds.Inset(margin))
	if err != nil {
		return SplitScan{}, fmt.Errorf("failed to reduce scan border: %w", err)
	}

	negated, err := e.binarize(working, arch)
	if err != nil {
		return SplitScan{}, err
	}

	forest, err := e.Segmenter.Segment(negated)
	if err != nil {
		return SplitScan{}, fmt.Errorf("failed to segment scan: %w", err)
	}

	cropper, err := NewCropper(e.CropDir, path, e.Cache)
	if err != nil {
		return SplitScan{}, err
	}

	// Working-image coordinates start at (0, 0); this maps them back onto
	// the raw scan.
	origin := bounds.Min.Add(image.Pt(margin, margin))

	contours := imaging.NewCanvas(bounds, color.Black)
	boxes := imaging.NewCanvas(bounds, color.Black)
	roots := forest.TopLevel()
	palette := imaging.Palette(len(roots))
	split := SplitScan{Source: path, Crops: make([]Crop, 0)}

	// crops already cached are dropped when a later step fails
	fail := func(err error) (SplitScan, error) {
		for _, c := range split.Crops {
			e.Cache.Evict(c.Path)
		}
		return SplitScan{}, err
	}

	// every contour is outlined, nested ones included
	forest.Walk(func(c *detection.Contour, _ int) {
		outline := make([]image.Point, len(c.Outline))
		for j, p := range c.Outline {
			outline[j] = p.Add(origin)
		}
		imaging.DrawPoints(contours, outline, e.OutlineColor)
	})

	for i, c := range roots {
		region := geometry.FromRect(c.Bounds)
		if region.Area() <= e.Params.MinimumArea {
			continue
		}

		expanded := region.Expand(e.Params.BorderReduction, margin).Translate(bounds.Min.X, bounds.Min.Y)
		clipped, ok := expanded.Clip(bounds)
		if !ok {
			continue
		}
		e.Logger.Debug().Stringer("region", clipped).Msg("accepted region")

		crop, err := cropper.Crop(raw, clipped)
		if err != nil {
			return fail(err)
		}
		split.Crops = append(split.Crops, crop)

		imaging.DrawRect(boxes, clipped.Rect(), boxThickness, palette[i])
		imaging.DrawIndex(boxes, clipped.Rect(), crop.Index, color.White)
	}

	if err := arch.Archive(StageContours, contours); err != nil {
		return fail(err)
	}
	if err := arch.Archive(StageBoundingBoxes, boxes); err != nil {
		return fail(err)
	}

	e.Logger.Info().
		Str("scan", path).
		Int("objects", split.Len()).
		Int("contours", forest.Len()).
		Msg("Number of detected objects")

	return split, nil
}

// binarize runs the stages from grayscale to the inverted binary image,
// archiving each intermediate.
func (e *Extractor) binarize(working image.Image, arch archive.Archiver) (*image.Gray, error) {
	gray := detection.Grayscale(working)
	if err := arch.Archive(StageGray, gray); err != nil {
		return nil, err
	}

	blurred := detection.Blur(gray, e.Params.BlurRadius)
	if err := arch.Archive(StageBlurred, blurred); err != nil {
		return nil, err
	}

	level := detection.OtsuLevel(blurred)
	e.Logger.Debug().Uint8("level", level).Msg("otsu threshold")
	binary := detection.Binarize(blurred, level)
	if err := arch.Archive(StageThreshold, binary); err != nil {
		return nil, err
	}

	binary = detection.Open(binary, e.Params.KernelSize)
	if err := arch.Archive(StageOpening, binary); err != nil {
		return nil, err
	}

	if e.Params.Close {
		binary = detection.Close(binary, e.Params.KernelSize)
		if err := arch.Archive(StageClosing, binary); err != nil {
			return nil, err
		}
	}

	negated := detection.Invert(binary)
	if err := arch.Archive(StageNegated, negated); err != nil {
		return nil, err
	}
	return negated, nil
}
