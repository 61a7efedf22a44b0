package splitter

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	scanimg "github.com/ironsheep/scan-splitter/internal/imaging"
)

// VerticalThreshold is the height/width ratio of the first image below
// which a pair is stacked vertically.
const VerticalThreshold = 0.95

// TimestampLayout formats the time prefix of merged file names.
const TimestampLayout = "2006-01-02 15-04-05"

// Layout is the arrangement of a merged pair.
type Layout int

const (
	// Horizontal places the first image left of the second.
	Horizontal Layout = iota
	// Vertical places the first image above the second.
	Vertical
)

func (l Layout) String() string {
	if l == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// ChooseLayout picks the arrangement from the first crop's aspect ratio.
func ChooseLayout(first Crop) Layout {
	if first.Region.AspectRatio() < VerticalThreshold {
		return Vertical
	}
	return Horizontal
}

// CanvasSize returns the size of the merged image for the given layout.
func CanvasSize(layout Layout, a, b Crop) image.Point {
	if layout == Vertical {
		return image.Pt(max(a.Width(), b.Width()), a.Height()+b.Height())
	}
	return image.Pt(a.Width()+b.Width(), max(a.Height(), b.Height()))
}

// Merger composites pairs of crops into single images. Files are named
// "{timestamp}_{n}.png" with n counting from 0 for each Merger.
type Merger struct {
	dir     string
	next    int
	results []string
	cache   *scanimg.ImageCache

	// Now supplies the timestamp used in file names.
	Now func() time.Time

	Logger zerolog.Logger
}

// NewMerger creates dir if needed. Crops are read through cache.
func NewMerger(dir string, cache *scanimg.ImageCache) (*Merger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create merge directory: %w", err)
	}
	if cache == nil {
		cache = scanimg.NewImageCache()
	}
	return &Merger{dir: dir, cache: cache, Now: time.Now, Logger: zerolog.Nop()}, nil
}

// Merge places a and b on an opaque white canvas and writes the result.
// Images are pasted at their natural size, aligned to the top-left.
func (m *Merger) Merge(a, b Crop) (string, error) {
	imgA, err := m.cache.Load(a.Path)
	if err != nil {
		return "", fmt.Errorf("failed to load crop %s: %w", a.Path, err)
	}
	imgB, err := m.cache.Load(b.Path)
	if err != nil {
		return "", fmt.Errorf("failed to load crop %s: %w", b.Path, err)
	}

	layout := ChooseLayout(a)
	size := CanvasSize(layout, a, b)

	canvas := imaging.New(size.X, size.Y, color.White)
	canvas = imaging.Paste(canvas, imgA, image.Pt(0, 0))
	if layout == Vertical {
		canvas = imaging.Paste(canvas, imgB, image.Pt(0, a.Height()))
	} else {
		canvas = imaging.Paste(canvas, imgB, image.Pt(a.Width(), 0))
	}

	path := filepath.Join(m.dir, fmt.Sprintf("%s_%d.png", m.Now().Format(TimestampLayout), m.next))
	if err := scanimg.Save(canvas, path); err != nil {
		return "", err
	}
	m.next++
	m.results = append(m.results, path)

	m.Logger.Info().
		Str("layout", layout.String()).
		Str("obverse", a.Path).
		Str("reverse", b.Path).
		Str("merged", path).
		Msg("merged pair")

	return path, nil
}

// Results returns every path written by this Merger, in order.
func (m *Merger) Results() []string {
	out := make([]string, len(m.results))
	copy(out, m.results)
	return out
}
