// Package archive stores the intermediate images produced while a scan is
// split, so a bad crop can be traced back to the stage that caused it.
//
// The extractor talks to an Archiver through an interface. Production code
// writes PNG files to a directory; tests substitute Memory or Discard and
// run without touching the filesystem.
package archive

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/ironsheep/scan-splitter/internal/imaging"
)

// Archiver records the snapshots of one source scan. Every call to Archive
// takes the next stage index, starting at 1.
type Archiver interface {
	Archive(stage string, img image.Image) error
}

// Store opens one Archiver per source scan.
type Store interface {
	Open(sourcePath string) (Archiver, error)
}

// Stem returns the file name of path up to its first dot, so
// "scan - 1 - obverse.tiff" becomes "scan - 1 - obverse".
func Stem(path string) string {
	name := filepath.Base(path)
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i]
	}
	return name
}

// SnapshotName formats the file name of one snapshot.
func SnapshotName(stem string, index int, stage string) string {
	return fmt.Sprintf("%s_%d_%s.png", stem, index, stage)
}

// Directory writes snapshots as PNG files into Dir.
type Directory struct {
	// Dir is created on Open if it does not exist.
	Dir string

	// Scale is the number of pyramid levels applied before writing; each
	// level doubles both dimensions. 0 writes images at their natural size.
	Scale int

	Logger zerolog.Logger
}

// NewDirectory creates a Directory store with logging disabled.
func NewDirectory(dir string, scale int) *Directory {
	return &Directory{Dir: dir, Scale: scale, Logger: zerolog.Nop()}
}

// Open prepares the directory and returns an Archiver for sourcePath.
func (d *Directory) Open(sourcePath string) (Archiver, error) {
	if d.Scale < 0 {
		return nil, fmt.Errorf("invalid archive scale %d", d.Scale)
	}
	if d.Dir == "" {
		return nil, fmt.Errorf("archive directory not set")
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &directoryArchiver{
		dir:    d.Dir,
		stem:   Stem(sourcePath),
		scale:  d.Scale,
		next:   1,
		logger: d.Logger.With().Str("source", filepath.Base(sourcePath)).Logger(),
	}, nil
}

type directoryArchiver struct {
	dir    string
	stem   string
	scale  int
	next   int
	logger zerolog.Logger
}

func (a *directoryArchiver) Archive(stage string, img image.Image) error {
	path := filepath.Join(a.dir, SnapshotName(a.stem, a.next, stage))
	if err := imaging.Save(imaging.PyramidUp(img, a.scale), path); err != nil {
		return fmt.Errorf("failed to archive %s: %w", stage, err)
	}
	a.logger.Debug().Str("stage", stage).Int("index", a.next).Str("path", path).Msg("archived snapshot")
	a.next++
	return nil
}

// Discard drops every snapshot. It is both a Store and an Archiver.
type Discard struct{}

// Open returns Discard itself.
func (Discard) Open(string) (Archiver, error) { return Discard{}, nil }

// Archive does nothing.
func (Discard) Archive(string, image.Image) error { return nil }

// Snapshot is one image kept by a Memory store.
type Snapshot struct {
	Source string
	Name   string
	Index  int
	Stage  string
	Image  image.Image
}

// Memory keeps snapshots in memory. It is safe for concurrent use.
type Memory struct {
	mu        sync.Mutex
	snapshots []Snapshot
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Open returns an Archiver whose snapshots are appended to m.
func (m *Memory) Open(sourcePath string) (Archiver, error) {
	return &memoryArchiver{store: m, source: sourcePath, stem: Stem(sourcePath), next: 1}, nil
}

// Snapshots returns a copy of every snapshot in archive order.
func (m *Memory) Snapshots() []Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Snapshot, len(m.snapshots))
	copy(out, m.snapshots)
	return out
}

// Stages returns the stage names archived for sourcePath, in order.
func (m *Memory) Stages(sourcePath string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var stages []string
	for _, s := range m.snapshots {
		if s.Source == sourcePath {
			stages = append(stages, s.Stage)
		}
	}
	return stages
}

type memoryArchiver struct {
	store  *Memory
	source string
	stem   string
	next   int
}

func (a *memoryArchiver) Archive(stage string, img image.Image) error {
	a.store.mu.Lock()
	a.store.snapshots = append(a.store.snapshots, Snapshot{
		Source: a.source,
		Name:   SnapshotName(a.stem, a.next, stage),
		Index:  a.next,
		Stage:  stage,
		Image:  img,
	})
	a.store.mu.Unlock()
	a.next++
	return nil
}
