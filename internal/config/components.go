package config

import (
	"github.com/rs/zerolog"

	"github.com/ironsheep/scan-splitter/internal/archive"
	"github.com/ironsheep/scan-splitter/internal/imaging"
	"github.com/ironsheep/scan-splitter/internal/ocr"
	"github.com/ironsheep/scan-splitter/internal/scanner"
	"github.com/ironsheep/scan-splitter/internal/splitter"
)

// ArchiveStore returns the snapshot store selected by the archive section.
func (c *Config) ArchiveStore(logger zerolog.Logger) archive.Store {
	if !c.Archive.Enabled {
		return archive.Discard{}
	}
	d := archive.NewDirectory(c.Archive.Dir, c.Archive.Scale)
	d.Logger = logger
	return d
}

// NewExtractor builds an Extractor writing crops to CropDir. params
// replaces the split section when it is not nil. A nil cache gets a fresh
// one.
func (c *Config) NewExtractor(params *splitter.Params, cache *imaging.ImageCache, logger zerolog.Logger) (*splitter.Extractor, error) {
	p := c.Split
	if params != nil {
		p = *params
	}

	outline, err := imaging.ParseHexColor(c.Archive.OutlineColor)
	if err != nil {
		return nil, err
	}

	e := splitter.NewExtractor(p, c.CropDir())
	e.Archive = c.ArchiveStore(logger)
	e.OutlineColor = outline
	e.Logger = logger
	if cache != nil {
		e.Cache = cache
	}
	return e, nil
}

// NewPipeline builds a Pipeline merging into MergeDir.
func (c *Config) NewPipeline(params *splitter.Params, cache *imaging.ImageCache, logger zerolog.Logger) (*splitter.Pipeline, error) {
	e, err := c.NewExtractor(params, cache, logger)
	if err != nil {
		return nil, err
	}
	p := splitter.NewPipeline(e, c.MergeDir())
	p.Logger = logger
	return p, nil
}

// NewScanner builds a Scanner from the scanner section.
func (c *Config) NewScanner(logger zerolog.Logger) *scanner.Scanner {
	s := scanner.New(scanner.Options{
		Binary:     c.Scanner.Binary,
		Device:     c.Scanner.Device,
		Resolution: c.Scanner.Resolution,
		Format:     c.Scanner.Format,
		Timeout:    c.Scanner.Timeout,
	})
	s.Logger = logger
	return s
}

// NewOCRReader builds a Reader from the ocr section.
func (c *Config) NewOCRReader() *ocr.Reader {
	r := ocr.NewReader(c.OCR.Language)
	r.TessdataPrefix = c.OCR.TessdataPrefix
	return r
}
