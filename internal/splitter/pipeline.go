package splitter

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ironsheep/scan-splitter/internal/archive"
)

// Result summarises one obverse/reverse run.
type Result struct {
	// Merged lists the composite images in pair order.
	Merged []string `json:"merged"`

	// Pairs holds the matched crops, aligned with Merged.
	Pairs []Pair `json:"pairs"`

	ObverseCount int `json:"obverse_count"`
	ReverseCount int `json:"reverse_count"`

	// Mismatch is the number of crops left without a partner.
	Mismatch int `json:"mismatch"`
}

// Pipeline splits an obverse and a reverse scan and merges the matched
// crops.
type Pipeline struct {
	Extractor *Extractor
	Matcher   Matcher

	// MergeDir receives the merged images.
	MergeDir string

	// Progress, when set, is called after each merged pair.
	Progress func(done, total int, merged string)

	Logger zerolog.Logger
}

// NewPipeline creates a Pipeline using the greedy matcher.
func NewPipeline(extractor *Extractor, mergeDir string) *Pipeline {
	return &Pipeline{
		Extractor: extractor,
		Matcher:   GreedyMatcher{},
		MergeDir:  mergeDir,
		Logger:    zerolog.Nop(),
	}
}

// Run processes one pair of scans. Differing object counts are reported in
// Result.Mismatch rather than failing the run; the pairs that could be
// matched are still merged.
//
// Both scans write crops and snapshots named after their stem, so scans
// sharing a stem are rejected with ErrSameStem.
func (p *Pipeline) Run(obverse, reverse string) (*Result, error) {
	if stem := archive.Stem(obverse); stem == archive.Stem(reverse) {
		return nil, fmt.Errorf("%w: %q", ErrSameStem, stem)
	}

	var front, back SplitScan
	cache := p.Extractor.Cache
	defer func() {
		cache.Evict(obverse)
		cache.Evict(reverse)
		for _, c := range front.Crops {
			cache.Evict(c.Path)
		}
		for _, c := range back.Crops {
			cache.Evict(c.Path)
		}
	}()

	var err error
	front, err = p.Extractor.Extract(obverse)
	if err != nil {
		return nil, fmt.Errorf("failed to split obverse: %w", err)
	}
	back, err = p.Extractor.Extract(reverse)
	if err != nil {
		return nil, fmt.Errorf("failed to split reverse: %w", err)
	}

	match := p.Matcher.Match(front, back)
	for _, pair := range match.Pairs {
		p.Logger.Debug().
			Float64("distance", pair.Distance).
			Stringer("obverse", pair.Obverse.Region).
			Stringer("reverse", pair.Reverse.Region).
			Msg("matched crops")
	}

	result := &Result{
		Merged:       make([]string, 0, len(match.Pairs)),
		Pairs:        match.Pairs,
		ObverseCount: front.Len(),
		ReverseCount: back.Len(),
		Mismatch:     match.Mismatch(),
	}
	if front.Len() != back.Len() {
		p.Logger.Error().
			Int("obverse", front.Len()).
			Int("reverse", back.Len()).
			Msg("For the two scans, the number of split images is not equal")
	}

	merger, err := NewMerger(p.MergeDir, cache)
	if err != nil {
		return nil, err
	}
	merger.Logger = p.Logger

	for i, pair := range match.Pairs {
		merged, err := merger.Merge(pair.Obverse, pair.Reverse)
		if err != nil {
			return nil, err
		}
		result.Merged = append(result.Merged, merged)
		if p.Progress != nil {
			p.Progress(i+1, len(match.Pairs), merged)
		}
	}

	return result, nil
}
