package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ironsheep/scan-splitter/internal/splitter"
)

// splitFlags override the split section of the configuration.
type splitFlags struct {
	resultsDir  string
	minimumArea int
	border      int
	scanBorder  int
	close       bool
	noArchive   bool
}

func (f *splitFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.resultsDir, "results-dir", "o", "", "directory receiving cropped/ and merged/ (default from config)")
	cmd.Flags().IntVar(&f.minimumArea, "minimum-area", 0, "bounding box area an object must exceed, in square pixels (default from config)")
	cmd.Flags().IntVar(&f.border, "border-reduction", -1, "margin kept around each object (default from config)")
	cmd.Flags().IntVar(&f.scanBorder, "scan-border-reduction", -1, "pixels cut from every scan edge before detection (default from config)")
	cmd.Flags().BoolVar(&f.close, "close", false, "apply a morphological closing after the opening")
	cmd.Flags().BoolVar(&f.noArchive, "no-archive", false, "do not write intermediate snapshots")
}

// apply copies the flags that were set into a.cfg.
func (f *splitFlags) apply(cmd *cobra.Command, a *app) {
	if f.resultsDir != "" {
		a.cfg.Paths.ResultsDir = f.resultsDir
	}
	if cmd.Flags().Changed("minimum-area") {
		a.cfg.Split.MinimumArea = f.minimumArea
	}
	if cmd.Flags().Changed("border-reduction") {
		a.cfg.Split.BorderReduction = f.border
	}
	if cmd.Flags().Changed("scan-border-reduction") {
		a.cfg.Split.ScanBorderReduction = f.scanBorder
	}
	if cmd.Flags().Changed("close") {
		a.cfg.Split.Close = f.close
	}
	if f.noArchive {
		a.cfg.Archive.Enabled = false
	}
}

func newSplitCmd(a *app) *cobra.Command {
	var flags splitFlags

	cmd := &cobra.Command{
		Use:   "split OBVERSE REVERSE",
		Short: "Split an obverse and a reverse scan and merge the matched objects",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, a)
			_, err := runSplit(cmd, a, args[0], args[1])
			return err
		},
	}
	flags.register(cmd)
	return cmd
}

// runSplit runs the pipeline on one pair of scans and prints the outcome.
func runSplit(cmd *cobra.Command, a *app, obverse, reverse string) (*splitter.Result, error) {
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}

	p, err := a.cfg.NewPipeline(nil, nil, a.logger)
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	var bar *progressbar.ProgressBar
	p.Progress = func(done, total int, merged string) {
		if bar == nil {
			bar = newProgressBar(cmd.ErrOrStderr(), total, "merging")
		}
		_ = bar.Set(done)
	}

	result, err := p.Run(obverse, reverse)
	if err != nil {
		return nil, fmt.Errorf("failed to split %s and %s: %w", obverse, reverse, err)
	}

	if result.Mismatch > 0 {
		warning(out, "obverse has %d objects, reverse has %d: %d left unmatched",
			result.ObverseCount, result.ReverseCount, result.Mismatch)
	}
	success(out, "%d merged images created", len(result.Merged))
	for _, m := range result.Merged {
		fmt.Fprintf(out, "  %s\n", cyan(m))
	}
	return result, nil
}
