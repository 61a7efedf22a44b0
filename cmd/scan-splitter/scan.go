package main

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
)

func newScanCmd(a *app) *cobra.Command {
	var (
		flags     splitFlags
		outputDir string
		name      string
	)

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Scan both sides of a sheet with scanimage, then split and merge",
		Long: `scan runs scanimage for the obverse, waits while the coins or bars are
flipped, scans the reverse and then splits and merges the pair. Scans are
named "{name} - {index} - obverse.tiff" with the first unused index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.apply(cmd, a)
			if outputDir == "" {
				outputDir = a.cfg.Paths.ScansDir
			}
			if name == "" {
				name = time.Now().Format("2006-01-02")
			}

			s := a.cfg.NewScanner(a.logger)
			errOut := cmd.ErrOrStderr()
			in := bufio.NewReader(cmd.InOrStdin())

			spin := newSpinner(errOut, "scanning obverse")
			spin.Start()
			obverse, reverse, err := s.ScanPair(cmd.Context(), outputDir, name, func() error {
				spin.Stop()
				success(cmd.OutOrStdout(), "Obverse scanned")
				return waitForFlip(cmd.OutOrStdout(), in, func() {
					spin.Suffix = " scanning reverse"
					spin.Start()
				})
			})
			spin.Stop()
			if err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Scanned %s and %s", cyan(obverse), cyan(reverse))

			_, err = runSplit(cmd, a, obverse, reverse)
			return err
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&outputDir, "scan-dir", "", "directory receiving raw scans (default from config)")
	cmd.Flags().StringVarP(&name, "image-name", "n", "", "name given to the scans (default today's date)")
	return cmd
}

// waitForFlip prompts the operator and blocks until a line is read.
func waitForFlip(w io.Writer, r *bufio.Reader, resume func()) error {
	fmt.Fprint(w, "Press Enter after flipping coins/bars on scanner...")
	if _, err := r.ReadString('\n'); err != nil && err != io.EOF {
		return fmt.Errorf("failed to read confirmation: %w", err)
	}
	resume()
	return nil
}
