package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ironsheep/scan-splitter/internal/inventory"
)

// errInvalidNames makes the command exit 1 after the CSV is written.
var errInvalidNames = errors.New("invalid file names found")

func newInventoryCmd(a *app) *cobra.Command {
	var (
		outputDir string
		suggest   bool
	)

	cmd := &cobra.Command{
		Use:   "inventory DIR",
		Short: "Build a CSV inventory from named merged images",
		Long: `inventory reads every DIR/merged/*.png named "<name> <value> <ozt|g>.png"
and writes one CSV row per image to <DIR name>.csv. Images with other names
are listed and the command exits with status 1.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := args[0]
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Iterating over scanned and named images in %s\n", cyan(dir))

			report, err := inventory.Build(dir)
			if err != nil {
				return err
			}
			for _, it := range report.Items {
				fmt.Fprintf(out, "  %-40s %s\n", it.Name, it.Weight)
			}

			path, err := inventory.Save(report, dir, outputDir)
			if err != nil {
				return err
			}
			success(out, "%d items written to %s (%.3f ozt)", len(report.Items), cyan(path), report.TotalOzt())

			if len(report.Invalid) == 0 {
				return nil
			}

			failure(out, "%d invalid filenames:", len(report.Invalid))
			for _, p := range report.Invalid {
				fmt.Fprintf(out, "  %s\n", p)
			}

			if suggest {
				suggestions, err := inventory.Suggest(a.cfg.NewOCRReader(), report.Invalid)
				if err != nil {
					return err
				}
				for _, s := range suggestions {
					if s.Filename == "" {
						warning(out, "%s: no weight found", s.Path)
						continue
					}
					fmt.Fprintf(out, "  %s -> %s\n", s.Path, green(s.Filename))
				}
			}

			a.logger.Error().Int("invalid", len(report.Invalid)).Msg("Aborting.")
			return errInvalidNames
		},
	}
	cmd.Flags().StringVar(&outputDir, "output-dir", ".", "directory receiving the CSV file")
	cmd.Flags().BoolVar(&suggest, "suggest", false, "read stamped weights with OCR for invalid names")
	return cmd
}
