package main

import (
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ironsheep/scan-splitter/internal/config"
	"github.com/ironsheep/scan-splitter/internal/logging"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfgFile   string
	envFile   string
	verbose   bool
	noColor   bool
	logFormat string

	cfg    *config.Config
	logger zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "scan-splitter",
		Short: "Split flatbed scans of coins and bars into individual images",
		Long: `scan-splitter finds every coin or bar on a pair of flatbed scans, crops each
one, pairs the obverse and reverse crops by position and merges each pair
into a single image. Named merged images can then be turned into a CSV
inventory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file path")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "dotenv file with SCAN_SPLITTER_* variables")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "disable colored output")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format, console or json (overrides config)")

	root.AddCommand(
		newSplitCmd(a),
		newScanCmd(a),
		newInventoryCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

func (a *app) init() error {
	if a.noColor {
		color.NoColor = true
	}

	cfg, err := config.Load(a.cfgFile, a.envFile)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	a.cfg = cfg

	a.logger = logging.New(logging.Options{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		NoColor: a.noColor,
	})
	a.logger.Debug().
		Str("config", a.cfgFile).
		Str("results_dir", cfg.Paths.ResultsDir).
		Bool("archive", cfg.Archive.Enabled).
		Msg("configuration loaded")
	return nil
}
