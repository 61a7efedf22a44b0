// Package config loads scan-splitter settings from a YAML file, an optional
// .env file and SCAN_SPLITTER_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/scan-splitter/internal/imaging"
	"github.com/ironsheep/scan-splitter/internal/splitter"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "SCAN_SPLITTER_"

// ErrInvalid is returned by Validate and Load for unusable settings.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all scan-splitter settings.
type Config struct {
	Split   splitter.Params `yaml:"split"`
	Paths   PathsConfig     `yaml:"paths"`
	Archive ArchiveConfig   `yaml:"archive"`
	Scanner ScannerConfig   `yaml:"scanner"`
	Log     LogConfig       `yaml:"log"`
	OCR     OCRConfig       `yaml:"ocr"`
}

// PathsConfig holds output and input locations.
type PathsConfig struct {
	// ResultsDir receives the cropped/ and merged/ subdirectories.
	ResultsDir string `yaml:"results_dir"`
	// ScansDir receives raw scans from the scan command.
	ScansDir string `yaml:"scans_dir"`
}

// ArchiveConfig controls intermediate snapshots.
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
	// Scale is the number of pyramid levels snapshots are enlarged by.
	Scale        int    `yaml:"scale"`
	OutlineColor string `yaml:"outline_color"`
}

// ScannerConfig holds scanimage settings.
type ScannerConfig struct {
	Binary     string        `yaml:"binary"`
	Device     string        `yaml:"device"`
	Resolution int           `yaml:"resolution"`
	Format     string        `yaml:"format"`
	Timeout    time.Duration `yaml:"timeout"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console or json
}

// OCRConfig holds settings for reading stamped text.
type OCRConfig struct {
	Language       string `yaml:"language"`
	TessdataPrefix string `yaml:"tessdata_prefix"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Split: splitter.DefaultParams(),
		Paths: PathsConfig{
			ResultsDir: "./results",
			ScansDir:   "~/Pictures/bullion",
		},
		Archive: ArchiveConfig{
			Enabled:      true,
			Dir:          "/tmp/scannedcoinsplitter",
			OutlineColor: "#00FF00",
		},
		Scanner: ScannerConfig{
			Binary:     "scanimage",
			Resolution: 300,
			Format:     "tiff",
			Timeout:    5 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
		OCR: OCRConfig{
			Language: "eng",
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the .env file at envFile (skipped when missing) and the
// environment.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadDotEnv adds the variables in envFile to the environment. Variables
// that are already set keep their value. A missing file is not an error.
func LoadDotEnv(envFile string) error {
	if envFile == "" {
		return nil
	}
	if _, err := os.Stat(envFile); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return nil
}

// Validate reports the first unusable setting.
func (c *Config) Validate() error {
	if err := c.Split.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Paths.ResultsDir == "" {
		return fmt.Errorf("%w: paths.results_dir is empty", ErrInvalid)
	}
	if c.Archive.Enabled && c.Archive.Dir == "" {
		return fmt.Errorf("%w: archive.dir is empty", ErrInvalid)
	}
	if c.Archive.Scale < 0 {
		return fmt.Errorf("%w: archive.scale must be >= 0, got %d", ErrInvalid, c.Archive.Scale)
	}
	if _, err := imaging.ParseHexColor(c.Archive.OutlineColor); err != nil {
		return fmt.Errorf("%w: archive.outline_color: %w", ErrInvalid, err)
	}
	if c.Scanner.Resolution <= 0 {
		return fmt.Errorf("%w: scanner.resolution must be > 0, got %d", ErrInvalid, c.Scanner.Resolution)
	}
	if c.Scanner.Timeout <= 0 {
		return fmt.Errorf("%w: scanner.timeout must be > 0, got %s", ErrInvalid, c.Scanner.Timeout)
	}
	switch c.Scanner.Format {
	case "tiff", "png", "jpeg", "pnm":
	default:
		return fmt.Errorf("%w: unsupported scanner.format %q", ErrInvalid, c.Scanner.Format)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", ErrInvalid, err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("%w: log.format must be console or json, got %q", ErrInvalid, c.Log.Format)
	}
	return nil
}

// CropDir is where individual object crops are written.
func (c *Config) CropDir() string {
	return filepath.Join(c.Paths.ResultsDir, "cropped")
}

// MergeDir is where merged obverse/reverse images are written.
func (c *Config) MergeDir() string {
	return filepath.Join(c.Paths.ResultsDir, "merged")
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Paths.ResultsDir, &c.Paths.ScansDir, &c.Archive.Dir} {
		expanded, err := expandHome(*p)
		if err != nil {
			return err
		}
		*p = expanded
	}
	return nil
}

// expandHome replaces a leading "~" with the user's home directory.
func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", path, err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// applyEnvOverrides applies SCAN_SPLITTER_* variables to cfg.
func applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"RESULTS_DIR":           &cfg.Paths.ResultsDir,
		"SCANS_DIR":             &cfg.Paths.ScansDir,
		"ARCHIVE_DIR":           &cfg.Archive.Dir,
		"ARCHIVE_OUTLINE_COLOR": &cfg.Archive.OutlineColor,
		"SCANNER_BINARY":        &cfg.Scanner.Binary,
		"SCANNER_DEVICE":        &cfg.Scanner.Device,
		"SCANNER_FORMAT":        &cfg.Scanner.Format,
		"LOG_LEVEL":             &cfg.Log.Level,
		"LOG_FORMAT":            &cfg.Log.Format,
		"OCR_LANGUAGE":          &cfg.OCR.Language,
		"TESSDATA_PREFIX":       &cfg.OCR.TessdataPrefix,
	}
	for key, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + key); ok {
			*dst = v
		}
	}

	ints := map[string]*int{
		"BORDER_REDUCTION":      &cfg.Split.BorderReduction,
		"SCAN_BORDER_REDUCTION": &cfg.Split.ScanBorderReduction,
		"MINIMUM_AREA":          &cfg.Split.MinimumArea,
		"KERNEL_SIZE":           &cfg.Split.KernelSize,
		"ARCHIVE_SCALE":         &cfg.Archive.Scale,
		"SCANNER_RESOLUTION":    &cfg.Scanner.Resolution,
	}
	for key, dst := range ints {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not an integer", ErrInvalid, EnvPrefix, key, v)
		}
		*dst = n
	}

	bools := map[string]*bool{
		"CLOSE":           &cfg.Split.Close,
		"ARCHIVE_ENABLED": &cfg.Archive.Enabled,
	}
	for key, dst := range bools {
		v, ok := os.LookupEnv(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s=%q is not a boolean", ErrInvalid, EnvPrefix, key, v)
		}
		*dst = b
	}

	if v, ok := os.LookupEnv(EnvPrefix + "BLUR_RADIUS"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%w: %sBLUR_RADIUS=%q is not a number", ErrInvalid, EnvPrefix, v)
		}
		cfg.Split.BlurRadius = f
	}

	if v, ok := os.LookupEnv(EnvPrefix + "SCANNER_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sSCANNER_TIMEOUT=%q is not a duration", ErrInvalid, EnvPrefix, v)
		}
		cfg.Scanner.Timeout = d
	}

	return nil
}
