// Package scanner drives a SANE flatbed scanner through the scanimage
// command line tool.
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrScannerMissing is returned when the scanimage binary cannot be found.
var ErrScannerMissing = errors.New("scanner missing")

// Options configures a Scanner.
type Options struct {
	// Binary is the scanimage executable, looked up in PATH when it has no
	// directory part.
	Binary string

	// Device is passed as --device-name. Empty lets scanimage pick the
	// first device.
	Device string

	Resolution int
	Format     string

	// Timeout bounds a single scan.
	Timeout time.Duration
}

// DefaultOptions returns 300 dpi TIFF scans with a five minute timeout.
func DefaultOptions() Options {
	return Options{
		Binary:     "scanimage",
		Resolution: 300,
		Format:     "tiff",
		Timeout:    5 * time.Minute,
	}
}

// Scanner runs scans one at a time.
type Scanner struct {
	opts   Options
	Logger zerolog.Logger
}

// New creates a Scanner. Zero fields in opts take their defaults.
func New(opts Options) *Scanner {
	def := DefaultOptions()
	if opts.Binary == "" {
		opts.Binary = def.Binary
	}
	if opts.Resolution <= 0 {
		opts.Resolution = def.Resolution
	}
	if opts.Format == "" {
		opts.Format = def.Format
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	return &Scanner{opts: opts, Logger: zerolog.Nop()}
}

// Args returns the scanimage arguments for one scan.
func (s *Scanner) Args() []string {
	var args []string
	if s.opts.Device != "" {
		args = append(args, "--device-name", s.opts.Device)
	}
	return append(args,
		"--resolution", fmt.Sprint(s.opts.Resolution),
		"--format="+s.opts.Format,
	)
}

// Extension returns the file extension matching the scan format.
func (s *Scanner) Extension() string {
	if s.opts.Format == "jpeg" {
		return ".jpg"
	}
	return "." + s.opts.Format
}

// Scan writes one scan to path. A failed scan leaves no file behind.
func (s *Scanner) Scan(ctx context.Context, path string) error {
	bin, err := exec.LookPath(s.opts.Binary)
	if err != nil {
		return fmt.Errorf("%w: cannot find %s: %w", ErrScannerMissing, s.opts.Binary, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create scan directory: %w", err)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create scan file: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, s.Args()...)
	cmd.Stdout = out
	cmd.Stderr = &stderr

	s.Logger.Info().Str("path", path).Strs("args", cmd.Args).Msg("Beginning scan")
	start := time.Now()
	runErr := cmd.Run()
	closeErr := out.Close()

	if runErr != nil {
		os.Remove(path)
		if ctx.Err() != nil {
			return fmt.Errorf("scan timed out after %s: %w", s.opts.Timeout, ctx.Err())
		}
		return fmt.Errorf("scanimage failed: %w: %s", runErr, strings.TrimSpace(stderr.String()))
	}
	if closeErr != nil {
		return fmt.Errorf("failed to write scan: %w", closeErr)
	}

	s.Logger.Info().Str("path", path).Dur("elapsed", time.Since(start)).Msg("Scanning complete")
	return nil
}

// ScanPair scans the obverse into a new file in dir, calls flip while the
// operator turns the objects over, then scans the reverse.
func (s *Scanner) ScanPair(ctx context.Context, dir, name string, flip func() error) (obverse, reverse string, err error) {
	obverse, err = UniquePath(dir, name, s.Extension())
	if err != nil {
		return "", "", err
	}
	if err := s.Scan(ctx, obverse); err != nil {
		return "", "", err
	}

	if flip != nil {
		if err := flip(); err != nil {
			return obverse, "", err
		}
	}

	reverse = ReversePath(obverse)
	if err := s.Scan(ctx, reverse); err != nil {
		return obverse, "", err
	}
	return obverse, reverse, nil
}

// UniquePath returns "{dir}/{name} - {index} - obverse{ext}" for the
// lowest index from 0 whose file does not exist yet.
func UniquePath(dir, name, ext string) (string, error) {
	for i := 0; ; i++ {
		path := filepath.Join(dir, fmt.Sprintf("%s - %d - obverse%s", name, i, ext))
		_, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", path, err)
		}
	}
}

// ReversePath derives the reverse scan path from an obverse path.
func ReversePath(obverse string) string {
	dir, base := filepath.Split(obverse)
	return filepath.Join(dir, strings.ReplaceAll(base, "obverse", "reverse"))
}
