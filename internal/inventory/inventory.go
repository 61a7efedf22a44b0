package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
)

// Header is the first CSV row.
var Header = []string{"item", "qty", "ozt", "g"}

// Report is the result of scanning a results directory.
type Report struct {
	Items []Item `json:"items"`

	// Invalid lists images whose names could not be parsed.
	Invalid []string `json:"invalid"`
}

// TotalOzt sums the weight of every item in troy ounces.
func (r *Report) TotalOzt() float64 {
	total := 0.0
	for _, it := range r.Items {
		total += it.Weight.ToOzt()
	}
	return total
}

// Build parses every "merged/*.png" image below dir, in name order.
func Build(dir string) (*Report, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read results directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	paths, err := filepath.Glob(filepath.Join(dir, "merged", "*.png"))
	if err != nil {
		return nil, fmt.Errorf("failed to list merged images: %w", err)
	}
	sort.Strings(paths)

	report := &Report{Items: []Item{}, Invalid: []string{}}
	for _, p := range paths {
		item, err := ParseFilename(p)
		if err != nil {
			report.Invalid = append(report.Invalid, p)
			continue
		}
		report.Items = append(report.Items, item)
	}
	return report, nil
}

// WriteCSV writes the header and one row per item. The weight goes in the
// column of its unit, the other column stays empty.
func WriteCSV(w io.Writer, items []Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, it := range items {
		var ozt, g string
		if it.Weight.Unit == Gram {
			g = it.Weight.Raw
		} else {
			ozt = it.Weight.Raw
		}
		if err := cw.Write([]string{it.Name, "1", ozt, g}); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVPath returns "<outDir>/<base of dir>.csv".
func CSVPath(dir, outDir string) string {
	base := filepath.Base(filepath.Clean(dir))
	return filepath.Join(outDir, base+".csv")
}

// Save writes the report's items to CSVPath(dir, outDir) and returns the
// path written.
func Save(report *Report, dir, outDir string) (string, error) {
	path := CSVPath(dir, outDir)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create inventory: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, report.Items); err != nil {
		return "", err
	}
	return path, f.Close()
}
