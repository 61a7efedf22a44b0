// Package inventory turns named merged images into a CSV bullion inventory.
//
// After a split run the operator renames each merged image to
// "<name> <value> <unit>.png", for example "Britannia 1 ozt.png" or
// "Valcambi CombiBar 50 g.png". Build collects those names and WriteCSV
// writes one row per item.
package inventory

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// GramsPerTroyOunce converts gram weights to troy ounces.
const GramsPerTroyOunce = 31.1034768

// Unit is a weight unit accepted in file names.
type Unit string

const (
	TroyOunce Unit = "ozt"
	Gram      Unit = "g"
)

// ErrInvalidName is returned for file names without a weight.
var ErrInvalidName = errors.New("file name has no weight")

var weightPattern = regexp.MustCompile(`^(.+?)\s*(\d+(?:\.\d+)?) (ozt|g)\b(.*)$`)

// Weight is the declared weight of one item.
type Weight struct {
	// Raw is the value exactly as written in the file name.
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`
}

// ToOzt returns the weight in troy ounces.
func (w Weight) ToOzt() float64 {
	if w.Unit == Gram {
		return w.Value / GramsPerTroyOunce
	}
	return w.Value
}

func (w Weight) String() string {
	return w.Raw + " " + string(w.Unit)
}

// Item is one named image.
type Item struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Weight Weight `json:"weight"`
}

// ParseFilename reads the item name and weight from an image path.
func ParseFilename(path string) (Item, error) {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	m := weightPattern.FindStringSubmatch(stem)
	if m == nil {
		return Item{}, fmt.Errorf("%w: %s", ErrInvalidName, base)
	}

	value, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return Item{}, fmt.Errorf("%w: %s: %w", ErrInvalidName, base, err)
	}
	w := Weight{Raw: m[2], Value: value, Unit: Unit(m[3])}

	name := strings.Join(strings.Fields(strings.ReplaceAll(stem, w.String(), "")), " ")
	if name == "" {
		return Item{}, fmt.Errorf("%w: %s has no item name", ErrInvalidName, base)
	}

	return Item{Path: path, Name: name, Weight: w}, nil
}
