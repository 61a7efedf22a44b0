package inventory

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// StampReader reads the text stamped on an object image.
type StampReader interface {
	ReadText(path string) (string, error)
}

// Suggestion proposes a weight for an image whose name did not parse.
type Suggestion struct {
	Path string `json:"path"`

	// Text is everything the reader found on the image.
	Text string `json:"text"`

	// Weight is the first weight found in Text. It is nil when none was
	// found.
	Weight *Weight `json:"weight,omitempty"`

	// Filename is the proposed new name, empty without a weight.
	Filename string `json:"filename,omitempty"`
}

// stampPattern matches weights as they are stamped: "1 OZ", "1oz t",
// "100 G", "10 GRAMS".
var stampPattern = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(oz\s?t?|troy\s+oz|grams?|g)\b`)

// FindWeight returns the first stamped weight in text.
func FindWeight(text string) (Weight, bool) {
	m := stampPattern.FindStringSubmatch(text)
	if m == nil {
		return Weight{}, false
	}

	value, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Weight{}, false
	}

	unit := TroyOunce
	if strings.HasPrefix(strings.ToLower(m[2]), "g") {
		unit = Gram
	}
	return Weight{Raw: m[1], Value: value, Unit: unit}, true
}

// Suggest reads every path with r and proposes a file name from the first
// weight found. A read failure is returned as a Suggestion without a
// weight; Suggest itself only fails when r is nil.
func Suggest(r StampReader, paths []string) ([]Suggestion, error) {
	if r == nil {
		return nil, fmt.Errorf("no stamp reader configured")
	}

	out := make([]Suggestion, 0, len(paths))
	for _, p := range paths {
		s := Suggestion{Path: p}

		text, err := r.ReadText(p)
		if err == nil {
			s.Text = text
			if w, ok := FindWeight(text); ok {
				s.Weight = &w
				base := filepath.Base(p)
				stem := strings.TrimSuffix(base, filepath.Ext(base))
				s.Filename = fmt.Sprintf("%s %s.png", stem, w.String())
			}
		}
		out = append(out, s)
	}
	return out, nil
}
