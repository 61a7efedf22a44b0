package ocr

import (
	"errors"
	"image"
	"strings"
)

// ErrUnavailable is returned by Recognize in builds without Tesseract.
var ErrUnavailable = errors.New("OCR unavailable: built without cgo tesseract support")

// Word is one recognised word with its location and confidence.
type Word struct {
	// Text is the recognised word.
	Text string `json:"text"`

	// Confidence is Tesseract's confidence score (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds is the word's bounding box in image coordinates.
	Bounds image.Rectangle `json:"bounds"`
}

// Result holds everything recognised on one image.
type Result struct {
	// FullText is all recognised text with Tesseract's spacing and newlines.
	FullText string `json:"full_text"`

	// Words may be empty when word-level boxes are unavailable; FullText is
	// still populated in that case.
	Words []Word `json:"words"`
}

// Reader runs Tesseract on image files.
//
// A Reader holds only configuration; every call creates and closes its own
// Tesseract client, so one Reader can be shared between goroutines.
type Reader struct {
	// Language is the Tesseract language code, "eng" when empty.
	Language string

	// TessdataPrefix overrides the directory Tesseract loads language data
	// from. Empty uses the system default.
	TessdataPrefix string

	// MinConfidence drops words below this confidence (0.0 to 1.0).
	MinConfidence float64
}

// NewReader creates a Reader for the given language.
func NewReader(language string) *Reader {
	return &Reader{Language: language}
}

// ReadText returns the recognised text of the image at path with
// surrounding whitespace removed and internal runs of whitespace collapsed
// to single spaces.
func (r *Reader) ReadText(path string) (string, error) {
	result, err := r.Recognize(path)
	if err != nil {
		return "", err
	}
	return strings.Join(strings.Fields(result.FullText), " "), nil
}
