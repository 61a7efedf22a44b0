// Package ocr reads the text stamped on coins and bars using Tesseract.
//
// This package wraps the Tesseract OCR engine (via gosseract/v2). The scan
// splitter uses it to suggest inventory names for merged images whose file
// names do not yet carry a description and weight.
//
// # Prerequisites
//
// Tesseract and its language data must be installed on the system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Build Requirements
//
// Tesseract is linked through cgo on Linux. Other builds, builds with
// CGO_ENABLED=0 and builds tagged "noocr" get a Reader whose Recognize
// returns ErrUnavailable; check Available to tell them apart.
//
// # Accuracy
//
// Stamped lettering on metal is low contrast and often curved along the rim,
// so results are suggestions for a human to confirm, never names applied
// automatically. Words below Reader.MinConfidence are dropped.
package ocr
