//go:build !(cgo && linux) || noocr

package ocr

// Available reports whether this build links Tesseract.
const Available = false

// Recognize always fails with ErrUnavailable. Splitting and inventory
// building work without OCR; only stamp reading needs it.
func (r *Reader) Recognize(path string) (*Result, error) {
	return nil, ErrUnavailable
}
