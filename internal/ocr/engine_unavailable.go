//go:build !cgo || !linux

package ocr

import "fmt"

// newEngine reports that no OCR backend exists for this build. Tesseract
// bindings require CGO on Linux; other builds rely on the geometric fallback
// locator in this package.
func newEngine() (Engine, error) {
	return nil, fmt.Errorf("tesseract OCR requires a cgo-enabled linux build")
}
