//go:build cgo && linux

package ocr

import (
	"fmt"
	"image"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// newEngine creates the Tesseract-backed engine. On Linux with CGO enabled
// this uses the gosseract native bindings; the system tesseract library and
// English training data must be installed.
func newEngine() (Engine, error) {
	client := gosseract.NewClient()
	version := client.Version()
	client.Close()
	if version == "" {
		return nil, fmt.Errorf("tesseract library not functional")
	}
	return &gosseractEngine{version: version}, nil
}

type gosseractEngine struct {
	version string
}

func (e *gosseractEngine) Version() string {
	return "tesseract " + e.version
}

// Recognize runs full-page OCR and returns the recognized text with
// word-level bounding boxes.
//
// Tesseract requires a file path, so the image is written to a temporary
// PNG first and removed after recognition. If word-level bounding box
// extraction fails, the full text is still returned with an empty Words
// slice.
func (e *gosseractEngine) Recognize(img image.Image) (*Result, error) {
	tmpPath, err := saveTemp(img)
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage("eng"); err != nil {
		return nil, fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Return just text if boxes fail
		return &Result{FullText: text, Words: []Word{}}, nil
	}

	words := make([]Word, 0, len(boxes))
	for _, box := range boxes {
		if box.Word == "" {
			continue
		}
		words = append(words, Word{
			Text:       box.Word,
			Confidence: float64(box.Confidence) / 100.0,
			Bounds: Bounds{
				X1: box.Box.Min.X,
				Y1: box.Box.Min.Y,
				X2: box.Box.Max.X,
				Y2: box.Box.Max.Y,
			},
		})
	}

	return &Result{FullText: text, Words: words}, nil
}
