package ocr

import (
	"fmt"
	"image"
	"image/png"
	"os"
)

// Bounds represents a rectangular bounding box in pixel coordinates.
type Bounds struct {
	X1 int `json:"x1"` // Left edge
	Y1 int `json:"y1"` // Top edge
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Word represents a recognized word with its location and OCR confidence.
type Word struct {
	// Text is the recognized text content.
	Text string `json:"text"`

	// Confidence is the OCR confidence score (0.0 to 1.0).
	// Higher values indicate more certain recognition.
	Confidence float64 `json:"confidence"`

	// Bounds is the bounding box around this word in the image.
	Bounds Bounds `json:"bounds"`
}

// Result contains the complete results of text recognition on an image.
type Result struct {
	// FullText is all recognized text as a single string with original spacing.
	FullText string `json:"full_text"`

	// Words contains individual words with their bounding boxes and confidence.
	// May be empty if bounding box extraction fails (text remains in FullText).
	Words []Word `json:"words"`
}

// Engine recognizes text in an image. Implementations are selected at build
// time depending on Tesseract availability.
type Engine interface {
	// Recognize runs text recognition over the whole image.
	Recognize(img image.Image) (*Result, error)

	// Version describes the underlying recognition backend.
	Version() string
}

// saveTemp writes an image to a temporary PNG file for engines that require
// a file path. The caller removes the file after use.
func saveTemp(img image.Image) (string, error) {
	f, err := os.CreateTemp("", "ocr-page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to encode temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
