package textextract

import (
	"image"
	"log/slog"

	"github.com/VivekMadav/construction-ai/internal/ocr"
)

// Fragment is a classified piece of text located on a drawing page.
type Fragment struct {
	// Text is the fragment content. On the degraded OCR path this is a
	// sequential placeholder rather than recognized text.
	Text string `json:"text"`

	// Type is the classified text kind.
	Type TextType `json:"text_type"`

	// Confidence is the recognition confidence (0.0 to 1.0).
	Confidence float64 `json:"confidence"`

	// Bounds locates the fragment on the page.
	Bounds ocr.Bounds `json:"bounds"`

	// Derived is the parsed payload for dimension and material fragments,
	// nil for other types.
	Derived *DerivedValue `json:"derived_value,omitempty"`
}

// Extractor produces classified text fragments from drawing pages, using the
// probed OCR capability when available and the geometric locator otherwise.
type Extractor struct {
	capability *ocr.Capability
	logger     *slog.Logger
	warned     bool
}

// NewExtractor creates an extractor bound to the shared OCR capability.
func NewExtractor(capability *ocr.Capability, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{capability: capability, logger: logger}
}

// Extract recognizes and classifies all text on a page.
//
// The binary image is the preprocessed (binarized) form of the page, used by
// the fallback locator when no recognition backend exists. Degraded
// extraction is logged once per extractor, not once per page.
func (e *Extractor) Extract(page image.Image, binary *image.Gray) ([]Fragment, error) {
	var words []ocr.Word

	if e.capability.Available() {
		result, err := e.capability.Recognize(page)
		if err != nil {
			return nil, err
		}
		words = result.Words
	} else {
		if !e.warned {
			e.logger.Warn("OCR backend unavailable, using geometric text location",
				"detail", e.capability.Detail())
			e.warned = true
		}
		words = ocr.LocateWords(binary)
	}

	fragments := make([]Fragment, 0, len(words))
	for _, w := range words {
		textType, derived := Classify(w.Text)
		fragments = append(fragments, Fragment{
			Text:       w.Text,
			Type:       textType,
			Confidence: w.Confidence,
			Bounds:     w.Bounds,
			Derived:    derived,
		})
	}

	return fragments, nil
}
