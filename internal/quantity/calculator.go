package quantity

import (
	"log/slog"

	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/imaging"
)

// Measurement assumptions used when text dimensions are incomplete.
const (
	// assumedLinearWidth is the assumed width in metres for walls and beams
	// measured from a single length dimension.
	assumedLinearWidth = 0.3

	// assumedFoundationDepth is the assumed depth in metres for foundation
	// volumes computed from a plan area.
	assumedFoundationDepth = 0.3
)

// Quantity confidence by measurement path.
const (
	confidenceTextFull    = 0.9
	confidenceTextPartial = 0.6
	confidencePixelScale  = 0.7
	confidenceAssumed     = 0.3
)

// Calculator converts enriched elements into billing quantities.
type Calculator struct {
	scale  imaging.DrawingScale
	logger *slog.Logger
}

// NewCalculator creates a calculator for the drawing's scale. Pass the
// default scale (marked assumed) when no scale note was found.
func NewCalculator(scale imaging.DrawingScale, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{scale: scale, logger: logger}
}

// Quantity computes the element's billing quantity in its type's unit.
//
// Text-derived dimensions are the primary source: two dimensions give an
// exact area, three an exact volume, one a length (with a documented width
// assumption for area types). Pixel geometry under the drawing scale is the
// fallback; when that scale is itself assumed, the quantity confidence drops
// to the assumed floor.
//
// An element type outside the unit table returns ErrUnknownElementType.
// A legitimate zero quantity is returned as a value, never as an error.
func (c *Calculator) Quantity(el *detection.Element) (Quantity, error) {
	unit, ok := UnitFor(el.Type)
	if !ok {
		return Quantity{}, &ErrUnknownElementType{ElementType: el.Type}
	}

	switch unit {
	case Count:
		return Quantity{Value: 1, Unit: Count, Confidence: el.Confidence, Source: "detection"}, nil
	case SquareMeters:
		return c.area(el), nil
	case LinearMeters:
		return c.length(el), nil
	case CubicMeters:
		return c.volume(el), nil
	}
	return Quantity{}, &ErrUnknownElementType{ElementType: el.Type}
}

func (c *Calculator) textDims(el *detection.Element) []float64 {
	dims := make([]float64, 0, len(el.Enhanced.Dimensions))
	for _, d := range el.Enhanced.Dimensions {
		dims = append(dims, toMeters(d))
	}
	return dims
}

func (c *Calculator) area(el *detection.Element) Quantity {
	dims := c.textDims(el)
	switch {
	case len(dims) >= 2:
		return Quantity{
			Value:      dims[0] * dims[1],
			Unit:       SquareMeters,
			Confidence: confidenceTextFull,
			Source:     "text_dimensions",
		}
	case len(dims) == 1:
		width := assumedLinearWidth
		if el.Type != "wall" && el.Type != "beam" {
			// Non-linear surfaces are assumed square.
			width = dims[0]
		}
		return Quantity{
			Value:      dims[0] * width,
			Unit:       SquareMeters,
			Confidence: confidenceTextPartial,
			Source:     "mixed",
		}
	default:
		area := c.scale.PixelAreaToSquareMeters(float64(el.Bounds.Area()))
		return Quantity{
			Value:      area,
			Unit:       SquareMeters,
			Confidence: c.pixelConfidence(),
			Source:     "pixel_scale",
		}
	}
}

func (c *Calculator) length(el *detection.Element) Quantity {
	dims := c.textDims(el)
	if len(dims) >= 1 {
		return Quantity{
			Value:      dims[0],
			Unit:       LinearMeters,
			Confidence: confidenceTextFull,
			Source:     "text_dimensions",
		}
	}
	longSide := max(el.Bounds.Width(), el.Bounds.Height())
	return Quantity{
		Value:      c.scale.PixelsToMeters(float64(longSide)),
		Unit:       LinearMeters,
		Confidence: c.pixelConfidence(),
		Source:     "pixel_scale",
	}
}

func (c *Calculator) volume(el *detection.Element) Quantity {
	dims := c.textDims(el)
	if len(dims) >= 3 {
		return Quantity{
			Value:      dims[0] * dims[1] * dims[2],
			Unit:       CubicMeters,
			Confidence: confidenceTextFull,
			Source:     "text_dimensions",
		}
	}
	if len(dims) == 2 {
		return Quantity{
			Value:      dims[0] * dims[1] * assumedFoundationDepth,
			Unit:       CubicMeters,
			Confidence: confidenceTextPartial,
			Source:     "mixed",
		}
	}
	area := c.scale.PixelAreaToSquareMeters(float64(el.Bounds.Area()))
	return Quantity{
		Value:      area * assumedFoundationDepth,
		Unit:       CubicMeters,
		Confidence: c.pixelConfidence(),
		Source:     "pixel_scale",
	}
}

func (c *Calculator) pixelConfidence() float64 {
	if c.scale.Assumed {
		return confidenceAssumed
	}
	return confidencePixelScale
}
