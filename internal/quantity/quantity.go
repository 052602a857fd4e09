package quantity

import (
	"fmt"
	"strings"

	"github.com/VivekMadav/construction-ai/internal/detection"
)

// Unit is the normalized billing unit for a quantity.
type Unit string

const (
	SquareMeters Unit = "sqm"
	LinearMeters Unit = "lm"
	CubicMeters  Unit = "m3"
	Count        Unit = "count"
)

// unitForType selects the billing unit for each element type: area for
// surfaces, length for linear runs, volume for foundations, count for
// installed items.
var unitForType = map[string]Unit{
	"wall":             SquareMeters,
	"slab":             SquareMeters,
	"room":             SquareMeters,
	"road":             SquareMeters,
	"beam":             LinearMeters,
	"plumbing_pipe":    LinearMeters,
	"hvac_duct":        LinearMeters,
	"drainage":         LinearMeters,
	"foundation":       CubicMeters,
	"door":             Count,
	"window":           Count,
	"column":           Count,
	"electrical_panel": Count,
	"utility":          Count,
}

// UnitFor returns the billing unit for an element type.
func UnitFor(elementType string) (Unit, bool) {
	u, ok := unitForType[elementType]
	return u, ok
}

// ErrUnknownElementType is returned for element types outside the unit
// table. It is an explicit failure marker: a zero quantity is always a real
// measurement, never a disguised error.
type ErrUnknownElementType struct {
	ElementType string
}

func (e *ErrUnknownElementType) Error() string {
	return fmt.Sprintf("no billing unit for element type %q", e.ElementType)
}

// Quantity is a computed billing quantity with its own confidence, distinct
// from the element's detection confidence.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  Unit    `json:"unit"`

	// Confidence reflects the measurement path: text-derived dimensions
	// score high, pixel geometry under an assumed scale scores low.
	Confidence float64 `json:"confidence"`

	// Source is "text_dimensions", "mixed" or "pixel_scale".
	Source string `json:"source"`
}

// metres per dimension unit.
var unitToMeters = map[string]float64{
	"MM": 0.001,
	"CM": 0.01,
	"M":  1,
	"FT": 0.3048,
	"IN": 0.0254,
}

// toMeters converts a text-derived dimension to metres. Unknown units are
// treated as millimetres, the drawing convention for bare numbers.
func toMeters(d detection.Dimension) float64 {
	factor, ok := unitToMeters[strings.ToUpper(d.Unit)]
	if !ok {
		factor = 0.001
	}
	return d.Value * factor
}
