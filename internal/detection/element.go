package detection

import (
	"fmt"
	"math"
)

// Discipline identifies which engineering discipline a drawing belongs to.
//
// The discipline is fixed when a drawing enters the pipeline and selects the
// rule table used for element classification.
type Discipline string

const (
	Architectural Discipline = "architectural"
	Structural    Discipline = "structural"
	Civil         Discipline = "civil"
	MEP           Discipline = "mep"
)

// Disciplines lists all supported disciplines in a stable order.
var Disciplines = []Discipline{Architectural, Structural, Civil, MEP}

// Valid reports whether d is one of the supported disciplines.
func (d Discipline) Valid() bool {
	switch d {
	case Architectural, Structural, Civil, MEP:
		return true
	}
	return false
}

// Bounds represents a rectangular bounding box in pixel coordinates.
//
// The coordinate convention follows standard image bounds:
//   - (X1, Y1) is the top-left corner (inclusive)
//   - (X2, Y2) is the bottom-right corner
//
// A well-formed Bounds always has X1 < X2 and Y1 < Y2.
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge
	Y2 int `json:"y2"` // Bottom edge
}

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Width returns the horizontal extent in pixels.
func (b Bounds) Width() int { return b.X2 - b.X1 }

// Height returns the vertical extent in pixels.
func (b Bounds) Height() int { return b.Y2 - b.Y1 }

// Area returns the enclosed area in square pixels.
func (b Bounds) Area() int { return b.Width() * b.Height() }

// Center returns the center point of the box.
func (b Bounds) Center() Point {
	return Point{X: (b.X1 + b.X2) / 2, Y: (b.Y1 + b.Y2) / 2}
}

// AspectRatio returns max(w,h)/min(w,h), always >= 1.
// A degenerate box with a zero side returns 0.
func (b Bounds) AspectRatio() float64 {
	w := float64(b.Width())
	h := float64(b.Height())
	if w <= 0 || h <= 0 {
		return 0
	}
	return math.Max(w, h) / math.Min(w, h)
}

// Valid reports whether the box has ordered, non-negative coordinates.
func (b Bounds) Valid() bool {
	return b.X1 >= 0 && b.Y1 >= 0 && b.X1 < b.X2 && b.Y1 < b.Y2
}

// CenterDistance returns the Euclidean distance between the centers of two boxes.
func CenterDistance(a, b Bounds) float64 {
	ca := a.Center()
	cb := b.Center()
	dx := float64(ca.X - cb.X)
	dy := float64(ca.Y - cb.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ConfidenceBoost records one bounded increase applied to an element's
// confidence, so callers can audit which evidence source fired.
type ConfidenceBoost struct {
	// Source names the booster: "geometry", "label_match", "text_mapping",
	// "spec_match", or "cross_reference".
	Source string `json:"source"`

	// Amount is the increment that was actually applied after capping at 1.0.
	Amount float64 `json:"amount"`
}

// TextMapping explains why an element's enhanced properties changed: one
// associated text fragment together with the relationship that linked it.
type TextMapping struct {
	// Text is the raw content of the mapped fragment.
	Text string `json:"text"`

	// TextType is the classified kind of the fragment (see textextract).
	TextType string `json:"text_type"`

	// Relationship is the mapping kind: "label", "dimension", "material",
	// "specification", or "room_name".
	Relationship string `json:"relationship"`

	// Distance is the center-to-center pixel distance at mapping time.
	Distance float64 `json:"distance"`

	// Confidence is the fragment's own detection confidence.
	Confidence float64 `json:"confidence"`
}

// Dimension is a parsed measurement attached to an element.
type Dimension struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
	// Source is "text" for OCR-derived values and a drawing id for values
	// supplied by a cross-referenced drawing.
	Source string `json:"source,omitempty"`
}

// EnhancedProperties holds attributes derived from text and notes.
//
// The struct is additive only: the mapper, notes analyzer and cross-reference
// resolver append to it but never remove or overwrite geometric properties.
type EnhancedProperties struct {
	// LabeledType is the element type as stated by a nearby text label,
	// set only when unset or when a higher-confidence label arrives.
	LabeledType string `json:"labeled_type,omitempty"`

	// LabelConfidence is the confidence of the fragment behind LabeledType.
	LabelConfidence float64 `json:"label_confidence,omitempty"`

	// Dimensions are measurements mapped to this element, in mapping order.
	Dimensions []Dimension `json:"dimensions,omitempty"`

	// Materials are material call-outs mapped to this element.
	Materials []string `json:"materials,omitempty"`

	// Specifications are specification call-outs mapped to this element.
	Specifications []string `json:"specifications,omitempty"`

	// RoomName is set for room elements with a mapped room-name fragment.
	RoomName string `json:"room_name,omitempty"`

	// ConcreteGrade and SteelGrade come from the drawing notes analyzer.
	ConcreteGrade string `json:"concrete_grade,omitempty"`
	SteelGrade    string `json:"steel_grade,omitempty"`

	// CriticalInfo carries drawing-wide requirements (fire rating, load
	// capacity, seismic zone) applied by the notes analyzer.
	CriticalInfo map[string]string `json:"critical_info,omitempty"`

	// ConflictNotes records cross-drawing measurement disagreements beyond
	// tolerance. Populated by the cross-reference resolver, never cleared.
	ConflictNotes []string `json:"conflict_notes,omitempty"`

	// CrossReferenceConfidence is the mean agreement across drawings that
	// contributed measurements to this element. Zero until a merge runs.
	CrossReferenceConfidence float64 `json:"cross_reference_confidence,omitempty"`

	// MeasurementCompleteness is the fraction of expected dimension kinds
	// that have a value after cross-drawing merging.
	MeasurementCompleteness float64 `json:"measurement_completeness,omitempty"`

	// MeasurementMethod is "direct" when every dimension came from this
	// drawing's own text, "cross_reference" once another drawing
	// contributed or adjusted one.
	MeasurementMethod string `json:"measurement_method,omitempty"`
}

// Element represents one physical construction item found in one drawing.
//
// Elements are created by the geometric detector and then mutated in place by
// the text mapper, notes analyzer and cross-reference resolver. The quantity,
// cost and carbon stages only read them.
type Element struct {
	// ID is unique within the drawing, e.g. "wall_003".
	ID string `json:"id"`

	// Type is the classified element type, e.g. "wall", "beam", "hvac_duct".
	Type string `json:"element_type"`

	// Bounds is the bounding box in image pixel coordinates.
	Bounds Bounds `json:"bbox"`

	// Confidence starts at the geometric base value and only ever increases
	// through bounded boosts; it never drops below the geometric base.
	Confidence float64 `json:"confidence"`

	// Discipline is fixed at detection time.
	Discipline Discipline `json:"discipline"`

	// Properties holds geometric attributes computed at detection time
	// (area, width, height, aspect ratio, sampled colors).
	Properties map[string]float64 `json:"properties"`

	// FillColor and BorderColor are hex colors sampled from the source image.
	FillColor   string `json:"fill_color,omitempty"`
	BorderColor string `json:"border_color,omitempty"`

	// Enhanced is populated by the text mapper and notes analyzer.
	Enhanced EnhancedProperties `json:"enhanced_properties"`

	// TextMappings lists the fragments that contributed to Enhanced, in
	// mapping order.
	TextMappings []TextMapping `json:"text_mappings,omitempty"`

	// Boosts is the audit trail of confidence increases.
	Boosts []ConfidenceBoost `json:"confidence_boosts,omitempty"`
}

// Boost applies a bounded confidence increase from a named source.
//
// The increase is capped so Confidence never exceeds 1.0, and a non-positive
// amount is ignored: boosts are monotonic and never decrease confidence.
// The applied (possibly truncated) amount is recorded in Boosts.
func (e *Element) Boost(source string, amount float64) {
	if amount <= 0 {
		return
	}
	applied := amount
	if e.Confidence+applied > 1.0 {
		applied = 1.0 - e.Confidence
	}
	if applied <= 0 {
		return
	}
	e.Confidence += applied
	e.Boosts = append(e.Boosts, ConfidenceBoost{Source: source, Amount: applied})
}

// HasBoost reports whether a boost from the given source has been applied.
func (e *Element) HasBoost(source string) bool {
	for _, b := range e.Boosts {
		if b.Source == source {
			return true
		}
	}
	return false
}

// String implements fmt.Stringer for log output.
func (e *Element) String() string {
	return fmt.Sprintf("%s(%s %.2f @%d,%d)", e.ID, e.Discipline, e.Confidence, e.Bounds.X1, e.Bounds.Y1)
}
