package mapping

import (
	"log/slog"
	"strings"

	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/ocr"
	"github.com/VivekMadav/construction-ai/internal/textextract"
)

// Mapping distance scales with the page: fragments further than this
// fraction of the larger page dimension never attach to an element.
const distanceThresholdFraction = 0.08

// labelMatchBoost is the confidence increase applied when a nearby label
// names the element's detected type.
const labelMatchBoost = 0.1

// Mapper associates classified text fragments with detected elements and
// merges the results into each element's enhanced properties.
type Mapper struct {
	logger *slog.Logger
}

// New creates a mapper.
func New(logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{logger: logger}
}

// Map attaches each fragment to its nearest element within the distance
// threshold and merges the fragment into that element's enhanced properties.
//
// The threshold is 8% of the larger page dimension, so mapping behaves
// consistently across sheet resolutions. Ties between equally close elements
// go to the larger element. Merging is additive and idempotent: re-running
// Map over the same inputs changes nothing.
func (m *Mapper) Map(elements []*detection.Element, fragments []textextract.Fragment, pageWidth, pageHeight int) {
	if len(elements) == 0 || len(fragments) == 0 {
		return
	}

	threshold := distanceThresholdFraction * float64(max(pageWidth, pageHeight))
	mapped := 0

	for _, frag := range fragments {
		element, distance := m.nearest(elements, frag.Bounds, threshold)
		if element == nil {
			continue
		}

		relationship := relationshipFor(frag, element)
		if relationship == "" {
			continue
		}
		if m.merge(element, frag, relationship, distance) {
			mapped++
		}
	}

	m.logger.Debug("text mapping complete",
		"fragments", len(fragments), "elements", len(elements), "mapped", mapped)
}

// nearest returns the closest element within the threshold, breaking exact
// distance ties by larger element area so results are deterministic.
func (m *Mapper) nearest(elements []*detection.Element, b ocr.Bounds, threshold float64) (*detection.Element, float64) {
	fragBounds := detection.Bounds{X1: b.X1, Y1: b.Y1, X2: b.X2, Y2: b.Y2}

	var best *detection.Element
	bestDistance := threshold
	for _, el := range elements {
		d := detection.CenterDistance(fragBounds, el.Bounds)
		if d > bestDistance {
			continue
		}
		if d == bestDistance && best != nil && el.Bounds.Area() <= best.Bounds.Area() {
			continue
		}
		best = el
		bestDistance = d
	}
	return best, bestDistance
}

// relationshipFor derives the mapping kind from the fragment's text type.
// General fragments attach only when very close, as loose "nearby" context.
func relationshipFor(frag textextract.Fragment, element *detection.Element) string {
	switch frag.Type {
	case textextract.TypeElementLabel:
		return "label"
	case textextract.TypeDimension:
		return "dimension"
	case textextract.TypeMaterial:
		return "material"
	case textextract.TypeSpecification:
		return "specification"
	case textextract.TypeRoomName:
		if element.Type == "room" {
			return "room_name"
		}
		return ""
	default:
		return "nearby"
	}
}

// merge records the fragment on the element and applies its enhanced
// property contribution. Returns false when an identical mapping already
// exists, which keeps Map idempotent.
func (m *Mapper) merge(element *detection.Element, frag textextract.Fragment, relationship string, distance float64) bool {
	for _, existing := range element.TextMappings {
		if existing.Text == frag.Text && existing.TextType == string(frag.Type) && existing.Relationship == relationship {
			return false
		}
	}

	element.TextMappings = append(element.TextMappings, detection.TextMapping{
		Text:         frag.Text,
		TextType:     string(frag.Type),
		Relationship: relationship,
		Distance:     distance,
		Confidence:   frag.Confidence,
	})

	switch relationship {
	case "label":
		applyLabel(element, frag)
	case "dimension":
		applyDimension(element, frag)
	case "material":
		applyMaterial(element, frag)
	case "specification":
		applySpecification(element, frag)
	case "room_name":
		if element.Enhanced.RoomName == "" {
			element.Enhanced.RoomName = frag.Text
		}
	}
	return true
}

// applyLabel records the stated type and, when the label agrees with the
// geometric classification, boosts the element's confidence once.
func applyLabel(element *detection.Element, frag textextract.Fragment) {
	if element.Enhanced.LabeledType == "" || frag.Confidence > element.Enhanced.LabelConfidence {
		element.Enhanced.LabeledType = frag.Text
		element.Enhanced.LabelConfidence = frag.Confidence
	}

	if labelMatchesType(frag.Text, element.Type) && !element.HasBoost("label_match") {
		element.Boost("label_match", labelMatchBoost)
	}
}

// labelMatchesType reports whether a label fragment names the element type,
// in either containment direction ("WALL TYPE 2" names "wall").
func labelMatchesType(label, elementType string) bool {
	l := strings.ToUpper(strings.TrimSpace(label))
	t := strings.ToUpper(strings.TrimSpace(elementType))
	if l == "" || t == "" {
		return false
	}
	return strings.Contains(l, t) || strings.Contains(t, l)
}

func applyDimension(element *detection.Element, frag textextract.Fragment) {
	if frag.Derived == nil {
		return
	}
	for _, d := range element.Enhanced.Dimensions {
		if d.Value == frag.Derived.Value && d.Unit == frag.Derived.Unit {
			return
		}
	}
	element.Enhanced.Dimensions = append(element.Enhanced.Dimensions, detection.Dimension{
		Value:  frag.Derived.Value,
		Unit:   frag.Derived.Unit,
		Source: "text",
	})
	if element.Enhanced.MeasurementMethod == "" {
		element.Enhanced.MeasurementMethod = "direct"
	}
}

func applyMaterial(element *detection.Element, frag textextract.Fragment) {
	material := strings.ToLower(strings.TrimSpace(frag.Text))
	for _, m := range element.Enhanced.Materials {
		if m == material {
			return
		}
	}
	element.Enhanced.Materials = append(element.Enhanced.Materials, material)
}

func applySpecification(element *detection.Element, frag textextract.Fragment) {
	spec := strings.ToLower(strings.TrimSpace(frag.Text))
	for _, s := range element.Enhanced.Specifications {
		if s == spec {
			return
		}
	}
	element.Enhanced.Specifications = append(element.Enhanced.Specifications, spec)
}
