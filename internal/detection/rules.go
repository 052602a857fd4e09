package detection

import "math"

// Rule classifies a contour into an element type using geometric predicates.
//
// A rule matches when the contour's aspect ratio falls inside
// [MinAspect, MaxAspect), its bounding-box area falls inside
// [MinArea, MaxArea), and, if MinBottomFraction is set, the contour's bottom
// edge lies within the lower MinBottomFraction of the image. Rules are
// evaluated in table order and the first match wins; unmatched contours are
// discarded.
type Rule struct {
	// ElementType is assigned to contours matching this rule.
	ElementType string `json:"element_type" mapstructure:"element_type"`

	// MinAspect and MaxAspect bound max(w,h)/min(w,h). Use math.Inf(1)
	// (or omit in config) for an open upper bound.
	MinAspect float64 `json:"min_aspect" mapstructure:"min_aspect"`
	MaxAspect float64 `json:"max_aspect" mapstructure:"max_aspect"`

	// MinArea and MaxArea bound the bounding-box area in square pixels.
	MinArea float64 `json:"min_area" mapstructure:"min_area"`
	MaxArea float64 `json:"max_area" mapstructure:"max_area"`

	// MinBottomFraction, when > 0, requires the contour's bottom edge to sit
	// below MinBottomFraction of the image height. Used for foundations.
	MinBottomFraction float64 `json:"min_bottom_fraction,omitempty" mapstructure:"min_bottom_fraction"`

	// Orientation, when set to "horizontal" or "vertical", additionally
	// requires the box's long side to run that way. Distinguishes beams
	// from columns at the same aspect ratio.
	Orientation string `json:"orientation,omitempty" mapstructure:"orientation"`

	// BaseConfidence is the geometric confidence assigned on match.
	BaseConfidence float64 `json:"base_confidence" mapstructure:"base_confidence"`
}

// Matches reports whether a bounding box satisfies this rule.
// imageHeight is needed only for rules with a position constraint.
func (r Rule) Matches(b Bounds, imageHeight int) bool {
	aspect := b.AspectRatio()
	area := float64(b.Area())
	if aspect < r.MinAspect || aspect >= r.maxAspect() {
		return false
	}
	if area < r.MinArea || area >= r.maxArea() {
		return false
	}
	if r.MinBottomFraction > 0 {
		if imageHeight <= 0 {
			return false
		}
		if float64(b.Y2) < float64(imageHeight)*r.MinBottomFraction {
			return false
		}
	}
	switch r.Orientation {
	case "horizontal":
		if b.Width() < b.Height() {
			return false
		}
	case "vertical":
		if b.Height() < b.Width() {
			return false
		}
	}
	return true
}

func (r Rule) maxAspect() float64 {
	if r.MaxAspect <= 0 {
		return math.Inf(1)
	}
	return r.MaxAspect
}

func (r Rule) maxArea() float64 {
	if r.MaxArea <= 0 {
		return math.Inf(1)
	}
	return r.MaxArea
}

// RuleTable is the ordered list of classification rules for one discipline.
type RuleTable []Rule

// DefaultRules returns the built-in rule table for a discipline.
//
// The tables encode the geometric heuristics used for each discipline's
// element vocabulary: walls are long and thin, doors are upright rectangles,
// beams are very elongated, foundations sit in the lower part of the sheet,
// and so on. They are data, not code: internal/conf can replace any table
// from a configuration file without touching the detector.
func DefaultRules(d Discipline) RuleTable {
	switch d {
	case Architectural:
		return RuleTable{
			{ElementType: "wall", MinAspect: 3, MinArea: 1000, BaseConfidence: 0.85},
			{ElementType: "door", MinAspect: 1.25, MaxAspect: 3.3, MinArea: 500, MaxArea: 5000, BaseConfidence: 0.80},
			{ElementType: "window", MinAspect: 1, MaxAspect: 2.0, MinArea: 100, MaxArea: 2000, BaseConfidence: 0.75},
			{ElementType: "room", MinAspect: 1, MinArea: 5000, BaseConfidence: 0.70},
		}
	case Structural:
		return RuleTable{
			{ElementType: "beam", MinAspect: 4, MinArea: 2000, Orientation: "horizontal", BaseConfidence: 0.90},
			{ElementType: "column", MinAspect: 2, MinArea: 1000, Orientation: "vertical", BaseConfidence: 0.85},
			{ElementType: "foundation", MinAspect: 1, MinArea: 5000, MinBottomFraction: 0.7, BaseConfidence: 0.75},
			{ElementType: "slab", MinAspect: 1, MaxAspect: 2.0, MinArea: 10000, BaseConfidence: 0.80},
		}
	case Civil:
		return RuleTable{
			{ElementType: "road", MinAspect: 3, MinArea: 3000, BaseConfidence: 0.85},
			{ElementType: "drainage", MinAspect: 1, MaxAspect: 1.25, MinArea: 200, MaxArea: 1500, BaseConfidence: 0.75},
			{ElementType: "utility", MinAspect: 1, MinArea: 100, MaxArea: 2000, BaseConfidence: 0.70},
		}
	case MEP:
		return RuleTable{
			{ElementType: "hvac_duct", MinAspect: 1, MaxAspect: 3.0, MinArea: 1000, MaxArea: 8000, BaseConfidence: 0.80},
			{ElementType: "electrical_panel", MinAspect: 1, MinArea: 100, MaxArea: 2000, BaseConfidence: 0.75},
			{ElementType: "plumbing_pipe", MinAspect: 1, MinArea: 50, MaxArea: 1500, BaseConfidence: 0.70},
		}
	}
	return nil
}

// KnownTypes returns the element vocabulary for a discipline, in rule order.
func KnownTypes(d Discipline) []string {
	rules := DefaultRules(d)
	types := make([]string, 0, len(rules))
	for _, r := range rules {
		types = append(types, r.ElementType)
	}
	return types
}
