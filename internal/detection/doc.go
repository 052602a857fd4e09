// Package detection finds and classifies geometric construction elements in
// rasterized drawing pages.
//
// Detection is deliberately rule-based: a drawing page is edge-detected,
// connected edge pixels are grouped into contours, and each contour's
// bounding box is tested against an ordered, per-discipline rule table of
// aspect-ratio, area and position predicates. The first matching rule assigns
// the element type and a fixed base confidence; contours matching no rule are
// discarded.
//
// # Rule Tables Are Data
//
// Each discipline (architectural, structural, civil, MEP) owns its own
// RuleTable. The built-in tables returned by DefaultRules can be replaced
// wholesale through configuration, so tests and deployments can tune the
// geometric vocabulary without touching the detector's control flow.
//
// # Confidence Model
//
// An element's confidence starts at the matched rule's base value and is only
// ever increased afterwards by bounded, named boosts (text corroboration,
// specification matches, cross-drawing references). Element.Boost enforces
// both the monotonicity and the 1.0 cap, and keeps an audit trail so callers
// can assert which evidence source fired.
//
// # Empty Results
//
// A page with no classifiable contours yields an empty element slice, not an
// error. Callers must treat "nothing detected" as a valid outcome.
package detection
