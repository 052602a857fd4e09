package crossref

import (
	"regexp"

	"github.com/VivekMadav/construction-ai/internal/ocr"
)

// Kind categorizes a reference mark found on a drawing.
type Kind string

const (
	KindSection   Kind = "section"
	KindDetail    Kind = "detail"
	KindElevation Kind = "elevation"
	KindPlan      Kind = "plan"
)

// UnknownTarget marks a reference whose target drawing could not be resolved.
// Unresolved references are kept, never dropped, so audits can see them.
const UnknownTarget = "unknown"

// textReferenceConfidence is the confidence assigned to references found via
// text pattern matching.
const textReferenceConfidence = 0.8

// Reference is one reference mark found in a drawing's extracted text,
// pointing at another drawing in the same project.
type Reference struct {
	// ID is a unique identifier for this reference occurrence.
	ID string `json:"id"`

	// SourceDrawing is the drawing the mark was found in.
	SourceDrawing string `json:"source_drawing_id"`

	// TargetDrawing is the resolved drawing id, or UnknownTarget.
	TargetDrawing string `json:"target_drawing_id"`

	// Kind is the reference category.
	Kind Kind `json:"reference_type"`

	// Mark is the matched mark text, e.g. "A-A" or "DETAIL 3".
	Mark string `json:"mark"`

	// Bounds locates the mark on the source page.
	Bounds ocr.Bounds `json:"bounds"`

	// Confidence scores the match (0.0 to 1.0).
	Confidence float64 `json:"confidence"`
}

// referencePattern pairs a regex with the kind it produces. Patterns are
// tested in order and the first match per fragment wins.
type referencePattern struct {
	kind    Kind
	pattern *regexp.Regexp
}

var referencePatterns = []referencePattern{
	{KindSection, regexp.MustCompile(`\b([A-Z])\s*-\s*([A-Z])\b`)},
	{KindSection, regexp.MustCompile(`\bSECTION\s+([A-Z0-9]+)\b`)},
	{KindDetail, regexp.MustCompile(`\bDETAIL\s+([A-Z0-9]+)\b`)},
	{KindDetail, regexp.MustCompile(`\bDET\s+([A-Z0-9]+)\b`)},
	{KindElevation, regexp.MustCompile(`\bELEVATION\s+([A-Z0-9]+)\b`)},
	{KindElevation, regexp.MustCompile(`\bELEV\s+([A-Z0-9]+)\b`)},
	{KindPlan, regexp.MustCompile(`\b(?:PLAN|LEVEL|FLOOR)\s+(\d+)\b`)},
}
