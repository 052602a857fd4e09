package pipeline

import (
	"strings"

	"github.com/VivekMadav/construction-ai/internal/crossref"
	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/imaging"
	"github.com/VivekMadav/construction-ai/internal/notes"
	"github.com/VivekMadav/construction-ai/internal/textextract"
)

// Drawing is one rasterized drawing page queued for analysis.
type Drawing struct {
	// ID identifies the drawing within the project. Cross-references
	// resolve against it and against FileName.
	ID string `json:"id"`

	// Path is the page image file on disk.
	Path string `json:"path"`

	// FileName is the original drawing file name, used for reference
	// resolution and discipline inference.
	FileName string `json:"file_name"`

	// Discipline selects the detection rule table. Empty means infer
	// from the file name.
	Discipline detection.Discipline `json:"discipline,omitempty"`
}

// DrawingResult is the full analysis of one drawing.
type DrawingResult struct {
	DrawingID  string               `json:"drawing_id"`
	FileName   string               `json:"file_name"`
	Discipline detection.Discipline `json:"discipline"`

	PageWidth  int `json:"page_width"`
	PageHeight int `json:"page_height"`

	// Scale is the drawing scale in effect: parsed from a scale note when
	// one was found, otherwise the configured assumption.
	Scale imaging.DrawingScale `json:"scale"`

	Elements  []*detection.Element   `json:"elements"`
	Fragments []textextract.Fragment `json:"extracted_texts"`

	// References lists outgoing cross-drawing references found in this
	// drawing's text. Populated by project-level analysis.
	References []crossref.Reference `json:"cross_references"`

	Notes *notes.Notes `json:"notes"`
}

// DrawingFailure records a drawing that could not be analyzed. Failures
// are isolated: the rest of the project proceeds without the drawing.
type DrawingFailure struct {
	DrawingID string `json:"drawing_id"`
	Path      string `json:"path"`
	Error     string `json:"error"`
}

// ProjectResult aggregates per-drawing results and the project-wide
// cross-reference resolution.
type ProjectResult struct {
	Drawings []*DrawingResult `json:"drawings"`
	Failed   []DrawingFailure `json:"failed_drawings"`
}

// Elements returns every detected element across the project's drawings.
func (r *ProjectResult) Elements() []*detection.Element {
	elements := make([]*detection.Element, 0)
	for _, d := range r.Drawings {
		elements = append(elements, d.Elements...)
	}
	return elements
}

// disciplineHints maps file name substrings to disciplines, first match
// wins. Architectural is the fallback.
var disciplineHints = []struct {
	hint       string
	discipline detection.Discipline
}{
	{"struct", detection.Structural},
	{"civil", detection.Civil},
	{"site", detection.Civil},
	{"road", detection.Civil},
	{"mep", detection.MEP},
	{"mech", detection.MEP},
	{"elec", detection.MEP},
	{"plumb", detection.MEP},
	{"hvac", detection.MEP},
}

// InferDiscipline guesses a drawing's discipline from its file name.
func InferDiscipline(fileName string) detection.Discipline {
	lower := strings.ToLower(fileName)
	for _, h := range disciplineHints {
		if strings.Contains(lower, h.hint) {
			return h.discipline
		}
	}
	return detection.Architectural
}
