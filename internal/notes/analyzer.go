package notes

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/VivekMadav/construction-ai/internal/imaging"
	"github.com/VivekMadav/construction-ai/internal/textextract"
)

// Category identifies the kind of drawing-wide note a fragment belongs to.
type Category string

const (
	CategoryTitleBlock   Category = "title_block"
	CategoryGeneral      Category = "general_notes"
	CategoryMaterialSpec Category = "material_specifications"
	CategoryConstruction Category = "construction_notes"
	CategoryDimension    Category = "dimension_notes"
	CategoryRevision     Category = "revision_notes"
)

// Note is one classified drawing-wide annotation.
type Note struct {
	Category   Category `json:"category"`
	Text       string   `json:"text"`
	Confidence float64  `json:"confidence"`
}

// MaterialSpec is a material grade extracted from the notes, e.g. C30
// concrete or S355 steel.
type MaterialSpec struct {
	// Material is "concrete", "steel" or "timber".
	Material string `json:"material"`

	// Grade is the canonical grade string, e.g. "C30", "S355", "B500B".
	Grade string `json:"grade"`

	// Strength is the characteristic strength in N/mm2 when stated, else 0.
	Strength float64 `json:"strength,omitempty"`

	Confidence float64 `json:"confidence"`
}

// Notes is the structured result of analyzing a drawing's annotations.
type Notes struct {
	TitleBlock        []Note         `json:"title_block"`
	GeneralNotes      []string       `json:"general_notes"`
	ConcreteSpecs     []MaterialSpec `json:"concrete_specs"`
	SteelSpecs        []MaterialSpec `json:"steel_specs"`
	TimberSpecs       []MaterialSpec `json:"timber_specs"`
	ConstructionNotes []string       `json:"construction_notes"`
	DimensionNotes    []string       `json:"dimension_notes"`
	RevisionNotes     []string       `json:"revision_notes"`

	// CriticalInfo holds drawing-wide requirements keyed by kind:
	// fire_rating_hours, load_capacity, seismic_requirements.
	CriticalInfo map[string]string `json:"critical_info"`

	// Scale is the drawing scale parsed from a title block note, nil when
	// no scale note was found.
	Scale *imaging.DrawingScale `json:"scale,omitempty"`
}

// Summary counts the analyzed notes per category.
func (n *Notes) Summary() map[string]int {
	return map[string]int{
		"title_block":        len(n.TitleBlock),
		"general_notes":      len(n.GeneralNotes),
		"construction_notes": len(n.ConstructionNotes),
		"dimension_notes":    len(n.DimensionNotes),
		"revision_notes":     len(n.RevisionNotes),
		"material_specs":     len(n.ConcreteSpecs) + len(n.SteelSpecs) + len(n.TimberSpecs),
		"critical_info":      len(n.CriticalInfo),
	}
}

// Title block position heuristic: sheets carry their title block in the
// bottom-right corner.
const (
	titleBlockXFraction = 0.65
	titleBlockYFraction = 0.75
)

var (
	titleBlockPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)PROJECT\s*:`),
		regexp.MustCompile(`(?i)DRAWING\s*:`),
		regexp.MustCompile(`(?i)SCALE\s*:?\s*1\s*[:/]\s*\d+`),
		regexp.MustCompile(`(?i)DATE\s*:`),
		regexp.MustCompile(`(?i)REVISION\s*:`),
		regexp.MustCompile(`(?i)DRAWN\s*BY`),
		regexp.MustCompile(`(?i)CHECKED\s*BY`),
	}

	constructionPattern = regexp.MustCompile(`(?i)\b(CONSTRUCTION|INSTALLATION|ERECTION|ANCHORAGE|CONNECTION)\b`)
	dimensionPattern    = regexp.MustCompile(`(?i)\b(ALL\s*DIMENSIONS|DIMENSIONS|UNITS)\b`)
	revisionPattern     = regexp.MustCompile(`(?i)\b(REV(?:ISION)?\s*[A-Z0-9]+|ISSUED\s*FOR)\b`)
	generalPattern      = regexp.MustCompile(`(?i)\b(NOTE|NOTES|GENERAL)\b`)

	concreteGradePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)CONCRETE\s*(?:GRADE|CLASS|STRENGTH)?\s*:?\s*([CF]\d{2,3}(?:/\d{2})?)`),
		regexp.MustCompile(`(?i)\b([CF]\d{2,3})\s*(?:CONCRETE|GRADE)\b`),
	}
	concreteStrengthPattern = regexp.MustCompile(`(?i)(\d+)\s*(?:N/MM2|N/MM²|MPA)`)

	steelGradePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)STEEL\s*(?:GRADE|TYPE)?\s*:?\s*(S\d{3}|B500[AB]?|A500|FE\d{3})`),
		regexp.MustCompile(`(?i)\b(S\d{3}|B500[AB]?|A500)\s*(?:STEEL|GRADE|REINFORCEMENT)?\b`),
		regexp.MustCompile(`(?i)REINFORCEMENT\s*(?:GRADE)?\s*:?\s*(S\d{3}|B500[AB]?|A500|FE\d{3})`),
	}

	timberGradePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)TIMBER\s*(?:GRADE|TYPE)?\s*:?\s*([CT]\d{2})`),
		regexp.MustCompile(`(?i)WOOD\s*(?:GRADE|TYPE)?\s*:?\s*([CT]\d{2})`),
	}

	fireRatingPattern   = regexp.MustCompile(`(?i)FIRE\s*(?:RATING|RESISTANCE)\s*:?\s*(\d+)\s*(?:HOURS?|HR)`)
	loadCapacityPattern = regexp.MustCompile(`(?i)(?:LOAD\s*(?:RATING|CAPACITY)|CAPACITY)\s*:?\s*(\d+)\s*(KN|TONNES?)`)
	seismicPattern      = regexp.MustCompile(`(?i)SEISMIC\s*(?:ZONE)?\s*:?\s*([A-Z0-9]+)`)
)

// Analyzer classifies drawing-wide text into note categories and extracts
// material specifications and critical requirements.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates an analyzer.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger}
}

// Analyze classifies the drawing's fragments into note categories.
//
// Title block membership is positional: fragments in the bottom-right corner
// of the page, or matching title block field patterns anywhere, belong to the
// title block. Other categories are keyword driven. Material grades and
// critical info are extracted from the full text regardless of category.
func (a *Analyzer) Analyze(fragments []textextract.Fragment, pageWidth, pageHeight int) *Notes {
	n := &Notes{
		TitleBlock:        make([]Note, 0),
		GeneralNotes:      make([]string, 0),
		ConcreteSpecs:     make([]MaterialSpec, 0),
		SteelSpecs:        make([]MaterialSpec, 0),
		TimberSpecs:       make([]MaterialSpec, 0),
		ConstructionNotes: make([]string, 0),
		DimensionNotes:    make([]string, 0),
		RevisionNotes:     make([]string, 0),
		CriticalInfo:      make(map[string]string),
	}

	var allText strings.Builder
	for _, frag := range fragments {
		allText.WriteString(frag.Text)
		allText.WriteString("\n")
		a.categorize(n, frag, pageWidth, pageHeight)
	}

	text := allText.String()
	a.extractMaterialSpecs(n, text)
	a.extractCriticalInfo(n, text)

	if scale, err := imaging.ParseScaleNote(text); err == nil {
		n.Scale = &scale
	}

	a.logger.Debug("notes analysis complete",
		"fragments", len(fragments),
		"concrete_specs", len(n.ConcreteSpecs),
		"steel_specs", len(n.SteelSpecs),
		"critical_info", len(n.CriticalInfo))
	return n
}

func (a *Analyzer) categorize(n *Notes, frag textextract.Fragment, pageWidth, pageHeight int) {
	text := frag.Text

	if a.inTitleBlockRegion(frag, pageWidth, pageHeight) || matchesAny(text, titleBlockPatterns) {
		n.TitleBlock = append(n.TitleBlock, Note{
			Category:   CategoryTitleBlock,
			Text:       text,
			Confidence: frag.Confidence,
		})
		return
	}

	switch {
	case revisionPattern.MatchString(text):
		n.RevisionNotes = append(n.RevisionNotes, text)
	case constructionPattern.MatchString(text):
		n.ConstructionNotes = append(n.ConstructionNotes, text)
	case dimensionPattern.MatchString(text):
		n.DimensionNotes = append(n.DimensionNotes, text)
	case generalPattern.MatchString(text):
		n.GeneralNotes = append(n.GeneralNotes, text)
	}
}

func (a *Analyzer) inTitleBlockRegion(frag textextract.Fragment, pageWidth, pageHeight int) bool {
	if pageWidth <= 0 || pageHeight <= 0 {
		return false
	}
	cx := float64(frag.Bounds.X1+frag.Bounds.X2) / 2
	cy := float64(frag.Bounds.Y1+frag.Bounds.Y2) / 2
	return cx >= titleBlockXFraction*float64(pageWidth) && cy >= titleBlockYFraction*float64(pageHeight)
}

func (a *Analyzer) extractMaterialSpecs(n *Notes, text string) {
	for _, p := range concreteGradePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			grade := strings.ToUpper(m[1])
			if hasSpec(n.ConcreteSpecs, grade) {
				continue
			}
			spec := MaterialSpec{Material: "concrete", Grade: grade, Confidence: 0.85}
			if sm := concreteStrengthPattern.FindStringSubmatch(text); sm != nil {
				spec.Strength, _ = strconv.ParseFloat(sm[1], 64)
			}
			n.ConcreteSpecs = append(n.ConcreteSpecs, spec)
		}
	}

	for _, p := range steelGradePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			grade := strings.ToUpper(m[1])
			if hasSpec(n.SteelSpecs, grade) {
				continue
			}
			n.SteelSpecs = append(n.SteelSpecs, MaterialSpec{
				Material: "steel", Grade: grade, Confidence: 0.85,
			})
		}
	}

	for _, p := range timberGradePatterns {
		for _, m := range p.FindAllStringSubmatch(text, -1) {
			grade := strings.ToUpper(m[1])
			if hasSpec(n.TimberSpecs, grade) {
				continue
			}
			n.TimberSpecs = append(n.TimberSpecs, MaterialSpec{
				Material: "timber", Grade: grade, Confidence: 0.8,
			})
		}
	}
}

func (a *Analyzer) extractCriticalInfo(n *Notes, text string) {
	if m := fireRatingPattern.FindStringSubmatch(text); m != nil {
		n.CriticalInfo["fire_rating_hours"] = m[1]
	}
	if m := loadCapacityPattern.FindStringSubmatch(text); m != nil {
		n.CriticalInfo["load_capacity"] = m[1] + " " + strings.ToUpper(m[2])
	}
	if m := seismicPattern.FindStringSubmatch(text); m != nil {
		n.CriticalInfo["seismic_requirements"] = strings.ToUpper(m[1])
	}
}

func hasSpec(specs []MaterialSpec, grade string) bool {
	for _, s := range specs {
		if s.Grade == grade {
			return true
		}
	}
	return false
}

func matchesAny(text string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
