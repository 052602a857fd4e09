package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/ocr"
	"github.com/VivekMadav/construction-ai/internal/textextract"
)

func frag(text string, x, y int) textextract.Fragment {
	return textextract.Fragment{
		Text:       text,
		Type:       textextract.TypeGeneral,
		Confidence: 0.9,
		Bounds:     ocr.Bounds{X1: x, Y1: y, X2: x + 100, Y2: y + 20},
	}
}

func TestAnalyzeTitleBlockByPosition(t *testing.T) {
	// Bottom-right corner of a 1000x800 page.
	fragments := []textextract.Fragment{
		frag("RIVERSIDE TOWER", 850, 700),
		frag("GENERAL NOTES", 100, 100),
	}

	n := NewAnalyzer(nil).Analyze(fragments, 1000, 800)

	require.Len(t, n.TitleBlock, 1)
	assert.Equal(t, "RIVERSIDE TOWER", n.TitleBlock[0].Text)
	assert.Equal(t, []string{"GENERAL NOTES"}, n.GeneralNotes)
}

func TestAnalyzeTitleBlockByPattern(t *testing.T) {
	fragments := []textextract.Fragment{
		frag("PROJECT: RIVERSIDE TOWER", 100, 100),
		frag("DRAWN BY: JK", 100, 130),
	}

	n := NewAnalyzer(nil).Analyze(fragments, 1000, 800)

	assert.Len(t, n.TitleBlock, 2)
}

func TestAnalyzeScaleNote(t *testing.T) {
	fragments := []textextract.Fragment{frag("SCALE 1:50", 850, 720)}

	n := NewAnalyzer(nil).Analyze(fragments, 1000, 800)

	require.NotNil(t, n.Scale)
	assert.Equal(t, 50.0, n.Scale.Ratio)
	assert.False(t, n.Scale.Assumed)
}

func TestAnalyzeMaterialSpecs(t *testing.T) {
	fragments := []textextract.Fragment{
		frag("CONCRETE GRADE: C30", 100, 100),
		frag("STEEL GRADE: S355", 100, 130),
		frag("TIMBER GRADE: C24", 100, 160),
	}

	n := NewAnalyzer(nil).Analyze(fragments, 1000, 800)

	require.Len(t, n.ConcreteSpecs, 1)
	assert.Equal(t, "C30", n.ConcreteSpecs[0].Grade)
	require.Len(t, n.SteelSpecs, 1)
	assert.Equal(t, "S355", n.SteelSpecs[0].Grade)
	require.Len(t, n.TimberSpecs, 1)
	assert.Equal(t, "C24", n.TimberSpecs[0].Grade)
}

func TestAnalyzeConcreteStrength(t *testing.T) {
	fragments := []textextract.Fragment{
		frag("CONCRETE GRADE: C30", 100, 100),
		frag("STRENGTH 30 N/MM2", 100, 130),
	}

	n := NewAnalyzer(nil).Analyze(fragments, 1000, 800)

	require.Len(t, n.ConcreteSpecs, 1)
	assert.Equal(t, 30.0, n.ConcreteSpecs[0].Strength)
}

func TestAnalyzeCriticalInfo(t *testing.T) {
	fragments := []textextract.Fragment{
		frag("FIRE RATING: 2 HOURS", 100, 100),
		frag("LOAD CAPACITY: 50 KN", 100, 130),
		frag("SEISMIC ZONE: 3", 100, 160),
	}

	n := NewAnalyzer(nil).Analyze(fragments, 1000, 800)

	assert.Equal(t, "2", n.CriticalInfo["fire_rating_hours"])
	assert.Equal(t, "50 KN", n.CriticalInfo["load_capacity"])
	assert.Equal(t, "3", n.CriticalInfo["seismic_requirements"])
}

func TestApplyGradesToCompatibleElements(t *testing.T) {
	wall := &detection.Element{
		ID: "wall_001", Type: "wall",
		Bounds:     detection.Bounds{X1: 0, Y1: 0, X2: 100, Y2: 20},
		Confidence: 0.85, Discipline: detection.Architectural,
	}
	beam := &detection.Element{
		ID: "beam_001", Type: "beam",
		Bounds:     detection.Bounds{X1: 0, Y1: 50, X2: 200, Y2: 70},
		Confidence: 0.90, Discipline: detection.Structural,
	}
	duct := &detection.Element{
		ID: "hvac_duct_001", Type: "hvac_duct",
		Bounds:     detection.Bounds{X1: 0, Y1: 100, X2: 200, Y2: 130},
		Confidence: 0.80, Discipline: detection.MEP,
	}
	elements := []*detection.Element{wall, beam, duct}

	n := &Notes{
		ConcreteSpecs: []MaterialSpec{{Material: "concrete", Grade: "C30", Confidence: 0.85}},
		SteelSpecs:    []MaterialSpec{{Material: "steel", Grade: "S355", Confidence: 0.85}},
		CriticalInfo:  map[string]string{"fire_rating_hours": "2"},
	}

	a := NewAnalyzer(nil)
	a.Apply(elements, n)

	assert.Equal(t, "C30", wall.Enhanced.ConcreteGrade)
	assert.Empty(t, wall.Enhanced.SteelGrade)
	assert.InDelta(t, 0.95, wall.Confidence, 1e-9)

	assert.Equal(t, "S355", beam.Enhanced.SteelGrade)
	assert.InDelta(t, 1.0, beam.Confidence, 1e-9)

	// MEP ductwork gets no structural grades but does get drawing-wide info.
	assert.Empty(t, duct.Enhanced.ConcreteGrade)
	assert.Empty(t, duct.Enhanced.SteelGrade)
	assert.InDelta(t, 0.80, duct.Confidence, 1e-9)
	for _, el := range elements {
		assert.Equal(t, "2", el.Enhanced.CriticalInfo["fire_rating_hours"])
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	wall := &detection.Element{
		ID: "wall_001", Type: "wall",
		Bounds:     detection.Bounds{X1: 0, Y1: 0, X2: 100, Y2: 20},
		Confidence: 0.85, Discipline: detection.Structural,
	}
	n := &Notes{
		ConcreteSpecs: []MaterialSpec{{Material: "concrete", Grade: "C30", Confidence: 0.85}},
	}

	a := NewAnalyzer(nil)
	a.Apply([]*detection.Element{wall}, n)
	a.Apply([]*detection.Element{wall}, n)

	assert.Equal(t, "C30", wall.Enhanced.ConcreteGrade)
	assert.InDelta(t, 0.95, wall.Confidence, 1e-9)
	assert.Len(t, wall.Boosts, 1)
}

func TestSummaryCounts(t *testing.T) {
	fragments := []textextract.Fragment{
		frag("PROJECT: RIVERSIDE TOWER", 100, 100),
		frag("GENERAL NOTES", 100, 140),
		frag("ALL DIMENSIONS IN MM", 100, 180),
		frag("CONCRETE GRADE: C30", 100, 220),
		frag("FIRE RATING: 2 HOURS", 100, 260),
	}

	n := NewAnalyzer(nil).Analyze(fragments, 1000, 800)
	summary := n.Summary()

	assert.Equal(t, 1, summary["title_block"])
	assert.Equal(t, 1, summary["dimension_notes"])
	assert.Equal(t, 1, summary["material_specs"])
	assert.Equal(t, 1, summary["critical_info"])
}

func TestAnalyzeWithoutScaleNoteLeavesScaleNil(t *testing.T) {
	n := NewAnalyzer(nil).Analyze([]textextract.Fragment{frag("GENERAL NOTES", 100, 100)}, 1000, 800)
	assert.Nil(t, n.Scale)
}
