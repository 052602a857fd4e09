package crossref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekMadav/construction-ai/internal/ocr"
	"github.com/VivekMadav/construction-ai/internal/textextract"
)

func textFragment(text string) textextract.Fragment {
	return textextract.Fragment{
		Text:       text,
		Type:       textextract.TypeGeneral,
		Confidence: 0.9,
		Bounds:     ocr.Bounds{X1: 10, Y1: 10, X2: 80, Y2: 30},
	}
}

func TestResolveSectionMark(t *testing.T) {
	drawings := []DrawingText{
		{DrawingID: "plan-01", FileName: "ground-floor-plan.png",
			Fragments: []textextract.Fragment{textFragment("A-A")}},
		{DrawingID: "section-a", FileName: "section-a.png"},
	}

	perDrawing, graph := NewResolver(nil).Resolve(drawings)

	refs := perDrawing["plan-01"]
	require.Len(t, refs, 1)
	assert.Equal(t, KindSection, refs[0].Kind)
	assert.Equal(t, "A-A", refs[0].Mark)
	assert.Equal(t, "section-a", refs[0].TargetDrawing)
	assert.Equal(t, "plan-01", refs[0].SourceDrawing)
	assert.InDelta(t, 0.8, refs[0].Confidence, 1e-9)
	assert.NotEmpty(t, refs[0].ID)

	resolved := graph.Resolved()
	require.Len(t, resolved, 1)
	assert.Equal(t, "plan-01", resolved[0].Source)
	assert.Equal(t, "section-a", resolved[0].Target)
}

func TestResolveUnknownTargetKept(t *testing.T) {
	drawings := []DrawingText{
		{DrawingID: "plan-01", FileName: "plan.png",
			Fragments: []textextract.Fragment{textFragment("DETAIL 7")}},
	}

	perDrawing, graph := NewResolver(nil).Resolve(drawings)

	refs := perDrawing["plan-01"]
	require.Len(t, refs, 1)
	assert.Equal(t, KindDetail, refs[0].Kind)
	assert.Equal(t, UnknownTarget, refs[0].TargetDrawing)

	// Unresolved references stay in the graph but are not traversable edges.
	assert.Len(t, graph.Edges(), 1)
	assert.Empty(t, graph.Resolved())
}

func TestResolveKeepsParallelEdges(t *testing.T) {
	drawings := []DrawingText{
		{DrawingID: "plan-01", FileName: "plan.png",
			Fragments: []textextract.Fragment{
				textFragment("A-A"),
				textFragment("SECTION A"),
			}},
		{DrawingID: "section-a", FileName: "section-a.png"},
	}

	_, graph := NewResolver(nil).Resolve(drawings)

	resolved := graph.Resolved()
	require.Len(t, resolved, 2)
	assert.NotEqual(t, resolved[0].Reference.Mark, resolved[1].Reference.Mark)
}

func TestResolveSingleLetterNeedsTokenMatch(t *testing.T) {
	// Every name below contains the letter A, but only a whole token "a"
	// should resolve.
	drawings := []DrawingText{
		{DrawingID: "plan-01", FileName: "plan.png",
			Fragments: []textextract.Fragment{textFragment("SECTION A")}},
		{DrawingID: "facade", FileName: "facade.png"},
		{DrawingID: "section-a", FileName: "section-a.png"},
	}

	perDrawing, _ := NewResolver(nil).Resolve(drawings)

	refs := perDrawing["plan-01"]
	require.Len(t, refs, 1)
	assert.Equal(t, "section-a", refs[0].TargetDrawing)
}

func TestResolveIsRerunnable(t *testing.T) {
	drawings := []DrawingText{
		{DrawingID: "plan-01", FileName: "plan.png",
			Fragments: []textextract.Fragment{textFragment("ELEVATION B")}},
		{DrawingID: "elev-b", FileName: "elevation-b.png"},
	}

	r := NewResolver(nil)
	first, _ := r.Resolve(drawings)
	second, _ := r.Resolve(drawings)

	require.Len(t, second["plan-01"], 1)
	assert.Equal(t, first["plan-01"][0].TargetDrawing, second["plan-01"][0].TargetDrawing)
	assert.Equal(t, first["plan-01"][0].Mark, second["plan-01"][0].Mark)
}

func TestGraphCyclesAreLegal(t *testing.T) {
	drawings := []DrawingText{
		{DrawingID: "plan-1", FileName: "plan-1.png",
			Fragments: []textextract.Fragment{textFragment("SECTION A")}},
		{DrawingID: "section-a", FileName: "section-a.png",
			Fragments: []textextract.Fragment{textFragment("PLAN 1")}},
	}

	_, graph := NewResolver(nil).Resolve(drawings)

	resolved := graph.Resolved()
	require.Len(t, resolved, 2)
	assert.Equal(t, "section-a", resolved[0].Target)
	assert.Equal(t, "plan-1", resolved[1].Target)
}

func TestGraphStatistics(t *testing.T) {
	r := NewResolver(nil)
	_, graph := r.Resolve([]DrawingText{
		{DrawingID: "plan-01", FileName: "plan.png", Fragments: []textextract.Fragment{
			sectionMarkFragment(),
			{Text: "DETAIL 5", Confidence: 0.9, Bounds: ocr.Bounds{X1: 50, Y1: 50, X2: 120, Y2: 70}},
		}},
		{DrawingID: "section-a", FileName: "section-a.png"},
	})

	stats := graph.Statistics()
	assert.Equal(t, 2, stats.TotalReferences)
	assert.Equal(t, 1, stats.Resolved)
	assert.Equal(t, 1, stats.Unresolved)
	assert.Equal(t, 1, stats.ByKind[string(KindSection)])
	assert.Equal(t, 1, stats.ByKind[string(KindDetail)])
}
