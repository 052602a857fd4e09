package pipeline

import (
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekMadav/construction-ai/internal/conf"
	"github.com/VivekMadav/construction-ai/internal/detection"
)

func testSettings() *conf.Settings {
	return &conf.Settings{
		Log:       conf.LogSettings{Level: "error", Format: "text"},
		Detection: conf.DetectionSettings{ConfidenceThreshold: 0.5},
		Scale:     conf.ScaleSettings{Ratio: 100, DPI: 150},
		Carbon:    conf.CarbonSettings{ProjectType: "commercial"},
	}
}

func writeBlankPage(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestInferDiscipline(t *testing.T) {
	cases := []struct {
		fileName string
		want     detection.Discipline
	}{
		{"structural_plan_L2.pdf", detection.Structural},
		{"site_layout.pdf", detection.Civil},
		{"mechanical_ducting.pdf", detection.MEP},
		{"electrical_riser.pdf", detection.MEP},
		{"floor_plan.pdf", detection.Architectural},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, InferDiscipline(tc.fileName), tc.fileName)
	}
}

func TestAnalyzeDrawingBlankPage(t *testing.T) {
	a := New(testSettings(), nil)
	res, err := a.AnalyzeDrawing(context.Background(), Drawing{
		ID:       "plan_01",
		Path:     writeBlankPage(t),
		FileName: "floor_plan.pdf",
	})
	require.NoError(t, err)

	assert.Equal(t, detection.Architectural, res.Discipline)
	assert.NotNil(t, res.Elements)
	assert.Empty(t, res.Elements)
	assert.NotNil(t, res.Fragments)
	assert.NotNil(t, res.Notes)
	assert.True(t, res.Scale.Assumed)
	assert.InDelta(t, 100.0, res.Scale.Ratio, 1e-9)
	assert.Equal(t, 400, res.PageWidth)
	assert.Equal(t, 300, res.PageHeight)
}

func TestAnalyzeDrawingMissingFileFails(t *testing.T) {
	a := New(testSettings(), nil)
	_, err := a.AnalyzeDrawing(context.Background(), Drawing{
		ID:   "plan_01",
		Path: filepath.Join(t.TempDir(), "absent.png"),
	})
	assert.Error(t, err)
}

func TestAnalyzeDrawingCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(testSettings(), nil)
	_, err := a.AnalyzeDrawing(ctx, Drawing{ID: "plan_01", Path: writeBlankPage(t)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyzeProjectIsolatesFailedDrawing(t *testing.T) {
	a := New(testSettings(), nil)
	project, err := a.AnalyzeProject(context.Background(), []Drawing{
		{ID: "plan_01", Path: writeBlankPage(t), FileName: "floor_plan.pdf"},
		{ID: "plan_02", Path: filepath.Join(t.TempDir(), "absent.png"), FileName: "sections.pdf"},
	})
	require.NoError(t, err)

	require.Len(t, project.Drawings, 1)
	assert.Equal(t, "plan_01", project.Drawings[0].DrawingID)

	require.Len(t, project.Failed, 1)
	assert.Equal(t, "plan_02", project.Failed[0].DrawingID)
	assert.NotEmpty(t, project.Failed[0].Error)
}

func TestEstimatesOnEmptyProject(t *testing.T) {
	a := New(testSettings(), nil)
	project, err := a.AnalyzeProject(context.Background(), []Drawing{
		{ID: "plan_01", Path: writeBlankPage(t), FileName: "floor_plan.pdf"},
	})
	require.NoError(t, err)

	summary := a.EstimateCost(project)
	assert.Zero(t, summary.TotalCost)

	report := a.AssessCarbon(project)
	assert.Zero(t, report.TotalCarbon)
	assert.Equal(t, "commercial", report.ProjectType)
}
