package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/VivekMadav/construction-ai/internal/carbon"
	"github.com/VivekMadav/construction-ai/internal/conf"
	"github.com/VivekMadav/construction-ai/internal/cost"
	"github.com/VivekMadav/construction-ai/internal/crossref"
	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/imaging"
	"github.com/VivekMadav/construction-ai/internal/mapping"
	"github.com/VivekMadav/construction-ai/internal/notes"
	"github.com/VivekMadav/construction-ai/internal/ocr"
	"github.com/VivekMadav/construction-ai/internal/quantity"
	"github.com/VivekMadav/construction-ai/internal/textextract"
)

// maxConcurrentDrawings bounds the analysis fan-out. Page decoding and
// contour grouping are memory-heavy, so unbounded parallelism trades
// speed for allocation pressure.
const maxConcurrentDrawings = 4

// Analyzer runs the full analysis pipeline over drawings.
type Analyzer struct {
	settings  *conf.Settings
	cache     *imaging.PageCache
	detector  *detection.Detector
	extractor *textextract.Extractor
	mapper    *mapping.Mapper
	notes     *notes.Analyzer
	resolver  *crossref.Resolver
	rates     *cost.RateTable
	logger    *slog.Logger
}

// New builds an analyzer from settings. Rule and rate overrides from the
// configuration are applied on top of the built-in tables.
func New(settings *conf.Settings, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}

	opts := []detection.Option{detection.WithLogger(logger)}
	for name, rules := range settings.Detection.Rules {
		opts = append(opts, detection.WithRules(detection.Discipline(name), detection.RuleTable(rules)))
	}

	rates := cost.DefaultRates()
	rates.Override(settings.Cost.Rates)

	return &Analyzer{
		settings:  settings,
		cache:     imaging.NewPageCache(),
		detector:  detection.New(opts...),
		extractor: textextract.NewExtractor(ocr.Probe(), logger),
		mapper:    mapping.New(logger),
		notes:     notes.NewAnalyzer(logger),
		resolver:  crossref.NewResolver(logger),
		rates:     rates,
		logger:    logger,
	}
}

// AnalyzeDrawing runs the per-drawing stages: prepare, detect, extract
// text, map text to elements, analyze notes, apply notes to elements.
//
// An undecodable page image is the only fatal condition. Everything
// downstream degrades instead: zero elements, fallback text extraction,
// and empty notes are all valid results.
func (a *Analyzer) AnalyzeDrawing(ctx context.Context, d Drawing) (*DrawingResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := a.cache.Load(d.Path)
	if err != nil {
		return nil, err
	}
	defer a.cache.Evict(d.Path)

	discipline := d.Discipline
	if discipline == "" {
		discipline = InferDiscipline(d.FileName)
	}

	prep := imaging.Prepare(img)
	bounds := prep.Source.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	elements, err := a.detector.Detect(prep.Gray, discipline, a.settings.Detection.ConfidenceThreshold)
	if err != nil {
		return nil, fmt.Errorf("detection: %w", err)
	}

	fragments, err := a.extractor.Extract(prep.Source, prep.Binary)
	if err != nil {
		a.logger.Warn("text extraction failed, continuing without text",
			"drawing", d.ID, "error", err)
		fragments = []textextract.Fragment{}
	}

	a.mapper.Map(elements, fragments, width, height)

	drawingNotes := a.notes.Analyze(fragments, width, height)
	a.notes.Apply(elements, drawingNotes)

	scale := a.assumedScale()
	if drawingNotes.Scale != nil {
		scale = *drawingNotes.Scale
	}

	a.logger.Info("drawing analyzed",
		"drawing", d.ID, "discipline", discipline,
		"elements", len(elements), "fragments", len(fragments),
		"notes", drawingNotes.Summary())

	return &DrawingResult{
		DrawingID:  d.ID,
		FileName:   d.FileName,
		Discipline: discipline,
		PageWidth:  width,
		PageHeight: height,
		Scale:      scale,
		Elements:   elements,
		Fragments:  fragments,
		References: []crossref.Reference{},
		Notes:      drawingNotes,
	}, nil
}

// AnalyzeProject analyzes every drawing concurrently, then resolves
// cross-drawing references and merges measurements over the completed set.
//
// A failed drawing is recorded and excluded from cross-referencing; it
// never aborts the batch. The returned error is non-nil only when the
// context is cancelled.
func (a *Analyzer) AnalyzeProject(ctx context.Context, drawings []Drawing) (*ProjectResult, error) {
	results := make([]*DrawingResult, len(drawings))
	var mu sync.Mutex
	failed := make([]DrawingFailure, 0)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDrawings)

	for i, d := range drawings {
		i, d := i, d
		g.Go(func() error {
			res, err := a.AnalyzeDrawing(ctx, d)
			if err != nil {
				if ctx.Err() != nil {
					return err
				}
				a.logger.Error("drawing analysis failed",
					"drawing", d.ID, "path", d.Path, "error", err)
				mu.Lock()
				failed = append(failed, DrawingFailure{
					DrawingID: d.ID,
					Path:      d.Path,
					Error:     err.Error(),
				})
				mu.Unlock()
				return nil
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	project := &ProjectResult{
		Drawings: make([]*DrawingResult, 0, len(drawings)),
		Failed:   failed,
	}
	for _, res := range results {
		if res != nil {
			project.Drawings = append(project.Drawings, res)
		}
	}

	a.resolveReferences(project)
	return project, nil
}

// resolveReferences runs cross-reference resolution and measurement
// merging over the completed drawing set. It runs strictly after every
// drawing finishes so the resolution sees a stable snapshot.
func (a *Analyzer) resolveReferences(project *ProjectResult) {
	if len(project.Drawings) < 2 {
		return
	}

	texts := make([]crossref.DrawingText, 0, len(project.Drawings))
	for _, d := range project.Drawings {
		texts = append(texts, crossref.DrawingText{
			DrawingID: d.DrawingID,
			FileName:  d.FileName,
			Fragments: d.Fragments,
		})
	}

	references, graph := a.resolver.Resolve(texts)
	elements := make([]crossref.DrawingElements, 0, len(project.Drawings))
	for _, d := range project.Drawings {
		if refs, ok := references[d.DrawingID]; ok {
			d.References = refs
		}
		elements = append(elements, crossref.DrawingElements{
			DrawingID:  d.DrawingID,
			PageWidth:  d.PageWidth,
			PageHeight: d.PageHeight,
			Elements:   d.Elements,
		})
	}

	a.resolver.MergeMeasurements(elements, graph)

	stats := graph.Statistics()
	a.logger.Info("cross-references resolved",
		"total", stats.TotalReferences, "resolved", stats.Resolved,
		"unresolved", stats.Unresolved)
}

// EstimateCost prices every element in the project.
func (a *Analyzer) EstimateCost(project *ProjectResult) *cost.ProjectCostSummary {
	calc := quantity.NewCalculator(a.projectScale(project), a.logger)
	return cost.NewEstimator(a.rates, calc, a.logger).Estimate(project.Elements())
}

// AssessCarbon computes the project's embodied carbon report.
func (a *Analyzer) AssessCarbon(project *ProjectResult) *carbon.Report {
	calc := quantity.NewCalculator(a.projectScale(project), a.logger)
	return carbon.NewEstimator(calc, a.logger).Estimate(project.Elements(), a.settings.Carbon.ProjectType)
}

// projectScale picks the scale for quantity estimation: the first scale
// detected from a drawing note, otherwise the configured assumption.
// Drawing sets are rasterized together, so one scale per project is the
// common case; per-drawing scales only matter for pixel-measured
// fallback quantities.
func (a *Analyzer) projectScale(project *ProjectResult) imaging.DrawingScale {
	for _, d := range project.Drawings {
		if !d.Scale.Assumed {
			return d.Scale
		}
	}
	return a.assumedScale()
}

func (a *Analyzer) assumedScale() imaging.DrawingScale {
	return imaging.DrawingScale{
		Ratio:   a.settings.Scale.Ratio,
		DPI:     a.settings.Scale.DPI,
		Assumed: true,
	}
}
