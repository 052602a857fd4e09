package crossref

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/VivekMadav/construction-ai/internal/textextract"
)

// DrawingText is the read-only text snapshot of one drawing, collected after
// extraction has finished for every drawing in the batch. Resolution works
// only on snapshots so results never depend on processing order.
type DrawingText struct {
	// DrawingID identifies the drawing within the project.
	DrawingID string

	// FileName is the original file name, used for target resolution.
	FileName string

	// Fragments is the drawing's extracted text.
	Fragments []textextract.Fragment
}

// Resolver finds reference marks across a project's drawings and resolves
// their targets.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver creates a resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{logger: logger}
}

// Resolve scans every drawing's text for reference marks, resolves targets
// against the project's drawing ids and file names, and builds the directed
// reference graph.
//
// Resolve is a pure function of its snapshot: calling it again over the same
// input produces an equivalent result, so it can re-run after new drawings
// join the project. Unresolved marks are kept with TargetDrawing set to
// UnknownTarget.
func (r *Resolver) Resolve(drawings []DrawingText) (map[string][]Reference, *Graph) {
	perDrawing := make(map[string][]Reference, len(drawings))
	graph := NewGraph()

	for _, d := range drawings {
		refs := r.scanDrawing(d, drawings)
		perDrawing[d.DrawingID] = refs
		for _, ref := range refs {
			graph.add(ref)
		}
	}

	r.logger.Debug("cross-reference resolution complete",
		"drawings", len(drawings), "edges", len(graph.Edges()))
	return perDrawing, graph
}

// scanDrawing finds reference marks in one drawing. Each fragment yields at
// most one reference, from the first pattern that matches.
func (r *Resolver) scanDrawing(d DrawingText, all []DrawingText) []Reference {
	refs := make([]Reference, 0)

	for _, frag := range d.Fragments {
		upper := strings.ToUpper(frag.Text)
		for _, rp := range referencePatterns {
			m := rp.pattern.FindStringSubmatch(upper)
			if m == nil {
				continue
			}
			mark := m[0]
			refs = append(refs, Reference{
				ID:            uuid.NewString(),
				SourceDrawing: d.DrawingID,
				TargetDrawing: r.resolveTarget(mark, m[1], d.DrawingID, all),
				Kind:          rp.kind,
				Mark:          mark,
				Bounds:        frag.Bounds,
				Confidence:    textReferenceConfidence,
			})
			break
		}
	}

	return refs
}

// resolveTarget looks for a sibling drawing whose id or file name carries
// the mark (or its leading identifier). Multi-character marks match by
// substring; single-character identifiers match whole name tokens only, so
// "SECTION A" resolves to "section-a.png" but not to every name containing
// the letter A. The first match in snapshot order wins, which keeps
// resolution deterministic.
func (r *Resolver) resolveTarget(mark, identifier, sourceID string, all []DrawingText) string {
	candidates := []string{strings.ToUpper(mark), strings.ToUpper(identifier)}

	for _, d := range all {
		if d.DrawingID == sourceID {
			continue
		}
		id := strings.ToUpper(d.DrawingID)
		name := strings.ToUpper(d.FileName)
		for _, c := range candidates {
			if c == "" {
				continue
			}
			if len(c) > 1 {
				if strings.Contains(id, c) || strings.Contains(name, c) {
					return d.DrawingID
				}
				continue
			}
			if containsToken(id, c) || containsToken(name, c) {
				return d.DrawingID
			}
		}
	}
	return UnknownTarget
}

func containsToken(s, token string) bool {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return !('A' <= r && r <= 'Z') && !('0' <= r && r <= '9')
	})
	for _, f := range fields {
		if f == token {
			return true
		}
	}
	return false
}
