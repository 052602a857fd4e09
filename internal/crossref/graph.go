package crossref

// Edge is one directed reference from a source drawing to a target drawing.
// Multiple edges between the same pair of drawings are kept distinct because
// each carries its own mark and confidence.
type Edge struct {
	Source    string    `json:"source_drawing_id"`
	Target    string    `json:"target_drawing_id"`
	Reference Reference `json:"reference"`
}

// Graph is the project-level directed reference graph. Cycles are legal:
// a plan referencing a section that references the plan back is normal
// drafting practice.
type Graph struct {
	edges []Edge
}

// NewGraph creates an empty reference graph.
func NewGraph() *Graph {
	return &Graph{edges: make([]Edge, 0)}
}

func (g *Graph) add(ref Reference) {
	g.edges = append(g.edges, Edge{
		Source:    ref.SourceDrawing,
		Target:    ref.TargetDrawing,
		Reference: ref,
	})
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	return g.edges
}

// From returns the edges whose source is the given drawing.
func (g *Graph) From(drawingID string) []Edge {
	out := make([]Edge, 0)
	for _, e := range g.edges {
		if e.Source == drawingID {
			out = append(out, e)
		}
	}
	return out
}

// Stats summarizes the reference graph.
type Stats struct {
	TotalReferences int            `json:"total_references"`
	Resolved        int            `json:"resolved"`
	Unresolved      int            `json:"unresolved"`
	ByKind          map[string]int `json:"by_kind"`
}

// Statistics counts the graph's references, split by resolution state and
// reference kind.
func (g *Graph) Statistics() Stats {
	s := Stats{
		TotalReferences: len(g.edges),
		ByKind:          make(map[string]int),
	}
	for _, e := range g.edges {
		if e.Target == UnknownTarget {
			s.Unresolved++
		} else {
			s.Resolved++
		}
		s.ByKind[string(e.Reference.Kind)]++
	}
	return s
}

// Resolved returns the edges with a known target, excluding self-references.
func (g *Graph) Resolved() []Edge {
	out := make([]Edge, 0)
	for _, e := range g.edges {
		if e.Target != UnknownTarget && e.Target != e.Source {
			out = append(out, e)
		}
	}
	return out
}
