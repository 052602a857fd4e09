package crossref

import (
	"fmt"
	"math"
	"strings"

	"github.com/VivekMadav/construction-ai/internal/detection"
)

// Dimension values within this relative tolerance are considered the same
// measurement drawn twice; beyond it they are a conflict.
const dimensionTolerance = 0.05

// Element pairs must score at least this similarity to merge measurements.
const matchThreshold = 0.7

// crossRefBoost is the confidence increase applied to an element whose
// measurements agree with a cross-referenced drawing.
const crossRefBoost = 0.05

// DrawingElements is one drawing's detected elements with the page size
// needed for normalized position comparison.
type DrawingElements struct {
	DrawingID  string
	PageWidth  int
	PageHeight int
	Elements   []*detection.Element
}

// millimetres per unit, for comparing dimensions across unit systems.
var unitToMM = map[string]float64{
	"MM": 1,
	"CM": 10,
	"M":  1000,
	"FT": 304.8,
	"IN": 25.4,
}

// MergeMeasurements walks every resolved edge in the graph and merges
// dimension information between matched elements of the source and target
// drawings.
//
// The merge never overwrites a conflicting value: measurements that agree
// within tolerance are averaged, measurements that disagree leave the source
// value in place and record a conflict note, and measurements missing from
// the source are supplied from the target with the target's drawing id as
// their source. Agreement raises cross_reference_confidence and boosts the
// element once; conflicts lower cross_reference_confidence instead.
func (r *Resolver) MergeMeasurements(drawings []DrawingElements, graph *Graph) {
	byID := make(map[string]DrawingElements, len(drawings))
	for _, d := range drawings {
		byID[d.DrawingID] = d
	}

	for _, edge := range graph.Resolved() {
		source, ok := byID[edge.Source]
		if !ok {
			continue
		}
		target, ok := byID[edge.Target]
		if !ok {
			continue
		}
		for _, el := range source.Elements {
			match := bestMatch(el, source, target)
			if match == nil {
				continue
			}
			r.mergeElement(el, match, target.DrawingID)
		}
	}
}

// bestMatch finds the target drawing element most similar to el, or nil when
// nothing clears the match threshold.
func bestMatch(el *detection.Element, source, target DrawingElements) *detection.Element {
	var best *detection.Element
	bestScore := matchThreshold
	for _, cand := range target.Elements {
		score := similarity(el, cand, source, target)
		if score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best
}

// similarity scores two elements across drawings: type identity weighs 0.4,
// normalized position 0.4, and shape 0.2.
func similarity(a, b *detection.Element, da, db DrawingElements) float64 {
	typeScore := 0.0
	if a.Type == b.Type {
		typeScore = 1.0
	}
	return typeScore*0.4 + positionSimilarity(a, b, da, db)*0.4 + shapeSimilarity(a, b)*0.2
}

// positionSimilarity compares element centers normalized by their own page
// sizes, so drawings at different resolutions still align.
func positionSimilarity(a, b *detection.Element, da, db DrawingElements) float64 {
	if da.PageWidth <= 0 || da.PageHeight <= 0 || db.PageWidth <= 0 || db.PageHeight <= 0 {
		return 0
	}
	ca := a.Bounds.Center()
	cb := b.Bounds.Center()
	dx := float64(ca.X)/float64(da.PageWidth) - float64(cb.X)/float64(db.PageWidth)
	dy := float64(ca.Y)/float64(da.PageHeight) - float64(cb.Y)/float64(db.PageHeight)
	dist := math.Sqrt(dx*dx + dy*dy)
	if dist >= 1 {
		return 0
	}
	return 1 - dist
}

// shapeSimilarity compares aspect ratios.
func shapeSimilarity(a, b *detection.Element) float64 {
	ra := a.Bounds.AspectRatio()
	rb := b.Bounds.AspectRatio()
	if ra <= 0 || rb <= 0 {
		return 0
	}
	return math.Min(ra, rb) / math.Max(ra, rb)
}

// mergeElement merges the matched target element's dimensions into el.
func (r *Resolver) mergeElement(el, match *detection.Element, targetID string) {
	agreements := make([]float64, 0)

	for _, td := range match.Enhanced.Dimensions {
		sd := closestDimension(el.Enhanced.Dimensions, td)
		if sd == nil {
			// Supplied by the cross-referenced drawing; raises completeness.
			if !hasDimension(el.Enhanced.Dimensions, td) {
				el.Enhanced.Dimensions = append(el.Enhanced.Dimensions, detection.Dimension{
					Value:  td.Value,
					Unit:   td.Unit,
					Source: targetID,
				})
				el.Enhanced.MeasurementMethod = "cross_reference"
			}
			continue
		}

		rel := relativeDifference(*sd, td)
		if rel <= dimensionTolerance {
			agreements = append(agreements, 1)
			if !strings.HasPrefix(sd.Source, "merged:") {
				sd.Value = (sd.Value + convertValue(td, sd.Unit)) / 2
				sd.Source = "merged:" + targetID
				el.Enhanced.MeasurementMethod = "cross_reference"
			}
		} else {
			agreements = append(agreements, 0)
			note := fmt.Sprintf("%s: %g %s (this drawing) vs %g %s (%s)",
				el.ID, sd.Value, sd.Unit, td.Value, td.Unit, targetID)
			if !hasNote(el.Enhanced.ConflictNotes, note) {
				el.Enhanced.ConflictNotes = append(el.Enhanced.ConflictNotes, note)
			}
		}
	}

	quality := math.Min(1, match.Confidence+0.1)
	if len(agreements) == 0 {
		// A matched element with nothing to compare still corroborates
		// existence, at reduced weight.
		el.Enhanced.CrossReferenceConfidence = quality * 0.5
	} else {
		mean := 0.0
		for _, a := range agreements {
			mean += a
		}
		mean /= float64(len(agreements))
		el.Enhanced.CrossReferenceConfidence = quality * (0.25 + 0.75*mean)
		if mean == 1 && !el.HasBoost("cross_reference") {
			el.Boost("cross_reference", crossRefBoost)
		}
	}

	el.Enhanced.MeasurementCompleteness = completeness(el)
}

// closestDimension finds the source dimension nearest in value to td, or nil
// when the element has no comparable dimension.
func closestDimension(dims []detection.Dimension, td detection.Dimension) *detection.Dimension {
	var best *detection.Dimension
	bestDiff := math.Inf(1)
	for i := range dims {
		if dims[i].Source != "text" && !strings.HasPrefix(dims[i].Source, "merged:") {
			continue
		}
		diff := math.Abs(toMM(dims[i]) - toMM(td))
		if diff < bestDiff {
			best = &dims[i]
			bestDiff = diff
		}
	}
	return best
}

func hasDimension(dims []detection.Dimension, d detection.Dimension) bool {
	for _, existing := range dims {
		if existing.Value == d.Value && existing.Unit == d.Unit {
			return true
		}
	}
	return false
}

func hasNote(notes []string, note string) bool {
	for _, n := range notes {
		if n == note {
			return true
		}
	}
	return false
}

func toMM(d detection.Dimension) float64 {
	factor, ok := unitToMM[strings.ToUpper(d.Unit)]
	if !ok {
		factor = 1
	}
	return d.Value * factor
}

// convertValue expresses a dimension's value in the given unit.
func convertValue(d detection.Dimension, unit string) float64 {
	target, ok := unitToMM[strings.ToUpper(unit)]
	if !ok || target == 0 {
		return d.Value
	}
	return toMM(d) / target
}

func relativeDifference(a, b detection.Dimension) float64 {
	va := toMM(a)
	vb := toMM(b)
	largest := math.Max(math.Abs(va), math.Abs(vb))
	if largest == 0 {
		return 0
	}
	return math.Abs(va-vb) / largest
}

// expectedDimensionCounts is the number of distinct measurements a complete
// element of each type carries.
var expectedDimensionCounts = map[string]int{
	"wall":          2,
	"slab":          2,
	"room":          2,
	"road":          2,
	"beam":          1,
	"plumbing_pipe": 1,
	"hvac_duct":     1,
	"drainage":      1,
	"column":        2,
	"foundation":    3,
}

// completeness is the fraction of expected measurements present.
func completeness(el *detection.Element) float64 {
	expected, ok := expectedDimensionCounts[el.Type]
	if !ok || expected == 0 {
		return 1
	}
	frac := float64(len(el.Enhanced.Dimensions)) / float64(expected)
	return math.Min(1, frac)
}
