package notes

import (
	"github.com/VivekMadav/construction-ai/internal/detection"
)

// specMatchBoost is the confidence increase for an element that received a
// material grade from the drawing notes.
const specMatchBoost = 0.1

// Element types compatible with each material grade kind.
var (
	concreteTypes = map[string]bool{
		"wall": true, "slab": true, "foundation": true, "column": true,
	}
	steelTypes = map[string]bool{
		"beam": true, "column": true,
	}

	// Disciplines whose elements can receive structural material grades.
	concreteDisciplines = map[detection.Discipline]bool{
		detection.Architectural: true,
		detection.Structural:    true,
		detection.Civil:         true,
	}
	steelDisciplines = map[detection.Discipline]bool{
		detection.Structural: true,
	}
)

// Apply mutates the drawing's elements with the analyzed notes.
//
// Material grades go only to elements whose type and discipline are
// compatible: concrete grades to walls, slabs, foundations and columns in
// architectural, structural and civil drawings; steel grades to beams and
// columns in structural drawings. Critical info (fire rating, load capacity,
// seismic requirements) is drawing-wide and attaches to every element.
//
// A successfully applied grade boosts the element's confidence once per
// element, with the usual 1.0 cap. Apply is idempotent: grades already set
// are left alone and critical info keys are simply re-set to the same values.
func (a *Analyzer) Apply(elements []*detection.Element, n *Notes) {
	if n == nil {
		return
	}

	applied := 0
	for _, el := range elements {
		if a.applyGrades(el, n) {
			applied++
		}
		a.applyCriticalInfo(el, n)
	}

	a.logger.Debug("notes applied", "elements", len(elements), "grades_applied", applied)
}

func (a *Analyzer) applyGrades(el *detection.Element, n *Notes) bool {
	applied := false

	if len(n.ConcreteSpecs) > 0 && concreteTypes[el.Type] && concreteDisciplines[el.Discipline] {
		if el.Enhanced.ConcreteGrade == "" {
			el.Enhanced.ConcreteGrade = n.ConcreteSpecs[0].Grade
			applied = true
		}
	}

	if len(n.SteelSpecs) > 0 && steelTypes[el.Type] && steelDisciplines[el.Discipline] {
		if el.Enhanced.SteelGrade == "" {
			el.Enhanced.SteelGrade = n.SteelSpecs[0].Grade
			applied = true
		}
	}

	if applied && !el.HasBoost("spec_match") {
		el.Boost("spec_match", specMatchBoost)
	}
	return applied
}

func (a *Analyzer) applyCriticalInfo(el *detection.Element, n *Notes) {
	if len(n.CriticalInfo) == 0 {
		return
	}
	if el.Enhanced.CriticalInfo == nil {
		el.Enhanced.CriticalInfo = make(map[string]string, len(n.CriticalInfo))
	}
	for k, v := range n.CriticalInfo {
		el.Enhanced.CriticalInfo[k] = v
	}
}
