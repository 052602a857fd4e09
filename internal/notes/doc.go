// Package notes analyzes drawing-wide annotations and applies them to
// detected elements.
//
// Fragments are classified into note categories (title block, general,
// material specifications, construction, dimension, revision) using position
// and keyword heuristics: the title block is the bottom-right corner region
// of the sheet, everything else is keyword headed. Material grades (C30,
// S355, B500B) and critical requirements (fire rating hours, load capacity,
// seismic zone) are extracted with pattern matching over the full text.
//
// Grades apply only to material-compatible element types in matching
// disciplines; critical info is a drawing-wide requirement and attaches to
// every element. Applying a grade boosts the element's confidence once,
// capped at 1.0 like every other boost.
package notes
