// Package crossref finds and resolves references between drawings of a
// project, and merges measurements between cross-referenced elements.
//
// Reference marks follow drafting conventions: section pair marks ("A-A"),
// "SECTION A", "DETAIL 3", "ELEVATION B", and plan/level callouts. A mark
// resolves to the sibling drawing whose id or file name carries the mark;
// unresolved marks are kept with an "unknown" target for auditability.
//
// Resolution runs over a read-only snapshot collected after text extraction
// has finished for every drawing in the batch, so results never depend on
// processing order and the resolver can re-run when drawings join the
// project. The resulting graph is directed and may contain cycles; parallel
// edges between the same pair of drawings are kept distinct.
//
// Measurement merging is conservative. Agreeing values (within 5%) are
// averaged and raise cross-reference confidence; disagreeing values keep the
// source drawing's measurement, record a conflict note, and lower
// cross-reference confidence; values missing from the source are supplied
// from the target and raise measurement completeness.
package crossref
