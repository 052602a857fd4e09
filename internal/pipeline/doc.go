// Package pipeline orchestrates the drawing analysis stages.
//
// # Per-drawing flow
//
// Each drawing runs prepare, detect, extract text, map text to elements,
// analyze notes, and apply notes, in that order. The only fatal condition
// is a page image that cannot be decoded; every later stage degrades to a
// valid empty or reduced-confidence result instead of failing.
//
// # Project flow
//
// Drawings analyze concurrently with a bounded fan-out. Cross-reference
// resolution and measurement merging run strictly after the whole batch
// completes, over a stable snapshot of every successful drawing. A failed
// drawing is recorded in the project result and excluded from
// cross-referencing without aborting the batch.
//
// Cost estimation and carbon assessment are separate on-demand passes
// over a completed project result.
package pipeline
