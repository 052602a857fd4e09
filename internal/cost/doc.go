// Package cost prices enriched elements against a (element type, material)
// rate table and aggregates a project summary.
//
// Materials come from text call-outs mapped to the element, falling back to
// a per-type default. Specification multipliers (fire rated, insulated,
// waterproof, structural, reinforced, precast) adjust the base rate
// cumulatively in the order the specifications were recorded.
//
// Nothing is silently dropped: elements without a rate or a computable
// quantity land in the summary's unestimated list with a reason. Summary
// confidence follows a documented formula, 0.5 times the fraction of
// elements with resolved rates plus 0.5 times the mean element confidence.
// Per-element cost is floored at zero, so totals never go negative.
package cost
