// Package mapping attaches classified text fragments to detected elements.
//
// A fragment maps to its nearest element by center-to-center distance, within
// a threshold of 8% of the larger page dimension. The relationship kind
// follows the fragment's text type: labels record a stated element type,
// dimensions append parsed measurements, materials and specifications append
// call-outs, and room names attach to room elements only.
//
// Merging is strictly additive and idempotent. Enhanced properties are never
// overwritten with lower-confidence information, duplicate mappings are
// skipped, and a label that agrees with the geometric classification boosts
// the element's confidence exactly once.
package mapping
