// Package quantity converts enriched elements into billing quantities.
//
// Each element type has a fixed billing unit: square metres for surfaces
// (walls, slabs, rooms, roads), linear metres for runs (beams, pipes, ducts,
// drainage), cubic metres for foundations, and a count of one for installed
// items (doors, windows, columns, panels).
//
// Text-derived dimensions are always preferred over pixel geometry. The
// pixel fallback converts the bounding box through the drawing scale; when
// that scale was assumed rather than read from a scale note, the quantity's
// confidence drops to a documented floor so consumers can tell a measured
// quantity from a guessed one. Quantity confidence is deliberately separate
// from element detection confidence.
//
// Failures are explicit: an element type with no billing unit returns
// ErrUnknownElementType, and a genuine zero measurement is returned as a
// value. Zero is never used as an error marker.
package quantity
