// Package textextract turns raw OCR output into classified text fragments.
//
// Every fragment found on a page is assigned a text kind in fixed priority
// order: dimension patterns first, then element labels, room names,
// materials, specifications, and finally general text. Dimension fragments
// carry a parsed numeric value and unit (bare numbers default to
// millimetres); material fragments carry a canonical grade string when one
// is present (C30, S355, B500B).
//
// When no OCR backend is available the extractor degrades to the geometric
// locator in the ocr package: fragments get placeholder text, type general,
// and a confidence capped below real recognition output. The degradation is
// logged once per extractor.
package textextract
