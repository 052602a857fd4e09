package ocr

import (
	"fmt"
	"image"
)

// Fallback locator tuning. Text strokes cover a moderate fraction of a band:
// solid element fills are denser, empty paper is sparser.
const (
	fallbackMinBandDensity = 0.02
	fallbackMaxBandDensity = 0.45
	fallbackMinBandHeight  = 6
	fallbackMaxBandHeight  = 60
	fallbackMinBoxWidth    = 8
	fallbackMaxGap         = 12

	// FallbackConfidenceCeiling caps the confidence of located-but-unread
	// regions. Without recognition the content is a placeholder, so the
	// score must never compete with real OCR output.
	FallbackConfidenceCeiling = 0.4
)

// LocateWords finds likely text regions in a binarized page without reading
// their content. It is the degraded path used when no OCR backend is
// available: each region gets a sequential placeholder for its text and a
// confidence capped at FallbackConfidenceCeiling.
//
// The input is a binary image where ink is black (0) and paper is white.
// Detection works by row projection: horizontal bands whose ink density
// falls in the text-like range become candidate lines, which are then split
// into word-sized boxes at column gaps.
func LocateWords(binary *image.Gray) []Word {
	bounds := binary.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	if w == 0 || h == 0 {
		return []Word{}
	}

	// Ink count per row.
	rowInk := make([]int, h)
	for y := 0; y < h; y++ {
		count := 0
		for x := 0; x < w; x++ {
			if binary.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y < 128 {
				count++
			}
		}
		rowInk[y] = count
	}

	words := make([]Word, 0)
	seq := 0

	y := 0
	for y < h {
		density := float64(rowInk[y]) / float64(w)
		if density < fallbackMinBandDensity || density > fallbackMaxBandDensity {
			y++
			continue
		}

		// Extend the band while rows stay text-like.
		bandStart := y
		for y < h {
			d := float64(rowInk[y]) / float64(w)
			if d < fallbackMinBandDensity || d > fallbackMaxBandDensity {
				break
			}
			y++
		}
		bandHeight := y - bandStart
		if bandHeight < fallbackMinBandHeight || bandHeight > fallbackMaxBandHeight {
			continue
		}

		for _, box := range splitBand(binary, bounds, bandStart, y) {
			seq++
			words = append(words, Word{
				Text:       fmt.Sprintf("TEXT_%03d", seq),
				Confidence: fallbackConfidence(binary, bounds, box),
				Bounds:     box,
			})
		}
	}

	return words
}

// splitBand divides a horizontal text band into word boxes at column gaps
// wider than fallbackMaxGap.
func splitBand(binary *image.Gray, bounds image.Rectangle, y1, y2 int) []Bounds {
	w := bounds.Dx()

	colInk := make([]bool, w)
	for x := 0; x < w; x++ {
		for y := y1; y < y2; y++ {
			if binary.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y < 128 {
				colInk[x] = true
				break
			}
		}
	}

	boxes := make([]Bounds, 0)
	start := -1
	gap := 0
	for x := 0; x <= w; x++ {
		inked := x < w && colInk[x]
		switch {
		case inked && start < 0:
			start = x
			gap = 0
		case inked:
			gap = 0
		case start >= 0:
			gap++
			if gap > fallbackMaxGap || x == w {
				end := x - gap + 1
				if end-start >= fallbackMinBoxWidth {
					boxes = append(boxes, Bounds{X1: start, Y1: y1, X2: end, Y2: y2})
				}
				start = -1
				gap = 0
			}
		}
	}
	return boxes
}

// fallbackConfidence scores a located box by how close its ink density sits
// to the middle of the text-like range, capped at the fallback ceiling.
func fallbackConfidence(binary *image.Gray, bounds image.Rectangle, box Bounds) float64 {
	area := (box.X2 - box.X1) * (box.Y2 - box.Y1)
	if area <= 0 {
		return 0
	}
	ink := 0
	for y := box.Y1; y < box.Y2; y++ {
		for x := box.X1; x < box.X2; x++ {
			if binary.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y < 128 {
				ink++
			}
		}
	}
	density := float64(ink) / float64(area)

	// Inside a tight word box glyph strokes cover roughly a third of the
	// area; score by distance from that target.
	const targetDensity = 0.35
	fit := 1 - abs(density-targetDensity)/targetDensity
	if fit < 0 {
		fit = 0
	}
	return fit * FallbackConfidenceCeiling
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
