package ocr

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPage creates a white binary page of the given size.
func newPage(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

// inkTextLine draws a dashed horizontal stroke pattern resembling a line of
// text between (x1,y1) and (x2,y2).
func inkTextLine(img *image.Gray, x1, y1, x2, y2 int) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x += 2 {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
}

func TestLocateWordsFindsTextBand(t *testing.T) {
	page := newPage(200, 100)
	inkTextLine(page, 40, 20, 90, 34)

	words := LocateWords(page)
	require.Len(t, words, 1)

	w := words[0]
	assert.Equal(t, "TEXT_001", w.Text)
	assert.LessOrEqual(t, w.Confidence, FallbackConfidenceCeiling)
	assert.Greater(t, w.Confidence, 0.0)

	assert.LessOrEqual(t, w.Bounds.X1, 40)
	assert.GreaterOrEqual(t, w.Bounds.X2, 88)
	assert.Equal(t, 20, w.Bounds.Y1)
	assert.Equal(t, 34, w.Bounds.Y2)
}

func TestLocateWordsSplitsSeparatedWords(t *testing.T) {
	page := newPage(300, 100)
	inkTextLine(page, 20, 40, 70, 54)
	inkTextLine(page, 120, 40, 180, 54)

	words := LocateWords(page)
	require.Len(t, words, 2)
	assert.Equal(t, "TEXT_001", words[0].Text)
	assert.Equal(t, "TEXT_002", words[1].Text)
	assert.Less(t, words[0].Bounds.X2, words[1].Bounds.X1)
}

func TestLocateWordsIgnoresSolidFill(t *testing.T) {
	page := newPage(200, 100)
	// Solid block: density far above the text-like range.
	for y := 20; y < 60; y++ {
		for x := 0; x < 200; x++ {
			page.SetGray(x, y, color.Gray{Y: 0})
		}
	}

	words := LocateWords(page)
	assert.Empty(t, words)
}

func TestLocateWordsEmptyPage(t *testing.T) {
	words := LocateWords(newPage(100, 100))
	assert.Empty(t, words)
	assert.NotNil(t, words)
}
