package imaging

import (
	"fmt"
	"regexp"
	"strconv"
)

// Drawing scale defaults. When a drawing carries no "SCALE 1:100" note the
// pipeline assumes a 1:100 drawing rasterized at 150 DPI, and downstream
// quantity results derived from pixel geometry are flagged low-confidence.
const (
	DefaultScaleRatio = 100.0
	DefaultDPI        = 150.0

	inchesPerMeter = 39.3701
)

// DrawingScale converts pixel measurements to real-world meters.
type DrawingScale struct {
	// Ratio is the drawing scale denominator: 100 for a 1:100 drawing.
	Ratio float64 `json:"ratio"`

	// DPI is the rasterization density of the page image.
	DPI float64 `json:"dpi"`

	// Assumed is true when the scale was not detected from the drawing and
	// the documented default was used instead.
	Assumed bool `json:"assumed"`
}

// DefaultScale returns the documented fallback scale, marked as assumed.
func DefaultScale() DrawingScale {
	return DrawingScale{Ratio: DefaultScaleRatio, DPI: DefaultDPI, Assumed: true}
}

// MetersPerPixel returns the real-world length of one image pixel.
func (s DrawingScale) MetersPerPixel() float64 {
	if s.DPI <= 0 {
		return 0
	}
	paperMetersPerPixel := 1.0 / (s.DPI * inchesPerMeter)
	return paperMetersPerPixel * s.Ratio
}

// PixelsToMeters converts a pixel distance to meters.
func (s DrawingScale) PixelsToMeters(px float64) float64 {
	return px * s.MetersPerPixel()
}

// PixelAreaToSquareMeters converts a pixel area to square meters.
func (s DrawingScale) PixelAreaToSquareMeters(pxArea float64) float64 {
	m := s.MetersPerPixel()
	return pxArea * m * m
}

var scaleNotePattern = regexp.MustCompile(`(?i)SCALE\s*:?\s*1\s*[:/]\s*(\d+)`)

// ParseScaleNote extracts a drawing scale from title-block text such as
// "SCALE 1:50". Returns an error when no scale call-out is present; callers
// should then fall back to DefaultScale.
func ParseScaleNote(text string) (DrawingScale, error) {
	m := scaleNotePattern.FindStringSubmatch(text)
	if m == nil {
		return DrawingScale{}, fmt.Errorf("no scale note in text")
	}
	ratio, err := strconv.ParseFloat(m[1], 64)
	if err != nil || ratio <= 0 {
		return DrawingScale{}, fmt.Errorf("invalid scale ratio %q", m[1])
	}
	return DrawingScale{Ratio: ratio, DPI: DefaultDPI}, nil
}
