package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultScaleIsAssumed(t *testing.T) {
	s := DefaultScale()
	assert.True(t, s.Assumed)
	assert.InDelta(t, 100.0, s.Ratio, 1e-9)
	assert.InDelta(t, 150.0, s.DPI, 1e-9)

	// 1:100 at 150 DPI is about 16.9 mm of building per pixel.
	assert.InDelta(t, 0.01693, s.MetersPerPixel(), 1e-4)
}

func TestPixelConversions(t *testing.T) {
	s := DrawingScale{Ratio: 100, DPI: 150}
	m := s.MetersPerPixel()

	assert.InDelta(t, 100*m, s.PixelsToMeters(100), 1e-9)
	assert.InDelta(t, 100*m*m, s.PixelAreaToSquareMeters(100), 1e-9)
}

func TestParseScaleNote(t *testing.T) {
	s, err := ParseScaleNote("SCALE 1:50")
	require.NoError(t, err)
	assert.InDelta(t, 50.0, s.Ratio, 1e-9)
	assert.False(t, s.Assumed)

	s, err = ParseScaleNote("scale: 1/200")
	require.NoError(t, err)
	assert.InDelta(t, 200.0, s.Ratio, 1e-9)

	_, err = ParseScaleNote("GENERAL NOTES")
	assert.Error(t, err)
}

func TestZeroDPIConvertsToZero(t *testing.T) {
	s := DrawingScale{Ratio: 100}
	assert.Zero(t, s.MetersPerPixel())
}
