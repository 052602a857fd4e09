package quantity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VivekMadav/construction-ai/internal/detection"
	"github.com/VivekMadav/construction-ai/internal/imaging"
)

func element(elementType string, dims ...detection.Dimension) *detection.Element {
	return &detection.Element{
		ID:         elementType + "_001",
		Type:       elementType,
		Bounds:     detection.Bounds{X1: 100, Y1: 100, X2: 400, Y2: 160},
		Confidence: 0.85,
		Discipline: detection.Architectural,
		Enhanced:   detection.EnhancedProperties{Dimensions: dims},
	}
}

func textDim(value float64, unit string) detection.Dimension {
	return detection.Dimension{Value: value, Unit: unit, Source: "text"}
}

func TestQuantityAreaFromTwoTextDimensions(t *testing.T) {
	wall := element("wall", textDim(10000, "MM"), textDim(2000, "MM"))

	q, err := NewCalculator(imaging.DefaultScale(), nil).Quantity(wall)
	require.NoError(t, err)

	assert.Equal(t, SquareMeters, q.Unit)
	assert.InDelta(t, 20.0, q.Value, 1e-9)
	assert.Equal(t, "text_dimensions", q.Source)
	assert.InDelta(t, 0.9, q.Confidence, 1e-9)
}

func TestQuantityWallSingleDimensionAssumesWidth(t *testing.T) {
	wall := element("wall", textDim(10, "M"))

	q, err := NewCalculator(imaging.DefaultScale(), nil).Quantity(wall)
	require.NoError(t, err)

	assert.InDelta(t, 3.0, q.Value, 1e-9) // 10m x assumed 0.3m
	assert.Equal(t, "mixed", q.Source)
}

func TestQuantityLengthFromTextDimension(t *testing.T) {
	beam := element("beam", textDim(6000, "MM"))

	q, err := NewCalculator(imaging.DefaultScale(), nil).Quantity(beam)
	require.NoError(t, err)

	assert.Equal(t, LinearMeters, q.Unit)
	assert.InDelta(t, 6.0, q.Value, 1e-9)
}

func TestQuantityPixelFallbackFlagsAssumedScale(t *testing.T) {
	wall := element("wall")

	q, err := NewCalculator(imaging.DefaultScale(), nil).Quantity(wall)
	require.NoError(t, err)

	assert.Equal(t, "pixel_scale", q.Source)
	assert.InDelta(t, 0.3, q.Confidence, 1e-9)
	assert.Greater(t, q.Value, 0.0)
}

func TestQuantityPixelFallbackWithKnownScale(t *testing.T) {
	wall := element("wall")
	scale := imaging.DrawingScale{Ratio: 50, DPI: 150, Assumed: false}

	q, err := NewCalculator(scale, nil).Quantity(wall)
	require.NoError(t, err)

	assert.InDelta(t, 0.7, q.Confidence, 1e-9)
}

func TestQuantityVolumeFromThreeDimensions(t *testing.T) {
	foundation := element("foundation", textDim(2, "M"), textDim(1, "M"), textDim(500, "MM"))

	q, err := NewCalculator(imaging.DefaultScale(), nil).Quantity(foundation)
	require.NoError(t, err)

	assert.Equal(t, CubicMeters, q.Unit)
	assert.InDelta(t, 1.0, q.Value, 1e-9)
}

func TestQuantityCountTypes(t *testing.T) {
	door := element("door")

	q, err := NewCalculator(imaging.DefaultScale(), nil).Quantity(door)
	require.NoError(t, err)

	assert.Equal(t, Count, q.Unit)
	assert.InDelta(t, 1.0, q.Value, 1e-9)
}

func TestQuantityUnknownTypeIsExplicitError(t *testing.T) {
	mystery := element("gazebo")

	_, err := NewCalculator(imaging.DefaultScale(), nil).Quantity(mystery)

	var unknownErr *ErrUnknownElementType
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "gazebo", unknownErr.ElementType)
}

func TestQuantityZeroDimensionIsValueNotError(t *testing.T) {
	wall := element("wall", textDim(0, "MM"), textDim(2000, "MM"))

	q, err := NewCalculator(imaging.DefaultScale(), nil).Quantity(wall)
	require.NoError(t, err)
	assert.Zero(t, q.Value)
}
