package imaging

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropValidRegion(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))

	cropped, err := Crop(img, 10, 10, 60, 40)
	require.NoError(t, err)

	b := cropped.Bounds()
	assert.Equal(t, 50, b.Dx())
	assert.Equal(t, 30, b.Dy())
}

func TestCropRejectsInvalidBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))

	_, err := Crop(img, 60, 10, 10, 40)
	assert.Error(t, err)

	_, err = Crop(img, 10, 10, 300, 40)
	assert.Error(t, err)
}

func TestTitleBlockRegionIsBottomRight(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1000, 800))

	region, offsetX, offsetY := TitleBlockRegion(img)

	assert.Equal(t, 650, offsetX)
	assert.Equal(t, 600, offsetY)
	assert.Equal(t, 350, region.Bounds().Dx())
	assert.Equal(t, 200, region.Bounds().Dy())
}

func TestNoteRegionsCoverRightAndBottomStrips(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1000, 800))

	regions := NoteRegions(img)
	require.Len(t, regions, 2)
}
