package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Title blocks on construction sheets sit in a corner of the page, almost
// always the bottom-right. These fractions bound the strip searched for
// sheet metadata such as scale notes and drawing numbers.
const (
	titleBlockWidthFraction  = 0.35
	titleBlockHeightFraction = 0.25
)

// Crop extracts a rectangular region from a page image. The region must lie
// within the image and have positive extent in both axes.
func Crop(img image.Image, x1, y1, x2, y2 int) (image.Image, error) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X || y1 < bounds.Min.Y || x2 > bounds.Max.X || y2 > bounds.Max.Y {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			x1, y1, x2, y2, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}
	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("invalid crop region: x1 must be < x2, y1 must be < y2")
	}

	return imaging.Crop(img, image.Rect(x1, y1, x2, y2)), nil
}

// CropPadded extracts a region expanded by pad pixels on every side, clamped
// to the image bounds. Used to crop detected elements with enough margin for
// OCR to pick up labels drawn just outside the element outline.
func CropPadded(img image.Image, x1, y1, x2, y2, pad int) (image.Image, error) {
	bounds := img.Bounds()
	px1 := max(x1-pad, bounds.Min.X)
	py1 := max(y1-pad, bounds.Min.Y)
	px2 := min(x2+pad, bounds.Max.X)
	py2 := min(y2+pad, bounds.Max.Y)
	return Crop(img, px1, py1, px2, py2)
}

// TitleBlockRegion returns the bottom-right corner strip of a page where the
// title block is conventionally drawn, together with the offset of the strip
// within the page so text coordinates can be mapped back.
func TitleBlockRegion(img image.Image) (region image.Image, offsetX, offsetY int) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	x1 := bounds.Min.X + int(float64(w)*(1-titleBlockWidthFraction))
	y1 := bounds.Min.Y + int(float64(h)*(1-titleBlockHeightFraction))

	region = imaging.Crop(img, image.Rect(x1, y1, bounds.Max.X, bounds.Max.Y))
	return region, x1 - bounds.Min.X, y1 - bounds.Min.Y
}

// NoteRegions splits a page into the margin strips where general notes are
// typically placed: the right margin and the bottom margin. Each entry
// carries the offset of the strip within the page.
type NoteRegion struct {
	Image   image.Image
	OffsetX int
	OffsetY int
}

// NoteRegions returns candidate note areas for a page. The right quarter and
// bottom fifth of the sheet cover the standard note placements without
// scanning the drawing body itself.
func NoteRegions(img image.Image) []NoteRegion {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	rightX := bounds.Min.X + w*3/4
	bottomY := bounds.Min.Y + h*4/5

	return []NoteRegion{
		{
			Image:   imaging.Crop(img, image.Rect(rightX, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)),
			OffsetX: rightX - bounds.Min.X,
			OffsetY: 0,
		},
		{
			Image:   imaging.Crop(img, image.Rect(bounds.Min.X, bottomY, bounds.Max.X, bounds.Max.Y)),
			OffsetX: 0,
			OffsetY: bottomY - bounds.Min.Y,
		},
	}
}
