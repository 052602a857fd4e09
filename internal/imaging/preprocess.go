package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// maxWorkingDimension is the longest side of a page after normalization.
// Construction PDFs rasterize to very large images; detection quality does
// not improve past this resolution while runtime grows quadratically.
const maxWorkingDimension = 2400

// denoiseRadius is the Gaussian blur radius applied before thresholding.
const denoiseRadius = 1.4

// Prepared holds one drawing page normalized for the detection stages.
type Prepared struct {
	// Source is the page resized to working resolution, in color.
	// Used for color sampling and OCR.
	Source image.Image

	// Gray is the grayscale, denoised rendition used for edge detection.
	Gray *image.RGBA

	// Binary is the Otsu-thresholded rendition used for contour grouping.
	Binary *image.Gray

	// ScaleApplied is the resize factor from the original page to Source
	// (1.0 when the page was already within working resolution). Detected
	// bounding boxes are in Source coordinates; divide by ScaleApplied to
	// map back to original page pixels.
	ScaleApplied float64
}

// Prepare normalizes a rasterized drawing page for detection.
//
// The page is resized down to the working resolution if needed (never
// upscaled), converted to grayscale, denoised with a Gaussian blur, and
// binarized with an Otsu-selected threshold. All downstream stages operate
// on the returned renditions, so every bounding box in the pipeline shares
// the same coordinate space.
func Prepare(img image.Image) *Prepared {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	scale := 1.0
	source := img
	if longest := max(w, h); longest > maxWorkingDimension {
		scale = float64(maxWorkingDimension) / float64(longest)
		if w >= h {
			source = imaging.Resize(img, maxWorkingDimension, 0, imaging.Lanczos)
		} else {
			source = imaging.Resize(img, 0, maxWorkingDimension, imaging.Lanczos)
		}
	}

	gray := imaging.Grayscale(source)
	denoised := blur.Gaussian(gray, denoiseRadius)
	binary := segment.Threshold(denoised, otsuLevel(denoised))

	return &Prepared{
		Source:       source,
		Gray:         denoised,
		Binary:       binary,
		ScaleApplied: scale,
	}
}

// otsuLevel computes the Otsu threshold over the grayscale histogram.
//
// Otsu's method picks the level that maximizes between-class variance of the
// foreground/background split, which handles the varying line weights of
// scanned drawings better than a fixed threshold.
func otsuLevel(img image.Image) uint8 {
	bounds := img.Bounds()
	var hist [256]int
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			lum := uint8(float64(r>>8)*0.299 + float64(g>>8)*0.587 + float64(b>>8)*0.114)
			hist[lum]++
			total++
		}
	}
	if total == 0 {
		return 128
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	var maxVar float64
	level := uint8(128)
	for i, n := range hist {
		wB += float64(n)
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(i) * float64(n)
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > maxVar {
			maxVar = between
			level = uint8(i)
		}
	}
	return level
}
