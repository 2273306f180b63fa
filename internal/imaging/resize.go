package imaging

import (
	"image"
	"math"

	"github.com/disintegration/imaging"
)

// TargetSize computes output dimensions that keep the aspect ratio of a
// width x height image.
//
// Landscape images (width > height) take maxWidth and derive the height;
// everything else takes maxHeight and derives the width. Only one bound is
// honored, so a landscape result may exceed maxHeight and a portrait result
// may exceed maxWidth. The derived side is rounded half away from zero using
// float32 arithmetic and never drops below 1.
func TargetSize(width, height, maxWidth, maxHeight int) (int, int) {
	aspect := float32(width) / float32(height)
	if width > height {
		return maxWidth, atLeastOne(math.Round(float64(float32(maxWidth) / aspect)))
	}
	return atLeastOne(math.Round(float64(float32(maxHeight) * aspect))), maxHeight
}

func atLeastOne(v float64) int {
	if v < 1 {
		return 1
	}
	return int(v)
}

// ResizeNearest scales img to width x height by picking the nearest source
// pixel for every target pixel. No blending is done, so hard edges stay hard.
func ResizeNearest(img image.Image, width, height int) *image.NRGBA {
	return imaging.Resize(img, width, height, imaging.NearestNeighbor)
}
