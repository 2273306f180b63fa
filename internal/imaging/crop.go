package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrUnknownRegion is returned by CropRegion for an unrecognized region name.
var ErrUnknownRegion = errors.New("unknown region")

// Regions lists the names accepted by CropRegion, excluding the empty name.
func Regions() []string {
	return []string{
		"full", "top-left", "top-right", "bottom-left", "bottom-right",
		"top-half", "bottom-half", "left-half", "right-half", "center",
	}
}

// CropRegion extracts a named region of img. An empty name or "full" returns
// a copy of the whole image; "center" keeps the middle 50% on each axis.
func CropRegion(img image.Image, region string) (*image.NRGBA, error) {
	bounds := img.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()
	midX := w / 2
	midY := h / 2

	var x1, y1, x2, y2 int

	switch region {
	case "", "full":
		return imaging.Clone(img), nil
	case "top-left":
		x1, y1, x2, y2 = 0, 0, midX, midY
	case "top-right":
		x1, y1, x2, y2 = midX, 0, w, midY
	case "bottom-left":
		x1, y1, x2, y2 = 0, midY, midX, h
	case "bottom-right":
		x1, y1, x2, y2 = midX, midY, w, h
	case "top-half":
		x1, y1, x2, y2 = 0, 0, w, midY
	case "bottom-half":
		x1, y1, x2, y2 = 0, midY, w, h
	case "left-half":
		x1, y1, x2, y2 = 0, 0, midX, h
	case "right-half":
		x1, y1, x2, y2 = midX, 0, w, h
	case "center":
		qW := w / 4
		qH := h / 4
		x1, y1, x2, y2 = qW, qH, w-qW, h-qH
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownRegion, region)
	}

	if x1 >= x2 || y1 >= y2 {
		return nil, fmt.Errorf("region %s of a %dx%d image is empty", region, w, h)
	}

	rect := image.Rect(x1, y1, x2, y2).Add(bounds.Min)
	return imaging.Crop(img, rect), nil
}
