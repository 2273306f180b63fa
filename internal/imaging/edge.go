package imaging

import (
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// EdgeDetect returns the Sobel gradient magnitude of img as a grayscale image.
//
// The image is reduced to luma, the horizontal and vertical Sobel responses
// are computed with zero padding, and each pixel becomes
// sqrt(gx² + gy²) clamped to [0, 255]. The signed responses are combined
// before clamping, so a light-to-dark edge and a dark-to-light edge produce
// the same magnitude.
func EdgeDetect(img image.Image) *image.Gray {
	gray := ToGray(img)
	w, h := gray.Rect.Dx(), gray.Rect.Dy()

	gx := convolveSigned(gray, SobelX())
	gy := convolveSigned(gray, SobelY())

	mag := make([]float64, len(gx))
	for i := range gx {
		mag[i] = math.Sqrt(gx[i]*gx[i] + gy[i]*gy[i])
	}
	return fromResponses(mag, w, h)
}

// Sharpen reduces img to luma and applies SharpenKernel with zero padding.
func Sharpen(img image.Image) *image.Gray {
	gray := ToGray(img)
	return fromResponses(convolveSigned(gray, SharpenKernel()), gray.Rect.Dx(), gray.Rect.Dy())
}

// ToGray converts img to single-channel luma using BT.601 weights. The
// returned image always has its origin at (0,0).
func ToGray(img image.Image) *image.Gray {
	src := imaging.Grayscale(img)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Pix[y*dst.Stride+x] = src.Pix[y*src.Stride+x*4]
		}
	}
	return dst
}

// GrayToNRGBA promotes a grayscale image to an opaque NRGBA image with all
// three color channels set to the gray value.
func GrayToNRGBA(gray *image.Gray) *image.NRGBA {
	b := gray.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			v := gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y
			dst.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return dst
}
