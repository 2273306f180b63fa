package imaging

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/convolution"
	"github.com/anthonynsimon/bild/parallel"
)

// ErrInvalidKernel is returned when a kernel is not square with an odd side.
var ErrInvalidKernel = errors.New("kernel must be square with an odd side length")

// NewKernel builds a kernel from rows of weights. Every row must have the
// same length as the number of rows, and that length must be odd.
func NewKernel(rows [][]float64) (*convolution.Kernel, error) {
	n := len(rows)
	if n == 0 || n%2 == 0 {
		return nil, fmt.Errorf("%w: got %d rows", ErrInvalidKernel, n)
	}
	k := &convolution.Kernel{Matrix: make([]float64, 0, n*n), Width: n, Height: n}
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d weights, want %d", ErrInvalidKernel, i, len(row), n)
		}
		k.Matrix = append(k.Matrix, row...)
	}
	return k, nil
}

// SobelX returns the horizontal gradient kernel.
func SobelX() *convolution.Kernel {
	return &convolution.Kernel{
		Matrix: []float64{
			-1, 0, 1,
			-2, 0, 2,
			-1, 0, 1,
		},
		Width:  3,
		Height: 3,
	}
}

// SobelY returns the vertical gradient kernel.
func SobelY() *convolution.Kernel {
	return &convolution.Kernel{
		Matrix: []float64{
			-1, -2, -1,
			0, 0, 0,
			1, 2, 1,
		},
		Width:  3,
		Height: 3,
	}
}

// SharpenKernel returns the high-pass sharpening kernel. Its center weight
// (5) exceeds the absolute sum of its neighbors (4).
func SharpenKernel() *convolution.Kernel {
	return &convolution.Kernel{
		Matrix: []float64{
			0, -1, 0,
			-1, 5, -1,
			0, -1, 0,
		},
		Width:  3,
		Height: 3,
	}
}

func validKernel(k *convolution.Kernel) error {
	if k == nil {
		return fmt.Errorf("%w: nil kernel", ErrInvalidKernel)
	}
	if k.Width != k.Height || k.Width%2 == 0 || len(k.Matrix) != k.Width*k.Height {
		return fmt.Errorf("%w: got %dx%d with %d weights", ErrInvalidKernel, k.Width, k.Height, len(k.Matrix))
	}
	return nil
}

// Convolve applies kernel to a grayscale image and returns a new image of the
// same dimensions.
//
// Neighbors outside the image contribute zero. Each accumulated sum is clamped
// to [0, 255] and truncated toward zero.
func Convolve(gray *image.Gray, kernel *convolution.Kernel) (*image.Gray, error) {
	if err := validKernel(kernel); err != nil {
		return nil, err
	}
	src := originGray(gray)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	return fromResponses(convolveSigned(src, kernel), w, h), nil
}

// convolveSigned returns the raw, unclamped kernel response for every pixel
// in row-major order. src must have its origin at (0,0) and kernel must
// already be validated.
func convolveSigned(src *image.Gray, kernel *convolution.Kernel) []float64 {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := make([]float64, w*h)
	r := kernel.Width / 2

	parallel.Line(h, func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				var sum float64
				for ky := -r; ky <= r; ky++ {
					py := y + ky
					if py < 0 || py >= h {
						continue
					}
					row := (ky + r) * kernel.Width
					for kx := -r; kx <= r; kx++ {
						px := x + kx
						if px < 0 || px >= w {
							continue
						}
						sum += float64(src.Pix[py*src.Stride+px]) * kernel.Matrix[row+kx+r]
					}
				}
				out[y*w+x] = sum
			}
		}
	})
	return out
}

// fromResponses clamps row-major responses into a new grayscale image.
func fromResponses(resp []float64, w, h int) *image.Gray {
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.Pix[y*dst.Stride+x] = clampUint8(resp[y*w+x])
		}
	}
	return dst
}

// originGray returns gray itself when it starts at (0,0), otherwise a copy
// translated to the origin.
func originGray(gray *image.Gray) *image.Gray {
	if gray.Rect.Min == (image.Point{}) {
		return gray
	}
	w, h := gray.Rect.Dx(), gray.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		srcRow := gray.PixOffset(gray.Rect.Min.X, gray.Rect.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], gray.Pix[srcRow:srcRow+w])
	}
	return dst
}

// clampUint8 clamps v to [0, 255] and truncates it to an integer.
func clampUint8(v float64) uint8 {
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
