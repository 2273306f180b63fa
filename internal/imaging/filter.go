package imaging

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrUnknownFilter is returned by ParseFilter for an unrecognized name.
var ErrUnknownFilter = errors.New("unknown filter")

// Filter selects the optional convolution pass applied before rendering.
type Filter int

const (
	// FilterNone leaves the image untouched.
	FilterNone Filter = iota
	// FilterEdgeDetect replaces the image with its Sobel gradient magnitude.
	FilterEdgeDetect
	// FilterSharpen replaces the image with a sharpened luma image.
	FilterSharpen
)

// String returns the flag name of the filter.
func (f Filter) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterEdgeDetect:
		return "edge"
	case FilterSharpen:
		return "sharpen"
	}
	return fmt.Sprintf("Filter(%d)", int(f))
}

// ParseFilter maps a filter name to a Filter. The empty string means
// FilterNone; "sobel" and "fourier" are accepted for the edge and sharpen
// passes respectively.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return FilterNone, nil
	case "edge", "sobel":
		return FilterEdgeDetect, nil
	case "sharpen", "fourier":
		return FilterSharpen, nil
	}
	return FilterNone, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// Apply runs the filter and returns a new NRGBA image with the same
// dimensions as img. Filtered output is gray: R, G and B hold the same value.
func (f Filter) Apply(img image.Image) *image.NRGBA {
	switch f {
	case FilterEdgeDetect:
		return GrayToNRGBA(EdgeDetect(img))
	case FilterSharpen:
		return GrayToNRGBA(Sharpen(img))
	default:
		return imaging.Clone(img)
	}
}
