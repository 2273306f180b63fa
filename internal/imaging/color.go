package imaging

import (
	"image"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// PixelAt returns the non-premultiplied RGB value at (x, y) of an NRGBA
// image. Alpha is ignored.
func PixelAt(img *image.NRGBA, x, y int) RGBColor {
	c := img.NRGBAAt(x, y)
	return RGBColor{R: c.R, G: c.G, B: c.B}
}

// Luminosity returns the perceptual brightness of c in [0, 1] using the
// weights 0.299, 0.587 and 0.114, computed in float32.
func (c RGBColor) Luminosity() float32 {
	return (float32(c.R)*0.299 + float32(c.G)*0.587 + float32(c.B)*0.114) / 255
}

// Colorful converts c to a go-colorful color.
func (c RGBColor) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}
}

// Hex returns c as "#rrggbb".
func (c RGBColor) Hex() string {
	return c.Colorful().Hex()
}
