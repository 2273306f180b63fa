package render

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/parallel"
	"github.com/disintegration/imaging"

	imgutil "github.com/ironsheep/asciify/internal/imaging"
	"github.com/ironsheep/asciify/internal/palette"
)

// ErrNoImageLoaded is returned when rendering is requested before an image
// has been supplied.
var ErrNoImageLoaded = errors.New("no image loaded")

// ErrInvalidSize is returned when a maximum output dimension is not positive.
var ErrInvalidSize = errors.New("invalid output size")

// blankThreshold is the brightness above which a blank glyph is emitted.
const blankThreshold = 0.8

// Renderer converts one image to glyph art.
type Renderer struct {
	img    *image.NRGBA
	kind   palette.Kind
	glyphs palette.Palette
	color  bool
}

// New returns a Renderer using the Point palette with color disabled.
func New() *Renderer {
	return &Renderer{
		kind:   palette.Point,
		glyphs: palette.Point.Glyphs(),
	}
}

// SetPalette replaces the glyph palette.
func (r *Renderer) SetPalette(kind palette.Kind) {
	r.kind = kind
	r.glyphs = kind.Glyphs()
}

// Palette returns the selected palette kind.
func (r *Renderer) Palette() palette.Kind {
	return r.kind
}

// EnableColor makes subsequent renders attach the source color to each cell.
func (r *Renderer) EnableColor() {
	r.color = true
}

// DisableColor makes subsequent renders produce uncolored cells.
func (r *Renderer) DisableColor() {
	r.color = false
}

// ColorEnabled reports whether cells will carry color.
func (r *Renderer) ColorEnabled() bool {
	return r.color
}

// Load decodes the image at path and makes it the render source. On failure
// the previously loaded image, if any, is kept and the error is an
// *imaging.LoadError.
func (r *Renderer) Load(path string) error {
	img, err := imgutil.LoadImage(path)
	if err != nil {
		return err
	}
	r.SetImage(img)
	return nil
}

// SetImage makes img the render source. The image is copied, so later
// changes to img do not affect the Renderer.
func (r *Renderer) SetImage(img image.Image) {
	r.img = imaging.Clone(img)
}

// Loaded reports whether an image has been supplied.
func (r *Renderer) Loaded() bool {
	return r.img != nil
}

// Bounds returns the size of the loaded image, or an empty rectangle.
func (r *Renderer) Bounds() image.Rectangle {
	if r.img == nil {
		return image.Rectangle{}
	}
	return r.img.Bounds()
}

// Crop narrows the loaded image to a named region (see imaging.Regions).
func (r *Renderer) Crop(region string) error {
	if r.img == nil {
		return ErrNoImageLoaded
	}
	cropped, err := imgutil.CropRegion(r.img, region)
	if err != nil {
		return err
	}
	r.img = cropped
	return nil
}

// Render converts the loaded image into glyph art no wider than maxWidth
// (landscape sources) or no taller than maxHeight (portrait and square
// sources). See imaging.TargetSize for the exact sizing rule.
func (r *Renderer) Render(maxWidth, maxHeight int, filter imgutil.Filter) (*Art, error) {
	if r.img == nil {
		return nil, ErrNoImageLoaded
	}
	if maxWidth <= 0 || maxHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, maxWidth, maxHeight)
	}

	src := r.img
	if filter != imgutil.FilterNone {
		src = filter.Apply(src)
	}

	b := src.Bounds()
	width, height := imgutil.TargetSize(b.Dx(), b.Dy(), maxWidth, maxHeight)
	resized := imgutil.ResizeNearest(src, width, height)

	glyphs := r.glyphs
	blank := glyphs.HasBlank()
	colored := r.color

	rows := make([][]Cell, height)
	parallel.Line(height, func(start, end int) {
		for y := start; y < end; y++ {
			row := make([]Cell, width)
			for x := 0; x < width; x++ {
				px := imgutil.PixelAt(resized, x, y)
				row[x] = Cell{Glyph: glyphFor(glyphs, blank, px)}
				if colored {
					row[x].Color = px
					row[x].Colored = true
				}
			}
			rows[y] = row
		}
	})

	return &Art{Rows: rows}, nil
}

// glyphFor picks the glyph for one pixel.
func glyphFor(glyphs palette.Palette, blank bool, px imgutil.RGBColor) rune {
	if blank && px.Luminosity() > blankThreshold {
		return ' '
	}
	index := int(float32(px.R) / 255 * float32(glyphs.Len()-1))
	return glyphs.At(index)
}
