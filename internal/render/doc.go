// Package render turns a decoded image into rows of glyphs.
//
// A Renderer holds one image plus the settings that shape its output: the
// glyph palette and whether cells carry color. Render runs the pipeline
//
//	filter -> resize -> brightness -> glyph lookup -> color
//
// and returns an Art value that can be printed plain, in true color, or
// downsampled to whatever the terminal supports via termenv profiles.
//
// # Glyph selection
//
// When the palette contains a blank glyph, cells brighter than 0.8 become
// blank. All other cells index the palette by their red channel:
//
//	index = floor(R / 255 * (len - 1))
//
// Only the red channel is used, so a saturated blue pixel maps to the
// darkest glyph.
//
// # Concurrency
//
// Render reads the Renderer but never modifies it, and the result of a call
// depends only on the image and settings. Rows are mapped in parallel.
// Changing settings while a Render is in flight is not supported.
package render
