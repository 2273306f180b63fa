// Package palette holds the fixed glyph sequences used to draw images as text.
//
// Each palette is ordered from the strongest (darkest) glyph at index 0 to the
// weakest (lightest) glyph at the last index. The sequences are constant data;
// Kind.Glyphs hands out a copy so callers can never modify the tables.
package palette
