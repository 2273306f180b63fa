package render

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/ironsheep/asciify/internal/imaging"
)

// Cell is one output character.
type Cell struct {
	Glyph rune `json:"glyph"`

	// Color is the source pixel color. It is meaningful only when Colored
	// is set.
	Color   imaging.RGBColor `json:"color"`
	Colored bool             `json:"colored"`
}

// Art is the result of one Render call: Height rows of Width cells each.
type Art struct {
	Rows [][]Cell
}

// Width returns the number of cells per row.
func (a *Art) Width() int {
	if len(a.Rows) == 0 {
		return 0
	}
	return len(a.Rows[0])
}

// Height returns the number of rows.
func (a *Art) Height() int {
	return len(a.Rows)
}

// Colored reports whether any cell carries a color.
func (a *Art) Colored() bool {
	for _, row := range a.Rows {
		for _, c := range row {
			if c.Colored {
				return true
			}
		}
	}
	return false
}

// String returns the art with 24-bit color escapes when cells are colored,
// and plain glyphs otherwise. Every row ends with a newline.
func (a *Art) String() string {
	return a.Format(termenv.TrueColor)
}

// Plain returns the glyphs without any escape sequences.
func (a *Art) Plain() string {
	return a.Format(termenv.Ascii)
}

// Format renders the art for a terminal with the given color profile.
// Colors are downsampled to the profile; termenv.Ascii drops them.
func (a *Art) Format(profile termenv.Profile) string {
	var sb strings.Builder
	for _, row := range a.Rows {
		for _, c := range row {
			if !c.Colored || profile == termenv.Ascii {
				sb.WriteRune(c.Glyph)
				continue
			}
			style := profile.String(string(c.Glyph)).Foreground(profile.Color(c.Color.Hex()))
			sb.WriteString(style.String())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Lines returns each row's glyphs without escapes or newlines.
func (a *Art) Lines() []string {
	lines := make([]string, len(a.Rows))
	for i, row := range a.Rows {
		runes := make([]rune, len(row))
		for j, c := range row {
			runes[j] = c.Glyph
		}
		lines[i] = string(runes)
	}
	return lines
}

// DisplayWidth returns the widest row in terminal columns. Wide glyphs such
// as CJK ideographs occupy two columns each.
func (a *Art) DisplayWidth() int {
	widest := 0
	for _, line := range a.Lines() {
		if w := runewidth.StringWidth(line); w > widest {
			widest = w
		}
	}
	return widest
}

// ErrUnknownProfile is returned by ParseProfile for an unrecognized name.
var ErrUnknownProfile = errors.New("unknown color profile")

// ProfileNames lists the names accepted by ParseProfile.
func ProfileNames() []string {
	return []string{"truecolor", "ansi256", "ansi", "ascii"}
}

// ParseProfile maps a color profile name to a termenv profile. The empty
// string selects TrueColor; "none" is an alias for "ascii".
func ParseProfile(name string) (termenv.Profile, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "truecolor", "24bit":
		return termenv.TrueColor, nil
	case "ansi256", "256":
		return termenv.ANSI256, nil
	case "ansi", "16":
		return termenv.ANSI, nil
	case "ascii", "none":
		return termenv.Ascii, nil
	}
	return termenv.Ascii, fmt.Errorf("%w: %q", ErrUnknownProfile, name)
}
