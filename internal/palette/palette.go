package palette

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknown is returned by Parse for a name that matches no palette.
var ErrUnknown = errors.New("unknown palette")

// Kind identifies one of the built-in palettes.
type Kind int

const (
	// Point is a dot and a blank.
	Point Kind = iota
	// Block is a full block and a blank.
	Block
	// Shade is a ramp of light, medium and dark shade blocks.
	Shade
	// Japanese is the hiragana syllabary followed by katakana.
	Japanese
	// Korean is a set of hangul syllables.
	Korean
	// Chinese is a short set of common ideographs.
	Chinese
)

var (
	pointGlyphs    = []rune(". ")
	blockGlyphs    = []rune("█ ")
	shadeGlyphs    = []rune("░▒▓█▒░▓█░▒▓█░▒▓█▒░▓█▒░░▒▓█▒░▓")
	japaneseGlyphs = []rune("あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほまみむめもやゆよらりるれろわをん" +
		"アイウエオカキクケコサシスセソタチツテトナニヌネノハヒフヘホマミムメモヤユヨラリルレロワヲン")
	koreanGlyphs  = []rune("가나다라마바사아자차카타파하거너더러머버서어저처커터퍼허길난다라마바사아자차카타")
	chineseGlyphs = []rune("中国文字汉字你好我们学习程序编程")
)

var names = map[Kind]string{
	Point:    "point",
	Block:    "block",
	Shade:    "shade",
	Japanese: "japanese",
	Korean:   "korean",
	Chinese:  "chinese",
}

// Kinds lists every palette in declaration order.
func Kinds() []Kind {
	return []Kind{Point, Block, Shade, Japanese, Korean, Chinese}
}

// Names lists the name of every palette in declaration order.
func Names() []string {
	kinds := Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.String()
	}
	return out
}

// String returns the lowercase name of the palette.
func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Glyphs returns a copy of the glyph sequence for k. Values outside the
// enumeration fall back to Point.
func (k Kind) Glyphs() Palette {
	var src []rune
	switch k {
	case Block:
		src = blockGlyphs
	case Shade:
		src = shadeGlyphs
	case Japanese:
		src = japaneseGlyphs
	case Korean:
		src = koreanGlyphs
	case Chinese:
		src = chineseGlyphs
	default:
		src = pointGlyphs
	}
	out := make(Palette, len(src))
	copy(out, src)
	return out
}

// Parse maps a case-insensitive palette name to its Kind.
func Parse(name string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, k := range Kinds() {
		if names[k] == want {
			return k, nil
		}
	}
	return Point, fmt.Errorf("%w: %q", ErrUnknown, name)
}

// Palette is an ordered glyph sequence, strongest first.
type Palette []rune

// Len returns the number of glyphs.
func (p Palette) Len() int {
	return len(p)
}

// At returns the glyph at index i.
func (p Palette) At(i int) rune {
	return p[i]
}

// HasBlank reports whether the palette contains a space glyph.
func (p Palette) HasBlank() bool {
	for _, r := range p {
		if r == ' ' {
			return true
		}
	}
	return false
}

// String returns the glyphs joined into a single string.
func (p Palette) String() string {
	return string(p)
}
