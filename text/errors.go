package text

import (
	"errors"
	"fmt"

	"golang.org/x/text/unicode/runenames"
)

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoSizes is returned when a pool is built without any font size.
	ErrNoSizes = errors.New("text: no font sizes")
)

// FontLoadError is returned when a font file cannot be read or parsed, or
// when a face cannot be created from it at a given size. Size is zero when
// the whole file failed.
type FontLoadError struct {
	Path string
	Size float64
	Err  error
}

func (e *FontLoadError) Error() string {
	if e.Size == 0 {
		return fmt.Sprintf("text: load font %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("text: load font %q at %gpt: %v", e.Path, e.Size, e.Err)
}

func (e *FontLoadError) Unwrap() error { return e.Err }

// GlyphRenderError is returned when a face has no glyph for a rune.
type GlyphRenderError struct {
	Rune rune
	Font string
}

func (e *GlyphRenderError) Error() string {
	name := runenames.Name(e.Rune)
	if name == "" {
		return fmt.Sprintf("text: font %q has no glyph for U+%04X", e.Font, e.Rune)
	}
	return fmt.Sprintf("text: font %q has no glyph for U+%04X %s", e.Font, e.Rune, name)
}
