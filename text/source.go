package text

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
)

// BuiltinName is the name reported for the embedded fallback font.
const BuiltinName = "Go Regular"

// Source is a parsed font file. One Source creates faces at any number of
// sizes.
//
// Source is safe for concurrent use. The faces it creates are not: each
// goroutine must create its own.
type Source struct {
	name string
	font *opentype.Font

	// cmap is parsed separately by go-text/typesetting and answers
	// coverage queries without touching the x/image face caches.
	cmap *gotext.Font
}

// NewSource parses font data (TTF or OTF). The data slice must not be
// modified after this call.
func NewSource(name string, data []byte) (*Source, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}

	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("text: failed to parse font: %w", err)
	}

	s := &Source{name: name, font: f}

	// Coverage falls back to the sfnt cmap when typesetting rejects the file.
	if face, err := gotext.ParseTTF(bytes.NewReader(data)); err == nil {
		s.cmap = face.Font
	}

	if s.name == "" {
		s.name = familyName(f)
	}
	return s, nil
}

// NewSourceFromFile loads a Source from a font file path.
func NewSourceFromFile(path string) (*Source, error) {
	// #nosec G304 -- Font file path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("text: failed to read font file: %w", err)
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return NewSource(name, data)
}

var builtin = sync.OnceValues(func() (*Source, error) {
	return NewSource(BuiltinName, goregular.TTF)
})

// Builtin returns the embedded Go Regular font used when no font file could
// be loaded.
func Builtin() (*Source, error) {
	return builtin()
}

// Name returns the font name.
func (s *Source) Name() string {
	return s.name
}

// Face creates a face at the given size in points (72 DPI, so points are
// pixels).
func (s *Source) Face(size float64) (font.Face, error) {
	return opentype.NewFace(s.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// HasGlyph reports whether the font maps r to a real glyph.
func (s *Source) HasGlyph(r rune) bool {
	if s.cmap != nil {
		_, ok := s.cmap.NominalGlyph(r)
		return ok
	}
	var buf sfnt.Buffer
	idx, err := s.font.GlyphIndex(&buf, r)
	return err == nil && idx != 0
}

// familyName extracts the family name, or "Unknown Font".
func familyName(f *opentype.Font) string {
	var buf sfnt.Buffer
	if name, err := f.Name(&buf, sfnt.NameIDFamily); err == nil && name != "" {
		return name
	}
	if name, err := f.Name(&buf, sfnt.NameIDFull); err == nil && name != "" {
		return name
	}
	return "Unknown Font"
}
