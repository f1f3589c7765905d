package text

import (
	"errors"
	"strings"
	"testing"
)

func TestFontLoadErrorMessage(t *testing.T) {
	base := errors.New("bad table")

	tests := []struct {
		name string
		err  *FontLoadError
		want string
	}{
		{"file", &FontLoadError{Path: "a.ttf", Err: base}, `text: load font "a.ttf": bad table`},
		{"size", &FontLoadError{Path: "a.ttf", Size: 36, Err: base}, `text: load font "a.ttf" at 36pt: bad table`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, base) {
				t.Error("FontLoadError should unwrap to its cause")
			}
		})
	}
}

func TestGlyphRenderErrorNamesRune(t *testing.T) {
	err := &GlyphRenderError{Rune: '∑', Font: "Go Regular"}
	msg := err.Error()
	if !strings.Contains(msg, "U+2211") || !strings.Contains(msg, "N-ARY SUMMATION") {
		t.Errorf("Error() = %q, want rune code and name", msg)
	}
}
