package captcha

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/gogpu/captcha/text"
)

func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.width != DefaultWidth || o.height != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", o.width, o.height, DefaultWidth, DefaultHeight)
	}
	if !slices.Equal(o.sizes, []float64{30, 36, 42, 48}) {
		t.Errorf("sizes = %v", o.sizes)
	}
	if o.rand != nil {
		t.Error("default rand should be chosen by New")
	}
}

func TestOptions_Apply(t *testing.T) {
	src, err := text.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	r := NewSeededRand(1)

	o := defaultOptions()
	for _, opt := range []Option{
		WithSize(200, 100),
		WithFontSizes(20, 24),
		WithFontFiles("a.ttf"),
		WithFontFiles("b.ttf"),
		WithFontSources(src),
		WithRand(r),
	} {
		opt(&o)
	}

	if o.width != 200 || o.height != 100 {
		t.Errorf("size = %dx%d", o.width, o.height)
	}
	if !slices.Equal(o.sizes, []float64{20, 24}) {
		t.Errorf("sizes = %v", o.sizes)
	}
	if !slices.Equal(o.fontFiles, []string{"a.ttf", "b.ttf"}) {
		t.Errorf("fontFiles = %v", o.fontFiles)
	}
	if len(o.sources) != 1 || o.sources[0] != src {
		t.Errorf("sources = %v", o.sources)
	}
	if o.rand != r {
		t.Error("WithRand not applied")
	}
}

func TestNew_FontPoolFromOptions(t *testing.T) {
	src, err := text.Builtin()
	if err != nil {
		t.Fatal(err)
	}
	g := newTestGenerator(t, "part2",
		WithFontSources(src, src),
		WithFontSizes(20, 28, 36),
		WithFontFiles(filepath.Join(t.TempDir(), "nope.otf")),
	)
	r := g.Report()
	if r.Fallback {
		t.Error("fell back although a source was given")
	}
	// Two sources at three sizes.
	if g.pool.Len() != 6 {
		t.Errorf("pool has %d faces, want 6", g.pool.Len())
	}
	if len(r.Failures) != 1 {
		t.Errorf("failures = %v, want the missing file", r.Failures)
	}
}
