package captcha

import (
	"bytes"
	"errors"
	"image"
	"math/rand/v2"
	"testing"

	"github.com/gogpu/captcha/text"
)

func TestLayers_DeterministicAndVisible(t *testing.T) {
	pool := builtinPool(t, 30)
	fg := black
	tests := []struct {
		name string
		draw func(dst *image.RGBA, r *rand.Rand)
	}{
		{"complex background", func(dst *image.RGBA, _ *rand.Rand) { complexBackground(dst) }},
		{"noise dots", func(dst *image.RGBA, r *rand.Rand) { noiseDots(dst, r, fg, 30) }},
		{"noise curve", func(dst *image.RGBA, r *rand.Rand) { noiseCurve(dst, r, fg) }},
		{"lines", func(dst *image.RGBA, r *rand.Rand) { lineDistractors(dst, r, fg, 5) }},
		{"circles", func(dst *image.RGBA, r *rand.Rand) { circularDistractors(dst, r, fg, 3) }},
		{"confusables", func(dst *image.RGBA, r *rand.Rand) { confusableDistractors(dst, r, pool, fg, 12) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := filled(160, 60, paper)
			b := filled(160, 60, paper)
			tt.draw(a, NewSeededRand(9))
			tt.draw(b, NewSeededRand(9))
			if !bytes.Equal(a.Pix, b.Pix) {
				t.Error("same seed produced different canvases")
			}
			if countDiff(a, paper) == 0 {
				t.Error("layer left the canvas untouched")
			}
		})
	}
}

func TestNoiseDots_Lightened(t *testing.T) {
	img := filled(160, 60, paper)
	noiseDots(img, NewSeededRand(1), black, 80)
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] == 0 {
			t.Fatal("noise dot drawn in the unlightened foreground colour")
		}
	}
}

func TestConfusables_MissingGlyphSkipped(t *testing.T) {
	// No sizes: the pool degrades to the bitmap face, which lacks most
	// mathematical symbols.
	pool, _ := text.NewPool(nil, nil)
	img := filled(160, 60, paper)
	skipped := confusableDistractors(img, NewSeededRand(4), pool, black, 50)
	if len(skipped) == 0 {
		t.Fatal("no placement was skipped")
	}
	for _, err := range skipped {
		var gre *text.GlyphRenderError
		if !errors.As(err, &gre) {
			t.Fatalf("skipped error %v is not a GlyphRenderError", err)
		}
		if pool.Faces()[0].HasGlyph(gre.Rune) {
			t.Errorf("%q was skipped although the face covers it", gre.Rune)
		}
	}
}

func TestLayerStack_Order(t *testing.T) {
	tests := []struct {
		tier string
		want []string
	}{
		{"part2", []string{"noise dots", "noise curves", "smooth"}},
		{"part3", []string{"noise dots", "noise curves", "line distractors", "smooth"}},
		{"part4", []string{"noise dots", "noise curves", "line distractors", "circular distractors", "confusable distractors", "blur", "smooth"}},
	}
	for _, tt := range tests {
		t.Run(tt.tier, func(t *testing.T) {
			p, _ := Resolve(tt.tier)
			stack := layerStack(&p)
			if len(stack) != len(tt.want) {
				t.Fatalf("got %d layers, want %d", len(stack), len(tt.want))
			}
			for i, l := range stack {
				if l.name != tt.want[i] {
					t.Errorf("layer %d = %q, want %q", i, l.name, tt.want[i])
				}
			}
		})
	}
}

func TestLayerStack_Deterministic(t *testing.T) {
	pool := builtinPool(t, 30)
	p, _ := Resolve("part4")
	run := func() []byte {
		img := filled(160, 60, paper)
		env := &layerEnv{rand: NewSeededRand(12), pool: pool, fg: black}
		for _, l := range layerStack(&p) {
			l.draw(img, env)
		}
		return img.Pix
	}
	if !bytes.Equal(run(), run()) {
		t.Error("seeded layer stack differs between runs")
	}
}
