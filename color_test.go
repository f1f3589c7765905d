package captcha

import (
	"image/color"
	"testing"
)

func TestRandomColor_Bounds(t *testing.T) {
	r := NewSeededRand(5)
	for range 200 {
		c := randomColor(r, 230, 255)
		for _, v := range []uint8{c.R, c.G, c.B} {
			if v < 230 {
				t.Fatalf("randomColor(230, 255) = %v", c)
			}
		}
		if c.A != 0xff {
			t.Fatalf("alpha = %d, want 255", c.A)
		}
	}
}

func TestOpaque(t *testing.T) {
	got := opaque(color.NRGBA{R: 200, G: 100, B: 50, A: 10})
	want := color.RGBA{R: 200, G: 100, B: 50, A: 0xff}
	if got != want {
		t.Errorf("opaque() = %v, want %v", got, want)
	}
}

func TestLighten(t *testing.T) {
	black := color.RGBA{A: 0xff}
	got := lighten(black, 0.35)
	if got.R < 40 || got.A != 0xff {
		t.Errorf("lighten(black, 0.35) = %v, want a visible grey", got)
	}
	if d := int(got.R) - int(got.B); d < -2 || d > 2 {
		t.Errorf("lighten(black, 0.35) = %v, want a neutral grey", got)
	}
	if w := lighten(black, 1); w.R < 254 || w.G < 254 || w.B < 254 {
		t.Errorf("lighten(black, 1) = %v, want white", w)
	}
}
