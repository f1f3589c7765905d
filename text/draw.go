package text

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Measure returns the box a single rune occupies when drawn with DrawRune:
// the larger of its advance and ink extent horizontally, and the face's
// ascent plus descent vertically. Both are in pixels.
func Measure(face font.Face, r rune) (w, h int) {
	s := string(r)
	bounds, advance := font.BoundString(face, s)

	w = advance.Ceil()
	if ink := bounds.Max.X.Ceil(); ink > w {
		w = ink
	}

	m := face.Metrics()
	h = m.Ascent.Ceil() + m.Descent.Ceil()
	if ink := (bounds.Max.Y + m.Ascent).Ceil(); ink > h {
		h = ink
	}
	return w, h
}

// DrawRune draws r so that the top of the face's ascent sits at y and the
// pen starts at x.
func DrawRune(dst draw.Image, face font.Face, r rune, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(string(r))
}

