package captcha

import (
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

var white = colorful.Color{R: 1, G: 1, B: 1}

// randomColor returns an opaque colour with every channel uniform in
// [lo, hi].
func randomColor(r *rand.Rand, lo, hi int) color.RGBA {
	return color.RGBA{
		R: uint8(intBetween(r, lo, hi)),
		G: uint8(intBetween(r, lo, hi)),
		B: uint8(intBetween(r, lo, hi)),
		A: 0xff,
	}
}

// opaque converts c to an opaque RGBA colour, dropping its alpha.
func opaque(c color.Color) color.RGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return color.RGBA{R: n.R, G: n.G, B: n.B, A: 0xff}
}

// lighten blends c towards white by t in CIE L*a*b*, which keeps the hue
// of dark colours recognisable.
func lighten(c color.RGBA, t float64) color.RGBA {
	cf, _ := colorful.MakeColor(c)
	r, g, b := cf.BlendLab(white, t).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// translucent returns c with straight alpha a.
func translucent(c color.RGBA, a uint8) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}
