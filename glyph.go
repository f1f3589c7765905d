package captcha

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"github.com/gogpu/captcha/text"
)

// spaceSize is the side of the blank glyph used for random word gaps.
const spaceSize = 10

// glyphRenderer draws single distorted characters. It reads its tunables
// from the profile and owns no state besides the shared pool and random
// source of its Generator.
type glyphRenderer struct {
	pool    *text.Pool
	rand    *rand.Rand
	profile *Profile
}

// render returns ch drawn in c, offset, cropped, rotated and warped. The
// space character yields a transparent placeholder.
func (gr *glyphRenderer) render(ch rune, c color.RGBA) *image.NRGBA {
	if ch == ' ' {
		return image.NewNRGBA(image.Rect(0, 0, spaceSize, spaceSize))
	}
	p := gr.profile
	r := gr.rand

	face := gr.pool.Pick(r)
	w, h := text.Measure(face, ch)
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, spaceSize, spaceSize))
	}

	dx := intBetween(r, p.CharacterOffsetDX.Lo, p.CharacterOffsetDX.Hi)
	dy := intBetween(r, p.CharacterOffsetDY.Lo, p.CharacterOffsetDY.Hi)
	im := image.NewNRGBA(image.Rect(0, 0, w+dx, h+dy))
	text.DrawRune(im, face, ch, dx, dy, c)

	im = cropToInk(im)
	im = rotate(im, floatBetween(r, p.CharacterRotate.Lo, p.CharacterRotate.Hi))

	mx := float64(w) * floatBetween(r, p.CharacterWarpDX.Lo, p.CharacterWarpDX.Hi)
	my := float64(h) * floatBetween(r, p.CharacterWarpDY.Lo, p.CharacterWarpDY.Hi)
	x1 := int(floatBetween(r, -mx, mx))
	y1 := int(floatBetween(r, -my, my))
	x2 := int(floatBetween(r, -mx, mx))
	y2 := int(floatBetween(r, -my, my))

	return warp(im, w, h, x1, y1, x2, y2)
}

// cropToInk returns the smallest sub-image holding every non-transparent
// pixel, copied to a zero origin. Fully transparent images are returned
// unchanged.
func cropToInk(im *image.NRGBA) *image.NRGBA {
	b := im.Bounds()
	ink := image.Rectangle{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if im.NRGBAAt(x, y).A == 0 {
				continue
			}
			ink = ink.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	if ink.Empty() || ink == b {
		return im
	}
	out := image.NewNRGBA(image.Rect(0, 0, ink.Dx(), ink.Dy()))
	xdraw.Copy(out, image.Point{}, im, ink, xdraw.Src, nil)
	return out
}

// rotate turns im counter-clockwise by deg degrees with bilinear
// resampling. The result is enlarged to hold the rotated bounds.
func rotate(im *image.NRGBA, deg float64) *image.NRGBA {
	if deg == 0 {
		return im
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	w, h := float64(im.Bounds().Dx()), float64(im.Bounds().Dy())
	nw := math.Abs(w*cos) + math.Abs(h*sin)
	nh := math.Abs(w*sin) + math.Abs(h*cos)

	dst := image.NewNRGBA(image.Rect(0, 0, int(math.Ceil(nw-1e-9)), int(math.Ceil(nh-1e-9))))

	// Source to destination: rotate about the source centre, then move it
	// to the destination centre.
	s2d := f64.Aff3{
		cos, sin, nw/2 - cos*w/2 - sin*h/2,
		-sin, cos, nh/2 + sin*w/2 - cos*h/2,
	}
	xdraw.BiLinear.Transform(dst, s2d, im, im.Bounds(), xdraw.Src, nil)
	return dst
}

// warp stretches im to (w+|x1|+|x2|, h+|y1|+|y2|) and pulls the output w x h
// rectangle from the quadrilateral whose corners are offset by the
// perturbations.
func warp(im *image.NRGBA, w, h, x1, y1, x2, y2 int) *image.NRGBA {
	w2 := w + abs(x1) + abs(x2)
	h2 := h + abs(y1) + abs(y2)

	scaled := image.NewNRGBA(image.Rect(0, 0, w2, h2))
	xdraw.BiLinear.Scale(scaled, scaled.Bounds(), im, im.Bounds(), xdraw.Src, nil)

	quad := [4][2]float64{
		{float64(x1), float64(y1)},
		{float64(-x1), float64(h2 - y2)},
		{float64(w2 + x2), float64(h2 + y2)},
		{float64(w2 - x2), float64(-y1)},
	}
	return quadWarp(scaled, w, h, quad)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
