package captcha

import (
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/gogpu/captcha/internal/filter"
	"github.com/gogpu/captcha/internal/raster"
	"github.com/gogpu/captcha/text"
)

// Confusables are drawn as foreign-glyph distractors. They resemble
// operators and letters without belonging to Alphabet.
var Confusables = []rune{'÷', '×', '±', '≠', '≈', '∞', '∑', '∏', '∆', '∇', '∈', '∉'}

// dotLightening is how far noise dots are pulled from the foreground colour
// towards white.
const dotLightening = 0.35

// layerEnv is what a layer may read while it mutates the canvas.
type layerEnv struct {
	rand *rand.Rand
	pool *text.Pool
	fg   color.RGBA

	// skipped collects recoverable per-placement failures.
	skipped []error
}

// layer is one post-glyph distortion pass.
type layer struct {
	name string
	draw func(dst *image.RGBA, env *layerEnv)
}

// layerStack returns the layers enabled by p, in drawing order. Smoothing
// is always present and always last.
func layerStack(p *Profile) []layer {
	var stack []layer
	if n := p.NoiseDots; n > 0 {
		stack = append(stack, layer{"noise dots", func(dst *image.RGBA, env *layerEnv) {
			noiseDots(dst, env.rand, env.fg, n)
		}})
	}
	if n := p.NoiseCurves; n > 0 {
		stack = append(stack, layer{"noise curves", func(dst *image.RGBA, env *layerEnv) {
			for range n {
				noiseCurve(dst, env.rand, env.fg)
			}
		}})
	}
	if n := p.LineDistractors; n > 0 {
		stack = append(stack, layer{"line distractors", func(dst *image.RGBA, env *layerEnv) {
			lineDistractors(dst, env.rand, env.fg, n)
		}})
	}
	if n := p.CircularDistractors; n > 0 {
		stack = append(stack, layer{"circular distractors", func(dst *image.RGBA, env *layerEnv) {
			circularDistractors(dst, env.rand, env.fg, n)
		}})
	}
	if n := p.NonASCIIDistractors; n > 0 {
		stack = append(stack, layer{"confusable distractors", func(dst *image.RGBA, env *layerEnv) {
			env.skipped = append(env.skipped, confusableDistractors(dst, env.rand, env.pool, env.fg, n)...)
		}})
	}
	if p.Blur {
		stack = append(stack, layer{"blur", func(dst *image.RGBA, env *layerEnv) {
			filter.GaussianBlur(dst, float64(intBetween(env.rand, 1, 2)))
		}})
	}
	stack = append(stack, layer{"smooth", func(dst *image.RGBA, _ *layerEnv) {
		filter.Convolve3(dst, filter.SmoothKernel)
	}})
	return stack
}

// complexBackground overwrites dst with a soft diagonal gradient.
func complexBackground(dst *image.RGBA) {
	b := dst.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			fx, fy := float64(x), float64(y)
			dst.SetRGBA(b.Min.X+x, b.Min.Y+y, color.RGBA{
				R: uint8(min(255, 220+fx/w*35)),
				G: uint8(min(255, 230+fy/h*25)),
				B: uint8(min(255, 240+(fx+fy)/(w+h)*15)),
				A: 0xff,
			})
		}
	}
}

// noiseDots scatters n short marks, 1 or 2 px wide, in a lightened variant
// of fg.
func noiseDots(dst *image.RGBA, r *rand.Rand, fg color.RGBA, n int) {
	p := raster.NewPainter(dst)
	c := lighten(fg, dotLightening)
	b := dst.Bounds()
	for range n {
		x := float64(b.Min.X + r.IntN(b.Dx()+1))
		y := float64(b.Min.Y + r.IntN(b.Dy()+1))
		width := float64(intBetween(r, 1, 2))
		p.StrokeLine(raster.Point{X: x, Y: y}, raster.Point{X: x - 1, Y: y - 1}, width, c)
	}
}

// noiseCurve draws one arc whose bounding box lies in the central band of
// the canvas, sweeping from 0-20 degrees to 160-200 degrees.
func noiseCurve(dst *image.RGBA, r *rand.Rand, fg color.RGBA) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	x1 := r.IntN(w/5 + 1)
	x2 := r.IntN(w-w/5+1) + w/5
	y1 := r.IntN(max(h-2*(h/5), 0)+1) + h/5
	y2 := r.IntN(max(h-y1-h/5, 0)+1) + y1

	start := float64(r.IntN(21))
	end := float64(r.IntN(41) + 160)
	width := float64(intBetween(r, 1, 3))

	center := raster.Point{
		X: float64(b.Min.X) + float64(x1+x2)/2,
		Y: float64(b.Min.Y) + float64(y1+y2)/2,
	}
	raster.NewPainter(dst).StrokeArc(center,
		math.Abs(float64(x2-x1))/2, math.Abs(float64(y2-y1))/2,
		radians(start), radians(end), width, fg)
}

// lineDistractors draws n translucent lines, each diagonal, horizontal or
// vertical across the canvas.
func lineDistractors(dst *image.RGBA, r *rand.Rand, fg color.RGBA, n int) {
	p := raster.NewPainter(dst)
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	for range n {
		var a, c raster.Point
		switch r.IntN(3) {
		case 0:
			a = raster.Point{X: float64(r.IntN(w)), Y: float64(r.IntN(h))}
			c = raster.Point{X: float64(r.IntN(w)), Y: float64(r.IntN(h))}
		case 1:
			y := float64(r.IntN(h))
			a, c = raster.Point{X: 0, Y: y}, raster.Point{X: float64(w), Y: y}
		default:
			x := float64(r.IntN(w))
			a, c = raster.Point{X: x, Y: 0}, raster.Point{X: x, Y: float64(h)}
		}
		width := float64(intBetween(r, 1, 3))
		alpha := uint8(intBetween(r, 50, 149))
		a.X, a.Y = a.X+float64(b.Min.X), a.Y+float64(b.Min.Y)
		c.X, c.Y = c.X+float64(b.Min.X), c.Y+float64(b.Min.Y)
		p.StrokeLine(a, c, width, translucent(fg, alpha))
	}
}

// circularDistractors draws n translucent ellipses, filled or outlined.
func circularDistractors(dst *image.RGBA, r *rand.Rand, fg color.RGBA, n int) {
	p := raster.NewPainter(dst)
	b := dst.Bounds()
	for range n {
		center := raster.Point{
			X: float64(b.Min.X + r.IntN(b.Dx())),
			Y: float64(b.Min.Y + r.IntN(b.Dy())),
		}
		radius := float64(intBetween(r, 10, 29))
		ecc := floatBetween(r, 0.6, 1.0)
		rx, ry := radius, radius*ecc
		if r.IntN(2) == 0 {
			rx, ry = ry, rx
		}
		c := translucent(fg, uint8(intBetween(r, 30, 109)))
		if r.IntN(2) == 0 {
			p.StrokeEllipse(center, rx, ry, 2, c)
		} else {
			p.FillEllipse(center, rx, ry, c)
		}
	}
}

// confusableDistractors draws n translucent confusable glyphs at random
// positions. A placement whose face has no glyph for the chosen rune is
// skipped and reported.
func confusableDistractors(dst *image.RGBA, r *rand.Rand, pool *text.Pool, fg color.RGBA, n int) []error {
	var skipped []error
	b := dst.Bounds()
	for range n {
		ch := Confusables[r.IntN(len(Confusables))]
		face := pool.Pick(r)
		x := b.Min.X + r.IntN(max(b.Dx()-20, 1))
		y := b.Min.Y + r.IntN(max(b.Dy()-20, 1))
		alpha := uint8(intBetween(r, 40, 99))
		if !face.HasGlyph(ch) {
			skipped = append(skipped, &text.GlyphRenderError{Rune: ch, Font: face.Name()})
			continue
		}
		text.DrawRune(dst, face, ch, x, y, translucent(fg, alpha))
	}
	return skipped
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
