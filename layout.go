package captcha

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/ernyoke/imger/grayscale"
	xdraw "golang.org/x/image/draw"
)

// Horizontal layout constants. Text occupies textBudget of the canvas width,
// split glyphShare for glyph pixels and the rest for gaps.
const (
	textBudget    = 0.9
	glyphShare    = 0.7
	minGap        = 2
	overlapFactor = 0.7
	minOverlapGap = 1
	minMargin     = 2
)

// Compose draws text onto a new canvas filled with bg: background layer,
// random word gaps, distorted glyphs laid out along the centre line. The
// post-processing layers are not applied; see Image.
func (g *Generator) Compose(chars string, fg, bg color.Color) *image.RGBA {
	canvas := image.NewRGBA(image.Rect(0, 0, g.width, g.height))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opaque(bg)), image.Point{}, draw.Src)

	if g.profile.ComplexBackground {
		complexBackground(canvas)
	}
	if chars == "" {
		return canvas
	}

	ink := opaque(fg)
	glyphs := make([]*image.NRGBA, 0, 2*len(chars))
	for _, ch := range chars {
		if g.rand.Float64() < g.profile.WordSpaceProbability {
			glyphs = append(glyphs, g.glyphs.render(' ', ink))
		}
		glyphs = append(glyphs, g.glyphs.render(ch, ink))
	}

	glyphs = fitGlyphs(glyphs, g.width, g.height)
	g.place(canvas, glyphs, ink)
	return canvas
}

// place walks the glyphs left to right and composites each through its
// luminance mask.
func (g *Generator) place(canvas *image.RGBA, glyphs []*image.NRGBA, ink color.RGBA) {
	total := 0
	for _, im := range glyphs {
		total += im.Bounds().Dx()
	}
	gap := gapFor(total, len(glyphs), g.width, g.profile.CharacterOverlap)
	offset := startOffset(total, gap, len(glyphs), g.width)

	jitterX := int(g.profile.WordOffsetDX * float64(total) / float64(len(glyphs)) / 4)
	jitterY := g.height / 10
	src := image.NewUniform(ink)

	for _, im := range glyphs {
		w, h := im.Bounds().Dx(), im.Bounds().Dy()

		y := (g.height-h)/2 + intBetween(g.rand, -jitterY, jitterY)
		y = clamp(y, 0, max(0, g.height-h))
		x := offset + intBetween(g.rand, -jitterX, jitterX)

		mask := inkMask(im, &g.profile.LookupTable)
		draw.DrawMask(canvas, image.Rect(x, y, x+w, y+h), src, image.Point{}, mask, image.Point{}, draw.Over)

		offset += w + gap
	}
}

// fitScale returns the uniform factor applied to every glyph: text that
// falls short of its share of the canvas is enlarged to fill it, text wider
// than the whole budget is shrunk to the same share, and the tallest glyph
// never exceeds the canvas height.
func fitScale(total, tallest, width, height int) float64 {
	if total <= 0 {
		return 1
	}
	budget := float64(width) * textBudget
	share := budget * glyphShare

	scale := 1.0
	if t := float64(total); t < share || t > budget {
		scale = share / t
	}
	if tallest > 0 && float64(tallest)*scale > float64(height) {
		scale = float64(height) / float64(tallest)
	}
	return scale
}

// gapFor splits what is left of the text budget evenly between n glyphs.
// A single glyph has no gap.
func gapFor(total, n, width int, overlap bool) int {
	if n < 2 {
		return 0
	}
	budget := int(float64(width) * textBudget)
	gap := (budget - total) / (n - 1)
	if gap < minGap {
		gap = minGap
	}
	if overlap {
		gap = int(float64(gap) * overlapFactor)
		if gap < minOverlapGap {
			gap = minOverlapGap
		}
	}
	return gap
}

// startOffset centres glyphs and gaps on the canvas, keeping a minimum left
// margin.
func startOffset(total, gap, n, width int) int {
	span := total + gap*max(n-1, 0)
	return max((width-span)/2, minMargin)
}

// fitGlyphs rescales glyphs by fitScale, preserving aspect ratios.
func fitGlyphs(glyphs []*image.NRGBA, width, height int) []*image.NRGBA {
	total, tallest := 0, 0
	for _, im := range glyphs {
		total += im.Bounds().Dx()
		tallest = max(tallest, im.Bounds().Dy())
	}
	scale := fitScale(total, tallest, width, height)
	if math.Abs(scale-1) < 1e-3 {
		return glyphs
	}

	out := make([]*image.NRGBA, len(glyphs))
	for i, im := range glyphs {
		w := max(1, int(math.Round(float64(im.Bounds().Dx())*scale)))
		h := max(1, int(math.Round(float64(im.Bounds().Dy())*scale)))
		scaled := image.NewNRGBA(image.Rect(0, 0, w, h))
		xdraw.BiLinear.Scale(scaled, scaled.Bounds(), im, im.Bounds(), xdraw.Src, nil)
		out[i] = scaled
	}
	return out
}

// inkView presents a glyph's coverage as white ink on black, so its
// luminance equals its alpha whatever colour the glyph was drawn in.
type inkView struct {
	*image.NRGBA
}

func (v inkView) ColorModel() color.Model { return color.AlphaModel }

func (v inkView) At(x, y int) color.Color {
	return color.Alpha{A: v.NRGBAAt(x, y).A}
}

// inkMask maps the glyph's ink luminance through the brightness table.
func inkMask(im *image.NRGBA, lut *[256]uint8) *image.Alpha {
	gray := grayscale.Grayscale(inkView{im})
	b := gray.Bounds()
	mask := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			mask.SetAlpha(x, y, color.Alpha{A: lut[gray.GrayAt(b.Min.X+x, b.Min.Y+y).Y]})
		}
	}
	return mask
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
