package captcha

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math/rand/v2"
	"os"

	"github.com/gogpu/captcha/text"
)

// Sample is one rendered CAPTCHA and its ground truth.
type Sample struct {
	Text string
	PNG  []byte
}

// Generator renders CAPTCHA images for one difficulty tier.
//
// A Generator is not safe for concurrent use: it owns font faces and a
// random source. Create one per goroutine, sharing parsed fonts through
// WithFontSources.
type Generator struct {
	profile       Profile
	width, height int

	rand   *rand.Rand
	pool   *text.Pool
	report text.Report

	glyphs glyphRenderer
	layers []layer
}

// New creates a generator for the named tier.
func New(tier string, opts ...Option) (*Generator, error) {
	profile, err := Resolve(tier)
	if err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.width <= 0 || o.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, o.width, o.height)
	}
	if o.rand == nil {
		o.rand = NewSecureRand()
	}

	sources, report := text.LoadSources(o.fontFiles)
	sources = append(sources, o.sources...)
	pool, poolReport := text.NewPool(sources, o.sizes)
	report.Merge(poolReport)

	g := &Generator{
		profile: profile,
		width:   o.width,
		height:  o.height,
		rand:    o.rand,
		pool:    pool,
		report:  report,
	}
	g.glyphs = glyphRenderer{pool: pool, rand: o.rand, profile: &g.profile}
	g.layers = layerStack(&g.profile)

	Logger().Debug("captcha: generator ready",
		"tier", tier, "width", o.width, "height", o.height, "fonts", report)
	return g, nil
}

// Profile returns a copy of the generator's difficulty profile.
func (g *Generator) Profile() Profile {
	return g.profile
}

// Report describes how the font pool was built. Report.Fallback is true
// when no configured font could be used.
func (g *Generator) Report() text.Report {
	return g.report
}

// Size returns the canvas size.
func (g *Generator) Size() (width, height int) {
	return g.width, g.height
}

// Close releases the font faces.
func (g *Generator) Close() error {
	return g.pool.Close()
}

// Text returns random CAPTCHA text of the given length.
func (g *Generator) Text(length int) (string, error) {
	return GenerateText(g.rand, length)
}

// RandomText returns random CAPTCHA text of random length.
func (g *Generator) RandomText() string {
	s, _ := GenerateText(g.rand, RandomLength(g.rand))
	return s
}

// Image renders chars with every layer of the profile. A nil fg or bg is
// replaced by a random dark foreground or light background.
func (g *Generator) Image(chars string, fg, bg color.Color) *image.RGBA {
	if bg == nil {
		bg = randomColor(g.rand, 230, 255)
	}
	if fg == nil {
		fg = randomColor(g.rand, 10, 180)
	}

	canvas := g.Compose(chars, fg, bg)
	env := &layerEnv{rand: g.rand, pool: g.pool, fg: opaque(fg)}
	for _, l := range g.layers {
		l.draw(canvas, env)
	}
	for _, err := range env.skipped {
		Logger().Debug("captcha: distractor skipped", "err", err)
	}
	return canvas
}

// Generate renders chars, or random text when chars is empty, and encodes
// the result as PNG.
func (g *Generator) Generate(chars string, fg, bg color.Color) (*Sample, error) {
	if chars == "" {
		chars = g.RandomText()
	}
	var buf bytes.Buffer
	if err := Encode(&buf, g.Image(chars, fg, bg)); err != nil {
		return nil, err
	}
	return &Sample{Text: chars, PNG: buf.Bytes()}, nil
}

// WriteFile renders chars and writes the PNG to path. Empty chars are
// replaced by random text, which is returned.
func (g *Generator) WriteFile(path, chars string, fg, bg color.Color) (string, error) {
	if chars == "" {
		chars = g.RandomText()
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, g.Image(chars, fg, bg)); err != nil {
		return "", &EncodeError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", &EncodeError{Path: path, Err: err}
	}
	return chars, nil
}

// Encode writes img to w as PNG.
func Encode(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return &EncodeError{Err: err}
	}
	return nil
}
