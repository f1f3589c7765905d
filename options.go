package captcha

import (
	"math/rand/v2"

	"github.com/gogpu/captcha/text"
)

// Default canvas and font settings.
const (
	DefaultWidth  = 160
	DefaultHeight = 60
)

// DefaultFontSizes are the font sizes in points used when none are given.
var DefaultFontSizes = []float64{30, 36, 42, 48}

// Option configures a Generator during creation.
//
// Example:
//
//	// Secure randomness, built-in font, 160x60 canvas
//	g, err := captcha.New("part3")
//
//	// Deterministic output for golden-image tests
//	g, err := captcha.New("part3", captcha.WithRand(captcha.NewSeededRand(42)))
type Option func(*options)

// options holds optional configuration for Generator creation.
type options struct {
	width, height int
	sizes         []float64
	fontFiles     []string
	sources       []*text.Source
	rand          *rand.Rand
}

// defaultOptions returns the default generator options.
func defaultOptions() options {
	return options{
		width:  DefaultWidth,
		height: DefaultHeight,
		sizes:  DefaultFontSizes,
	}
}

// WithSize sets the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithFontSizes sets the font sizes in points. Every loaded font is used at
// every size.
func WithFontSizes(sizes ...float64) Option {
	return func(o *options) {
		o.sizes = sizes
	}
}

// WithFontFiles adds TTF or OTF files to the font pool. Files that cannot
// be loaded are skipped and listed in the generator's Report.
func WithFontFiles(paths ...string) Option {
	return func(o *options) {
		o.fontFiles = append(o.fontFiles, paths...)
	}
}

// WithFontSources adds already parsed fonts to the font pool. Sources are
// safe to share between generators, so a batch driver parses each file once.
func WithFontSources(sources ...*text.Source) Option {
	return func(o *options) {
		o.sources = append(o.sources, sources...)
	}
}

// WithRand sets the random source for text and distortions. The default is
// NewSecureRand.
func WithRand(r *rand.Rand) Option {
	return func(o *options) {
		o.rand = r
	}
}
