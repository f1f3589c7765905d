// Command captchademo renders sample CAPTCHAs for every difficulty tier.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/gogpu/captcha"
	"github.com/gogpu/captcha/text"
)

var sampleTexts = []string{"A7X9", "3K2M5", "B9F4L", "7N8Q2", "X5Y1Z"}

const comparisonText = "5K7M2"

// canvasSizes grow with the tier so that stronger distortion still fits.
var canvasSizes = map[captcha.Tier][2]int{
	captcha.TierPart2: {160, 60},
	captcha.TierPart3: {180, 80},
	captcha.TierPart4: {200, 100},
}

func main() {
	var (
		output   = flag.String("output", "demo_samples", "output directory")
		random   = flag.Int("random", 3, "random samples per tier")
		compare  = flag.Int("compare", 3, "comparison samples per tier at 200x100")
		discover = flag.Bool("discover", true, "search well-known directories for fonts")
	)
	flag.Parse()

	var fonts []*text.Source
	if *discover {
		paths := text.FindSystemFonts(text.DefaultFontDirs(), text.DefaultFontNames)
		sources, report := text.LoadSources(paths)
		fonts = sources
		log.Printf("Fonts: %d found, %d loaded, %d failed", len(paths), len(report.Loaded), len(report.Failures))
	}

	printTextSamples()
	printProfiles()

	for _, tier := range captcha.Tiers() {
		size := canvasSizes[tier]
		dir := filepath.Join(*output, string(tier))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("Failed to create %s: %v", dir, err)
		}

		g := newGenerator(tier, size[0], size[1], fonts)
		for i, s := range sampleTexts {
			write(g, filepath.Join(dir, fmt.Sprintf("%s_sample_%02d_%s.png", tier, i+1, s)), s)
		}
		for i := range *random {
			write(g, filepath.Join(dir, fmt.Sprintf("%s_random_%02d.png", tier, i+1)), "")
		}
		_ = g.Close()
	}

	dir := filepath.Join(*output, "comparison")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("Failed to create %s: %v", dir, err)
	}
	for _, tier := range captcha.Tiers() {
		g := newGenerator(tier, 200, 100, fonts)
		for i := range *compare {
			write(g, filepath.Join(dir, fmt.Sprintf("comparison_%s_sample%d_%s.png", tier, i+1, comparisonText)), comparisonText)
		}
		_ = g.Close()
	}

	log.Printf("Demo samples saved to %s", *output)
}

func newGenerator(tier captcha.Tier, w, h int, fonts []*text.Source) *captcha.Generator {
	g, err := captcha.New(string(tier), captcha.WithSize(w, h), captcha.WithFontSources(fonts...))
	if err != nil {
		log.Fatalf("Failed to create %s generator: %v", tier, err)
	}
	if g.Report().Fallback {
		log.Printf("Warning: no usable fonts for %s, using the built-in font", tier)
	}
	return g
}

func write(g *captcha.Generator, path, chars string) {
	got, err := g.WriteFile(path, chars, nil, nil)
	if err != nil {
		log.Printf("  x %s: %v", filepath.Base(path), err)
		return
	}
	log.Printf("  + %s (text: %s)", filepath.Base(path), got)
}

func printTextSamples() {
	r := captcha.NewSecureRand()
	for n := captcha.MinTextLength; n <= captcha.MaxTextLength; n++ {
		s, _ := captcha.GenerateText(r, n)
		log.Printf("Length %d: %s", n, s)
	}
	for i := range 5 {
		s, _ := captcha.GenerateText(r, captcha.RandomLength(r))
		log.Printf("Random %d: %s (length: %d)", i+1, s, len(s))
	}
}

func printProfiles() {
	for _, tier := range captcha.Tiers() {
		p, _ := captcha.Resolve(string(tier))
		log.Printf("%s: rotate %v, warp dx %v, warp dy %v, dots %d, curves %d",
			tier, p.CharacterRotate, p.CharacterWarpDX, p.CharacterWarpDY, p.NoiseDots, p.NoiseCurves)
		if p.LineDistractors > 0 {
			log.Printf("  line distractors: %d", p.LineDistractors)
		}
		if p.CircularDistractors > 0 {
			log.Printf("  circular distractors: %d", p.CircularDistractors)
		}
		if p.NonASCIIDistractors > 0 {
			log.Printf("  non-ASCII distractors: %d", p.NonASCIIDistractors)
		}
		if p.Blur {
			log.Printf("  blur: enabled")
		}
		if p.CharacterOverlap {
			log.Printf("  character overlap: enabled")
		}
	}
}
