// Package captcha renders labeled CAPTCHA images for training text
// recognition models.
//
// # Overview
//
// A Generator draws random alphanumeric text onto a small raster canvas.
// Every character is rendered in a random font and size, padded, rotated
// and pulled through a random projective warp before the layout engine
// spreads the glyphs across the canvas. Distractor layers (noise dots, arcs,
// lines, ellipses, confusable glyphs, blur) are then drawn on top, and a
// fixed smoothing filter finishes the image.
//
// How strong each effect is depends on the difficulty tier:
//
//	part2  light rotation and warp, dots and one arc
//	part3  gradient background and line distractors
//	part4  overlapping glyphs, ellipses, confusables and blur
//
// # Quick Start
//
//	g, err := captcha.New("part3", captcha.WithFontFiles("DejaVuSans.ttf"))
//	if err != nil {
//	    return err
//	}
//	defer g.Close()
//
//	s, err := g.Generate("", nil, nil) // random text and colours
//	if err != nil {
//	    return err
//	}
//	fmt.Println(s.Text) // ground truth for s.PNG
//
// # Randomness
//
// Generators use crypto/rand by default. Pass WithRand(NewSeededRand(seed))
// to get byte-identical images across runs.
//
// # Concurrency
//
// A Generator is not safe for concurrent use. Parse fonts once with
// text.LoadSources and give each goroutine its own Generator built with
// WithFontSources. See package dataset for a parallel batch driver.
package captcha

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)
