// Package text loads the fonts CAPTCHA glyphs are drawn with.
//
// Fonts are handled in two layers:
//
//   - Source: a parsed TTF/OTF file, heavyweight, safe to share between
//     goroutines.
//   - Pool: the faces created from a set of sources at a set of sizes. Faces
//     cache glyph state, so every goroutine builds its own Pool.
//
// Loading never fails outright. Files or sizes that cannot be used are
// recorded as FontLoadError values in a Report and skipped; when nothing is
// left the embedded Go Regular font is used and Report.Fallback is set. The
// report is returned, not logged, so callers can surface it once per
// process:
//
//	sources, report := text.LoadSources(paths)
//	pool, poolReport := text.NewPool(sources, []float64{30, 36, 42, 48})
//	report.Merge(poolReport)
//	if report.Fallback {
//	    slog.Warn("no usable fonts, using built-in font", "fonts", report)
//	}
//
// Parsing uses golang.org/x/image/font/opentype. Glyph coverage queries go
// through github.com/go-text/typesetting so that they never touch the
// x/image face caches.
package text
