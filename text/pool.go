package text

import (
	"log/slog"
	"math/rand/v2"
	"strconv"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Face is one (font, size) entry of a Pool.
type Face struct {
	font.Face

	// Source is nil for the last-resort bitmap face.
	Source *Source
	Size   float64
}

// Name returns the font name of the face.
func (f Face) Name() string {
	if f.Source == nil {
		return "basicfont 7x13"
	}
	return f.Source.Name()
}

// HasGlyph reports whether the face can render r.
func (f Face) HasGlyph(r rune) bool {
	if f.Source != nil {
		return f.Source.HasGlyph(r)
	}
	if bf, ok := f.Face.(*basicfont.Face); ok {
		for _, rng := range bf.Ranges {
			if rng.Low <= r && r < rng.High {
				return true
			}
		}
		return false
	}
	_, ok := f.GlyphAdvance(r)
	return ok
}

// Report describes how a font set was assembled. It is returned instead of
// being logged so the caller decides where and how often to surface it.
type Report struct {
	// Loaded lists "name" for sources and "name@size" for faces.
	Loaded []string

	// Failures lists every (font, size) pair that was skipped.
	Failures []*FontLoadError

	// Fallback is true when the built-in font replaced an empty set.
	Fallback bool
}

// Merge appends o to r.
func (r *Report) Merge(o Report) {
	r.Loaded = append(r.Loaded, o.Loaded...)
	r.Failures = append(r.Failures, o.Failures...)
	r.Fallback = r.Fallback || o.Fallback
}

// LogValue implements slog.LogValuer.
func (r Report) LogValue() slog.Value {
	failures := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		failures[i] = f.Error()
	}
	return slog.GroupValue(
		slog.Any("loaded", r.Loaded),
		slog.Any("failures", failures),
		slog.Bool("fallback", r.Fallback),
	)
}

// LoadSources parses every font file in paths. Files that fail are
// reported and skipped. The result is safe to share between pools.
func LoadSources(paths []string) ([]*Source, Report) {
	var (
		sources []*Source
		report  Report
	)
	for _, path := range paths {
		s, err := NewSourceFromFile(path)
		if err != nil {
			report.Failures = append(report.Failures, &FontLoadError{Path: path, Err: err})
			continue
		}
		sources = append(sources, s)
		report.Loaded = append(report.Loaded, s.Name())
	}
	return sources, report
}

// Pool is the cross product of font sources and sizes that glyphs are drawn
// from.
//
// A Pool is not safe for concurrent use because x/image faces cache glyph
// state. Build one pool per goroutine from shared sources.
type Pool struct {
	faces    []Face
	fallback bool
}

// NewPool creates a face for every (source, size) pair. Pairs that fail are
// reported and skipped. If no face could be created the built-in font is
// used at every size, and if even that fails a fixed bitmap face is used, so
// the returned pool is never empty.
func NewPool(sources []*Source, sizes []float64) (*Pool, Report) {
	var report Report
	if len(sizes) == 0 {
		report.Failures = append(report.Failures, &FontLoadError{Path: "<sizes>", Err: ErrNoSizes})
	}

	p := &Pool{}
	p.addFaces(sources, sizes, &report)

	if len(p.faces) == 0 {
		p.fallback = true
		report.Fallback = true
		if b, err := Builtin(); err == nil {
			p.addFaces([]*Source{b}, sizes, &report)
		} else {
			report.Failures = append(report.Failures, &FontLoadError{Path: BuiltinName, Err: err})
		}
	}
	if len(p.faces) == 0 {
		p.faces = append(p.faces, Face{Face: basicfont.Face7x13, Size: 13})
		report.Loaded = append(report.Loaded, "basicfont 7x13")
	}
	return p, report
}

func (p *Pool) addFaces(sources []*Source, sizes []float64, report *Report) {
	for _, s := range sources {
		for _, size := range sizes {
			face, err := s.Face(size)
			if err != nil {
				report.Failures = append(report.Failures, &FontLoadError{Path: s.Name(), Size: size, Err: err})
				continue
			}
			p.faces = append(p.faces, Face{Face: face, Source: s, Size: size})
			report.Loaded = append(report.Loaded, s.Name()+"@"+formatSize(size))
		}
	}
}

// Pick returns a face chosen uniformly at random.
func (p *Pool) Pick(r *rand.Rand) Face {
	return p.faces[r.IntN(len(p.faces))]
}

// Faces returns the faces of the pool.
func (p *Pool) Faces() []Face {
	return p.faces
}

// Len returns the number of faces.
func (p *Pool) Len() int {
	return len(p.faces)
}

// Fallback reports whether the pool uses the built-in font.
func (p *Pool) Fallback() bool {
	return p.fallback
}

// Close releases the faces.
func (p *Pool) Close() error {
	for _, f := range p.faces {
		if f.Source == nil {
			continue
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

func formatSize(size float64) string {
	return strconv.FormatFloat(size, 'g', -1, 64)
}
