package dataset

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/gogpu/captcha"
	"github.com/gogpu/captcha/internal/cache"
	"github.com/gogpu/captcha/internal/parallel"
	"github.com/gogpu/captcha/text"
)

const (
	// progressEvery is the sample interval between progress log lines.
	progressEvery = 100

	// fontCacheSize bounds the parsed fonts kept between parts.
	fontCacheSize = 64
)

// Summary reports the outcome of one part.
type Summary struct {
	Part      string
	Requested int
	Generated int
	Failed    int

	// Skipped counts samples never started because the run was cancelled.
	Skipped int

	// Fonts names the parsed font files. Fallback is set when none could
	// be used and the built-in font rendered the part.
	Fonts    []string
	Fallback bool

	ImagesDir    string
	ManifestPath string
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithWorkers overrides the configured number of workers.
func WithWorkers(n int) DriverOption {
	return func(d *Driver) {
		d.workers = n
	}
}

// WithSeed makes every worker use a seeded generator. Output is
// reproducible only with a single worker, since work stealing decides which
// worker renders which sample.
func WithSeed(seed uint64) DriverOption {
	return func(d *Driver) {
		d.newRand = func(worker int) *rand.Rand {
			return captcha.NewSeededRand(seed + uint64(worker))
		}
	}
}

// WithFontDirs sets the directories searched for system fonts when a part
// names no font files.
func WithFontDirs(dirs ...string) DriverOption {
	return func(d *Driver) {
		d.fontDirs = dirs
	}
}

// Driver writes datasets described by a Config.
type Driver struct {
	cfg      *Config
	workers  int
	newRand  func(worker int) *rand.Rand
	fontDirs []string

	// fonts holds parsed font files by path, so parts sharing fonts parse
	// them once.
	fonts *cache.Cache[string, *text.Source]
}

// NewDriver validates cfg and returns a driver for it.
func NewDriver(cfg *Config, opts ...DriverOption) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:      cfg,
		workers:  cfg.Workers,
		newRand:  func(int) *rand.Rand { return captcha.NewSecureRand() },
		fontDirs: text.DefaultFontDirs(),
		fonts:    cache.New[string, *text.Source](fontCacheSize),
	}
	if cfg.Seed != nil {
		WithSeed(*cfg.Seed)(d)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Run generates every part in order. It stops at the first part that
// cannot start, or when ctx is cancelled, returning the summaries of the
// parts processed so far.
func (d *Driver) Run(ctx context.Context, parts []string) ([]Summary, error) {
	summaries := make([]Summary, 0, len(parts))
	for _, part := range parts {
		s, err := d.RunPart(ctx, part)
		if s != nil {
			summaries = append(summaries, *s)
		}
		if err != nil {
			return summaries, err
		}
	}
	return summaries, nil
}

// RunPart generates the samples and manifest of one tier. Per-sample
// failures are logged and counted. Configuration and setup failures are
// returned before any sample is written. On cancellation the manifest
// still lists every finished sample and ctx.Err() is returned with the
// summary.
func (d *Driver) RunPart(ctx context.Context, part string) (*Summary, error) {
	log := captcha.Logger().With("part", part)

	if err := d.cfg.validatePart(part); err != nil {
		return nil, err
	}
	pc := d.cfg.Part(part)
	fg, _ := pc.FGColor.Color()
	bg, _ := pc.BGColor.Color()
	n := pc.Samples()

	partDir := filepath.Join(d.cfg.OutputDir, part)
	imagesDir := filepath.Join(partDir, "images")
	if err := os.MkdirAll(imagesDir, 0o755); err != nil {
		return nil, fmt.Errorf("dataset: create %s: %w", imagesDir, err)
	}

	sources, report := d.loadFonts(d.fontPaths(pc))
	for _, f := range report.Failures {
		log.Warn("dataset: font skipped", "err", f)
	}

	pool := parallel.NewWorkerPool(d.workers)
	defer pool.Close()

	gens := make([]*captcha.Generator, pool.Workers())
	for w := range gens {
		g, err := captcha.New(part,
			captcha.WithSize(pc.Width, pc.Height),
			captcha.WithFontSizes(pc.FontSizes...),
			captcha.WithFontSources(sources...),
			captcha.WithRand(d.newRand(w)),
		)
		if err != nil {
			return nil, err
		}
		defer g.Close()
		gens[w] = g
	}
	fonts := gens[0].Report()
	if fonts.Fallback {
		log.Warn("dataset: no usable fonts, using the built-in font", "fonts", fonts)
	}

	log.Info("dataset: generating", "samples", n, "workers", len(gens), "dir", imagesDir)

	var (
		records = make([]*LabelRecord, n)
		failed  atomic.Int64
		done    atomic.Int64
	)
	tasks := make([]parallel.Task, n)
	for i := range tasks {
		tasks[i] = func(worker int) {
			g := gens[worker]
			id := imageID(i + 1)
			filename := id + ".png"

			chars, err := g.Text(pc.MinLength + i%(pc.MaxLength-pc.MinLength+1))
			if err == nil {
				_, err = g.WriteFile(filepath.Join(imagesDir, filename), chars, fg, bg)
			}
			if err != nil {
				failed.Add(1)
				log.Warn("dataset: sample failed", "image_id", id, "err", err)
				return
			}
			records[i] = &LabelRecord{
				ImageID:       id,
				Width:         pc.Width,
				Height:        pc.Height,
				CaptchaString: chars,
				Filename:      filename,
				Difficulty:    part,
			}
			if c := done.Add(1); c%progressEvery == 0 {
				log.Info("dataset: progress", "generated", c, "total", n)
			}
		}
	}
	ran := pool.ExecuteAll(ctx, tasks)

	labels := make([]LabelRecord, 0, n)
	for _, r := range records {
		if r != nil {
			labels = append(labels, *r)
		}
	}
	s := &Summary{
		Part:         part,
		Requested:    n,
		Generated:    len(labels),
		Failed:       int(failed.Load()),
		Skipped:      n - ran,
		Fonts:        report.Loaded,
		Fallback:     fonts.Fallback,
		ImagesDir:    imagesDir,
		ManifestPath: filepath.Join(partDir, "labels.json"),
	}
	if err := WriteManifest(s.ManifestPath, labels); err != nil {
		return s, err
	}

	log.Info("dataset: part complete",
		"generated", s.Generated, "failed", s.Failed, "skipped", s.Skipped, "labels", s.ManifestPath)
	return s, ctx.Err()
}

// fontPaths returns the font files of a part, or the system fonts found in
// the driver's font directories when the part names none.
func (d *Driver) fontPaths(pc PartConfig) []string {
	if len(pc.Fonts) > 0 {
		return pc.Fonts
	}
	found := text.FindSystemFonts(d.fontDirs, text.DefaultFontNames)
	captcha.Logger().Debug("dataset: system fonts", "dirs", d.fontDirs, "found", found)
	return found
}

// loadFonts parses the font files at paths, reusing fonts parsed for
// earlier parts. Files that fail are reported and skipped.
func (d *Driver) loadFonts(paths []string) ([]*text.Source, text.Report) {
	var (
		sources []*text.Source
		report  text.Report
	)
	for _, path := range paths {
		s, err := d.fonts.GetOrCreate(path, func() (*text.Source, error) {
			return text.NewSourceFromFile(path)
		})
		if err != nil {
			report.Failures = append(report.Failures, &text.FontLoadError{Path: path, Err: err})
			continue
		}
		sources = append(sources, s)
		report.Loaded = append(report.Loaded, s.Name())
	}
	return sources, report
}
