package dataset

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/captcha"
)

// Defaults applied to missing configuration keys.
const (
	DefaultOutputDir  = "data_generated"
	DefaultNumSamples = 1000
)

// ErrNoSamples is returned when a part requests zero or fewer samples.
var ErrNoSamples = errors.New("dataset: no samples requested")

// Config is the YAML configuration of a dataset run.
//
//	output_dir: data_generated
//	workers: 8
//	parts:
//	  part2:
//	    width: 160
//	    height: 60
//	    fonts: [fonts/DejaVuSans.ttf]
//	    font_sizes: [30, 36, 42, 48]
//	    num_samples: 1000
//	    min_length: 3
//	    max_length: 7
//	    bg_color: [255, 255, 255]
type Config struct {
	OutputDir string `yaml:"output_dir"`

	// Workers is the number of parallel generators. Zero means GOMAXPROCS.
	Workers int `yaml:"workers"`

	// Seed makes a run reproducible when set and Workers is 1.
	Seed *uint64 `yaml:"seed"`

	Parts map[string]PartConfig `yaml:"parts"`
}

// PartConfig configures one tier. Zero values take the defaults of
// Part. NumSamples is a pointer so that an explicit zero is rejected
// instead of defaulted.
type PartConfig struct {
	Width      int       `yaml:"width"`
	Height     int       `yaml:"height"`
	Fonts      []string  `yaml:"fonts"`
	FontSizes  []float64 `yaml:"font_sizes"`
	NumSamples *int      `yaml:"num_samples"`
	MinLength  int       `yaml:"min_length"`
	MaxLength  int       `yaml:"max_length"`

	// BGColor and FGColor are [r, g, b]. Unset colours are random for
	// every sample.
	BGColor RGB `yaml:"bg_color"`
	FGColor RGB `yaml:"fg_color"`
}

// RGB is a colour written as a YAML list of three 0-255 integers.
type RGB []int

// Color converts c, returning nil for an unset colour.
func (c RGB) Color() (color.Color, error) {
	if c == nil {
		return nil, nil
	}
	if len(c) != 3 {
		return nil, fmt.Errorf("want 3 components, got %d", len(c))
	}
	for _, v := range c {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("component %d outside [0,255]", v)
		}
	}
	return color.RGBA{R: uint8(c[0]), G: uint8(c[1]), B: uint8(c[2]), A: 0xff}, nil
}

// Samples returns the number of samples, or DefaultNumSamples when unset.
func (p PartConfig) Samples() int {
	if p.NumSamples == nil {
		return DefaultNumSamples
	}
	return *p.NumSamples
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	// #nosec G304 -- Config path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes and validates YAML configuration data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("dataset: parse config: %w", err)
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Part returns the configuration of tier with defaults filled in. A tier
// missing from the file gets every default.
func (c *Config) Part(tier string) PartConfig {
	p := c.Parts[tier]
	if p.Width == 0 {
		p.Width = captcha.DefaultWidth
	}
	if p.Height == 0 {
		p.Height = captcha.DefaultHeight
	}
	if len(p.FontSizes) == 0 {
		p.FontSizes = captcha.DefaultFontSizes
	}
	if p.NumSamples == nil {
		n := DefaultNumSamples
		p.NumSamples = &n
	}
	if p.MinLength == 0 {
		p.MinLength = captcha.MinTextLength
	}
	if p.MaxLength == 0 {
		p.MaxLength = captcha.MaxTextLength
	}
	return p
}

// Validate checks every configured part.
func (c *Config) Validate() error {
	var errs []error
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers: negative count %d", c.Workers))
	}
	for tier := range c.Parts {
		if err := c.validatePart(tier); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("dataset: invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// validatePart checks the effective configuration of tier.
func (c *Config) validatePart(tier string) error {
	if _, err := captcha.Resolve(tier); err != nil {
		return err
	}
	p := c.Part(tier)

	var errs []error
	if p.Width < 0 || p.Height < 0 {
		errs = append(errs, fmt.Errorf("%w: %dx%d", captcha.ErrInvalidSize, p.Width, p.Height))
	}
	if p.Samples() <= 0 {
		errs = append(errs, ErrNoSamples)
	}
	if p.MinLength < captcha.MinTextLength || p.MaxLength > captcha.MaxTextLength || p.MinLength > p.MaxLength {
		errs = append(errs, fmt.Errorf("%w: min %d, max %d", captcha.ErrInvalidLength, p.MinLength, p.MaxLength))
	}
	for _, size := range p.FontSizes {
		if size <= 0 {
			errs = append(errs, fmt.Errorf("font size %g not positive", size))
		}
	}
	if _, err := p.BGColor.Color(); err != nil {
		errs = append(errs, fmt.Errorf("bg_color: %w", err))
	}
	if _, err := p.FGColor.Color(); err != nil {
		errs = append(errs, fmt.Errorf("fg_color: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("part %s: %w", tier, errors.Join(errs...))
	}
	return nil
}
