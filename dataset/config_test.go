package dataset

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/gogpu/captcha"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("parts:\n  part2: {}\n"))
	if err != nil {
		t.Fatalf("ParseConfig() = %v", err)
	}
	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("OutputDir = %q, want %q", cfg.OutputDir, DefaultOutputDir)
	}

	p := cfg.Part("part2")
	if p.Width != 160 || p.Height != 60 {
		t.Errorf("size = %dx%d, want 160x60", p.Width, p.Height)
	}
	if p.Samples() != DefaultNumSamples {
		t.Errorf("Samples() = %d, want %d", p.Samples(), DefaultNumSamples)
	}
	if p.MinLength != 3 || p.MaxLength != 7 {
		t.Errorf("lengths = [%d,%d], want [3,7]", p.MinLength, p.MaxLength)
	}
	if len(p.FontSizes) != 4 {
		t.Errorf("FontSizes = %v", p.FontSizes)
	}

	// Parts absent from the file still resolve to defaults.
	if got := cfg.Part("part4").Samples(); got != DefaultNumSamples {
		t.Errorf("missing part Samples() = %d", got)
	}
}

func TestParseConfig_Full(t *testing.T) {
	data := []byte(`
output_dir: out
workers: 3
seed: 7
parts:
  part3:
    width: 180
    height: 80
    fonts: [a.ttf, b.ttf]
    font_sizes: [20, 24]
    num_samples: 12
    min_length: 4
    max_length: 5
    bg_color: [255, 250, 240]
    fg_color: [10, 20, 30]
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig() = %v", err)
	}
	if cfg.OutputDir != "out" || cfg.Workers != 3 || cfg.Seed == nil || *cfg.Seed != 7 {
		t.Errorf("top level = %+v", cfg)
	}
	p := cfg.Part("part3")
	if p.Width != 180 || p.Height != 80 || p.Samples() != 12 || p.MinLength != 4 || p.MaxLength != 5 {
		t.Errorf("part3 = %+v", p)
	}
	if len(p.Fonts) != 2 || len(p.FontSizes) != 2 {
		t.Errorf("fonts = %v, sizes = %v", p.Fonts, p.FontSizes)
	}
	bg, err := p.BGColor.Color()
	if err != nil || bg != (color.RGBA{255, 250, 240, 255}) {
		t.Errorf("bg = %v, %v", bg, err)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		yaml   string
		target error
	}{
		{"zero samples", "parts:\n  part2: {num_samples: 0}\n", ErrNoSamples},
		{"length too long", "parts:\n  part2: {max_length: 9}\n", captcha.ErrInvalidLength},
		{"min above max", "parts:\n  part2: {min_length: 6, max_length: 4}\n", captcha.ErrInvalidLength},
		{"negative size", "parts:\n  part2: {width: -1}\n", captcha.ErrInvalidSize},
		{"short colour", "parts:\n  part2: {bg_color: [1, 2]}\n", nil},
		{"colour out of range", "parts:\n  part2: {fg_color: [1, 2, 300]}\n", nil},
		{"negative workers", "workers: -1\n", nil},
		{"bad yaml", "parts: [", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("ParseConfig() = nil, want error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("error %v does not wrap %v", err, tt.target)
			}
		})
	}
}

func TestParseConfig_UnknownTier(t *testing.T) {
	_, err := ParseConfig([]byte("parts:\n  part5: {}\n"))
	var ute *captcha.UnknownTierError
	if !errors.As(err, &ute) {
		t.Fatalf("ParseConfig() = %v, want *captcha.UnknownTierError", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("output_dir: x\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil || cfg.OutputDir != "x" {
		t.Errorf("LoadConfig() = %+v, %v", cfg, err)
	}

	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) = %v, want ErrNotExist", err)
	}
}
