package captcha

import (
	"errors"
	"fmt"
	"math"
)

// Tier names a difficulty profile.
type Tier string

// Registered tiers, in ascending distortion intensity.
const (
	TierPart2 Tier = "part2"
	TierPart3 Tier = "part3"
	TierPart4 Tier = "part4"
)

// IntRange is a closed integer interval [Lo, Hi].
type IntRange struct {
	Lo, Hi int
}

// Range is a closed interval [Lo, Hi].
type Range struct {
	Lo, Hi float64
}

// Profile bundles every tunable of the pipeline for one tier. Profiles are
// values: Resolve returns a copy and nothing mutates the registered table.
//
// Distractor counts of zero mean the layer is not part of the tier.
type Profile struct {
	Tier Tier

	// LookupTable maps glyph ink luminance to mask alpha. Larger
	// multipliers give harder glyph edges.
	LookupTable [256]uint8

	// CharacterOffsetDX and CharacterOffsetDY pad the glyph buffer before
	// cropping, in pixels.
	CharacterOffsetDX IntRange
	CharacterOffsetDY IntRange

	// CharacterRotate is the rotation angle range in degrees.
	CharacterRotate Range

	// CharacterWarpDX and CharacterWarpDY scale the corner perturbation of
	// the projective warp, as fractions of glyph width and height.
	CharacterWarpDX Range
	CharacterWarpDY Range

	// WordSpaceProbability is the chance of a blank glyph before each
	// character.
	WordSpaceProbability float64

	// WordOffsetDX scales the horizontal jitter of each glyph.
	WordOffsetDX float64

	NoiseDots   int
	NoiseCurves int

	LineDistractors     int
	CircularDistractors int
	NonASCIIDistractors int

	ComplexBackground bool
	Blur              bool
	CharacterOverlap  bool
}

// BrightnessTable returns the lookup table i -> min(255, floor(i*mult)).
func BrightnessTable(mult float64) [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = uint8(math.Min(255, math.Floor(float64(i)*mult)))
	}
	return t
}

var profiles = map[Tier]Profile{
	TierPart2: {
		Tier:                 TierPart2,
		LookupTable:          BrightnessTable(1.97),
		CharacterOffsetDX:    IntRange{0, 4},
		CharacterOffsetDY:    IntRange{0, 6},
		CharacterRotate:      Range{-30, 30},
		CharacterWarpDX:      Range{0.1, 0.3},
		CharacterWarpDY:      Range{0.2, 0.3},
		WordSpaceProbability: 0.3,
		WordOffsetDX:         0.25,
		NoiseDots:            30,
		NoiseCurves:          1,
	},
	TierPart3: {
		Tier:                 TierPart3,
		LookupTable:          BrightnessTable(1.97),
		CharacterOffsetDX:    IntRange{0, 8},
		CharacterOffsetDY:    IntRange{0, 10},
		CharacterRotate:      Range{-45, 45},
		CharacterWarpDX:      Range{0.2, 0.4},
		CharacterWarpDY:      Range{0.3, 0.4},
		WordSpaceProbability: 0.4,
		WordOffsetDX:         0.35,
		NoiseDots:            50,
		NoiseCurves:          3,
		LineDistractors:      5,
		ComplexBackground:    true,
	},
	TierPart4: {
		Tier:                 TierPart4,
		LookupTable:          BrightnessTable(1.97),
		CharacterOffsetDX:    IntRange{0, 12},
		CharacterOffsetDY:    IntRange{0, 15},
		CharacterRotate:      Range{-60, 60},
		CharacterWarpDX:      Range{0.3, 0.6},
		CharacterWarpDY:      Range{0.4, 0.6},
		WordSpaceProbability: 0.5,
		WordOffsetDX:         0.45,
		NoiseDots:            80,
		NoiseCurves:          5,
		LineDistractors:      8,
		CircularDistractors:  3,
		NonASCIIDistractors:  2,
		ComplexBackground:    true,
		Blur:                 true,
		CharacterOverlap:     true,
	},
}

// Tiers returns the registered tiers in ascending difficulty.
func Tiers() []Tier {
	return []Tier{TierPart2, TierPart3, TierPart4}
}

// Resolve returns the profile registered under name.
func Resolve(name string) (Profile, error) {
	p, ok := profiles[Tier(name)]
	if !ok {
		return Profile{}, &UnknownTierError{Name: name}
	}
	return p, nil
}

// Validate checks the profile invariants: ordered ranges, probabilities in
// [0,1] and non-negative counts.
func (p Profile) Validate() error {
	var errs []error
	checkInt := func(name string, r IntRange) {
		if r.Lo > r.Hi {
			errs = append(errs, fmt.Errorf("%s: lo %d > hi %d", name, r.Lo, r.Hi))
		}
	}
	check := func(name string, r Range) {
		if r.Lo > r.Hi || math.IsNaN(r.Lo) || math.IsNaN(r.Hi) {
			errs = append(errs, fmt.Errorf("%s: lo %g > hi %g", name, r.Lo, r.Hi))
		}
	}
	unit := func(name string, v float64) {
		if !(v >= 0 && v <= 1) {
			errs = append(errs, fmt.Errorf("%s: %g outside [0,1]", name, v))
		}
	}
	count := func(name string, n int) {
		if n < 0 {
			errs = append(errs, fmt.Errorf("%s: negative count %d", name, n))
		}
	}

	checkInt("character offset dx", p.CharacterOffsetDX)
	checkInt("character offset dy", p.CharacterOffsetDY)
	check("character rotate", p.CharacterRotate)
	check("character warp dx", p.CharacterWarpDX)
	check("character warp dy", p.CharacterWarpDY)
	unit("word space probability", p.WordSpaceProbability)
	unit("word offset dx", p.WordOffsetDX)
	count("noise dots", p.NoiseDots)
	count("noise curves", p.NoiseCurves)
	count("line distractors", p.LineDistractors)
	count("circular distractors", p.CircularDistractors)
	count("non-ASCII distractors", p.NonASCIIDistractors)

	if len(errs) > 0 {
		return fmt.Errorf("captcha: invalid profile %q: %w", p.Tier, errors.Join(errs...))
	}
	return nil
}
