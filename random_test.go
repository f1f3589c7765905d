package captcha

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateText_Lengths(t *testing.T) {
	r := NewSeededRand(7)
	for length := MinTextLength; length <= MaxTextLength; length++ {
		for range 50 {
			s, err := GenerateText(r, length)
			if err != nil {
				t.Fatalf("GenerateText(%d) = %v", length, err)
			}
			if len(s) != length {
				t.Fatalf("len(%q) = %d, want %d", s, len(s), length)
			}
			for _, c := range s {
				if !strings.ContainsRune(Alphabet, c) {
					t.Fatalf("%q contains %q outside the alphabet", s, c)
				}
			}
		}
	}
}

func TestGenerateText_InvalidLength(t *testing.T) {
	r := NewSeededRand(7)
	for _, length := range []int{-1, 0, 1, 2, 8, 100} {
		s, err := GenerateText(r, length)
		if !errors.Is(err, ErrInvalidLength) {
			t.Errorf("GenerateText(%d) = %q, %v; want ErrInvalidLength", length, s, err)
		}
	}
}

func TestRandomLength_CoversRange(t *testing.T) {
	r := NewSeededRand(11)
	seen := map[int]int{}
	for range 1000 {
		n := RandomLength(r)
		if n < MinTextLength || n > MaxTextLength {
			t.Fatalf("RandomLength() = %d outside [%d,%d]", n, MinTextLength, MaxTextLength)
		}
		seen[n]++
	}
	for n := MinTextLength; n <= MaxTextLength; n++ {
		if seen[n] == 0 {
			t.Errorf("length %d never drawn in 1000 trials", n)
		}
	}
}

func TestSeededRand_Deterministic(t *testing.T) {
	a, b := NewSeededRand(99), NewSeededRand(99)
	for range 20 {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("seeded sources diverged: %d != %d", x, y)
		}
	}
}

func TestSecureRand(t *testing.T) {
	r := NewSecureRand()
	s, err := GenerateText(r, MaxTextLength)
	if err != nil || len(s) != MaxTextLength {
		t.Fatalf("GenerateText() = %q, %v", s, err)
	}
}

func TestIntBetween_Inclusive(t *testing.T) {
	r := NewSeededRand(3)
	var lo, hi bool
	for range 500 {
		v := intBetween(r, 1, 3)
		if v < 1 || v > 3 {
			t.Fatalf("intBetween(1, 3) = %d", v)
		}
		lo = lo || v == 1
		hi = hi || v == 3
	}
	if !lo || !hi {
		t.Error("intBetween never reached an endpoint")
	}
	if got := intBetween(r, 5, 5); got != 5 {
		t.Errorf("intBetween(5, 5) = %d", got)
	}
}
