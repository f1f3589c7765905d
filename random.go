package captcha

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
	"strings"
)

// Alphabet is the symbol set CAPTCHA text is drawn from.
const Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Text length bounds accepted by GenerateText.
const (
	MinTextLength = 3
	MaxTextLength = 7
)

// cryptoSource is a rand.Source reading from crypto/rand, so that text and
// distortions cannot be predicted from earlier output.
type cryptoSource struct{}

func (cryptoSource) Uint64() uint64 {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		panic("captcha: crypto/rand failed: " + err.Error())
	}
	return binary.LittleEndian.Uint64(b[:])
}

// NewSecureRand returns a generator backed by crypto/rand. It is the
// default randomness of a Generator.
func NewSecureRand() *rand.Rand {
	return rand.New(cryptoSource{})
}

// NewSeededRand returns a deterministic ChaCha8 generator. Use it in tests
// and golden-image comparisons, never for real challenges.
func NewSeededRand(seed uint64) *rand.Rand {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:], seed)
	return rand.New(rand.NewChaCha8(s))
}

// GenerateText returns length symbols drawn uniformly and independently from
// Alphabet.
func GenerateText(r *rand.Rand, length int) (string, error) {
	if length < MinTextLength || length > MaxTextLength {
		return "", ErrInvalidLength
	}
	var sb strings.Builder
	sb.Grow(length)
	for range length {
		sb.WriteByte(Alphabet[r.IntN(len(Alphabet))])
	}
	return sb.String(), nil
}

// RandomLength draws a text length uniformly from [MinTextLength, MaxTextLength].
func RandomLength(r *rand.Rand) int {
	return intBetween(r, MinTextLength, MaxTextLength)
}

// intBetween returns a uniform integer in the closed interval [lo, hi].
func intBetween(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// floatBetween returns a uniform value in [lo, hi).
func floatBetween(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}
