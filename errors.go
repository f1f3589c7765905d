package captcha

import (
	"errors"
	"fmt"
)

// ErrInvalidLength is returned when a text length outside
// [MinTextLength, MaxTextLength] is requested.
var ErrInvalidLength = errors.New("captcha: text length out of range")

// UnknownTierError is returned when a difficulty tier is not registered.
type UnknownTierError struct {
	Name string
}

func (e *UnknownTierError) Error() string {
	return fmt.Sprintf("captcha: unknown difficulty tier %q", e.Name)
}

// EncodeError is returned when a finished image cannot be encoded or
// written. Path is empty when encoding to a writer.
type EncodeError struct {
	Path string
	Err  error
}

func (e *EncodeError) Error() string {
	if e.Path == "" {
		return "captcha: encode png: " + e.Err.Error()
	}
	return fmt.Sprintf("captcha: write %s: %v", e.Path, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// ErrInvalidSize is returned when a canvas dimension is not positive.
var ErrInvalidSize = errors.New("captcha: invalid canvas size")
