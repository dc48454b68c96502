package fonts

import (
	"errors"
	"fmt"
)

// Sentinel errors for the fonts package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("fonts: empty font data")

	// ErrUnknownFont is returned by Library operations on an ID it never issued.
	ErrUnknownFont = errors.New("fonts: unknown font id")
)

// ParseError is returned when a font parser rejects the data.
type ParseError struct {
	Parser string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("fonts: %s: failed to parse font: %v", e.Parser, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
