package text

import "errors"

// Sentinel errors for text package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("text: empty font data")

	// ErrNoFont is returned when a measurer has no font source.
	ErrNoFont = errors.New("text: no font source")
)
