package textsize

import "errors"

// Sentinel errors for the textsize package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("textsize: empty font data")

	// ErrInvalidSize is returned for a non-positive font size.
	ErrInvalidSize = errors.New("textsize: font size must be positive")

	// ErrInvalidCacheSize is returned for a non-positive cache capacity.
	ErrInvalidCacheSize = errors.New("textsize: cache size must be positive")
)
