package textsize

import (
	"fmt"

	"golang.org/x/image/math/fixed"
)

// FontSize is a font tier.
type FontSize uint8

const (
	// Normal is the font used for signs at close zoom levels.
	Normal FontSize = iota
	// Small is the font used for signs once the view is zoomed far out.
	Small

	fontSizeCount
)

// String returns the tier name.
func (s FontSize) String() string {
	switch s {
	case Normal:
		return "Normal"
	case Small:
		return "Small"
	default:
		return fmt.Sprintf("FontSize(%d)", uint8(s))
	}
}

// Valid reports whether s is a known tier.
func (s FontSize) Valid() bool { return s < fontSizeCount }

// Measurer measures text in screen pixels.
//
// Implementations must be safe for concurrent use.
type Measurer interface {
	// Width returns the advance width of text in pixels, rounded up.
	Width(text string, size FontSize) int
	// LineHeight returns the height of one line of text in pixels.
	LineHeight(size FontSize) int
}

// tier clamps an unknown size to Normal.
func tier(size FontSize) FontSize {
	if !size.Valid() {
		return Normal
	}
	return size
}

// sizesToFixed validates the pixel sizes of both tiers.
func sizesToFixed(normal, small float64) ([fontSizeCount]fixed.Int26_6, error) {
	var out [fontSizeCount]fixed.Int26_6
	if normal <= 0 || small <= 0 {
		return out, fmt.Errorf("%w: normal=%g small=%g", ErrInvalidSize, normal, small)
	}
	out[Normal] = fixed.Int26_6(normal * 64)
	out[Small] = fixed.Int26_6(small * 64)
	return out, nil
}
