package textsize

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// Bitmap measures text with fixed bitmap faces. The zero value uses
// basicfont.Face7x13 for both tiers.
//
// Bitmap faces are stateless, so Bitmap is safe for concurrent use.
type Bitmap struct {
	Normal *basicfont.Face
	Small  *basicfont.Face
}

// Width implements Measurer.
func (b Bitmap) Width(text string, size FontSize) int {
	if text == "" {
		return 0
	}
	return font.MeasureString(b.face(size), text).Ceil()
}

// LineHeight implements Measurer.
func (b Bitmap) LineHeight(size FontSize) int {
	return b.face(size).Metrics().Height.Ceil()
}

// Face returns the face used for size.
func (b Bitmap) Face(size FontSize) font.Face {
	return b.face(size)
}

func (b Bitmap) face(size FontSize) *basicfont.Face {
	f := b.Normal
	if tier(size) == Small && b.Small != nil {
		f = b.Small
	}
	if f == nil {
		f = basicfont.Face7x13
	}
	return f
}
