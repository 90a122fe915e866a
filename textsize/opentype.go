package textsize

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// OpenType measures text by summing glyph advances and kerning with
// golang.org/x/image/font/opentype. It does not shape, so ligatures and
// complex scripts are measured glyph by glyph.
type OpenType struct {
	// mu guards faces; opentype faces keep a glyph buffer and are not safe
	// for concurrent use.
	mu    sync.Mutex
	faces [fontSizeCount]font.Face
}

// NewOpenType parses TrueType or OpenType data and returns a measurer with
// the given pixel sizes for the Normal and Small tiers.
func NewOpenType(data []byte, normal, small float64) (*OpenType, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if _, err := sizesToFixed(normal, small); err != nil {
		return nil, err
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("textsize: parse font: %w", err)
	}

	o := &OpenType{}
	for t, size := range [fontSizeCount]float64{Normal: normal, Small: small} {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingNone,
		})
		if err != nil {
			return nil, fmt.Errorf("textsize: %s face: %w", FontSize(t), err)
		}
		o.faces[t] = face
	}
	return o, nil
}

// Width implements Measurer.
func (o *OpenType) Width(text string, size FontSize) int {
	if text == "" {
		return 0
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return font.MeasureString(o.faces[tier(size)], text).Ceil()
}

// LineHeight implements Measurer.
func (o *OpenType) LineHeight(size FontSize) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.faces[tier(size)].Metrics().Height.Ceil()
}

// Face returns the x/image face for size, for callers that also draw the
// text. The face must not be used concurrently with o.
func (o *OpenType) Face(size FontSize) font.Face {
	return o.faces[tier(size)]
}

// Close releases the faces.
func (o *OpenType) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, f := range o.faces {
		if f != nil {
			if err := f.Close(); err != nil {
				return err
			}
		}
	}
	return nil
}
