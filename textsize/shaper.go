package textsize

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// lineSample is shaped once per tier to find the line extents.
const lineSample = "Hg"

// Shaper measures text by shaping it with HarfBuzz via go-text/typesetting.
//
// Shaper is safe for concurrent use. The parsed font.Font is read-only and
// shared; every call gets its own font.Face and a pooled HarfbuzzShaper,
// neither of which may be shared between goroutines.
type Shaper struct {
	font       *font.Font
	sizes      [fontSizeCount]fixed.Int26_6
	lineHeight [fontSizeCount]int

	shaperPool sync.Pool
}

// NewShaper parses TrueType or OpenType data and returns a measurer with the
// given pixel sizes for the Normal and Small tiers.
func NewShaper(data []byte, normal, small float64) (*Shaper, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	sizes, err := sizesToFixed(normal, small)
	if err != nil {
		return nil, err
	}
	face, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("textsize: parse font: %w", err)
	}

	s := &Shaper{
		font:  face.Font,
		sizes: sizes,
		shaperPool: sync.Pool{
			New: func() any {
				return &shaping.HarfbuzzShaper{}
			},
		},
	}
	for t := range fontSizeCount {
		lb := s.shape(lineSample, t).LineBounds
		s.lineHeight[t] = (lb.Ascent - lb.Descent + lb.Gap).Ceil()
	}
	return s, nil
}

// Width implements Measurer.
func (s *Shaper) Width(text string, size FontSize) int {
	if text == "" {
		return 0
	}
	return s.shape(text, tier(size)).Advance.Ceil()
}

// LineHeight implements Measurer.
func (s *Shaper) LineHeight(size FontSize) int {
	return s.lineHeight[tier(size)]
}

func (s *Shaper) shape(text string, size FontSize) shaping.Output {
	runes := []rune(text)
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      font.NewFace(s.font),
		Size:      s.sizes[size],
		Script:    detectScript(runes),
		Language:  language.NewLanguage("en"),
	}

	hb := s.shaperPool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	s.shaperPool.Put(hb)
	return out
}

// detectScript returns the script of the first non-space rune. Labels are
// short and single-script in practice.
func detectScript(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
