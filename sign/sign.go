package sign

import (
	"image"
	"iter"
	"math"

	"github.com/gogpu/viewport"
	"github.com/gogpu/viewport/textsize"
	"github.com/gogpu/viewport/zoom"
)

// Padding around the label text, in screen pixels at the sign's zoom level.
const (
	MarginLeft   = 1
	MarginRight  = 1
	MarginTop    = 1
	MarginBottom = 1
)

// Viewports is the set of live viewports a sign invalidates.
type Viewports interface {
	All() iter.Seq[*viewport.ViewPort]
}

// Env is what a sign needs to measure its label and invalidate viewports.
type Env struct {
	Measurer  textsize.Measurer
	Viewports Viewports
}

// Sign is the cached placement of one label.
//
// Center and Top are in virtual coordinates. The widths are in screen
// pixels and include the left and right margins. A sign that has never been
// placed has zero widths.
type Sign struct {
	Center      int32
	Top         int32
	WidthNormal uint16
	WidthSmall  uint16

	// Tracked signs are kept in a spatial index by their owner.
	Tracked bool
	// Indexed reports whether the index entry matches the last placement.
	// UpdatePosition sets it for tracked signs; the index owner clears it
	// when it removes the entry.
	Indexed bool
}

// FontFor returns the font tier signs are drawn in at level z.
func FontFor(z zoom.Level) textsize.FontSize {
	if z >= zoom.SmallSigns {
		return textsize.Small
	}
	return textsize.Normal
}

// Measured reports whether the sign has been placed at least once.
func (s *Sign) Measured() bool { return s.WidthNormal != 0 }

// UpdatePosition places the label text with its top edge at top and its
// horizontal centre at center. small is the label shown in the small font;
// when empty, text is used for both. The area covered before and after is
// marked dirty in every viewport at or below maxZoom.
//
// For a tracked sign, Indexed becomes true. Inserting into the index is up
// to the caller.
func (s *Sign) UpdatePosition(env Env, maxZoom zoom.Level, center, top int32, text, small string) {
	if s.Measured() {
		s.MarkDirty(env, maxZoom)
	}

	s.Top = top
	s.WidthNormal = labelWidth(env.Measurer.Width(text, textsize.Normal))
	s.Center = center

	if small == "" {
		small = text
	}
	s.WidthSmall = labelWidth(env.Measurer.Width(small, textsize.Small))

	s.MarkDirty(env, maxZoom)
	if s.Tracked {
		s.Indexed = true
	}
}

// labelWidth pads a text width with the margins, rounding the text part up
// to an even number so that the label centres on a whole pixel.
func labelWidth(text int) uint16 {
	w := MarginLeft + (max(text, 0)+1)&^1 + MarginRight
	return uint16(min(w, math.MaxUint16)) //nolint:gosec // clamped above
}

// Width returns the label width used at level z.
func (s *Sign) Width(z zoom.Level) int {
	if FontFor(z) == textsize.Small {
		return int(s.WidthSmall)
	}
	return int(s.WidthNormal)
}

// Bounds returns the virtual rectangle the sign covers at level z, given the
// line height of the font used there. It includes a one pixel border.
func (s *Sign) Bounds(z zoom.Level, lineHeight int) image.Rectangle {
	half := zoom.Scale(s.Width(z)/2+1, z)
	c, t := int(s.Center), int(s.Top)
	return image.Rect(
		c-half,
		t-zoom.Scale(1, z),
		c+half,
		t+zoom.Scale(MarginTop+lineHeight+MarginBottom+1, z),
	)
}

// MarkDirty marks the sign's area dirty in every viewport whose zoom is at
// most maxZoom.
func (s *Sign) MarkDirty(env Env, maxZoom zoom.Level) {
	if env.Viewports == nil {
		return
	}
	for vp := range env.Viewports.All() {
		z := vp.ZoomLevel()
		if z > maxZoom {
			continue
		}
		vp.MarkVirtualDirty(s.Bounds(z, env.Measurer.LineHeight(FontFor(z))))
	}
}
