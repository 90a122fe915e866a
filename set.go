package viewport

import (
	"image"
	"iter"
	"slices"

	"github.com/gogpu/viewport/zoom"
)

// Set is the collection of live viewports. Game-state mutators invalidate
// areas through it without knowing which windows are open.
type Set struct {
	vps []*ViewPort
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{}
}

// Add registers vp. Adding a viewport twice has no effect.
func (s *Set) Add(vp *ViewPort) {
	if vp == nil || slices.Contains(s.vps, vp) {
		return
	}
	s.vps = append(s.vps, vp)
}

// Remove unregisters and closes vp. It reports whether vp was in the set.
func (s *Set) Remove(vp *ViewPort) bool {
	i := slices.Index(s.vps, vp)
	if i < 0 {
		return false
	}
	s.vps = slices.Delete(s.vps, i, i+1)
	vp.Close()
	return true
}

// Len returns the number of live viewports.
func (s *Set) Len() int { return len(s.vps) }

// All returns the live viewports in the order they were added.
func (s *Set) All() iter.Seq[*ViewPort] {
	return func(yield func(*ViewPort) bool) {
		for _, vp := range s.vps {
			if !yield(vp) {
				return
			}
		}
	}
}

// MarkVirtualDirty marks the virtual rectangle r dirty in every viewport
// whose zoom level is at most maxZoom.
func (s *Set) MarkVirtualDirty(r image.Rectangle, maxZoom zoom.Level) {
	for _, vp := range s.vps {
		if vp.zoom <= maxZoom {
			vp.MarkVirtualDirty(r)
		}
	}
}

// MarkWorldDirty marks the area of a sprite of virtual size (w, h) anchored
// at world position (x, y, z) in every viewport.
func (s *Set) MarkWorldDirty(x, y, z, w, h int) {
	s.MarkVirtualDirty(WorldBox(x, y, z, w, h), zoom.Max)
}

// MarkOverlayDirty marks the area of ov in every viewport showing it.
func (s *Set) MarkOverlayDirty(ov *Overlay) {
	b := ov.Bounds()
	if b.Empty() {
		return
	}
	for _, vp := range s.vps {
		if vp.overlay != ov {
			continue
		}
		pad := zoom.Scale(ov.maxWidth()/2+1, vp.zoom)
		vp.MarkVirtualDirty(b.Inset(-pad))
	}
}

// ClearDirty clears every viewport after a completed frame.
func (s *Set) ClearDirty() {
	for _, vp := range s.vps {
		vp.ClearDirty()
	}
}

// Close closes and removes every viewport.
func (s *Set) Close() {
	for _, vp := range s.vps {
		vp.Close()
	}
	s.vps = nil
}
