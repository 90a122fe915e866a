package viewport

import (
	"image"
	"sync/atomic"
)

// Segment is a line drawn by an overlay, in virtual coordinates.
type Segment struct {
	From, To image.Point
	// Width is the line width in screen pixels.
	Width int
}

// Overlay is content drawn on top of one or more viewports, such as a
// link graph. It is shared: several viewports (a main view and a minimap,
// say) may reference the same overlay.
//
// Ownership is reference counted. Every viewport holding the overlay owns
// one reference, and the release hook runs when the last reference is
// dropped; whoever drops it is responsible for the backing resources.
//
// Segments must not be changed while a viewport drawing the overlay is in
// its draw pass.
type Overlay struct {
	Segments []Segment

	refs     atomic.Int32
	released atomic.Bool
	release  func()
}

// NewOverlay creates an overlay with no references. release, if non-nil,
// runs once when the last reference is released.
func NewOverlay(release func()) *Overlay {
	return &Overlay{release: release}
}

// Acquire adds a reference and returns o.
func (o *Overlay) Acquire() *Overlay {
	o.refs.Add(1)
	return o
}

// Release drops a reference. Dropping the last one runs the release hook.
func (o *Overlay) Release() {
	if o.refs.Add(-1) > 0 {
		return
	}
	if o.released.CompareAndSwap(false, true) && o.release != nil {
		o.release()
	}
}

// Refs returns the current number of references.
func (o *Overlay) Refs() int {
	return int(o.refs.Load())
}

// Released reports whether the release hook has run.
func (o *Overlay) Released() bool {
	return o.released.Load()
}

// Bounds returns the virtual rectangle covering every segment end point,
// grown by one unit so that axis-aligned segments are not empty. Line width
// is not included. An overlay without segments has empty bounds.
func (o *Overlay) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, s := range o.Segments {
		b = b.Union(image.Rectangle{Min: s.From, Max: s.To}.Canon().Inset(-1))
	}
	return b
}

// maxWidth returns the widest segment's width in screen pixels.
func (o *Overlay) maxWidth() int {
	w := 0
	for _, s := range o.Segments {
		w = max(w, s.Width)
	}
	return w
}
