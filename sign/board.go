package sign

import (
	"fmt"
	"image"
	"log/slog"
	"slices"

	"github.com/tidwall/rtree"

	"github.com/gogpu/viewport"
	"github.com/gogpu/viewport/textsize"
	"github.com/gogpu/viewport/zoom"
)

// ID identifies a sign on a Board. IDs are never reused.
type ID uint32

type entry struct {
	Sign
	maxZoom zoom.Level
	// extent is the rectangle the sign is indexed under while Indexed.
	extent image.Rectangle
}

// Board owns signs, the measurer and viewports they use, and an R-tree of
// the areas tracked signs can cover, for area queries and hit tests.
//
// A sign is visible in a viewport whose zoom is at most the maxZoom it was
// last placed with. Only tracked signs can be found by Query and HitTest.
//
// Board is not safe for concurrent use.
type Board struct {
	env   Env
	signs map[ID]*entry
	next  ID
	index rtree.RTreeG[ID]
}

// NewBoard returns an empty board measuring with m and invalidating vps.
func NewBoard(m textsize.Measurer, vps Viewports) *Board {
	return &Board{
		env:   Env{Measurer: m, Viewports: vps},
		signs: make(map[ID]*entry),
	}
}

// Len returns the number of signs.
func (b *Board) Len() int { return len(b.signs) }

// Add creates an unplaced sign and returns its ID.
func (b *Board) Add(tracked bool) ID {
	b.next++
	b.signs[b.next] = &entry{Sign: Sign{Tracked: tracked}}
	return b.next
}

// Get returns a copy of the sign.
func (b *Board) Get(id ID) (Sign, bool) {
	e, ok := b.signs[id]
	if !ok {
		return Sign{}, false
	}
	return e.Sign, true
}

func (b *Board) lookup(id ID) (*entry, error) {
	e, ok := b.signs[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSign, id)
	}
	return e, nil
}

// Update places sign id and, for a tracked sign, refreshes its index entry.
func (b *Board) Update(id ID, maxZoom zoom.Level, center, top int32, text, small string) error {
	e, err := b.lookup(id)
	if err != nil {
		return err
	}
	if e.Indexed {
		b.unindex(id, e)
	}
	e.UpdatePosition(b.env, maxZoom, center, top, text, small)
	e.maxZoom = maxZoom
	if e.Tracked {
		e.extent = b.extent(e)
		lo, hi := corners(e.extent)
		b.index.Insert(lo, hi, id)
	}

	viewport.Logger().Debug("sign placed",
		slog.Uint64("id", uint64(id)),
		slog.Int("center", int(center)),
		slog.Int("top", int(top)),
		slog.Int("width_normal", int(e.WidthNormal)),
		slog.Int("width_small", int(e.WidthSmall)))
	return nil
}

// Invalidate drops the sign's index entry without touching its placement,
// for example when the labelled object moves out of range.
func (b *Board) Invalidate(id ID) error {
	e, err := b.lookup(id)
	if err != nil {
		return err
	}
	if e.Indexed {
		b.unindex(id, e)
		e.Indexed = false
	}
	return nil
}

func (b *Board) unindex(id ID, e *entry) {
	lo, hi := corners(e.extent)
	b.index.Delete(lo, hi, id)
	e.extent = image.Rectangle{}
}

// extent returns the union of the sign's boxes at every level it is visible
// at. Boxes grow with the zoom level but the font tier changes at
// SmallSigns, so no single level bounds the others.
func (b *Board) extent(e *entry) image.Rectangle {
	var u image.Rectangle
	for z := zoom.Min; z <= min(e.maxZoom, zoom.Max); z++ {
		u = u.Union(e.Bounds(z, b.env.Measurer.LineHeight(FontFor(z))))
	}
	return u
}

func corners(r image.Rectangle) (lo, hi [2]float64) {
	return [2]float64{float64(r.Min.X), float64(r.Min.Y)},
		[2]float64{float64(r.Max.X), float64(r.Max.Y)}
}

// MarkDirty marks the area of sign id dirty in every viewport showing it.
func (b *Board) MarkDirty(id ID) error {
	e, err := b.lookup(id)
	if err != nil {
		return err
	}
	if e.Measured() {
		e.Sign.MarkDirty(b.env, e.maxZoom)
	}
	return nil
}

// Remove deletes sign id, marking its last area dirty.
func (b *Board) Remove(id ID) error {
	if err := b.MarkDirty(id); err != nil {
		return err
	}
	if err := b.Invalidate(id); err != nil {
		return err
	}
	delete(b.signs, id)
	return nil
}

// Query returns the IDs of tracked signs visible at level z whose box
// intersects the virtual rectangle r, in ascending order.
func (b *Board) Query(r image.Rectangle, z zoom.Level) []ID {
	if r.Empty() || b.index.Len() == 0 {
		return nil
	}
	lh := b.env.Measurer.LineHeight(FontFor(z))

	var ids []ID
	lo, hi := corners(r)
	b.index.Search(lo, hi, func(_, _ [2]float64, id ID) bool {
		e := b.signs[id]
		if z <= e.maxZoom && e.Bounds(z, lh).Overlaps(r) {
			ids = append(ids, id)
		}
		return true
	})
	slices.Sort(ids)
	return ids
}

// HitTest returns the tracked sign under screen point p in vp. When labels
// overlap, the most recently added sign wins since it is drawn on top.
func (b *Board) HitTest(vp *viewport.ViewPort, p image.Point) (ID, bool) {
	if !vp.ContainsScreen(p) {
		return 0, false
	}
	v := vp.ScreenToVirtual(p)
	// One screen pixel covers a square of virtual units.
	px := zoom.Scale(1, vp.ZoomLevel())
	ids := b.Query(image.Rectangle{Min: v, Max: v.Add(image.Pt(px, px))}, vp.ZoomLevel())
	if len(ids) == 0 {
		return 0, false
	}
	return ids[len(ids)-1], true
}
