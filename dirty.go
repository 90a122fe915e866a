package viewport

import (
	"image"
	"log/slog"

	"github.com/gogpu/viewport/internal/bitmap"
	"github.com/gogpu/viewport/zoom"
)

// Dirty block size policy, as log2 of the block edge in screen pixels.
const (
	// mapModeBlockShift applies from zoom.DrawMap on.
	mapModeBlockShift = 3
	// farBlockShift applies from zoom.VeryZoomedOut on.
	farBlockShift = 4
	// nearBlockShift is the shift at zoom.Min; each zoom-out step halves
	// the block until zoom.VeryZoomedOut.
	nearBlockShift = 7
)

// blockShift returns the dirty block shift for level z.
func blockShift(z zoom.Level) uint {
	switch {
	case z >= zoom.DrawMap:
		return mapModeBlockShift
	case z >= zoom.VeryZoomedOut:
		return farBlockShift
	case uint(z) >= nearBlockShift:
		return 0
	default:
		return nearBlockShift - uint(z)
	}
}

// DirtyBlockShift returns log2 of the dirty block edge in screen pixels.
// Map mode uses 8 pixel blocks, very zoomed out views 16 pixel blocks, and
// closer views 128 >> zoom.
func (vp *ViewPort) DirtyBlockShift() uint { return vp.blockShift }

// DirtyBlockWidth returns the width of a dirty block in screen pixels.
func (vp *ViewPort) DirtyBlockWidth() int { return 1 << vp.blockShift }

// DirtyBlockHeight returns the height of a dirty block in screen pixels.
func (vp *ViewPort) DirtyBlockHeight() int { return 1 << vp.blockShift }

// BlocksPerRow returns the number of dirty blocks across the viewport.
func (vp *ViewPort) BlocksPerRow() int { return vp.dirty.Cols() }

// BlocksPerColumn returns the number of dirty blocks down the viewport.
func (vp *ViewPort) BlocksPerColumn() int { return vp.dirty.Rows() }

// DirtyBlockLeftMargin returns how far the first block column starts left
// of the viewport edge, in screen pixels. It keeps block boundaries anchored
// to the world while scrolling.
func (vp *ViewPort) DirtyBlockLeftMargin() int { return vp.leftMargin }

// IsDirty reports whether any block was marked since the last ClearDirty.
func (vp *ViewPort) IsDirty() bool { return vp.isDirty }

// IsDrawn reports whether a draw pass completed since the dirty state last
// changed.
func (vp *ViewPort) IsDrawn() bool { return vp.isDrawn }

// MarkDrawn records that the draw pass for the current dirty state finished.
func (vp *ViewPort) MarkDrawn() { vp.isDrawn = true }

// IsBlockDirty reports whether the block at (col, row) needs redrawing.
func (vp *ViewPort) IsBlockDirty(col, row int) bool { return vp.dirty.Test(col, row) }

// DirtyBlockCount returns the number of blocks that need redrawing.
func (vp *ViewPort) DirtyBlockCount() int { return vp.dirty.Count() }

// MarkScreenDirty marks every block overlapping the screen rectangle r.
// Parts of r outside the viewport are ignored. Marking an already dirty
// block has no further effect.
func (vp *ViewPort) MarkScreenDirty(r image.Rectangle) {
	r = r.Sub(image.Pt(vp.left, vp.top)).Intersect(image.Rect(0, 0, vp.width, vp.height))
	if r.Empty() {
		return
	}
	s := vp.blockShift
	c0 := (r.Min.X + vp.leftMargin) >> s
	c1 := (r.Max.X - 1 + vp.leftMargin) >> s
	r0 := r.Min.Y >> s
	r1 := (r.Max.Y - 1) >> s
	if vp.dirty.SetRect(c0, r0, c1, r1) {
		vp.isDirty = true
		vp.isDrawn = false
	}
}

// MarkVirtualDirty marks every block overlapping the virtual rectangle r.
func (vp *ViewPort) MarkVirtualDirty(r image.Rectangle) {
	if r.Empty() {
		return
	}
	z := vp.zoom
	vp.MarkScreenDirty(image.Rectangle{
		Min: image.Pt(
			zoom.Unscale(r.Min.X-vp.virtualLeft, z)+vp.left,
			zoom.Unscale(r.Min.Y-vp.virtualTop, z)+vp.top,
		),
		Max: image.Pt(
			zoom.UnscaleCeil(r.Max.X-vp.virtualLeft, z)+vp.left,
			zoom.UnscaleCeil(r.Max.Y-vp.virtualTop, z)+vp.top,
		),
	})
}

// MarkWorldDirty marks the area of a sprite of virtual size (w, h) anchored
// at world position (x, y, z).
func (vp *ViewPort) MarkWorldDirty(x, y, z, w, h int) {
	vp.MarkVirtualDirty(WorldBox(x, y, z, w, h))
}

// MarkAllDirty marks the whole viewport.
func (vp *ViewPort) MarkAllDirty() {
	vp.markAll()
}

func (vp *ViewPort) markAll() {
	vp.mapVehicles.reset(vp.width, vp.height)
	if vp.dirty.Len() == 0 {
		return
	}
	vp.dirty.SetAll()
	vp.isDirty = true
	vp.isDrawn = false
}

// ClearDirty resets the dirty state after a completed draw pass. The bulk
// clear is skipped when nothing was marked. The map-mode vehicle record of
// the pass is dropped too.
func (vp *ViewPort) ClearDirty() {
	vp.mapVehicles.reset(vp.width, vp.height)
	if vp.isDirty {
		vp.dirty.Clear()
		vp.isDirty = false
	}
	vp.isDrawn = false
}

// ForEachDirtyBlock calls fn with the screen rectangle of every dirty block,
// clipped to the viewport, in row-major order.
func (vp *ViewPort) ForEachDirtyBlock(fn func(r image.Rectangle)) {
	if fn == nil || !vp.isDirty {
		return
	}
	vp.dirty.ForEach(func(col, row int) {
		fn(vp.blockRect(col, row, col, row))
	})
}

// blockRect returns the clipped screen rectangle of the inclusive block
// range [c0, c1] x [r0, r1].
func (vp *ViewPort) blockRect(c0, r0, c1, r1 int) image.Rectangle {
	s := vp.blockShift
	r := image.Rect(
		(c0<<s)-vp.leftMargin, r0<<s,
		((c1+1)<<s)-vp.leftMargin, (r1+1)<<s,
	).Intersect(image.Rect(0, 0, vp.width, vp.height))
	return r.Add(image.Pt(vp.left, vp.top))
}

// blockGeometry returns the number of block columns and rows covering a
// width x height screen area whose first column starts margin pixels to the
// left. An area with no pixels has no blocks.
func blockGeometry(width, height, margin int, s uint) (cols, rows int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	bw := 1 << s
	return (width + margin + bw - 1) >> s, (height + bw - 1) >> s
}

// updateDirtyBlocks recomputes the block geometry for the current size,
// zoom and scroll position. A change of geometry reallocates the bitset and
// marks everything dirty.
func (vp *ViewPort) updateDirtyBlocks() {
	s := blockShift(vp.zoom)
	bw := 1 << s
	margin := zoom.Unscale(vp.virtualLeft, vp.zoom) & (bw - 1)
	cols, rows := blockGeometry(vp.width, vp.height, margin, s)

	if vp.dirty != nil && s == vp.blockShift && margin == vp.leftMargin &&
		cols == vp.dirty.Cols() && rows == vp.dirty.Rows() {
		return
	}

	vp.blockShift = s
	vp.leftMargin = margin
	vp.dirty = bitmap.New(cols, rows)
	vp.isDirty = false
	vp.markAll()

	Logger().Debug("dirty block geometry rebuilt",
		slog.Int("shift", int(s)),
		slog.Int("per_row", cols),
		slog.Int("per_column", rows),
		slog.Int("left_margin", margin))
}
