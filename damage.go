package viewport

import (
	"cmp"
	"image"
	"slices"

	"github.com/gogpu/gputypes"
)

// DirtyRects returns the dirty area as a small set of screen rectangles.
//
// Horizontally adjacent dirty blocks are joined into spans, and a span that
// repeats exactly in the next block row extends the rectangle above it. The
// rectangles do not overlap, are clipped to the viewport and are sorted
// top to bottom, then left to right.
func (vp *ViewPort) DirtyRects() []image.Rectangle {
	if !vp.isDirty {
		return nil
	}

	type span struct{ c0, c1 int }
	var (
		rects []image.Rectangle
		// open maps a span in the previous row to the block row range of
		// the rectangle it is extending.
		open = map[span][2]int{}
		next = map[span][2]int{}
	)
	flush := func(m map[span][2]int) {
		for sp, rows := range m {
			rects = append(rects, vp.blockRect(sp.c0, rows[0], sp.c1, rows[1]))
		}
	}

	for row := 0; row < vp.dirty.Rows(); row++ {
		clear(next)
		vp.dirty.ForEachRun(row, func(c0, c1 int) {
			sp := span{c0, c1}
			if rows, ok := open[sp]; ok {
				next[sp] = [2]int{rows[0], row}
				delete(open, sp)
				return
			}
			next[sp] = [2]int{row, row}
		})
		flush(open)
		open, next = next, open
	}
	flush(open)

	slices.SortFunc(rects, func(a, b image.Rectangle) int {
		if c := cmp.Compare(a.Min.Y, b.Min.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.Min.X, b.Min.X)
	})
	return rects
}

// Region is a rectangle of a viewport's backing texture that must be
// re-uploaded after a draw pass. X and Y are relative to the viewport's
// top-left corner.
type Region struct {
	X, Y uint32
	Size gputypes.Extent3D
}

// UploadRegions converts DirtyRects into texture regions for a GPU backend
// that keeps one texture per viewport and uploads only what changed.
func (vp *ViewPort) UploadRegions() []Region {
	rects := vp.DirtyRects()
	if len(rects) == 0 {
		return nil
	}
	regions := make([]Region, 0, len(rects))
	for _, r := range rects {
		r = r.Sub(image.Pt(vp.left, vp.top))
		regions = append(regions, Region{
			X: uint32(r.Min.X), //nolint:gosec // clipped to the viewport, never negative
			Y: uint32(r.Min.Y), //nolint:gosec // clipped to the viewport, never negative
			Size: gputypes.Extent3D{
				Width:              uint32(r.Dx()), //nolint:gosec // non-empty after clipping
				Height:             uint32(r.Dy()), //nolint:gosec // non-empty after clipping
				DepthOrArrayLayers: 1,
			},
		})
	}
	return regions
}
