package viewport

import (
	"image"

	"github.com/brunoga/deep"

	"github.com/gogpu/viewport/zoom"
)

// Frame is a self-contained record of a viewport's geometry and dirty
// state, handed to a renderer that must not alias the live viewport.
type Frame struct {
	Screen  image.Rectangle
	Virtual image.Rectangle
	Zoom    zoom.Level
	MapType MapType

	BlockShift      uint
	LeftMargin      int
	BlocksPerRow    int
	BlocksPerColumn int
	// Blocks holds one bit per block, row-major, 64 blocks per word.
	Blocks []uint64

	Overlay []Segment
}

// Snapshot returns a deep copy of the viewport's current frame state.
func (vp *ViewPort) Snapshot() Frame {
	f := Frame{
		Screen:          vp.ScreenRect(),
		Virtual:         vp.VirtualRect(),
		Zoom:            vp.zoom,
		MapType:         vp.mapType,
		BlockShift:      vp.blockShift,
		LeftMargin:      vp.leftMargin,
		BlocksPerRow:    vp.dirty.Cols(),
		BlocksPerColumn: vp.dirty.Rows(),
		Blocks:          vp.dirty.Words(),
	}
	if vp.overlay != nil {
		f.Overlay = vp.overlay.Segments
	}
	return deep.MustCopy(f)
}

// BlockDirty reports whether block (col, row) was dirty when the frame was
// taken.
func (f *Frame) BlockDirty(col, row int) bool {
	if col < 0 || col >= f.BlocksPerRow || row < 0 || row >= f.BlocksPerColumn {
		return false
	}
	idx := row*f.BlocksPerRow + col
	return f.Blocks[idx/64]&(1<<(idx&63)) != 0
}
