package viewport

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/viewport/zoom"
)

// InvariantError reports a viewport whose derived state disagrees with its
// screen size and zoom. It always indicates a programming error.
type InvariantError struct {
	Field string
	Got   int
	Want  int
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("viewport: invariant violated: %s = %d, want %d", e.Field, e.Got, e.Want)
}

// CheckInvariants verifies that the virtual size matches the screen size at
// the current zoom and that the dirty bitset matches the block geometry.
func (vp *ViewPort) CheckInvariants() error {
	if w := zoom.Scale(vp.width, vp.zoom); vp.virtualWidth != w {
		return &InvariantError{Field: "virtual_width", Got: vp.virtualWidth, Want: w}
	}
	if h := zoom.Scale(vp.height, vp.zoom); vp.virtualHeight != h {
		return &InvariantError{Field: "virtual_height", Got: vp.virtualHeight, Want: h}
	}
	if s := blockShift(vp.zoom); vp.blockShift != s {
		return &InvariantError{Field: "block_shift", Got: int(vp.blockShift), Want: int(s)}
	}
	cols, rows := blockGeometry(vp.width, vp.height, vp.leftMargin, vp.blockShift)
	if vp.dirty.Cols() != cols {
		return &InvariantError{Field: "dirty_blocks_per_row", Got: vp.dirty.Cols(), Want: cols}
	}
	if vp.dirty.Rows() != rows {
		return &InvariantError{Field: "dirty_blocks_per_column", Got: vp.dirty.Rows(), Want: rows}
	}
	if !vp.isDirty && !vp.dirty.IsEmpty() {
		return &InvariantError{Field: "dirty_blocks", Got: vp.dirty.Count(), Want: 0}
	}
	return nil
}

// verify runs after every mutation. Debug builds (tag viewport_debug) panic
// on a violation; release builds log it.
func (vp *ViewPort) verify() {
	err := vp.CheckInvariants()
	if err == nil {
		return
	}
	if debugInvariants {
		panic(err)
	}
	Logger().Warn("viewport invariant violated", slog.Any("err", err))
}
