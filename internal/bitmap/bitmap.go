// Package bitmap provides a word-packed two-dimensional bit grid.
package bitmap

import "math/bits"

// Grid is a fixed-size grid of bits addressed by column and row.
//
// The bitmap uses one bit per cell, packed into uint64 words (64 cells per
// word). Bit index = row * cols + col.
//
// Grid is not safe for concurrent use.
type Grid struct {
	words []uint64
	cols  int
	rows  int
}

// New creates a grid with all bits clear. Non-positive dimensions produce an
// empty grid on which every operation is a no-op.
func New(cols, rows int) *Grid {
	if cols <= 0 || rows <= 0 {
		return &Grid{}
	}
	return &Grid{
		words: make([]uint64, (cols*rows+63)/64),
		cols:  cols,
		rows:  rows,
	}
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Len returns the number of cells.
func (g *Grid) Len() int { return g.cols * g.rows }

// Set sets the bit at (col, row). Out-of-range cells are ignored.
func (g *Grid) Set(col, row int) {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return
	}
	idx := row*g.cols + col
	g.words[idx/64] |= 1 << (idx & 63)
}

// Test reports whether the bit at (col, row) is set. Out-of-range cells
// report false.
func (g *Grid) Test(col, row int) bool {
	if col < 0 || col >= g.cols || row < 0 || row >= g.rows {
		return false
	}
	idx := row*g.cols + col
	return g.words[idx/64]&(1<<(idx&63)) != 0
}

// SetRect sets every bit in the inclusive cell range [c0, c1] x [r0, r1],
// clamped to the grid. It reports whether any cell was inside the grid.
func (g *Grid) SetRect(c0, r0, c1, r1 int) bool {
	c0 = max(c0, 0)
	r0 = max(r0, 0)
	c1 = min(c1, g.cols-1)
	r1 = min(r1, g.rows-1)
	if c0 > c1 || r0 > r1 {
		return false
	}
	for row := r0; row <= r1; row++ {
		base := row * g.cols
		for idx := base + c0; idx <= base+c1; {
			bit := idx & 63
			// Fill as much of the current word as the run allows.
			n := min(64-bit, base+c1-idx+1)
			var mask uint64
			if n == 64 {
				mask = ^uint64(0)
			} else {
				mask = ((uint64(1) << n) - 1) << bit
			}
			g.words[idx/64] |= mask
			idx += n
		}
	}
	return true
}

// SetAll sets every bit.
func (g *Grid) SetAll() {
	total := g.Len()
	full := total / 64
	for i := 0; i < full; i++ {
		g.words[i] = ^uint64(0)
	}
	if rem := total % 64; rem > 0 {
		g.words[full] = (uint64(1) << rem) - 1
	}
}

// Clear clears every bit.
func (g *Grid) Clear() {
	clear(g.words)
}

// IsEmpty reports whether no bit is set.
func (g *Grid) IsEmpty() bool {
	for _, w := range g.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of set bits.
func (g *Grid) Count() int {
	n := 0
	for _, w := range g.words {
		n += bits.OnesCount64(w)
	}
	return n
}

// ForEach calls fn for each set bit in row-major order.
func (g *Grid) ForEach(fn func(col, row int)) {
	if fn == nil {
		return
	}
	total := g.Len()
	for wi, w := range g.words {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			idx := wi*64 + b
			if idx >= total {
				break
			}
			fn(idx%g.cols, idx/g.cols)
			w &^= 1 << b
		}
	}
}

// ForEachRun calls fn for each maximal horizontal run of set bits in row,
// passing the inclusive column range. Runs are reported left to right.
func (g *Grid) ForEachRun(row int, fn func(c0, c1 int)) {
	if row < 0 || row >= g.rows || fn == nil {
		return
	}
	start := -1
	for col := 0; col < g.cols; col++ {
		if g.Test(col, row) {
			if start < 0 {
				start = col
			}
			continue
		}
		if start >= 0 {
			fn(start, col-1)
			start = -1
		}
	}
	if start >= 0 {
		fn(start, g.cols-1)
	}
}

// Words returns the backing words. The slice aliases the grid and must not
// be modified.
func (g *Grid) Words() []uint64 {
	return g.words
}
