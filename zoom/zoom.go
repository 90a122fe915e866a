// Package zoom defines the discrete zoom levels of a world view and the
// bit-shift relationship between virtual and screen coordinates.
//
// Virtual coordinates are world coordinates projected at the most zoomed-in
// level. A screen distance at level z equals the virtual distance shifted
// right by z bits.
package zoom

import (
	"fmt"
	"slices"
)

// Level is a discrete magnification step. Higher levels are further out.
type Level uint8

// Zoom levels, from most zoomed in to most zoomed out.
const (
	In4x Level = iota
	In2x
	Normal
	Out2x
	Out4x
	Out8x
	Out16x
	Out32x
	Out64x
	Out128x

	// Count is the number of zoom levels.
	Count = int(Out128x) + 1

	// Min is the most zoomed-in level.
	Min = In4x
	// Max is the most zoomed-out level.
	Max = Out128x
)

// Thresholds that switch rendering and invalidation policies.
const (
	// VeryZoomedOut is the first level at which dirty blocks stop shrinking
	// with the zoom and stay at 16 screen pixels.
	VeryZoomedOut = Out8x

	// DrawMap is the first level drawn in map mode (one colour per tile)
	// instead of with sprites.
	DrawMap = Out32x

	// SmallSigns is the first level at which signs use the small font.
	SmallSigns = Out16x
)

var levelNames = [Count]string{
	"in4x", "in2x", "normal", "out2x", "out4x",
	"out8x", "out16x", "out32x", "out64x", "out128x",
}

// String returns a short name for the level.
func (z Level) String() string {
	if !z.Valid() {
		return fmt.Sprintf("zoom(%d)", uint8(z))
	}
	return levelNames[z]
}

// Valid reports whether z is one of the defined levels.
func (z Level) Valid() bool {
	return z <= Max
}

// Parse returns the level named s, as printed by String.
func Parse(s string) (Level, error) {
	i := slices.Index(levelNames[:], s)
	if i < 0 {
		return 0, fmt.Errorf("zoom: unknown level %q", s)
	}
	return Level(i), nil
}

// MarshalText implements encoding.TextMarshaler.
func (z Level) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, fmt.Errorf("zoom: invalid level %d", uint8(z))
	}
	return []byte(levelNames[z]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Level) UnmarshalText(b []byte) error {
	l, err := Parse(string(b))
	if err != nil {
		return err
	}
	*z = l
	return nil
}

// In returns the next level towards Min, or z itself at Min.
func (z Level) In() Level {
	if z == Min {
		return z
	}
	return z - 1
}

// Out returns the next level towards Max, or z itself at Max.
func (z Level) Out() Level {
	if z >= Max {
		return Max
	}
	return z + 1
}

// Shift returns the number of bits a virtual distance is shifted right by to
// obtain a screen distance at level z.
func Shift(z Level) uint {
	return uint(z)
}

// Scale converts a screen distance at level z into a virtual distance.
func Scale(v int, z Level) int {
	return v << Shift(z)
}

// Unscale converts a virtual distance into a screen distance at level z,
// rounding towards negative infinity.
func Unscale(v int, z Level) int {
	return v >> Shift(z)
}

// UnscaleCeil converts a virtual distance into a screen distance at level z,
// rounding towards positive infinity. Use it for right and bottom edges.
func UnscaleCeil(v int, z Level) int {
	s := Shift(z)
	return (v + (1 << s) - 1) >> s
}

// Clamp restricts z to the closed range [lo, hi].
func Clamp(z, lo, hi Level) Level {
	if z < lo {
		return lo
	}
	if z > hi {
		return hi
	}
	return z
}

// IsMapMode reports whether level z is drawn in map mode.
func IsMapMode(z Level) bool {
	return z >= DrawMap
}
