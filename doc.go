// Package viewport maps an infinite scrollable world onto screen viewports
// and tracks which parts of each viewport need redrawing.
//
// # Overview
//
// A [ViewPort] is a rectangular view into the world at a discrete zoom level
// (see package zoom). Three coordinate spaces are involved:
//
//   - World: isometric tile space, 16 units per tile edge, plus height.
//   - Virtual: the world projected onto the screen plane at the most
//     zoomed-in level ([RemapCoords]).
//   - Screen: window pixels. A screen distance is the virtual distance
//     shifted right by the zoom level.
//
// # Dirty blocks
//
// Each viewport partitions its screen area into square blocks whose size
// depends on the zoom level, and keeps one dirty bit per block. Anything that
// changes pixels marks an area dirty:
//
//	set := viewport.NewSet()
//	main := viewport.New(0, 0, 1280, 720, zoom.Normal)
//	set.Add(main)
//
//	// A vehicle moved: invalidate its old and new sprite boxes.
//	set.MarkWorldDirty(oldX, oldY, oldZ, spriteW, spriteH)
//	set.MarkWorldDirty(newX, newY, newZ, spriteW, spriteH)
//
// The draw pass visits the dirty area and then clears it:
//
//	for _, r := range main.DirtyRects() {
//	    redraw(r)
//	}
//	main.MarkDrawn()
//	main.ClearDirty()
//
// # Threading
//
// Viewports are single-threaded: all mutation happens on the simulation
// thread between ticks and draw passes. [ViewPort.Snapshot] produces an
// independent copy for a renderer running elsewhere. An [Overlay] may be
// shared by several viewports and is reference counted.
package viewport
