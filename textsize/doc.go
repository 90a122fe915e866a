// Package textsize measures the rendered width of short labels such as
// station and town names.
//
// Signs are drawn in one of two font tiers: [Normal] at close zoom levels
// and [Small] once the view is zoomed far out. A [Measurer] answers the
// width of a string in a given tier and the height of a line.
//
// Three measurers are provided:
//
//   - [Shaper] shapes text with HarfBuzz (go-text/typesetting), so kerning,
//     ligatures and complex scripts are measured as they will be drawn.
//   - [OpenType] sums glyph advances with golang.org/x/image/font/opentype.
//   - [Bitmap] uses fixed-size bitmap faces and never fails.
//
// Widths are requested every time a label changes. Wrap a measurer in
// [Cached] to keep recently measured strings in an LRU cache:
//
//	base, err := textsize.NewShaper(goregular.TTF, 12, 9)
//	if err != nil {
//	    return err
//	}
//	m, err := textsize.NewCached(base, 4096)
package textsize
