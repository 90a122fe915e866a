// Package sign caches the on-screen extent of text labels such as station
// and town names.
//
// A [Sign] remembers where its label was last placed and how wide it
// measured in the normal and the small font. From that it derives the
// virtual rectangle the label covers at any zoom level, which is what gets
// marked dirty when the label moves or changes and what hit testing checks.
//
// A [Board] owns a set of signs together with the text measurer, the live
// viewports and a 2-d tree of the anchor points of tracked signs.
package sign
