package viewport

import (
	"image"

	"github.com/gogpu/viewport/zoom"
)

const (
	// TileSize is the number of world units along a tile edge.
	TileSize = 16

	// Base is the virtual-to-pixel factor at the normal zoom level.
	Base = 1 << zoom.Normal
)

// RemapCoords projects the world position (x, y, z) onto the isometric
// virtual plane.
func RemapCoords(x, y, z int) image.Point {
	return image.Pt((y-x)*2*Base, (x+y-z)*Base)
}

// InverseRemapCoords maps a virtual point back to the world position at
// height zero.
func InverseRemapCoords(vx, vy int) (x, y int) {
	const shift = 2 + zoom.Normal
	return (vy*2 - vx) >> shift, (vy*2 + vx) >> shift
}

// WorldBox returns the virtual rectangle covered by a sprite of the given
// virtual size whose anchor sits at world position (x, y, z). The anchor is
// the bottom centre of the sprite.
func WorldBox(x, y, z, w, h int) image.Rectangle {
	p := RemapCoords(x, y, z)
	return image.Rect(p.X-w/2, p.Y-h, p.X+(w+1)/2, p.Y)
}
