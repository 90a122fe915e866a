package viewport

import (
	"image"
	"log/slog"

	"github.com/gogpu/viewport/internal/bitmap"
	"github.com/gogpu/viewport/zoom"
)

// ZoomStateChange is a direction of zooming.
type ZoomStateChange uint8

const (
	// ZoomIn gets a more detailed view.
	ZoomIn ZoomStateChange = iota
	// ZoomOut gets a helicopter view.
	ZoomOut
	// ZoomNone changes nothing; callers use it to refresh zoom button state.
	ZoomNone
)

// ViewPort is a rectangular on-screen view into the world at a given
// position and zoom level.
//
// The screen rectangle is in window pixels. The virtual rectangle covers the
// same area in virtual coordinates, so VirtualWidth == Width << Zoom and
// VirtualHeight == Height << Zoom after every mutation.
//
// A ViewPort also tracks which blocks of its screen area need redrawing.
// ViewPort is not safe for concurrent use; all mutation happens on the
// simulation thread between ticks and draw passes.
type ViewPort struct {
	left, top     int
	width, height int

	virtualLeft, virtualTop     int
	virtualWidth, virtualHeight int

	zoom             zoom.Level
	minZoom, maxZoom zoom.Level
	mapType          MapType
	overlay          *Overlay

	// dirty has blocksPerRow columns and blocksPerColumn rows.
	dirty      *bitmap.Grid
	blockShift uint
	leftMargin int
	isDirty    bool
	isDrawn    bool

	mapVehicles mapVehicles
}

// New creates a viewport covering the screen rectangle (left, top, width,
// height) at level z. The whole viewport starts dirty.
func New(left, top, width, height int, z zoom.Level, opts ...Option) *ViewPort {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	vp := &ViewPort{
		left:        left,
		top:         top,
		width:       max(width, 0),
		height:      max(height, 0),
		virtualLeft: o.virtualOrigin.X,
		virtualTop:  o.virtualOrigin.Y,
		zoom:        zoom.Clamp(z, o.minZoom, o.maxZoom),
		minZoom:     o.minZoom,
		maxZoom:     o.maxZoom,
		mapType:     o.mapType,
	}
	if o.overlay != nil {
		vp.overlay = o.overlay.Acquire()
	}
	vp.updateVirtualSize()
	vp.updateDirtyBlocks()
	vp.verify()
	return vp
}

// Left returns the screen x coordinate of the left edge.
func (vp *ViewPort) Left() int { return vp.left }

// Top returns the screen y coordinate of the top edge.
func (vp *ViewPort) Top() int { return vp.top }

// Width returns the screen width in pixels.
func (vp *ViewPort) Width() int { return vp.width }

// Height returns the screen height in pixels.
func (vp *ViewPort) Height() int { return vp.height }

// VirtualLeft returns the virtual x coordinate of the left edge.
func (vp *ViewPort) VirtualLeft() int { return vp.virtualLeft }

// VirtualTop returns the virtual y coordinate of the top edge.
func (vp *ViewPort) VirtualTop() int { return vp.virtualTop }

// VirtualWidth returns Width << Zoom.
func (vp *ViewPort) VirtualWidth() int { return vp.virtualWidth }

// VirtualHeight returns Height << Zoom.
func (vp *ViewPort) VirtualHeight() int { return vp.virtualHeight }

// ZoomLevel returns the current zoom level.
func (vp *ViewPort) ZoomLevel() zoom.Level { return vp.zoom }

// ZoomRange returns the levels this viewport may zoom between.
func (vp *ViewPort) ZoomRange() (lo, hi zoom.Level) { return vp.minZoom, vp.maxZoom }

// ScreenRect returns the screen rectangle.
func (vp *ViewPort) ScreenRect() image.Rectangle {
	return image.Rect(vp.left, vp.top, vp.left+vp.width, vp.top+vp.height)
}

// VirtualRect returns the virtual rectangle.
func (vp *ViewPort) VirtualRect() image.Rectangle {
	return image.Rect(vp.virtualLeft, vp.virtualTop,
		vp.virtualLeft+vp.virtualWidth, vp.virtualTop+vp.virtualHeight)
}

// SetPositionSize moves and resizes the viewport on screen. The virtual
// top-left corner stays where it is; the virtual size follows the new screen
// size. Negative sizes are treated as zero. Any change leaves the whole
// viewport dirty, since its pixels now land elsewhere on screen.
func (vp *ViewPort) SetPositionSize(left, top, width, height int) {
	width, height = max(width, 0), max(height, 0)
	if left == vp.left && top == vp.top && width == vp.width && height == vp.height {
		return
	}
	vp.left = left
	vp.top = top
	vp.width = width
	vp.height = height
	vp.updateVirtualSize()
	vp.updateDirtyBlocks()
	vp.markAll()
	vp.verify()
}

// CanZoomIn reports whether a ZoomIn would change the level.
func (vp *ViewPort) CanZoomIn() bool { return vp.zoom > vp.minZoom }

// CanZoomOut reports whether a ZoomOut would change the level.
func (vp *ViewPort) CanZoomOut() bool { return vp.zoom < vp.maxZoom }

// Zoom changes the zoom level by one step, keeping the virtual point at the
// centre of the viewport fixed. It reports whether the level changed.
//
// ZoomNone mutates nothing. It reports whether zooming in either direction
// is possible, which is what zoom button state depends on.
func (vp *ViewPort) Zoom(dir ZoomStateChange) bool {
	return vp.ZoomAt(dir, image.Pt(vp.left+vp.width/2, vp.top+vp.height/2))
}

// ZoomAt is Zoom with the fixed point at the given screen position, so that
// the virtual point under the cursor stays under the cursor.
func (vp *ViewPort) ZoomAt(dir ZoomStateChange, anchor image.Point) bool {
	switch dir {
	case ZoomIn:
		if !vp.CanZoomIn() {
			return false
		}
		vp.setZoom(vp.zoom.In(), anchor)
		return true
	case ZoomOut:
		if !vp.CanZoomOut() {
			return false
		}
		vp.setZoom(vp.zoom.Out(), anchor)
		return true
	case ZoomNone:
		return vp.CanZoomIn() || vp.CanZoomOut()
	default:
		return false
	}
}

// SetZoom jumps to level z, clamped to the allowed range, keeping the centre
// fixed. It reports whether the level changed.
func (vp *ViewPort) SetZoom(z zoom.Level) bool {
	z = zoom.Clamp(z, vp.minZoom, vp.maxZoom)
	if z == vp.zoom {
		return false
	}
	vp.setZoom(z, image.Pt(vp.left+vp.width/2, vp.top+vp.height/2))
	return true
}

func (vp *ViewPort) setZoom(z zoom.Level, anchor image.Point) {
	ax := anchor.X - vp.left
	ay := anchor.Y - vp.top
	// Virtual point under the anchor before and after must coincide.
	vx := vp.virtualLeft + zoom.Scale(ax, vp.zoom)
	vy := vp.virtualTop + zoom.Scale(ay, vp.zoom)

	old := vp.zoom
	vp.zoom = z
	vp.virtualLeft = vx - zoom.Scale(ax, z)
	vp.virtualTop = vy - zoom.Scale(ay, z)
	vp.updateVirtualSize()
	vp.updateDirtyBlocks()
	vp.markAll()
	vp.verify()

	Logger().Debug("viewport zoom changed",
		slog.String("from", old.String()),
		slog.String("to", z.String()))
}

// ScrollTo sets the virtual coordinate of the top-left corner. Everything
// on screen moves, so the whole viewport becomes dirty.
func (vp *ViewPort) ScrollTo(vx, vy int) {
	if vx == vp.virtualLeft && vy == vp.virtualTop {
		return
	}
	vp.virtualLeft = vx
	vp.virtualTop = vy
	vp.updateDirtyBlocks()
	vp.markAll()
	vp.verify()
}

// ScrollBy scrolls by a distance in screen pixels.
func (vp *ViewPort) ScrollBy(dx, dy int) {
	vp.ScrollTo(vp.virtualLeft+zoom.Scale(dx, vp.zoom), vp.virtualTop+zoom.Scale(dy, vp.zoom))
}

// CenterOn scrolls so that the virtual point (vx, vy) is in the centre.
func (vp *ViewPort) CenterOn(vx, vy int) {
	vp.ScrollTo(vx-vp.virtualWidth/2, vy-vp.virtualHeight/2)
}

// ScreenToVirtual converts a screen position into virtual coordinates.
func (vp *ViewPort) ScreenToVirtual(p image.Point) image.Point {
	return image.Pt(
		zoom.Scale(p.X-vp.left, vp.zoom)+vp.virtualLeft,
		zoom.Scale(p.Y-vp.top, vp.zoom)+vp.virtualTop,
	)
}

// VirtualToScreen converts virtual coordinates into a screen position.
// The result may lie outside the viewport.
func (vp *ViewPort) VirtualToScreen(p image.Point) image.Point {
	return image.Pt(
		zoom.Unscale(p.X-vp.virtualLeft, vp.zoom)+vp.left,
		zoom.Unscale(p.Y-vp.virtualTop, vp.zoom)+vp.top,
	)
}

// ContainsScreen reports whether the screen position lies inside the viewport.
func (vp *ViewPort) ContainsScreen(p image.Point) bool {
	return p.In(vp.ScreenRect())
}

// ScreenToWorld converts a screen position into world coordinates. height,
// if non-nil, returns the ground height at a world position and is used to
// refine the answer over sloped terrain. ok is false when p lies outside the
// viewport.
func (vp *ViewPort) ScreenToWorld(p image.Point, height func(x, y int) int) (x, y int, ok bool) {
	if !vp.ContainsScreen(p) {
		return 0, 0, false
	}
	v := vp.ScreenToVirtual(p)
	x, y = InverseRemapCoords(v.X, v.Y)
	if height == nil {
		return x, y, true
	}
	for range heightIterations {
		z := height(x, y)
		x, y = InverseRemapCoords(v.X, v.Y+z*Base)
	}
	return x, y, true
}

// heightIterations is enough for the refinement to settle on slopes of at
// most one height level per tile.
const heightIterations = 5

// MapType returns the map-mode rendering type.
func (vp *ViewPort) MapType() MapType { return vp.mapType }

// SetMapType changes the map-mode rendering type. In map mode the whole
// viewport becomes dirty.
func (vp *ViewPort) SetMapType(t MapType) {
	if t == vp.mapType || !t.Valid() {
		return
	}
	vp.mapType = t
	if vp.InMapMode() {
		vp.markAll()
	}
}

// InMapMode reports whether the viewport is drawn in map mode.
func (vp *ViewPort) InMapMode() bool { return zoom.IsMapMode(vp.zoom) }

// Overlay returns the attached shared overlay, or nil.
func (vp *ViewPort) Overlay() *Overlay { return vp.overlay }

// SetOverlay attaches ov (which may be nil), releasing the previous overlay.
func (vp *ViewPort) SetOverlay(ov *Overlay) {
	if ov == vp.overlay {
		return
	}
	if ov != nil {
		ov.Acquire()
	}
	if vp.overlay != nil {
		vp.overlay.Release()
	}
	vp.overlay = ov
	vp.markAll()
}

// Close releases resources held by the viewport. It must be called when
// the window showing the viewport closes.
func (vp *ViewPort) Close() {
	if vp.overlay != nil {
		vp.overlay.Release()
		vp.overlay = nil
	}
}

func (vp *ViewPort) updateVirtualSize() {
	vp.virtualWidth = zoom.Scale(vp.width, vp.zoom)
	vp.virtualHeight = zoom.Scale(vp.height, vp.zoom)
}
