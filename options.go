package viewport

import (
	"image"

	"github.com/gogpu/viewport/zoom"
)

// Option configures a ViewPort during creation.
//
// Example:
//
//	vp := viewport.New(0, 0, 800, 600, zoom.Normal,
//	    viewport.WithZoomRange(zoom.In2x, zoom.Out32x),
//	    viewport.WithVirtualOrigin(image.Pt(-4000, 1200)))
type Option func(*options)

type options struct {
	minZoom       zoom.Level
	maxZoom       zoom.Level
	mapType       MapType
	overlay       *Overlay
	virtualOrigin image.Point
}

func defaultOptions() options {
	return options{
		minZoom: zoom.Min,
		maxZoom: zoom.Max,
		mapType: MapVegetation,
	}
}

// WithZoomRange restricts the levels the viewport may zoom to.
// The bounds are swapped if given in the wrong order.
func WithZoomRange(lo, hi zoom.Level) Option {
	return func(o *options) {
		if lo > hi {
			lo, hi = hi, lo
		}
		o.minZoom = zoom.Clamp(lo, zoom.Min, zoom.Max)
		o.maxZoom = zoom.Clamp(hi, zoom.Min, zoom.Max)
	}
}

// WithMapType selects the map-mode rendering used at extreme zoom-out.
func WithMapType(t MapType) Option {
	return func(o *options) {
		o.mapType = t
	}
}

// WithOverlay attaches a shared overlay. The viewport acquires a reference.
func WithOverlay(ov *Overlay) Option {
	return func(o *options) {
		o.overlay = ov
	}
}

// WithVirtualOrigin sets the initial virtual coordinate of the top-left corner.
func WithVirtualOrigin(p image.Point) Option {
	return func(o *options) {
		o.virtualOrigin = p
	}
}
