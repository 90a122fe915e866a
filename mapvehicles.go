package viewport

import (
	"image"

	"github.com/gogpu/viewport/internal/bitmap"
)

// MapVehicleBuckets is the number of vehicle position buckets a map-mode
// draw pass can mark as visited.
const MapVehicleBuckets = 64 * 64

// mapVehicles remembers, for one draw pass in map mode, which vehicle
// position buckets were already drawn and which screen pixels hold a
// vehicle dot. Several vehicles on one pixel are drawn once.
type mapVehicles struct {
	done [MapVehicleBuckets / 64]uint64
	// pixels has one bit per screen pixel. It is allocated on first use.
	pixels *bitmap.Grid
}

func (c *mapVehicles) reset(width, height int) {
	c.done = [MapVehicleBuckets / 64]uint64{}
	if c.pixels == nil {
		return
	}
	if c.pixels.Cols() != width || c.pixels.Rows() != height {
		c.pixels = nil
		return
	}
	c.pixels.Clear()
}

// VisitMapBucket marks vehicle position bucket b as drawn in the current
// pass. It reports false when b was already visited or is out of range, in
// which case the vehicles in it must not be drawn again.
func (vp *ViewPort) VisitMapBucket(b int) bool {
	if b < 0 || b >= MapVehicleBuckets {
		return false
	}
	w, bit := &vp.mapVehicles.done[b/64], uint64(1)<<(b%64)
	if *w&bit != 0 {
		return false
	}
	*w |= bit
	return true
}

// PlotMapVehicle claims the screen pixel p for a vehicle dot. It reports
// false when the viewport is not in map mode, p lies outside it, or another
// vehicle was already plotted there in the current pass.
func (vp *ViewPort) PlotMapVehicle(p image.Point) bool {
	if !vp.InMapMode() || !vp.ContainsScreen(p) {
		return false
	}
	c := &vp.mapVehicles
	if c.pixels == nil {
		c.pixels = bitmap.New(vp.width, vp.height)
	}
	x, y := p.X-vp.left, p.Y-vp.top
	if c.pixels.Test(x, y) {
		return false
	}
	c.pixels.Set(x, y)
	return true
}

// MapVehicleCount returns the number of vehicle dots plotted in the current
// pass.
func (vp *ViewPort) MapVehicleCount() int {
	if vp.mapVehicles.pixels == nil {
		return 0
	}
	return vp.mapVehicles.pixels.Count()
}
