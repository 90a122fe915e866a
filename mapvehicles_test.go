package viewport

import (
	"image"
	"testing"

	"github.com/gogpu/viewport/zoom"
)

func TestPlotMapVehicle(t *testing.T) {
	vp := New(10, 20, 100, 50, zoom.DrawMap)
	p := image.Pt(40, 30)

	if !vp.PlotMapVehicle(p) {
		t.Fatal("first vehicle on a pixel not plotted")
	}
	if vp.PlotMapVehicle(p) {
		t.Error("second vehicle on the same pixel plotted")
	}
	if !vp.PlotMapVehicle(p.Add(image.Pt(1, 0))) {
		t.Error("neighbouring pixel refused")
	}
	if vp.MapVehicleCount() != 2 {
		t.Errorf("MapVehicleCount() = %d, want 2", vp.MapVehicleCount())
	}

	tests := []struct {
		name string
		p    image.Point
	}{
		{"left of viewport", image.Pt(9, 30)},
		{"below viewport", image.Pt(40, 70)},
	}
	for _, tt := range tests {
		if vp.PlotMapVehicle(tt.p) {
			t.Errorf("%s: plotted", tt.name)
		}
	}
}

func TestPlotMapVehicle_NotMapMode(t *testing.T) {
	vp := New(0, 0, 100, 50, zoom.Normal)
	if vp.PlotMapVehicle(image.Pt(5, 5)) {
		t.Error("plotted a dot outside map mode")
	}
	if vp.MapVehicleCount() != 0 {
		t.Errorf("MapVehicleCount() = %d", vp.MapVehicleCount())
	}
}

func TestVisitMapBucket(t *testing.T) {
	vp := New(0, 0, 100, 50, zoom.DrawMap)
	for _, b := range []int{0, 63, 64, MapVehicleBuckets - 1} {
		if !vp.VisitMapBucket(b) {
			t.Errorf("bucket %d: first visit refused", b)
		}
		if vp.VisitMapBucket(b) {
			t.Errorf("bucket %d: visited twice", b)
		}
	}
	if vp.VisitMapBucket(-1) || vp.VisitMapBucket(MapVehicleBuckets) {
		t.Error("out-of-range bucket accepted")
	}
}

func TestMapVehicles_Reset(t *testing.T) {
	tests := []struct {
		name   string
		change func(vp *ViewPort)
	}{
		{"ClearDirty", func(vp *ViewPort) { vp.ClearDirty() }},
		{"scroll", func(vp *ViewPort) { vp.ScrollBy(16, 0) }},
		{"resize", func(vp *ViewPort) { vp.SetPositionSize(0, 0, 120, 60) }},
		{"MarkAllDirty", func(vp *ViewPort) { vp.MarkAllDirty() }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			vp := New(0, 0, 100, 50, zoom.DrawMap)
			p := image.Pt(7, 7)
			vp.PlotMapVehicle(p)
			vp.VisitMapBucket(3)

			tt.change(vp)

			if vp.MapVehicleCount() != 0 {
				t.Errorf("MapVehicleCount() = %d after reset", vp.MapVehicleCount())
			}
			if !vp.PlotMapVehicle(p) {
				t.Error("pixel still taken after reset")
			}
			if !vp.VisitMapBucket(3) {
				t.Error("bucket still visited after reset")
			}
		})
	}
}
