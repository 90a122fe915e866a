package viewport

import "testing"

func TestPlaceFlags(t *testing.T) {
	f := PlaceRailDirs.Union(PlaceSignalDirs)
	if !f.Has(PlaceRailDirs) || !f.Has(PlaceSignalDirs) {
		t.Errorf("Union lost a flag: %v", f)
	}
	if got := f.Without(PlaceRailDirs); got != PlaceSignalDirs {
		t.Errorf("Without = %v, want SignalDirs", got)
	}
	if got := f.Intersect(PlaceRailDirs); got != PlaceRailDirs {
		t.Errorf("Intersect = %v, want RailDirs", got)
	}
	if PlaceFlags(0).Has(PlaceRailDirs) {
		t.Error("empty flags report RailDirs")
	}

	tests := []struct {
		f    PlaceFlags
		want string
	}{
		{0, "0"},
		{PlaceRailDirs, "RailDirs"},
		{PlaceRailDirs | PlaceSignalDirs, "RailDirs|SignalDirs"},
		{PlaceSignalDirs | 0x01, "SignalDirs|0x01"},
	}
	for _, tt := range tests {
		if got := tt.f.String(); got != tt.want {
			t.Errorf("PlaceFlags(%#x).String() = %q, want %q", uint8(tt.f), got, tt.want)
		}
	}
}

func TestDragDropProcess(t *testing.T) {
	tests := []struct {
		p          DragDropProcess
		name       string
		rail, road bool
	}{
		{DDSPDemolishArea, "DemolishArea", false, false},
		{DDSPBuyLand, "BuyLand", false, false},
		{DDSPPlaceRail, "PlaceRail", true, false},
		{DDSPConvertRail, "ConvertRail", true, false},
		{DDSPPlaceRoadXDir, "PlaceRoadXDir", false, true},
		{DDSPConvertRoad, "ConvertRoad", false, true},
		{DragDropProcess(200), "Unknown", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if tt.p.IsRail() != tt.rail || tt.p.IsRoad() != tt.road {
				t.Errorf("IsRail/IsRoad = %v/%v, want %v/%v", tt.p.IsRail(), tt.p.IsRoad(), tt.rail, tt.road)
			}
		})
	}

	if len(dragDropNames) != int(DDSPConvertRoad)+1 {
		t.Errorf("%d names for %d processes", len(dragDropNames), DDSPConvertRoad+1)
	}
}

func TestScrollTargetString(t *testing.T) {
	tests := map[ScrollTarget]string{
		ScrollEveryone:  "Everyone",
		ScrollCompany:   "Company",
		ScrollClient:    "Client",
		ScrollTarget(9): "Unknown",
	}
	for st, want := range tests {
		if got := st.String(); got != want {
			t.Errorf("ScrollTarget(%d).String() = %q, want %q", uint8(st), got, want)
		}
	}
}

func TestBoundingBoxHeights(t *testing.T) {
	if BBHeightUnderBridge >= BBZSeparator {
		t.Errorf("under-bridge height %d must be below the separator %d", BBHeightUnderBridge, BBZSeparator)
	}
	if FoundationPartNone == FoundationPartNormal || FoundationPartNone == FoundationPartHalftile {
		t.Error("FoundationPartNone collides with a real part")
	}
}
