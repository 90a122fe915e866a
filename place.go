package viewport

import (
	"fmt"
	"strings"
)

// DragMode is the shape of the area highlighted while placing objects.
type DragMode uint8

const (
	DragXOrY         DragMode = iota // drag in X or Y direction
	DragFixX                         // drag only along the X axis
	DragFixY                         // drag only along the Y axis
	DragXAndY                        // area of land in X and Y directions
	DragXAndYLimited                 // area of land of limited size
	DragFixHorizontal                // drag only horizontally on screen
	DragFixVertical                  // drag only vertically on screen
	DragXLimited                     // X axis only, limited size
	DragYLimited                     // Y axis only, limited size
	DragABLine                       // line from tile A to tile B
)

// PlaceFlags modify a placement. Combine them with Union rather than
// arithmetic on the mode.
type PlaceFlags uint8

const (
	// PlaceRailDirs allows all rail directions.
	PlaceRailDirs PlaceFlags = 0x40
	// PlaceSignalDirs is like PlaceRailDirs with a signal cursor.
	PlaceSignalDirs PlaceFlags = 0x80
)

// Union returns the flags set in f or g.
func (f PlaceFlags) Union(g PlaceFlags) PlaceFlags { return f | g }

// Intersect returns the flags set in both f and g.
func (f PlaceFlags) Intersect(g PlaceFlags) PlaceFlags { return f & g }

// Without returns f with the flags in g cleared.
func (f PlaceFlags) Without(g PlaceFlags) PlaceFlags { return f &^ g }

// Has reports whether every flag in g is set in f.
func (f PlaceFlags) Has(g PlaceFlags) bool { return f&g == g }

// String lists the set flags, joined by "|".
func (f PlaceFlags) String() string {
	if f == 0 {
		return "0"
	}
	var parts []string
	if f.Has(PlaceRailDirs) {
		parts = append(parts, "RailDirs")
	}
	if f.Has(PlaceSignalDirs) {
		parts = append(parts, "SignalDirs")
	}
	if rest := f.Without(PlaceRailDirs | PlaceSignalDirs); rest != 0 {
		parts = append(parts, fmt.Sprintf("0x%02X", uint8(rest)))
	}
	return strings.Join(parts, "|")
}

// PlaceMethod describes how the current placement tool highlights and
// selects tiles.
type PlaceMethod struct {
	Mode  DragMode
	Flags PlaceFlags
}

// DragDropProcess is what to do with an area once it has been selected.
type DragDropProcess uint8

const (
	DDSPDemolishArea DragDropProcess = iota
	DDSPRaiseAndLevelArea
	DDSPLowerAndLevelArea
	DDSPLevelArea
	DDSPCreateDesert
	DDSPCreateRocks
	DDSPCreateWater
	DDSPCreateRiver
	DDSPPlantTrees
	DDSPBuildBridge
	DDSPMeasure
	DDSPDrawPlanLine
	DDSPBuyLand

	DDSPPlaceRail
	DDSPBuildSignals
	DDSPBuildStation
	DDSPRemoveStation
	DDSPConvertRail

	DDSPPlaceRoadXDir
	DDSPPlaceRoadYDir
	DDSPPlaceAutoRoad
	DDSPBuildBusStop
	DDSPBuildTruckStop
	DDSPRemoveBusStop
	DDSPRemoveTruckStop
	DDSPConvertRoad
)

var dragDropNames = [...]string{
	"DemolishArea", "RaiseAndLevelArea", "LowerAndLevelArea", "LevelArea",
	"CreateDesert", "CreateRocks", "CreateWater", "CreateRiver", "PlantTrees",
	"BuildBridge", "Measure", "DrawPlanLine", "BuyLand",
	"PlaceRail", "BuildSignals", "BuildStation", "RemoveStation", "ConvertRail",
	"PlaceRoadXDir", "PlaceRoadYDir", "PlaceAutoRoad", "BuildBusStop",
	"BuildTruckStop", "RemoveBusStop", "RemoveTruckStop", "ConvertRoad",
}

// String returns the process name.
func (p DragDropProcess) String() string {
	if int(p) < len(dragDropNames) {
		return dragDropNames[p]
	}
	return "Unknown"
}

// IsRail reports whether the process belongs to the rail toolbar.
func (p DragDropProcess) IsRail() bool { return p >= DDSPPlaceRail && p <= DDSPConvertRail }

// IsRoad reports whether the process belongs to the road toolbar.
func (p DragDropProcess) IsRoad() bool { return p >= DDSPPlaceRoadXDir && p <= DDSPConvertRoad }

// ScrollTarget selects whose viewports a scripted scroll applies to.
type ScrollTarget uint8

const (
	// ScrollEveryone scrolls every player's main viewport.
	ScrollEveryone ScrollTarget = iota
	// ScrollCompany scrolls all players of one company.
	ScrollCompany
	// ScrollClient scrolls a single player.
	ScrollClient
)

// String returns the target name.
func (t ScrollTarget) String() string {
	switch t {
	case ScrollEveryone:
		return "Everyone"
	case ScrollCompany:
		return "Company"
	case ScrollClient:
		return "Client"
	default:
		return "Unknown"
	}
}

// FoundationPart identifies which part of a multi-part foundation is drawn.
type FoundationPart uint8

const (
	FoundationPartNormal   FoundationPart = 0    // normal foundation or none
	FoundationPartHalftile FoundationPart = 1    // halftile foundation
	FoundationPartNone     FoundationPart = 0xFF // nothing drawn yet
)

// Bounding box heights. Below a bridge, z 0..5 holds everything that fits
// under a low bridge and z 7 separates the bridge from what is beneath.
const (
	BBHeightUnderBridge = 6
	BBZSeparator        = 7
)
