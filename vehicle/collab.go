package vehicle

import (
	"image"

	"github.com/gogpu/viewport"
	"github.com/gogpu/viewport/zoom"
)

// DirtyMarker invalidates screen areas. *viewport.Set implements it.
type DirtyMarker interface {
	MarkVirtualDirty(r image.Rectangle, maxZoom zoom.Level)
}

var _ DirtyMarker = (*viewport.Set)(nil)

// EngineCallbacks supplies engine properties that may be overridden by
// add-on content.
type EngineCallbacks interface {
	// BaseMaxSpeed returns the engine's built-in maximum speed in internal
	// units.
	BaseMaxSpeed(e EngineID) uint16
	// MaxSpeedOverride returns an overriding maximum speed in 8 mph units,
	// or 0 when there is none.
	MaxSpeedOverride(e EngineID) uint16
	// SpriteSize returns the sprite size of the engine heading west, in
	// virtual units.
	SpriteSize(e EngineID) (w, h int)
}

// Station is what aircraft need to know about an airport.
type Station struct {
	ID StationID
	// AirportTile is InvalidTile when the station has no airport.
	AirportTile TileIndex
	// EntryPoint and HeliEntryPoint are the movement positions at which
	// planes and helicopters join the airport's state machine.
	EntryPoint     uint8
	HeliEntryPoint uint8
}

// HasAirport reports whether the station has an airport.
func (s Station) HasAirport() bool { return s.AirportTile != InvalidTile }

// MapQuery answers questions about the map.
type MapQuery interface {
	// TileAt returns the tile containing world position (x, y).
	TileAt(x, y int) TileIndex
	// IsHangarTile reports whether t is an airport hangar.
	IsHangarTile(t TileIndex) bool
	// GroundHeight returns the ground height at world position (x, y).
	GroundHeight(x, y int) int
	// Station looks up a station.
	Station(id StationID) (Station, bool)
}

// FlatMap is a MapQuery for a flat map of uniform height. It is used by
// tests and the demo.
type FlatMap struct {
	// Width is the map width in tiles.
	Width    int
	Height   int // ground height everywhere
	Hangars  map[TileIndex]bool
	Stations map[StationID]Station
}

// TileAt implements MapQuery.
func (m *FlatMap) TileAt(x, y int) TileIndex {
	if x < 0 || y < 0 {
		return InvalidTile
	}
	return TileIndex(y/viewport.TileSize*m.Width + x/viewport.TileSize) //nolint:gosec // non-negative
}

// IsHangarTile implements MapQuery.
func (m *FlatMap) IsHangarTile(t TileIndex) bool { return m.Hangars[t] }

// GroundHeight implements MapQuery.
func (m *FlatMap) GroundHeight(int, int) int { return m.Height }

// Station implements MapQuery.
func (m *FlatMap) Station(id StationID) (Station, bool) {
	st, ok := m.Stations[id]
	return st, ok
}

// EngineInfo describes one engine for StaticEngines.
type EngineInfo struct {
	MaxSpeed      uint16
	SpeedOverride uint16
	SpriteW       int
	SpriteH       int
}

// StaticEngines is an EngineCallbacks backed by a fixed table.
type StaticEngines map[EngineID]EngineInfo

// BaseMaxSpeed implements EngineCallbacks.
func (s StaticEngines) BaseMaxSpeed(e EngineID) uint16 { return s[e].MaxSpeed }

// MaxSpeedOverride implements EngineCallbacks.
func (s StaticEngines) MaxSpeedOverride(e EngineID) uint16 { return s[e].SpeedOverride }

// SpriteSize implements EngineCallbacks.
func (s StaticEngines) SpriteSize(e EngineID) (w, h int) { return s[e].SpriteW, s[e].SpriteH }
