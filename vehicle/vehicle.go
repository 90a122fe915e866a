package vehicle

import "image"

// TileIndex is the linear index of a map tile.
type TileIndex uint32

// InvalidTile marks a missing tile.
const InvalidTile TileIndex = 0xFFFFFFFF

// StationID identifies a station.
type StationID uint16

// InvalidStation marks a missing station.
const InvalidStation StationID = 0xFFFF

// EngineID identifies an engine type.
type EngineID uint16

// ID is a generation-checked handle into a Pool. The zero ID names nothing.
type ID struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether id is the zero handle.
func (id ID) IsZero() bool { return id == ID{} }

// Vehicle holds the state shared by every kind of vehicle.
type Vehicle struct {
	id   ID
	kind Kind

	Subtype uint8
	// X, Y and Z are the world position in world units.
	X, Y, Z    int
	Tile       TileIndex
	Direction  Direction
	Status     Status
	CurSpeed   uint16
	Engine     EngineID
	Passengers uint16

	// Sprite is the virtual rectangle the vehicle was last drawn in.
	Sprite image.Rectangle

	// Next is the following part of a multi-part vehicle.
	Next ID

	// Air is set for KindAircraft and nil otherwise.
	Air *Aircraft
}

// AircraftCache holds values that are expensive to look up.
type AircraftCache struct {
	// CachedMaxSpeed is the maximum speed in internal units.
	CachedMaxSpeed uint16
}

// Aircraft is the payload of an aircraft-kind vehicle.
type Aircraft struct {
	Cache AircraftCache

	// CrashedCounter times the crash animation.
	CrashedCounter uint16
	// Pos is the next airport movement position; PreviousPos the last one.
	Pos         uint8
	PreviousPos uint8
	// TargetAirport is the station the aircraft is heading for.
	TargetAirport StationID
	State         AirportState
	LastDirection Direction
	// NumberConsecutiveTurns stops an aircraft circling forever while
	// trying to reach a position.
	NumberConsecutiveTurns uint8
	// TurnCounter counts ticks between turns so that no turn exceeds 45°.
	TurnCounter uint8
}

// ID returns the vehicle's handle.
func (v *Vehicle) ID() ID { return v.id }

// Kind returns the variant tag.
func (v *Vehicle) Kind() Kind { return v.kind }

// AircraftSubType returns the subtype of an aircraft part.
func (v *Vehicle) AircraftSubType() AircraftSubType { return AircraftSubType(v.Subtype) }

// IsNormalAircraft reports whether v is a flying aircraft or helicopter
// rather than a shadow or rotor.
func (v *Vehicle) IsNormalAircraft() bool {
	return v.kind == KindAircraft && v.AircraftSubType() <= SubAircraft
}

// IsPrimary reports whether v is the head of a vehicle that players own and
// order around.
func (v *Vehicle) IsPrimary() bool {
	switch v.kind {
	case KindAircraft:
		return v.IsNormalAircraft()
	case KindRail, KindRoad, KindShip:
		return true
	default:
		return false
	}
}

// DisplaySpeed returns the current speed as shown to the player.
func (v *Vehicle) DisplaySpeed() int { return int(v.CurSpeed) }

// DisplayMaxSpeed returns the maximum speed as shown to the player.
func (v *Vehicle) DisplayMaxSpeed() int {
	if v.Air == nil {
		return 0
	}
	return int(v.Air.Cache.CachedMaxSpeed)
}

// SpeedOldUnits returns the maximum speed in the legacy 8 mph units.
func (v *Vehicle) SpeedOldUnits() int {
	return v.DisplayMaxSpeed() * 10 / 128
}

// IsInDepot reports whether v is parked inside a hangar.
func (v *Vehicle) IsInDepot(m MapQuery) bool {
	return v.kind == KindAircraft && v.Status.Has(StatusHidden) && m.IsHangarTile(v.Tile)
}

// ExpenseType returns the ledger category for v's running costs, or for its
// income when income is set.
func (v *Vehicle) ExpenseType(income bool) Expense {
	type pair struct{ run, inc Expense }
	var p pair
	switch v.kind {
	case KindRail:
		p = pair{ExpenseTrainRunning, ExpenseTrainIncome}
	case KindRoad:
		p = pair{ExpenseRoadRunning, ExpenseRoadIncome}
	case KindShip:
		p = pair{ExpenseShipRunning, ExpenseShipIncome}
	case KindAircraft:
		p = pair{ExpenseAircraftRunning, ExpenseAircraftIncome}
	default:
		return ExpenseOther
	}
	if income {
		return p.inc
	}
	return p.run
}
