package vehicle

import (
	"fmt"
	"slices"
	"strings"
)

// Kind is the variant tag of a vehicle.
type Kind uint8

const (
	KindRail Kind = iota
	KindRoad
	KindShip
	KindAircraft
	KindEffect
	KindDisaster
)

var kindNames = [...]string{"Rail", "Road", "Ship", "Aircraft", "Effect", "Disaster"}

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Direction is one of the eight compass directions, clockwise from north.
type Direction uint8

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

var directionNames = [...]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// String returns the compass abbreviation.
func (d Direction) String() string {
	if int(d) < len(directionNames) {
		return directionNames[d]
	}
	return fmt.Sprintf("Direction(%d)", uint8(d))
}

// UnmarshalText implements encoding.TextUnmarshaler for compass
// abbreviations.
func (d *Direction) UnmarshalText(b []byte) error {
	i := slices.Index(directionNames[:], string(b))
	if i < 0 {
		return fmt.Errorf("vehicle: unknown direction %q", b)
	}
	*d = Direction(i) //nolint:gosec // index of an 8-entry table
	return nil
}

// Status holds vehicle status bits.
type Status uint8

const (
	StatusHidden         Status = 0x01 // not drawn, e.g. inside a depot
	StatusStopped        Status = 0x02
	StatusUnclickable    Status = 0x04
	StatusDefaultPalette Status = 0x08
	StatusTrainSlowing   Status = 0x10
	StatusShadow         Status = 0x20 // drawn as a shadow
	StatusAircraftBroken Status = 0x40
	StatusCrashed        Status = 0x80
)

var statusNames = []struct {
	s    Status
	name string
}{
	{StatusHidden, "Hidden"},
	{StatusStopped, "Stopped"},
	{StatusUnclickable, "Unclickable"},
	{StatusDefaultPalette, "DefaultPalette"},
	{StatusTrainSlowing, "TrainSlowing"},
	{StatusShadow, "Shadow"},
	{StatusAircraftBroken, "AircraftBroken"},
	{StatusCrashed, "Crashed"},
}

// Has reports whether every bit of f is set.
func (s Status) Has(f Status) bool { return s&f == f }

// String lists the set bits joined by "|".
func (s Status) String() string {
	if s == 0 {
		return "0"
	}
	var parts []string
	for _, n := range statusNames {
		if s.Has(n.s) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// Expense is the ledger category a cost or income is booked under.
type Expense uint8

const (
	ExpenseConstruction Expense = iota
	ExpenseNewVehicles
	ExpenseTrainRunning
	ExpenseRoadRunning
	ExpenseAircraftRunning
	ExpenseShipRunning
	ExpenseProperty
	ExpenseTrainIncome
	ExpenseRoadIncome
	ExpenseAircraftIncome
	ExpenseShipIncome
	ExpenseLoanInterest
	ExpenseOther
)

// AircraftSubType distinguishes the parts of an aircraft chain.
type AircraftSubType uint8

const (
	SubHelicopter AircraftSubType = 0
	SubAircraft   AircraftSubType = 2
	SubShadow     AircraftSubType = 4
	SubRotor      AircraftSubType = 6
)

// String returns the subtype name.
func (s AircraftSubType) String() string {
	switch s {
	case SubHelicopter:
		return "Helicopter"
	case SubAircraft:
		return "Aircraft"
	case SubShadow:
		return "Shadow"
	case SubRotor:
		return "Rotor"
	default:
		return fmt.Sprintf("AircraftSubType(%d)", uint8(s))
	}
}

// AirportState is the position of an aircraft in its airport's movement
// state machine.
type AirportState uint8

const (
	StateToAll AirportState = iota
	StateHangar
	StateTerm1
	StateTerm2
	StateTerm3
	StateTerm4
	StateTerm5
	StateTerm6
	StateHelipad1
	StateHelipad2
	StateTakeoff
	StateStartTakeoff
	StateEndTakeoff
	StateHeliTakeoff
	StateFlying
	StateLanding
	StateEndLanding
	StateHeliLanding
	StateHeliEndLanding
)
