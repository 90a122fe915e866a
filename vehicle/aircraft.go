package vehicle

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/viewport"
)

// Flight altitudes in world height units.
const (
	// PlaneHoldingAltitude is the lowest altitude planes fly at.
	PlaneHoldingAltitude = 150
	// HeliFlightAltitude is the normal altitude of helicopters.
	HeliFlightAltitude = 184

	// eastboundSeparation lifts planes heading N to SE above the others.
	eastboundSeparation = 10
	// rotorZOffset puts the rotor on top of the helicopter body.
	rotorZOffset = 5
	// rotorIdleSpeed is the rotor speed of a helicopter leaving its hangar.
	rotorIdleSpeed = 80
	// pilots are lost in every aircraft crash on top of the passengers.
	pilots = 2
	// floodedCrashCounter makes a flooded wreck disappear quickly.
	floodedCrashCounter = 9000
)

// SpawnAircraft creates an aircraft chain: the body of subtype sub, its
// shadow and, for a helicopter, its rotor. The body is returned.
func (p *Pool) SpawnAircraft(sub AircraftSubType, engine EngineID, x, y, z int) (*Vehicle, error) {
	if sub != SubHelicopter && sub != SubAircraft {
		return nil, fmt.Errorf("vehicle: spawn aircraft: %v is not a body subtype", sub)
	}
	v := p.Spawn(KindAircraft)
	v.Subtype = uint8(sub)
	v.Engine = engine

	shadow := p.Spawn(KindAircraft)
	shadow.Subtype = uint8(SubShadow)
	shadow.Engine = engine
	shadow.Status = StatusShadow | StatusUnclickable
	v.Next = shadow.id

	if sub == SubHelicopter {
		rotor := p.Spawn(KindAircraft)
		rotor.Subtype = uint8(SubRotor)
		rotor.Engine = engine
		rotor.Status = StatusUnclickable
		shadow.Next = rotor.id
	}

	if err := p.UpdateAircraftCache(v); err != nil {
		return nil, err
	}
	if err := p.SetAircraftPosition(v, x, y, z); err != nil {
		return nil, err
	}

	viewport.Logger().Debug("aircraft spawned",
		slog.String("subtype", sub.String()),
		slog.Int("engine", int(engine)),
		slog.Int("index", int(v.id.Index)))
	return v, nil
}

// parts returns the shadow and, for a helicopter, the rotor of aircraft v.
// Missing parts are nil.
func (p *Pool) parts(v *Vehicle) (shadow, rotor *Vehicle) {
	if v.Next.IsZero() {
		return nil, nil
	}
	shadow, err := p.Get(v.Next)
	if err != nil {
		return nil, nil
	}
	if !shadow.Next.IsZero() {
		rotor, _ = p.Get(shadow.Next)
	}
	return shadow, rotor
}

func requireAircraft(v *Vehicle) error {
	if !v.IsNormalAircraft() {
		return fmt.Errorf("%w: %v", ErrNotAircraft, v.kind)
	}
	return nil
}

// UpdateAircraftCache refreshes the cached maximum speed of v from its
// engine. An override in 8 mph units takes precedence over the built-in
// speed.
func (p *Pool) UpdateAircraftCache(v *Vehicle) error {
	if err := requireAircraft(v); err != nil {
		return err
	}
	if speed := int(p.engines.MaxSpeedOverride(v.Engine)); speed != 0 {
		v.Air.Cache.CachedMaxSpeed = uint16(min(speed*128/10, 0xFFFF)) //nolint:gosec // clamped
	} else {
		v.Air.Cache.CachedMaxSpeed = p.engines.BaseMaxSpeed(v.Engine)
	}
	return nil
}

// SetAircraftPosition moves aircraft v to world position (x, y, z). The
// shadow follows on the ground, offset north by an eighth of the altitude,
// and the rotor sits just above the body. Old and new sprite boxes of every
// part are marked dirty.
func (p *Pool) SetAircraftPosition(v *Vehicle, x, y, z int) error {
	if err := requireAircraft(v); err != nil {
		return err
	}
	v.X, v.Y, v.Z = x, y, z
	p.updatePosition(v)

	shadow, rotor := p.parts(v)
	if shadow != nil {
		shadow.X = x
		shadow.Y = y - (z-p.world.GroundHeight(x, max(y-1, 0)))>>3
		shadow.Z = p.world.GroundHeight(x, max(shadow.Y, 0))
		shadow.Direction = v.Direction
		p.updatePosition(shadow)
	}
	if rotor != nil {
		rotor.X, rotor.Y, rotor.Z = x, y, z+rotorZOffset
		p.updatePosition(rotor)
	}
	return nil
}

// FlyingAltitude returns the altitude aircraft v cruises at. Planes heading
// N through SE fly higher than the others so that opposite directions are
// separated, and faster planes fly higher so they can overtake.
func FlyingAltitude(v *Vehicle) int {
	if v.AircraftSubType() == SubHelicopter {
		return HeliFlightAltitude
	}
	alt := PlaneHoldingAltitude
	switch v.Direction {
	case DirN, DirNE, DirE, DirSE:
		alt += eastboundSeparation
	case DirS, DirSW, DirW, DirNW:
	}
	return alt + min(20*(v.DisplayMaxSpeed()/200), 90)
}

// HandleEnterHangar parks aircraft v in the hangar it has reached: it and
// its parts are hidden and stop.
func (p *Pool) HandleEnterHangar(v *Vehicle) error {
	if err := requireAircraft(v); err != nil {
		return err
	}
	v.Status |= StatusHidden
	v.CurSpeed = 0
	v.Air.State = StateHangar

	shadow, rotor := p.parts(v)
	if shadow != nil {
		shadow.Status |= StatusHidden
	}
	if rotor != nil {
		rotor.Status |= StatusHidden
		rotor.CurSpeed = 0
	}
	return p.SetAircraftPosition(v, v.X, v.Y, v.Z)
}

// LeaveHangar brings aircraft v out of its hangar facing exit.
func (p *Pool) LeaveHangar(v *Vehicle, exit Direction) error {
	if err := requireAircraft(v); err != nil {
		return err
	}
	v.CurSpeed = 0
	v.Direction = exit
	v.Air.LastDirection = exit
	v.Status &^= StatusHidden

	shadow, rotor := p.parts(v)
	if shadow != nil {
		shadow.Status &^= StatusHidden
	}
	if rotor != nil {
		rotor.Status &^= StatusHidden
		rotor.CurSpeed = rotorIdleSpeed
	}
	return p.SetAircraftPosition(v, v.X, v.Y, v.Z)
}

// UpdateAirplanesOnNewStation points every flying aircraft bound for the
// rebuilt station st at its new entry point.
func (p *Pool) UpdateAirplanesOnNewStation(st Station) {
	for v := range p.Aircraft() {
		if !v.IsNormalAircraft() || v.Air.TargetAirport != st.ID || v.Air.State != StateFlying {
			continue
		}
		entry := st.EntryPoint
		if v.AircraftSubType() == SubHelicopter {
			entry = st.HeliEntryPoint
		}
		v.Air.Pos = entry
		v.Air.PreviousPos = entry
		_ = p.UpdateAircraftCache(v)
	}
}

// Crash wrecks aircraft v and all its parts. It returns the number of
// people lost, passengers and pilots. A flooded wreck vanishes sooner.
func (p *Pool) Crash(v *Vehicle, flooded bool) (int, error) {
	if err := requireAircraft(v); err != nil {
		return 0, err
	}
	lost := pilots
	for _, u := range p.chain(v) {
		lost += int(u.Passengers)
		u.Status |= StatusCrashed
		p.markDirty(u)
	}
	v.Air.CrashedCounter = 0
	if flooded {
		v.Air.CrashedCounter = floodedCrashCounter
	}

	viewport.Logger().Info("aircraft crashed",
		slog.Int("index", int(v.id.Index)),
		slog.Int("lost", lost),
		slog.Bool("flooded", flooded))
	return lost, nil
}

// chain returns v followed by its parts.
func (p *Pool) chain(v *Vehicle) []*Vehicle {
	out := []*Vehicle{v}
	shadow, rotor := p.parts(v)
	if shadow != nil {
		out = append(out, shadow)
	}
	if rotor != nil {
		out = append(out, rotor)
	}
	return out
}
