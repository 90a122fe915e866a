package vehicle

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/viewport"
	"github.com/gogpu/viewport/zoom"
)

const (
	testPlane EngineID = 1
	testHeli  EngineID = 2
	testFast  EngineID = 3
)

var testEngines = StaticEngines{
	testPlane: {MaxSpeed: 640, SpriteW: 32, SpriteH: 24},
	testHeli:  {MaxSpeed: 256, SpriteW: 24, SpriteH: 24},
	testFast:  {MaxSpeed: 100, SpeedOverride: 125, SpriteW: 40, SpriteH: 24},
}

func newAirPool(t *testing.T, opts ...Option) (*Pool, *FlatMap) {
	t.Helper()
	world := &FlatMap{
		Width:    64,
		Hangars:  map[TileIndex]bool{},
		Stations: map[StationID]Station{},
	}
	opts = append([]Option{WithMap(world), WithEngines(testEngines)}, opts...)
	return newTestPool(t, opts...), world
}

func spawn(t *testing.T, p *Pool, sub AircraftSubType, e EngineID, x, y, z int) *Vehicle {
	t.Helper()
	v, err := p.SpawnAircraft(sub, e, x, y, z)
	if err != nil {
		t.Fatalf("SpawnAircraft: %v", err)
	}
	return v
}

// =============================================================================
// Chains
// =============================================================================

func TestSpawnAircraft_Chains(t *testing.T) {
	p, _ := newAirPool(t)

	plane := spawn(t, p, SubAircraft, testPlane, 100, 100, 0)
	shadow, rotor := p.parts(plane)
	if shadow == nil || rotor != nil {
		t.Fatalf("plane parts = %v, %v; want shadow only", shadow, rotor)
	}
	if shadow.AircraftSubType() != SubShadow || !shadow.Status.Has(StatusShadow) {
		t.Errorf("shadow subtype %v, status %v", shadow.AircraftSubType(), shadow.Status)
	}

	heli := spawn(t, p, SubHelicopter, testHeli, 200, 200, 0)
	shadow, rotor = p.parts(heli)
	if shadow == nil || rotor == nil || rotor.AircraftSubType() != SubRotor {
		t.Fatalf("helicopter parts = %v, %v", shadow, rotor)
	}
	if p.Len() != 5 {
		t.Errorf("Len() = %d, want 5", p.Len())
	}

	if err := p.Despawn(heli.ID()); err != nil {
		t.Fatal(err)
	}
	if p.Len() != 2 {
		t.Errorf("Len() = %d after despawning the helicopter, want 2", p.Len())
	}
	if _, err := p.Get(rotor.ID()); !errors.Is(err, ErrStaleID) {
		t.Error("rotor survived its helicopter")
	}
}

func TestSpawnAircraft_BadSubtype(t *testing.T) {
	p, _ := newAirPool(t)
	if _, err := p.SpawnAircraft(SubShadow, testPlane, 0, 0, 0); err == nil {
		t.Error("spawned a bare shadow")
	}
}

func TestIsNormalAircraft(t *testing.T) {
	p, _ := newAirPool(t)
	heli := spawn(t, p, SubHelicopter, testHeli, 0, 0, 0)
	shadow, rotor := p.parts(heli)
	train := p.Spawn(KindRail)

	tests := []struct {
		name string
		v    *Vehicle
		want bool
	}{
		{"helicopter", heli, true},
		{"shadow", shadow, false},
		{"rotor", rotor, false},
		{"train", train, false},
	}
	for _, tt := range tests {
		if got := tt.v.IsNormalAircraft(); got != tt.want {
			t.Errorf("%s: IsNormalAircraft() = %v, want %v", tt.name, got, tt.want)
		}
		if tt.name != "train" && tt.v.IsPrimary() != tt.want {
			t.Errorf("%s: IsPrimary() = %v, want %v", tt.name, tt.v.IsPrimary(), tt.want)
		}
	}
}

func TestNotAircraft(t *testing.T) {
	p, _ := newAirPool(t)
	train := p.Spawn(KindRail)
	if err := p.SetAircraftPosition(train, 0, 0, 0); !errors.Is(err, ErrNotAircraft) {
		t.Errorf("SetAircraftPosition error = %v", err)
	}
	if _, err := p.Crash(train, false); !errors.Is(err, ErrNotAircraft) {
		t.Errorf("Crash error = %v", err)
	}
}

// =============================================================================
// Speed
// =============================================================================

func TestAircraftSpeed(t *testing.T) {
	p, _ := newAirPool(t)

	plane := spawn(t, p, SubAircraft, testPlane, 0, 0, 0)
	plane.CurSpeed = 321
	if plane.DisplaySpeed() != 321 {
		t.Errorf("DisplaySpeed() = %d", plane.DisplaySpeed())
	}
	if plane.DisplayMaxSpeed() != 640 {
		t.Errorf("DisplayMaxSpeed() = %d, want 640", plane.DisplayMaxSpeed())
	}
	if plane.SpeedOldUnits() != 50 {
		t.Errorf("SpeedOldUnits() = %d, want 50", plane.SpeedOldUnits())
	}

	// The override is in old units: 125 * 128 / 10 = 1600.
	fast := spawn(t, p, SubAircraft, testFast, 0, 0, 0)
	if fast.DisplayMaxSpeed() != 1600 {
		t.Errorf("override DisplayMaxSpeed() = %d, want 1600", fast.DisplayMaxSpeed())
	}
	if fast.SpeedOldUnits() != 125 {
		t.Errorf("override SpeedOldUnits() = %d, want 125", fast.SpeedOldUnits())
	}

	if p.Spawn(KindRoad).DisplayMaxSpeed() != 0 {
		t.Error("road vehicle reports an aircraft max speed")
	}
}

func TestFlyingAltitude(t *testing.T) {
	tests := []struct {
		name     string
		sub      AircraftSubType
		dir      Direction
		maxSpeed uint16
		want     int
	}{
		{"helicopter", SubHelicopter, DirN, 5000, HeliFlightAltitude},
		{"eastbound slow", SubAircraft, DirNE, 100, 160},
		{"westbound slow", SubAircraft, DirSW, 100, 150},
		{"westbound 400", SubAircraft, DirW, 400, 190},
		{"speed bonus capped", SubAircraft, DirS, 5000, 240},
		{"eastbound capped", SubAircraft, DirSE, 5000, 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &Vehicle{kind: KindAircraft, Subtype: uint8(tt.sub), Direction: tt.dir,
				Air: &Aircraft{Cache: AircraftCache{CachedMaxSpeed: tt.maxSpeed}}}
			if got := FlyingAltitude(v); got != tt.want {
				t.Errorf("FlyingAltitude() = %d, want %d", got, tt.want)
			}
		})
	}
}

// =============================================================================
// Position
// =============================================================================

func TestSetAircraftPosition(t *testing.T) {
	m := &recordingMarker{}
	p, world := newAirPool(t, WithDirtyMarker(m))
	world.Height = 8

	heli := spawn(t, p, SubHelicopter, testHeli, 160, 160, 8)
	m.rects = nil

	if err := p.SetAircraftPosition(heli, 320, 320, 108); err != nil {
		t.Fatal(err)
	}
	shadow, rotor := p.parts(heli)

	if shadow.X != 320 || shadow.Y != 320-(108-8)>>3 || shadow.Z != 8 {
		t.Errorf("shadow at (%d, %d, %d), want (320, %d, 8)", shadow.X, shadow.Y, shadow.Z, 320-(108-8)>>3)
	}
	if rotor.X != 320 || rotor.Y != 320 || rotor.Z != 113 {
		t.Errorf("rotor at (%d, %d, %d), want (320, 320, 113)", rotor.X, rotor.Y, rotor.Z)
	}
	if heli.Tile != world.TileAt(320, 320) {
		t.Errorf("Tile = %d, want %d", heli.Tile, world.TileAt(320, 320))
	}

	// Old and new box for each of the three parts.
	if len(m.rects) != 6 {
		t.Fatalf("marked %d rects, want 6", len(m.rects))
	}
	if want := viewport.WorldBox(320, 320, 108, 24, 24); heli.Sprite != want || m.rects[1] != want {
		t.Errorf("body sprite = %v, marked %v, want %v", heli.Sprite, m.rects[1], want)
	}
	if want := viewport.WorldBox(160, 160, 8, 24, 24); m.rects[0] != want {
		t.Errorf("old body box = %v, want %v", m.rects[0], want)
	}
}

func TestSetAircraftPosition_DirtiesViewport(t *testing.T) {
	set := viewport.NewSet()
	vp := viewport.New(0, 0, 640, 480, zoom.Normal)
	set.Add(vp)
	p, _ := newAirPool(t, WithDirtyMarker(set))

	plane := spawn(t, p, SubAircraft, testPlane, 0, 0, 0)
	set.ClearDirty()

	// World (160, 240, 0) is virtual (640, 1600), screen (160, 400).
	if err := p.SetAircraftPosition(plane, 160, 240, 0); err != nil {
		t.Fatal(err)
	}
	if !vp.IsDirty() {
		t.Fatal("viewport not dirtied by a visible move")
	}
	col := (159 + vp.DirtyBlockLeftMargin()) >> vp.DirtyBlockShift()
	row := 399 >> vp.DirtyBlockShift()
	if !vp.IsBlockDirty(col, row) {
		t.Errorf("block (%d, %d) under the plane not dirty", col, row)
	}
}

// =============================================================================
// Hangar and Station
// =============================================================================

func TestHangar(t *testing.T) {
	p, world := newAirPool(t)
	heli := spawn(t, p, SubHelicopter, testHeli, 40, 40, 0)
	world.Hangars[world.TileAt(40, 40)] = true
	heli.CurSpeed = 30
	_, rotor := p.parts(heli)
	rotor.CurSpeed = 80

	if heli.IsInDepot(world) {
		t.Fatal("visible aircraft reported in depot")
	}
	if err := p.HandleEnterHangar(heli); err != nil {
		t.Fatal(err)
	}
	if !heli.IsInDepot(world) {
		t.Error("IsInDepot() = false after entering the hangar")
	}
	shadow, rotor := p.parts(heli)
	if !shadow.Status.Has(StatusHidden) || !rotor.Status.Has(StatusHidden) {
		t.Error("parts still visible in the hangar")
	}
	if heli.CurSpeed != 0 || rotor.CurSpeed != 0 || heli.Air.State != StateHangar {
		t.Errorf("speeds %d/%d, state %d", heli.CurSpeed, rotor.CurSpeed, heli.Air.State)
	}

	if err := p.LeaveHangar(heli, DirSE); err != nil {
		t.Fatal(err)
	}
	if heli.IsInDepot(world) || heli.Status.Has(StatusHidden) || shadow.Status.Has(StatusHidden) {
		t.Error("aircraft still hidden after leaving")
	}
	if heli.Direction != DirSE || rotor.CurSpeed != 80 {
		t.Errorf("direction %v, rotor speed %d", heli.Direction, rotor.CurSpeed)
	}
}

func TestUpdateAirplanesOnNewStation(t *testing.T) {
	p, _ := newAirPool(t)
	st := Station{ID: 5, AirportTile: 100, EntryPoint: 17, HeliEntryPoint: 23}

	flying := spawn(t, p, SubAircraft, testPlane, 0, 0, 0)
	flying.Air.TargetAirport, flying.Air.State = 5, StateFlying
	landing := spawn(t, p, SubAircraft, testPlane, 0, 0, 0)
	landing.Air.TargetAirport, landing.Air.State = 5, StateLanding
	elsewhere := spawn(t, p, SubAircraft, testPlane, 0, 0, 0)
	elsewhere.Air.TargetAirport, elsewhere.Air.State = 6, StateFlying
	heli := spawn(t, p, SubHelicopter, testHeli, 0, 0, 0)
	heli.Air.TargetAirport, heli.Air.State = 5, StateFlying

	p.UpdateAirplanesOnNewStation(st)

	if flying.Air.Pos != 17 || flying.Air.PreviousPos != 17 {
		t.Errorf("flying plane pos = %d/%d, want 17", flying.Air.Pos, flying.Air.PreviousPos)
	}
	if heli.Air.Pos != 23 {
		t.Errorf("helicopter pos = %d, want 23", heli.Air.Pos)
	}
	if landing.Air.Pos != 0 || elsewhere.Air.Pos != 0 {
		t.Error("aircraft not flying to the station were redirected")
	}
}

func TestCrash(t *testing.T) {
	m := &recordingMarker{}
	p, _ := newAirPool(t, WithDirtyMarker(m))
	plane := spawn(t, p, SubAircraft, testPlane, 0, 0, 0)
	plane.Passengers = 30

	lost, err := p.Crash(plane, false)
	if err != nil {
		t.Fatal(err)
	}
	if lost != 32 {
		t.Errorf("lost = %d, want 32", lost)
	}
	for _, u := range p.chain(plane) {
		if !u.Status.Has(StatusCrashed) {
			t.Errorf("%v part not crashed", u.AircraftSubType())
		}
	}
	if plane.Air.CrashedCounter != 0 {
		t.Errorf("CrashedCounter = %d, want 0", plane.Air.CrashedCounter)
	}

	wet := spawn(t, p, SubAircraft, testPlane, 0, 0, 0)
	if _, err := p.Crash(wet, true); err != nil {
		t.Fatal(err)
	}
	if wet.Air.CrashedCounter != floodedCrashCounter {
		t.Errorf("flooded CrashedCounter = %d", wet.Air.CrashedCounter)
	}
}

// =============================================================================
// Sprite Cache
// =============================================================================

func TestSpriteCache(t *testing.T) {
	c, err := NewSpriteCache(testEngines, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := c.Size(testPlane); got != image.Pt(32, 24) {
		t.Errorf("Size = %v", got)
	}
	c.Size(testPlane)
	if c.Misses() != 1 {
		t.Errorf("Misses() = %d, want 1", c.Misses())
	}
	c.Size(testHeli)
	c.Size(testPlane)
	if c.Misses() != 3 {
		t.Errorf("Misses() = %d after eviction, want 3", c.Misses())
	}
	c.Forget(testPlane)
	c.Size(testPlane)
	if c.Misses() != 4 {
		t.Errorf("Misses() = %d after Forget, want 4", c.Misses())
	}

	if _, err := NewSpriteCache(testEngines, -1); !errors.Is(err, ErrInvalidCacheSize) {
		t.Errorf("error = %v", err)
	}
}
