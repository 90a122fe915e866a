package vehicle

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/gogpu/viewport"
	"github.com/gogpu/viewport/zoom"
)

type slot struct {
	gen uint32
	v   *Vehicle
}

// Pool is a generational arena of vehicles.
//
// Pool is not safe for concurrent use; vehicles are only touched by the
// simulation thread.
type Pool struct {
	slots []slot
	free  []uint32
	live  int

	marker  DirtyMarker
	world   MapQuery
	engines EngineCallbacks
	sprites *SpriteCache
}

// NewPool returns an empty pool.
func NewPool(opts ...Option) (*Pool, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	sprites, err := NewSpriteCache(o.engines, o.spriteCache)
	if err != nil {
		return nil, err
	}
	return &Pool{
		marker:  o.marker,
		world:   o.world,
		engines: o.engines,
		sprites: sprites,
	}, nil
}

// Len returns the number of live vehicles.
func (p *Pool) Len() int { return p.live }

// Map returns the map the pool queries.
func (p *Pool) Map() MapQuery { return p.world }

// Sprites returns the pool's sprite size cache.
func (p *Pool) Sprites() *SpriteCache { return p.sprites }

// Spawn allocates a vehicle of kind k. Aircraft get an empty payload.
func (p *Pool) Spawn(k Kind) *Vehicle {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = uint32(len(p.slots)) //nolint:gosec // pools never reach 2^32 vehicles
		p.slots = append(p.slots, slot{})
	}
	s := &p.slots[idx]
	s.gen++
	v := &Vehicle{id: ID{Index: idx, Gen: s.gen}, kind: k, Tile: InvalidTile}
	if k == KindAircraft {
		v.Air = &Aircraft{TargetAirport: InvalidStation}
	}
	s.v = v
	p.live++
	return v
}

// Get returns the vehicle named by id.
func (p *Pool) Get(id ID) (*Vehicle, error) {
	if id.IsZero() || int(id.Index) >= len(p.slots) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVehicle, id.Index)
	}
	s := p.slots[id.Index]
	if s.gen != id.Gen || s.v == nil {
		return nil, fmt.Errorf("%w: %d gen %d", ErrStaleID, id.Index, id.Gen)
	}
	return s.v, nil
}

// Despawn removes the vehicle named by id. Its sprite is marked dirty, and
// an aircraft takes its shadow and rotor with it. A shadow or rotor cannot
// be despawned on its own; ErrNotHead is returned for them.
func (p *Pool) Despawn(id ID) error {
	v, err := p.Get(id)
	if err != nil {
		return err
	}

	switch v.kind {
	case KindAircraft:
		if !v.IsNormalAircraft() {
			return fmt.Errorf("%w: %v %d", ErrNotHead, v.AircraftSubType(), id.Index)
		}
		for part := v.Next; !part.IsZero(); {
			u, err := p.Get(part)
			if err != nil {
				break
			}
			part = u.Next
			p.release(u)
		}
	case KindRail, KindRoad, KindShip, KindEffect, KindDisaster:
	}
	p.release(v)

	viewport.Logger().Debug("vehicle despawned",
		slog.String("kind", v.kind.String()),
		slog.Int("index", int(id.Index)))
	return nil
}

func (p *Pool) release(v *Vehicle) {
	p.markDirty(v)
	s := &p.slots[v.id.Index]
	s.v = nil
	p.free = append(p.free, v.id.Index)
	p.live--
}

// All yields every live vehicle in slot order.
func (p *Pool) All() iter.Seq[*Vehicle] {
	return func(yield func(*Vehicle) bool) {
		for i := range p.slots {
			if v := p.slots[i].v; v != nil && !yield(v) {
				return
			}
		}
	}
}

// OfKind yields the live vehicles of kind k.
func (p *Pool) OfKind(k Kind) iter.Seq[*Vehicle] {
	return func(yield func(*Vehicle) bool) {
		for v := range p.All() {
			if v.kind == k && !yield(v) {
				return
			}
		}
	}
}

// Aircraft yields every aircraft part, shadows and rotors included.
func (p *Pool) Aircraft() iter.Seq[*Vehicle] {
	return p.OfKind(KindAircraft)
}

// markDirty invalidates the area v was last drawn in.
func (p *Pool) markDirty(v *Vehicle) {
	if p.marker == nil || v.Sprite.Empty() {
		return
	}
	p.marker.MarkVirtualDirty(v.Sprite, zoom.Max)
}

// updatePosition recomputes the tile and sprite box after a move and marks
// the old and new boxes dirty.
func (p *Pool) updatePosition(v *Vehicle) {
	v.Tile = p.world.TileAt(v.X, v.Y)
	p.markDirty(v)
	sz := p.sprites.Size(v.Engine)
	v.Sprite = viewport.WorldBox(v.X, v.Y, v.Z, sz.X, sz.Y)
	p.markDirty(v)
}
