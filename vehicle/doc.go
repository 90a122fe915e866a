// Package vehicle keeps the vehicles of a running game in a generational
// arena and implements the aircraft state that feeds the viewport caches.
//
// Vehicles are a tagged variant: every [Vehicle] carries its [Kind] and the
// fields common to all kinds, and an aircraft additionally carries an
// [Aircraft] payload. Aircraft are drawn as a chain of parts: the plane or
// helicopter itself, its shadow on the ground and, for helicopters, the
// rotor. Parts are linked through [Vehicle.Next].
//
// A [Pool] hands out [ID] handles. Despawning a vehicle bumps the slot's
// generation, so an old handle can never reach the slot's next occupant.
//
// Moving a vehicle marks its previous and its new sprite box dirty through a
// [DirtyMarker], normally a *viewport.Set.
package vehicle
