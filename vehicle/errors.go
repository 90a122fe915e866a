package vehicle

import "errors"

// Sentinel errors for the vehicle package.
var (
	// ErrUnknownVehicle is returned for an ID that never named a vehicle.
	ErrUnknownVehicle = errors.New("vehicle: unknown vehicle")

	// ErrStaleID is returned for an ID whose vehicle has been despawned.
	ErrStaleID = errors.New("vehicle: stale id")

	// ErrNotAircraft is returned when an aircraft operation is applied to
	// another kind of vehicle.
	ErrNotAircraft = errors.New("vehicle: not an aircraft")

	// ErrNotHead is returned when a shadow or rotor is despawned on its own.
	// Parts go with the aircraft they belong to.
	ErrNotHead = errors.New("vehicle: not the head of its chain")

	// ErrInvalidCacheSize is returned for a non-positive sprite cache size.
	ErrInvalidCacheSize = errors.New("vehicle: sprite cache size must be positive")
)
