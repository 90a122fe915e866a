package viewport

// MapType selects how a viewport in map mode colours each tile.
type MapType uint8

const (
	// MapVegetation colours tiles by terrain and vegetation.
	MapVegetation MapType = iota
	// MapOwner colours tiles by owning company.
	MapOwner
	// MapIndustry highlights industries.
	MapIndustry

	mapTypeCount
)

// String returns the map type name.
func (t MapType) String() string {
	switch t {
	case MapVegetation:
		return "Vegetation"
	case MapOwner:
		return "Owner"
	case MapIndustry:
		return "Industry"
	default:
		return "Unknown"
	}
}

// Valid reports whether t is a defined map type.
func (t MapType) Valid() bool { return t < mapTypeCount }

// Next returns the following map type, wrapping around.
func (t MapType) Next() MapType { return (t + 1) % mapTypeCount }

// Prev returns the preceding map type, wrapping around.
func (t MapType) Prev() MapType { return (t + mapTypeCount - 1) % mapTypeCount }
