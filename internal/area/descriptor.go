package area

// Store layout constants. Every area keeps its entries in a single
// logical table inside its own store location.
const (
	// locationPrefix namespaces area store locations within the engine.
	locationPrefix = "kvarea:"

	// tableName is the single logical table holding an area's entries.
	tableName = "store"

	// schemaVersion is the layout version recorded in descriptors.
	schemaVersion = 1
)

// Descriptor identifies an area's underlying store. It is a pure
// value derived from the area's name; intervening Clear calls do not
// change it.
type Descriptor struct {
	// Location is the engine store location, locationPrefix + name.
	Location string

	// Table is the logical table name within the store.
	Table string

	// Version is the schema version of the store layout.
	Version int
}
