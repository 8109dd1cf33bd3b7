package cereal

// Override interfaces allow source types to bypass reflection-based lookup.
// When a source implements one of these interfaces, Lookup calls the
// interface method for that phase instead of inspecting the value through
// reflection.
//
// Implementations are useful for dynamic records (rows, documents, proxies)
// whose attributes are not Go struct fields, and for hot paths where the
// reflective field index is unwanted.

// Attributer answers the attribute phase of a lookup.
// Returning false falls through to the key phase.
type Attributer interface {
	Attr(name string) (any, bool)
}

// Mapping answers the key phase of a lookup.
// Returning false makes the lookup fail with ErrLookup.
type Mapping interface {
	Key(name string) (any, bool)
}
