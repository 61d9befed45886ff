package domain

import "context"

// Candidate is a single provider match for an address lookup.
type Candidate struct {
	FormattedAddress string
	Coordinate       Coordinate
	PlaceID          string
	Components       AddressComponents
}

// Provider looks up candidate matches for a free-text address over the
// network. Implementations return candidates ordered most-confident first,
// and a nil slice (without error) when the address has no match.
type Provider interface {
	Lookup(ctx context.Context, address string) ([]Candidate, error)
}
