package domain

// Coordinate is a WGS-84 latitude/longitude pair in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate lies within WGS-84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// AddressComponents is a best-effort structured breakdown of an address.
// A zero-value field means the provider did not report that component.
type AddressComponents struct {
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
	Street  string `json:"street,omitempty"`
}

// ResolvedLocation is the result of resolving one address.
type ResolvedLocation struct {
	InputAddress     string             `json:"input_address"`
	FormattedAddress string             `json:"formatted_address"`
	Coordinate       Coordinate         `json:"coordinates"`
	PlaceID          string             `json:"place_id,omitempty"`
	Components       *AddressComponents `json:"components,omitempty"`
}

// BoundingBox is the smallest axis-aligned rectangle containing a set of
// coordinates.
type BoundingBox struct {
	Northeast Coordinate `json:"northeast"`
	Southwest Coordinate `json:"southwest"`
}

// BatchOutcome reports per-address results for one batch resolution. Every
// distinct input address appears in exactly one of Resolved or Failed.
type BatchOutcome struct {
	Resolved map[string]ResolvedLocation `json:"resolved"`
	Failed   map[string]string           `json:"failed,omitempty"`
}
