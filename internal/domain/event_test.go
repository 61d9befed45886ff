package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocatedEvents_FiltersBlankLocations(t *testing.T) {
	events := []Event{
		{ID: "e1", Location: "Paris"},
		{ID: "e2", Location: ""},
		{ID: "e3", Location: "   "},
		{ID: "e4", Location: "Berlin"},
	}

	located := LocatedEvents(events)

	require.Len(t, located, 2)
	assert.Equal(t, "e1", located[0].ID)
	assert.Equal(t, "e4", located[1].ID)
}

func TestDistinctLocations_DedupesInFirstSeenOrder(t *testing.T) {
	events := []Event{
		{ID: "e1", Location: "Paris"},
		{ID: "e2", Location: "Berlin"},
		{ID: "e3", Location: "Paris"},
		{ID: "e4", Location: ""},
	}

	assert.Equal(t, []string{"Paris", "Berlin"}, DistinctLocations(events))
}

func TestBuildMapView_FansOutAcrossDuplicates(t *testing.T) {
	events := []Event{
		{ID: "e1", Title: "Standup", Location: "Paris"},
		{ID: "e2", Title: "Review", Location: "Paris"},
		{ID: "e3", Title: "Offsite", Location: "Atlantis"},
	}
	outcome := BatchOutcome{
		Resolved: map[string]ResolvedLocation{
			"Paris": {
				InputAddress:     "Paris",
				FormattedAddress: "Paris, France",
				Coordinate:       Coordinate{Lat: 48.8566, Lng: 2.3522},
			},
		},
		Failed: map[string]string{"Atlantis": `no results found for "Atlantis"`},
	}

	view := BuildMapView(events, outcome)

	require.Len(t, view.Pins, 2, "both events sharing the address get a pin")
	assert.Equal(t, "e1", view.Pins[0].EventID)
	assert.Equal(t, "e2", view.Pins[1].EventID)
	assert.Equal(t, "Paris, France", view.Pins[0].FormattedAddress)
	assert.Contains(t, view.Unresolved, "Atlantis")
}

func TestBuildMapView_GeometryFromPins(t *testing.T) {
	events := []Event{
		{ID: "e1", Location: "SF"},
		{ID: "e2", Location: "LA"},
	}
	outcome := BatchOutcome{
		Resolved: map[string]ResolvedLocation{
			"SF": {Coordinate: Coordinate{Lat: 37.7749, Lng: -122.4194}},
			"LA": {Coordinate: Coordinate{Lat: 34.0522, Lng: -118.2437}},
		},
	}

	view := BuildMapView(events, outcome)

	assert.Equal(t, Coordinate{Lat: 37.7749, Lng: -118.2437}, view.Bounds.Northeast)
	assert.Equal(t, Coordinate{Lat: 34.0522, Lng: -122.4194}, view.Bounds.Southwest)
	assert.Equal(t, 10, view.Zoom)
	assert.Empty(t, view.Unresolved)
}

func TestBuildMapView_NoResolvedLocations(t *testing.T) {
	events := []Event{{ID: "e1", Location: "Atlantis"}}
	outcome := BatchOutcome{
		Resolved: map[string]ResolvedLocation{},
		Failed:   map[string]string{"Atlantis": "no results"},
	}

	view := BuildMapView(events, outcome)

	assert.Empty(t, view.Pins)
	assert.Equal(t, BoundingBox{}, view.Bounds)
	assert.Equal(t, 14, view.Zoom)
}
