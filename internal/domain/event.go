package domain

import (
	"strings"
	"time"
)

// Event is a calendar event as returned by the calendar source. Only the
// location string feeds the geocoding core; the rest rides along for the
// map UI.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Location  string    `json:"location,omitempty"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Status    string    `json:"status,omitempty"`
	Attendees []string  `json:"attendees,omitempty"`
}

// MapPin is one marker handed to the map widget.
type MapPin struct {
	EventID          string     `json:"event_id"`
	Title            string     `json:"title"`
	Coordinate       Coordinate `json:"coordinates"`
	FormattedAddress string     `json:"formatted_address,omitempty"`
}

// MapView is the complete payload for rendering a set of events on a map:
// the pins plus centering geometry, with per-address failures reported
// rather than dropped.
type MapView struct {
	Pins       []MapPin          `json:"pins"`
	Bounds     BoundingBox       `json:"bounds"`
	Zoom       int               `json:"zoom"`
	Unresolved map[string]string `json:"unresolved,omitempty"`
}

// LocatedEvents returns the events carrying a non-blank location string.
func LocatedEvents(events []Event) []Event {
	located := make([]Event, 0, len(events))
	for _, e := range events {
		if !isBlank(e.Location) {
			located = append(located, e)
		}
	}
	return located
}

// DistinctLocations returns the distinct location strings across the given
// events in first-seen order, skipping blanks.
func DistinctLocations(events []Event) []string {
	seen := make(map[string]struct{}, len(events))
	distinct := make([]string, 0, len(events))
	for _, e := range events {
		if isBlank(e.Location) {
			continue
		}
		if _, ok := seen[e.Location]; ok {
			continue
		}
		seen[e.Location] = struct{}{}
		distinct = append(distinct, e.Location)
	}
	return distinct
}

// BuildMapView fans a batch outcome back out across the events that share
// each location and computes the bounds and zoom for the resulting pin set.
// Events whose location failed to resolve stay un-pinned; their failures
// surface in Unresolved.
func BuildMapView(events []Event, outcome BatchOutcome) MapView {
	pins := make([]MapPin, 0, len(events))
	points := make([]Coordinate, 0, len(events))

	for _, e := range events {
		loc, ok := outcome.Resolved[e.Location]
		if !ok {
			continue
		}
		pins = append(pins, MapPin{
			EventID:          e.ID,
			Title:            e.Title,
			Coordinate:       loc.Coordinate,
			FormattedAddress: loc.FormattedAddress,
		})
		points = append(points, loc.Coordinate)
	}

	box := Bounds(points)
	view := MapView{
		Pins:   pins,
		Bounds: box,
		Zoom:   ZoomLevel(box),
	}
	if len(outcome.Failed) > 0 {
		view.Unresolved = outcome.Failed
	}
	return view
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
