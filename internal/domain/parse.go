package domain

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// parenCoordRe matches a parenthesized coordinate pair anywhere in a
	// location string, e.g. "Conference Room (37.7749, -122.4194)".
	parenCoordRe = regexp.MustCompile(`\(\s*(-?\d+(?:\.\d+)?)\s*,\s*(-?\d+(?:\.\d+)?)\s*\)`)

	// bareCoordRe matches a string that is exactly "<lat>,<lng>" with an
	// optional space after the comma.
	bareCoordRe = regexp.MustCompile(`^(-?\d+(?:\.\d+)?),\s?(-?\d+(?:\.\d+)?)$`)
)

// ParseCoordinates extracts a coordinate pair embedded in a free-text
// location string, so such strings resolve without a network call.
//
// A parenthesized pair is preferred: the returned address is the input with
// the parenthesized substring removed and surrounding whitespace trimmed.
// Failing that, a string that is exactly "<lat>,<lng>" yields the pair with
// the address returned unchanged. No range validation happens here; the
// resolver rejects out-of-range pairs.
//
// Returns a nil coordinate when no pair is recognized.
func ParseCoordinates(location string) (string, *Coordinate) {
	if m := parenCoordRe.FindStringSubmatchIndex(location); m != nil {
		lat, latErr := strconv.ParseFloat(location[m[2]:m[3]], 64)
		lng, lngErr := strconv.ParseFloat(location[m[4]:m[5]], 64)
		if latErr == nil && lngErr == nil {
			address := strings.TrimSpace(location[:m[0]] + location[m[1]:])
			return address, &Coordinate{Lat: lat, Lng: lng}
		}
	}

	if m := bareCoordRe.FindStringSubmatch(strings.TrimSpace(location)); m != nil {
		lat, latErr := strconv.ParseFloat(m[1], 64)
		lng, lngErr := strconv.ParseFloat(m[2], 64)
		if latErr == nil && lngErr == nil {
			return location, &Coordinate{Lat: lat, Lng: lng}
		}
	}

	return location, nil
}
