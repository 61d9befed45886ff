package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	sanFrancisco = Coordinate{Lat: 37.7749, Lng: -122.4194}
	losAngeles   = Coordinate{Lat: 34.0522, Lng: -118.2437}
)

func TestDistance_IdenticalPointsIsZero(t *testing.T) {
	assert.Equal(t, 0.0, Distance(sanFrancisco, sanFrancisco))
}

func TestDistance_Symmetric(t *testing.T) {
	assert.InDelta(t, Distance(sanFrancisco, losAngeles), Distance(losAngeles, sanFrancisco), 1e-9)
}

func TestDistance_SanFranciscoToLosAngeles(t *testing.T) {
	d := Distance(sanFrancisco, losAngeles)

	assert.Greater(t, d, 500.0)
	assert.Less(t, d, 600.0)
}

func TestBounds_PerAxisMaxMin(t *testing.T) {
	box := Bounds([]Coordinate{sanFrancisco, losAngeles})

	assert.Equal(t, Coordinate{Lat: 37.7749, Lng: -118.2437}, box.Northeast)
	assert.Equal(t, Coordinate{Lat: 34.0522, Lng: -122.4194}, box.Southwest)
}

func TestBounds_SinglePoint(t *testing.T) {
	box := Bounds([]Coordinate{sanFrancisco})

	assert.Equal(t, sanFrancisco, box.Northeast)
	assert.Equal(t, sanFrancisco, box.Southwest)
}

func TestBounds_EmptyInputIsDegenerateOriginBox(t *testing.T) {
	box := Bounds(nil)

	assert.Equal(t, Coordinate{}, box.Northeast)
	assert.Equal(t, Coordinate{}, box.Southwest)
}

func TestZoomLevel_Steps(t *testing.T) {
	boxWithSpan := func(span float64) BoundingBox {
		return BoundingBox{Northeast: Coordinate{Lat: span, Lng: span}}
	}

	assert.Equal(t, 6, ZoomLevel(boxWithSpan(20)))
	assert.Equal(t, 8, ZoomLevel(boxWithSpan(7)))
	assert.Equal(t, 10, ZoomLevel(boxWithSpan(2)))
	assert.Equal(t, 12, ZoomLevel(boxWithSpan(0.5)))
	assert.Equal(t, 14, ZoomLevel(boxWithSpan(0.05)))
	assert.Equal(t, 14, ZoomLevel(boxWithSpan(0)), "zero span yields the closest zoom")
}

func TestZoomLevel_UsesLargerSpan(t *testing.T) {
	// Narrow lat span, wide lng span: the wide axis decides.
	box := BoundingBox{Northeast: Coordinate{Lat: 0.01, Lng: 20}}

	assert.Equal(t, 6, ZoomLevel(box))
}

func TestZoomLevel_MonotoneInSpan(t *testing.T) {
	spans := []float64{0, 0.05, 0.1, 0.5, 1, 2, 5, 7, 10, 20, 180}

	prev := ZoomLevel(BoundingBox{})
	for _, span := range spans {
		z := ZoomLevel(BoundingBox{Northeast: Coordinate{Lat: span}})
		assert.LessOrEqual(t, z, prev, "larger span must never increase zoom (span=%v)", span)
		prev = z
	}
}
