//go:build googlemaps

package google

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/calendar-map-service/internal/observability"
)

// These tests hit the real Google Geocoding API and require a valid
// GOOGLE_MAPS_API_KEY env var.
// Run with: go test -tags=googlemaps ./internal/adapter/google/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	key := os.Getenv("GOOGLE_MAPS_API_KEY")
	if key == "" {
		t.Fatal("GOOGLE_MAPS_API_KEY must be set to run smoke tests")
	}
	return NewClient(key, 10*time.Second, 5,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_Lookup(t *testing.T) {
	c := smokeClient(t)

	candidates, err := c.Lookup(context.Background(), "Eiffel Tower, Paris")
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	best := candidates[0]
	assert.InDelta(t, 48.86, best.Coordinate.Lat, 0.1, "lat should be near Paris")
	assert.InDelta(t, 2.29, best.Coordinate.Lng, 0.1, "lng should be near Paris")
	assert.NotEmpty(t, best.FormattedAddress)
	assert.NotEmpty(t, best.PlaceID)
	assert.Equal(t, "France", best.Components.Country)
}

func TestSmoke_Lookup_Nonsense(t *testing.T) {
	c := smokeClient(t)

	candidates, err := c.Lookup(context.Background(), "xyzzyplughnonexistent99")
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
