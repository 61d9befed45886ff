package google

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/couchcryptid/calendar-map-service/internal/observability"
)

const (
	testKey           = "test-key"
	contentTypeJSON   = "application/json"
	headerContentType = "Content-Type"
)

func testClient(baseURL string) *Client {
	return &Client{
		apiKey:     testKey,
		httpClient: &http.Client{Timeout: 5 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Inf, 1),
		metrics:    observability.NewMetricsForTesting(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func parisResponse() response {
	return response{
		Status: "OK",
		Results: []result{
			{
				FormattedAddress: "Paris, France",
				PlaceID:          "ChIJD7fiBh9u5kcRYJSMaMOCCwQ",
				Geometry:         geometry{Location: latLng{Lat: 48.8566, Lng: 2.3522}},
				AddressComponents: []component{
					{LongName: "Paris", Types: []string{"locality", "political"}},
					{LongName: "Île-de-France", Types: []string{"administrative_area_level_1", "political"}},
					{LongName: "France", Types: []string{"country", "political"}},
				},
			},
		},
	}
}

func TestClient_Lookup_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Paris", r.URL.Query().Get("address"))
		assert.Equal(t, testKey, r.URL.Query().Get("key"))

		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(parisResponse()))
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	candidates, err := c.Lookup(context.Background(), "Paris")
	require.NoError(t, err)
	require.Len(t, candidates, 1)

	best := candidates[0]
	assert.Equal(t, "Paris, France", best.FormattedAddress)
	assert.Equal(t, 48.8566, best.Coordinate.Lat)
	assert.Equal(t, 2.3522, best.Coordinate.Lng)
	assert.Equal(t, "ChIJD7fiBh9u5kcRYJSMaMOCCwQ", best.PlaceID)
	assert.Equal(t, "France", best.Components.Country)
	assert.Equal(t, "Île-de-France", best.Components.State)
	assert.Equal(t, "Paris", best.Components.City)
	assert.Empty(t, best.Components.Street)
}

func TestClient_Lookup_StreetComponents(t *testing.T) {
	resp := response{
		Status: "OK",
		Results: []result{
			{
				FormattedAddress: "1600 Amphitheatre Pkwy, Mountain View, CA",
				Geometry:         geometry{Location: latLng{Lat: 37.422, Lng: -122.084}},
				AddressComponents: []component{
					{LongName: "1600", Types: []string{"street_number"}},
					{LongName: "Amphitheatre Parkway", Types: []string{"route"}},
					{LongName: "Mountain View", Types: []string{"locality"}},
				},
			},
		},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	defer srv.Close()

	candidates, err := testClient(srv.URL).Lookup(context.Background(), "1600 Amphitheatre Pkwy")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "1600 Amphitheatre Parkway", candidates[0].Components.Street)
}

func TestClient_Lookup_ZeroResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{Status: "ZERO_RESULTS"}))
	}))
	defer srv.Close()

	candidates, err := testClient(srv.URL).Lookup(context.Background(), "xyznonexistent")
	require.NoError(t, err, "no match is not a provider error")
	assert.Empty(t, candidates)
}

func TestClient_Lookup_RequestDenied(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		require.NoError(t, json.NewEncoder(w).Encode(response{
			Status:       "REQUEST_DENIED",
			ErrorMessage: "The provided API key is invalid.",
		}))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Lookup(context.Background(), "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REQUEST_DENIED")
	assert.Contains(t, err.Error(), "API key is invalid")
}

func TestClient_Lookup_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Lookup(context.Background(), "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestClient_Lookup_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(headerContentType, contentTypeJSON)
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Lookup(context.Background(), "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestClient_Lookup_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	c.httpClient = &http.Client{Timeout: 50 * time.Millisecond}

	_, err := c.Lookup(context.Background(), "Paris")
	require.Error(t, err)
}

func TestClient_Lookup_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := testClient(srv.URL).Lookup(ctx, "Paris")
	require.Error(t, err)
}
