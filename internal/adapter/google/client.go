package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
	"github.com/couchcryptid/calendar-map-service/internal/observability"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// Client implements domain.Provider using the Google Geocoding API.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Google geocoding client. requestsPerSec throttles
// outbound calls to stay under the API quota.
func NewClient(apiKey string, timeout time.Duration, requestsPerSec int, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if requestsPerSec <= 0 {
		requestsPerSec = 10
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: defaultBaseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		metrics: metrics,
		logger:  logger,
	}
}

// Lookup converts a free-text address into candidate matches, ordered
// most-confident first. ZERO_RESULTS yields a nil slice without error.
func (c *Client) Lookup(ctx context.Context, address string) ([]domain.Candidate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("geocode rate limit: %w", err)
	}

	params := url.Values{
		"address": {address},
		"key":     {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.ProviderDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("geocode request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("geocoding API error: status %d: %s", resp.StatusCode, body)
	}

	var geocodeResp response
	if err := json.NewDecoder(resp.Body).Decode(&geocodeResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	switch geocodeResp.Status {
	case "OK":
	case "ZERO_RESULTS":
		return nil, nil
	default:
		if geocodeResp.ErrorMessage != "" {
			return nil, fmt.Errorf("geocoding API status %s: %s", geocodeResp.Status, geocodeResp.ErrorMessage)
		}
		return nil, fmt.Errorf("geocoding API status %s", geocodeResp.Status)
	}

	candidates := make([]domain.Candidate, 0, len(geocodeResp.Results))
	for _, r := range geocodeResp.Results {
		candidates = append(candidates, domain.Candidate{
			FormattedAddress: r.FormattedAddress,
			Coordinate: domain.Coordinate{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			PlaceID:    r.PlaceID,
			Components: extractComponents(r.AddressComponents),
		})
	}
	return candidates, nil
}

// extractComponents maps Google address_components onto the best-effort
// structured breakdown. Missing components fail closed: the field stays
// its zero value.
func extractComponents(components []component) domain.AddressComponents {
	var out domain.AddressComponents
	var streetNumber, route string

	for _, comp := range components {
		for _, typ := range comp.Types {
			switch typ {
			case "country":
				out.Country = comp.LongName
			case "administrative_area_level_1":
				out.State = comp.LongName
			case "locality":
				out.City = comp.LongName
			case "route":
				route = comp.LongName
			case "street_number":
				streetNumber = comp.LongName
			}
		}
	}

	out.Street = strings.TrimSpace(streetNumber + " " + route)
	return out
}

// Google Geocoding API response types.

type response struct {
	Results      []result `json:"results"`
	Status       string   `json:"status"` // OK, ZERO_RESULTS, REQUEST_DENIED, ...
	ErrorMessage string   `json:"error_message"`
}

type result struct {
	FormattedAddress  string      `json:"formatted_address"`
	PlaceID           string      `json:"place_id"`
	Geometry          geometry    `json:"geometry"`
	AddressComponents []component `json:"address_components"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type component struct {
	LongName  string   `json:"long_name"`
	ShortName string   `json:"short_name"`
	Types     []string `json:"types"`
}
