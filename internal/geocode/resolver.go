package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
	"github.com/couchcryptid/calendar-map-service/internal/observability"
)

// Resolver resolves a single address to a location, trying the cheapest
// path first: cache, then embedded-coordinate shortcut, then the external
// provider. Pass a nil provider to run without network lookups; only cache
// hits and coordinate shortcuts will succeed.
type Resolver struct {
	provider domain.Provider
	cache    *Cache
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewResolver creates a Resolver around the given provider and cache.
func NewResolver(provider domain.Provider, cache *Cache, logger *slog.Logger, metrics *observability.Metrics) *Resolver {
	return &Resolver{
		provider: provider,
		cache:    cache,
		logger:   logger,
		metrics:  metrics,
	}
}

// Resolve converts one address into a resolved location. Failures carry a
// *domain.ResolveError classifying the cause; none are retried here.
func (r *Resolver) Resolve(ctx context.Context, address string) (domain.ResolvedLocation, error) {
	if strings.TrimSpace(address) == "" {
		r.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.ResolvedLocation{}, domain.ErrInvalidInput(address)
	}

	if loc, ok := r.cache.Get(address); ok {
		r.metrics.CacheLookups.WithLabelValues("hit").Inc()
		r.metrics.GeocodeRequests.WithLabelValues("cache").Inc()
		return loc, nil
	}
	r.metrics.CacheLookups.WithLabelValues("miss").Inc()

	// Embedded coordinates skip the provider entirely. Shortcut results are
	// not cached: re-parsing is cheaper than holding a map entry, and the
	// same string reused for a different purpose would otherwise pin a
	// stale value.
	if _, coord := domain.ParseCoordinates(address); coord != nil && coord.Valid() {
		r.metrics.GeocodeRequests.WithLabelValues("shortcut").Inc()
		return domain.ResolvedLocation{
			InputAddress:     address,
			FormattedAddress: address,
			Coordinate:       *coord,
		}, nil
	}

	if r.provider == nil {
		r.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.ResolvedLocation{}, domain.ErrProviderNotConfigured(address)
	}

	candidates, err := r.provider.Lookup(ctx, address)
	if err != nil {
		r.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		r.logger.Warn("provider lookup failed", "address", address, "error", err)
		return domain.ResolvedLocation{}, domain.ErrProvider(address, err)
	}
	if len(candidates) == 0 {
		r.metrics.GeocodeRequests.WithLabelValues("not_found").Inc()
		return domain.ResolvedLocation{}, domain.ErrNotFound(address)
	}

	// First candidate is the provider's highest-confidence match.
	best := candidates[0]
	if !best.Coordinate.Valid() {
		r.metrics.GeocodeRequests.WithLabelValues("error").Inc()
		return domain.ResolvedLocation{}, domain.ErrProvider(address,
			fmt.Errorf("provider returned out-of-range coordinates (%v, %v)", best.Coordinate.Lat, best.Coordinate.Lng))
	}

	loc := domain.ResolvedLocation{
		InputAddress:     address,
		FormattedAddress: best.FormattedAddress,
		Coordinate:       best.Coordinate,
		PlaceID:          best.PlaceID,
	}
	if best.Components != (domain.AddressComponents{}) {
		components := best.Components
		loc.Components = &components
	}

	// Cache under the original address; normalization happens inside.
	r.cache.Put(address, loc)
	r.metrics.CacheEntries.Set(float64(r.cache.Stats().Size))
	r.metrics.GeocodeRequests.WithLabelValues("provider").Inc()

	return loc, nil
}
