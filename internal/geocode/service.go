package geocode

import (
	"context"
	"errors"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
)

// Service bundles the resolver, batch resolver, and cache behind the
// surface the HTTP API consumes.
type Service struct {
	resolver    *Resolver
	batch       *BatchResolver
	cache       *Cache
	concurrency int
}

// NewService wires the geocoding components into one facade. A
// non-positive defaultConcurrency falls back to DefaultConcurrency.
func NewService(resolver *Resolver, batch *BatchResolver, cache *Cache, defaultConcurrency int) *Service {
	if defaultConcurrency <= 0 {
		defaultConcurrency = DefaultConcurrency
	}
	return &Service{resolver: resolver, batch: batch, cache: cache, concurrency: defaultConcurrency}
}

// Resolve resolves a single address.
func (s *Service) Resolve(ctx context.Context, address string) (domain.ResolvedLocation, error) {
	return s.resolver.Resolve(ctx, address)
}

// ResolveMany resolves a batch of addresses with bounded concurrency.
// Callers passing a non-positive concurrency get the configured default.
func (s *Service) ResolveMany(ctx context.Context, addresses []string, concurrency int) (domain.BatchOutcome, error) {
	if concurrency <= 0 {
		concurrency = s.concurrency
	}
	return s.batch.ResolveMany(ctx, addresses, concurrency)
}

// CheckReadiness reports nil when the service can resolve addresses over
// the network, or an error naming the missing configuration.
func (s *Service) CheckReadiness(_ context.Context) error {
	if s.resolver.provider == nil {
		return errors.New("geocoding provider is not configured")
	}
	return nil
}

// CacheStats reports cache size and configuration.
func (s *Service) CacheStats() CacheStats { return s.cache.Stats() }

// ClearCache drops all cached entries and returns the count removed.
func (s *Service) ClearCache() int { return s.cache.Clear() }

// SweepExpired removes expired entries ahead of their lazy expiry.
func (s *Service) SweepExpired() int { return s.cache.SweepExpired() }
