package geocode

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
	"github.com/couchcryptid/calendar-map-service/internal/observability"
)

const (
	// DefaultConcurrency bounds how many resolutions run at once when the
	// caller does not say otherwise.
	DefaultConcurrency = 5

	// defaultGroupPause is the throttle between successive concurrency
	// groups, keeping bursts under external provider rate limits.
	defaultGroupPause = 100 * time.Millisecond
)

// BatchResolver resolves many addresses with bounded concurrency while
// isolating individual failures: one address failing never cancels the
// rest of the batch.
type BatchResolver struct {
	resolver     *Resolver
	logger       *slog.Logger
	metrics      *observability.Metrics
	maxBatchSize int
	groupPause   time.Duration
}

// NewBatchResolver creates a BatchResolver rejecting batches larger than
// maxBatchSize distinct-or-not input addresses.
func NewBatchResolver(resolver *Resolver, maxBatchSize int, logger *slog.Logger, metrics *observability.Metrics) *BatchResolver {
	return &BatchResolver{
		resolver:     resolver,
		logger:       logger,
		metrics:      metrics,
		maxBatchSize: maxBatchSize,
		groupPause:   defaultGroupPause,
	}
}

// ResolveMany deduplicates the input, resolves the distinct addresses in
// groups of at most concurrency at a time, and reports every distinct
// address as either resolved or failed. Only an empty or oversized input
// rejects the whole batch; everything else is per-address.
//
// Callers needing positional correspondence expand the outcome back across
// duplicates themselves (see domain.BuildMapView).
func (b *BatchResolver) ResolveMany(ctx context.Context, addresses []string, concurrency int) (domain.BatchOutcome, error) {
	if len(addresses) == 0 {
		return domain.BatchOutcome{}, domain.ErrBatchValidation("address list is empty")
	}
	if len(addresses) > b.maxBatchSize {
		return domain.BatchOutcome{}, domain.ErrBatchValidation(
			fmt.Sprintf("batch of %d addresses exceeds maximum of %d", len(addresses), b.maxBatchSize))
	}
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	distinct := dedupe(addresses)
	b.metrics.BatchSize.Observe(float64(len(distinct)))

	outcome := domain.BatchOutcome{
		Resolved: make(map[string]domain.ResolvedLocation, len(distinct)),
		Failed:   make(map[string]string),
	}
	var mu sync.Mutex

	for start := 0; start < len(distinct); start += concurrency {
		if start > 0 {
			// Deliberate throttle between groups, not an optimization
			// target. A cancelled context skips the pause; the remaining
			// resolutions then fail fast and land in Failed.
			sleepWithContext(ctx, b.groupPause)
		}

		end := min(start+concurrency, len(distinct))
		g := new(errgroup.Group)
		for _, address := range distinct[start:end] {
			g.Go(func() error {
				loc, err := b.resolver.Resolve(ctx, address)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					outcome.Failed[address] = err.Error()
					return nil
				}
				outcome.Resolved[address] = loc
				return nil
			})
		}
		g.Wait() //nolint:errcheck // workers capture failures as data
	}

	if len(outcome.Failed) > 0 {
		b.metrics.BatchFailures.Add(float64(len(outcome.Failed)))
		b.logger.Warn("batch completed with failures",
			"resolved", len(outcome.Resolved),
			"failed", len(outcome.Failed),
		)
	}

	return outcome, nil
}

// dedupe returns the distinct addresses in first-seen order.
func dedupe(addresses []string) []string {
	seen := make(map[string]struct{}, len(addresses))
	distinct := make([]string, 0, len(addresses))
	for _, a := range addresses {
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		distinct = append(distinct, a)
	}
	return distinct
}

// sleepWithContext sleeps for d unless the context is cancelled first.
func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
