package mapview

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/calendar-map-service/internal/domain"
	"github.com/couchcryptid/calendar-map-service/internal/observability"
)

// EventSource lists calendar events for a time window.
type EventSource interface {
	ListEvents(ctx context.Context, from, to time.Time) ([]domain.Event, error)
}

// BatchGeocoder resolves a list of addresses with bounded concurrency.
type BatchGeocoder interface {
	ResolveMany(ctx context.Context, addresses []string, concurrency int) (domain.BatchOutcome, error)
}

// PinPublisher pushes enriched pins to downstream consumers.
type PinPublisher interface {
	PublishPins(ctx context.Context, pins []domain.MapPin) error
}

// Builder fetches calendar events, geocodes their locations, and assembles
// the map view. A nil publisher disables downstream publishing.
type Builder struct {
	source    EventSource
	geocoder  BatchGeocoder
	publisher PinPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
}

// NewBuilder wires the enrichment stages together.
func NewBuilder(source EventSource, geocoder BatchGeocoder, publisher PinPublisher, logger *slog.Logger, metrics *observability.Metrics) *Builder {
	return &Builder{
		source:    source,
		geocoder:  geocoder,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// MapView builds the enriched view for events in the [from, to] window.
// Geocoding failures degrade to un-pinned events; only a missing source or
// a failed event fetch is fatal.
func (b *Builder) MapView(ctx context.Context, from, to time.Time) (domain.MapView, error) {
	if b.source == nil {
		return domain.MapView{}, fmt.Errorf("calendar source is not configured")
	}

	events, err := b.source.ListEvents(ctx, from, to)
	if err != nil {
		return domain.MapView{}, fmt.Errorf("list events: %w", err)
	}

	located := domain.LocatedEvents(events)
	if len(located) == 0 {
		return domain.BuildMapView(nil, domain.BatchOutcome{}), nil
	}

	outcome, err := b.geocoder.ResolveMany(ctx, domain.DistinctLocations(located), 0)
	if err != nil {
		return domain.MapView{}, fmt.Errorf("resolve locations: %w", err)
	}

	view := domain.BuildMapView(located, outcome)
	b.metrics.EventsEnriched.Add(float64(len(view.Pins)))

	// Publishing is best-effort: a sink outage must not break the map.
	if b.publisher != nil && len(view.Pins) > 0 {
		if err := b.publisher.PublishPins(ctx, view.Pins); err != nil {
			b.logger.Warn("publish pins failed", "error", err, "pins", len(view.Pins))
		}
	}

	return view, nil
}
