// Command geocode resolves addresses from the command line and prints the
// results as a table. It shares the server's configuration surface, so a
// .env file with GOOGLE_MAPS_API_KEY is enough to run it.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"

	"github.com/couchcryptid/calendar-map-service/internal/adapter/google"
	"github.com/couchcryptid/calendar-map-service/internal/config"
	"github.com/couchcryptid/calendar-map-service/internal/domain"
	"github.com/couchcryptid/calendar-map-service/internal/geocode"
	"github.com/couchcryptid/calendar-map-service/internal/observability"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <address> [address ...]\n", os.Args[0])
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	metrics := observability.NewMetricsForTesting()

	var provider domain.Provider
	if cfg.GoogleMapsAPIKey != "" {
		provider = google.NewClient(cfg.GoogleMapsAPIKey, cfg.GeocodeTimeout, cfg.GeocodeRateLimit, metrics, logger)
	}

	cache := geocode.NewCache(cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL, nil)
	resolver := geocode.NewResolver(provider, cache, logger, metrics)
	batch := geocode.NewBatchResolver(resolver, cfg.BatchMaxSize, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, err := batch.ResolveMany(ctx, os.Args[1:], cfg.BatchConcurrency)
	if err != nil {
		fmt.Fprintln(os.Stderr, "resolve failed:", err)
		os.Exit(1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Address", "Latitude", "Longitude", "Resolved As"})

	for _, addr := range sortedKeys(outcome.Resolved) {
		loc := outcome.Resolved[addr]
		table.Append([]string{
			addr,
			fmt.Sprintf("%.6f", loc.Coordinate.Lat),
			fmt.Sprintf("%.6f", loc.Coordinate.Lng),
			loc.FormattedAddress,
		})
	}
	for _, addr := range sortedKeys(outcome.Failed) {
		table.Append([]string{addr, "-", "-", outcome.Failed[addr]})
	}

	table.Render()

	if len(outcome.Failed) > 0 {
		os.Exit(1)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
