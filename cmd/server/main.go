package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	calendaradapter "github.com/couchcryptid/calendar-map-service/internal/adapter/calendar"
	"github.com/couchcryptid/calendar-map-service/internal/adapter/google"
	httpadapter "github.com/couchcryptid/calendar-map-service/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/calendar-map-service/internal/adapter/kafka"
	"github.com/couchcryptid/calendar-map-service/internal/config"
	"github.com/couchcryptid/calendar-map-service/internal/domain"
	"github.com/couchcryptid/calendar-map-service/internal/geocode"
	"github.com/couchcryptid/calendar-map-service/internal/mapview"
	"github.com/couchcryptid/calendar-map-service/internal/observability"
)

const calendarTimeout = 15 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	// Geocoding provider is feature-flagged via GOOGLE_MAPS_API_KEY. Without
	// it, only embedded-coordinate locations resolve.
	var provider domain.Provider
	if cfg.GoogleMapsAPIKey != "" {
		provider = google.NewClient(cfg.GoogleMapsAPIKey, cfg.GeocodeTimeout, cfg.GeocodeRateLimit, metrics, logger)
		logger.Info("google geocoding enabled",
			"timeout", cfg.GeocodeTimeout, "rate_limit", cfg.GeocodeRateLimit)
	} else {
		logger.Info("google geocoding disabled")
	}

	cache := geocode.NewCache(cfg.GeocodeCacheSize, cfg.GeocodeCacheTTL, nil)
	resolver := geocode.NewResolver(provider, cache, logger, metrics)
	batch := geocode.NewBatchResolver(resolver, cfg.BatchMaxSize, logger, metrics)
	svc := geocode.NewService(resolver, batch, cache, cfg.BatchConcurrency)

	var source mapview.EventSource
	if cfg.CalendarBaseURL != "" {
		source = calendaradapter.NewClient(cfg.CalendarBaseURL, cfg.CalendarToken, cfg.CalendarPageSize, calendarTimeout, logger)
		logger.Info("calendar source enabled", "base_url", cfg.CalendarBaseURL, "page_size", cfg.CalendarPageSize)
	} else {
		logger.Info("calendar source disabled")
	}

	var writer *kafkaadapter.Writer
	var publisher mapview.PinPublisher
	if cfg.KafkaEnabled {
		writer = kafkaadapter.NewWriter(cfg.KafkaBrokers, cfg.KafkaSinkTopic, logger)
		publisher = writer
		logger.Info("kafka pin publishing enabled", "topic", cfg.KafkaSinkTopic)
	} else {
		logger.Info("kafka pin publishing disabled")
	}

	builder := mapview.NewBuilder(source, svc, publisher, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, svc, builder, svc, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http server listening", "addr", cfg.HTTPAddr)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if writer != nil {
		if err := writer.Close(); err != nil {
			logger.Error("kafka writer close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
