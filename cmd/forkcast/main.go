package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/forkcast-app/forkcast/internal/api"
	"github.com/forkcast-app/forkcast/internal/config"
	"github.com/forkcast-app/forkcast/internal/events"
	"github.com/forkcast-app/forkcast/internal/geocode"
	"github.com/forkcast-app/forkcast/internal/profile"
	"github.com/forkcast-app/forkcast/internal/recommend"
	"github.com/forkcast-app/forkcast/internal/social"
	"github.com/forkcast-app/forkcast/internal/store"
	"github.com/forkcast-app/forkcast/internal/trending"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel(cfg.Logging.Level)}))
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event bus, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to event bus")
		}
	}

	// Geocoder
	var geocoder geocode.Client
	if cfg.Geocoder.URL != "" {
		geocoder = geocode.NewHTTPClient(cfg.Geocoder.URL, cfg.Geocoder.Token)
	}

	// Scorer
	bonuses := recommend.BonusSet{
		Favorite:         cfg.Recommend.Bonuses.Favorite,
		FriendPick:       cfg.Recommend.Bonuses.FriendPick,
		QuietnessMatch:   cfg.Recommend.Bonuses.QuietnessMatch,
		PriceMatch:       cfg.Recommend.Bonuses.PriceMatch,
		CuisineMatch:     cfg.Recommend.Bonuses.CuisineMatch,
		MeetingTypeMatch: cfg.Recommend.Bonuses.MeetingTypeMatch,
		ProximityNear:    cfg.Recommend.Bonuses.ProximityNear,
		ProximityNearby:  cfg.Recommend.Bonuses.ProximityNearby,
		HighRating:       cfg.Recommend.Bonuses.HighRating,
		Fallback:         cfg.Recommend.Bonuses.Fallback,
		GroupFit:         cfg.Recommend.Bonuses.GroupFit,
	}
	if err := bonuses.Validate(); err != nil {
		logger.Error("invalid scoring bonuses", "error", err)
		os.Exit(1)
	}
	scorer := recommend.NewScorer(bonuses, logger)

	// Profile resolver and social signals
	resolver := profile.NewResolver(db, logger)
	var rng *rand.Rand
	if cfg.Recommend.ShuffleFriendPicks {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	signals := social.NewSource(db, rng, logger)

	// Trending tracker
	tracker := trending.New(db, eventsClient, cfg.TrendingRefreshInterval(), cfg.TrendingWindow(), cfg.Trending.Limit, logger)
	tracker.Start(ctx)
	defer tracker.Stop()
	logger.Info("trending tracker started", "refresh_interval", cfg.TrendingRefreshInterval())

	// API server
	router := api.NewRouter(api.RouterDeps{
		Store:        db,
		Resolver:     resolver,
		Scorer:       scorer,
		Signals:      signals,
		Geocoder:     geocoder,
		Events:       eventsClient,
		Trending:     tracker,
		CatalogLimit: cfg.Recommend.CatalogFetchLimit,
		AdminToken:   cfg.Server.AdminToken,
		Logger:       logger,
	})
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsRouter := api.NewMetricsRouter()
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: metricsRouter,
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func logLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
