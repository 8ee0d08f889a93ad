package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/prop-engine/internal/api"
	"github.com/stitts-dev/prop-engine/internal/api/handlers"
	"github.com/stitts-dev/prop-engine/internal/cache"
	"github.com/stitts-dev/prop-engine/internal/gather"
	"github.com/stitts-dev/prop-engine/internal/halftime"
	"github.com/stitts-dev/prop-engine/internal/props"
	"github.com/stitts-dev/prop-engine/internal/providers"
	"github.com/stitts-dev/prop-engine/internal/store"
	"github.com/stitts-dev/prop-engine/internal/totals"
	"github.com/stitts-dev/prop-engine/pkg/config"
	"github.com/stitts-dev/prop-engine/pkg/database"
	"github.com/stitts-dev/prop-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tables := cfg.Tables()
	if err := tables.Validate(); err != nil {
		log.Fatalf("Invalid tuning tables: %v", err)
	}

	// Upstream providers
	upstreams := providers.Upstreams{
		Live: providers.NewNBALiveClient(cfg.NBALiveBaseURL, log),
	}
	if cfg.BallDontLieAPIKey != "" {
		bdl := providers.NewBallDontLieClient(cfg.BallDontLieBaseURL, cfg.BallDontLieAPIKey, cfg.BallDontLieRatePerMinute, tables.SecondHalf, log)
		upstreams.Season = bdl
		upstreams.History = bdl
		upstreams.Directory = bdl
		upstreams.Schedule = bdl
	} else {
		log.Warn("BALLDONTLIE_API_KEY not set, season stats and prop history are unavailable")
	}
	if cfg.TeamRatingsFile != "" {
		table, err := providers.LoadRatingsTable(cfg.TeamRatingsFile)
		if err != nil {
			log.Fatalf("Failed to load team ratings: %v", err)
		}
		upstreams.Ratings = table
		log.WithField("teams", table.Len()).Info("Team ratings loaded")
	} else {
		log.Warn("TEAM_RATINGS_FILE not set, every team will use league-average ratings")
	}

	breakers := providers.NewCircuitBreakers(cfg.CircuitBreakerThreshold, 30*time.Second, log)
	boundary := providers.NewBoundary(upstreams, breakers, cfg.ExternalAPITimeout, log)

	healthChecks := map[string]handlers.Pinger{}

	// Optional cross-request ratings cache
	var ratings providers.TeamRatingsProvider = boundary
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to parse Redis URL: %v", err)
		}
		cacheService := cache.NewCacheService(redis.NewClient(opt))
		if err := cacheService.Ping(context.Background()); err != nil {
			log.WithError(err).Warn("Redis unreachable, ratings cache will fall through to upstream")
		}
		ratings = cache.NewRatingsCache(boundary, cacheService, cfg.RatingsCacheTTL, log)
		healthChecks["redis"] = cacheService
	}

	// Optional analysis history
	var recorder handlers.AnalysisRecorder
	if cfg.DatabaseURL != "" {
		db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		analysisStore := store.New(db.DB, log)
		if err := analysisStore.Migrate(); err != nil {
			log.Fatalf("Failed to migrate analysis store: %v", err)
		}
		recorder = analysisStore
		healthChecks["database"] = db
	}

	gatherer := gather.NewGatherer(gather.Sources{
		Live:      boundary,
		Season:    boundary,
		Ratings:   ratings,
		Schedule:  boundary,
		Directory: boundary,
		History:   boundary,
	}, tables, cfg.SeasonFetchConcurrency, cfg.HistoryGames, log)

	router := api.NewRouter(api.Dependencies{
		Games:        boundary,
		Halftime:     halftime.NewEngine(gatherer, tables, log),
		Totals:       totals.NewEngine(gatherer, tables, log),
		Props:        props.NewAnalyzer(boundary, boundary, ratings, tables, cfg.HistoryGames, log),
		Recorder:     recorder,
		Breakers:     breakers,
		HealthChecks: healthChecks,
	}, log)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":    cfg.Port,
			"env":     cfg.Env,
			"store":   recorder != nil,
			"cache":   cfg.RedisURL != "",
			"bdl":     cfg.BallDontLieAPIKey != "",
			"timeout": cfg.ExternalAPITimeout.String(),
		}).Info("Starting prop engine server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
