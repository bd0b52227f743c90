package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"poirec-server/config"
	"poirec-server/handlers"
	"poirec-server/logging"
	"poirec-server/search"
	"poirec-server/services"
	"poirec-server/store"
)

type repositories struct {
	pois       services.POIRepository
	categories services.CategoryRepository
	users      services.UserRepository
	checkins   services.CheckinRepository
	close      func(context.Context)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		logging.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open store")
	}
	defer repos.close(context.Background())

	var cache services.UserCache
	if cfg.Redis.Addr != "" {
		client, err := store.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.DB)
		if err != nil {
			logging.Warn().Err(err).Msg("Redis unavailable, user cache disabled")
		} else {
			defer client.Close()
			cache = store.NewRedisUserCache(client, cfg.Redis.UserTTL)
		}
	}

	poiService := services.NewPoiService(repos.pois, repos.categories, cfg.Search.SuggestLimit).
		WithDefaultLimit(cfg.Search.DefaultLimit)
	if cfg.Store.Driver == "memory" && cfg.Store.SeedFile != "" {
		if err := services.Seed(ctx, cfg.Store.SeedFile, repos.categories, poiService); err != nil {
			logging.Fatal().Err(err).Msg("Failed to seed in-memory store")
		}
	}

	var recommender search.Recommender = services.PassthroughRecommender{}
	if cfg.Recommender.URL != "" {
		recommender = services.NewHTTPRecommender(services.RecommenderOptions{
			BaseURL:          cfg.Recommender.URL,
			Timeout:          cfg.Recommender.Timeout,
			FailureThreshold: cfg.Recommender.FailureThreshold,
			OpenTimeout:      cfg.Recommender.OpenTimeout,
		})
	} else {
		logging.Warn().Msg("RECOMMENDER_URL not set, recommendations are returned unranked")
	}

	userService := services.NewUserService(repos.users, cache)
	router := handlers.NewRouter(handlers.Services{
		POIs:         poiService,
		Users:        userService,
		Auth:         services.NewAuthService(repos.users, userService, cfg.JWT.Secret, cfg.JWT.TTL),
		Checkins:     services.NewCheckinService(repos.checkins, repos.pois),
		Orchestrator: search.NewOrchestrator(repos.pois, userService, recommender),
	}, handlers.RouterConfig{
		JWTSecret:       cfg.JWT.Secret,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: cfg.Server.RateLimitWindow,
		CategoryLimit:   cfg.Search.CategoryLimit,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Str("store", cfg.Store.Driver).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func openRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	if cfg.Store.Driver == "memory" {
		return &repositories{
			pois:       store.NewMemoryPOIStore(),
			categories: store.NewMemoryCategoryStore(),
			users:      store.NewMemoryUserStore(),
			checkins:   store.NewMemoryCheckinStore(),
			close:      func(context.Context) {},
		}, nil
	}

	client, err := store.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.ConnectTimeout)
	if err != nil {
		return nil, err
	}
	db := client.Database(cfg.Mongo.Database)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &repositories{
		pois:       store.NewMongoPOIStore(db),
		categories: store.NewMongoCategoryStore(db),
		users:      store.NewMongoUserStore(db),
		checkins:   store.NewMongoCheckinStore(db),
		close: func(ctx context.Context) {
			if err := client.Disconnect(ctx); err != nil {
				logging.Error().Err(err).Msg("Failed to disconnect from MongoDB")
			}
		},
	}, nil
}
