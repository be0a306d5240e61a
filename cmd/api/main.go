package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"tripspot/internal/adapter/api"
	"tripspot/internal/adapter/api/handler"
	apimiddleware "tripspot/internal/adapter/api/middleware"
	"tripspot/internal/adapter/api/router"
	"tripspot/internal/adapter/repository"
	"tripspot/internal/domain/service"
	"tripspot/internal/infrastructure/cache"
	"tripspot/internal/infrastructure/firebase"
	"tripspot/internal/infrastructure/ratelimit"
	"tripspot/internal/infrastructure/scheduler"
	"tripspot/internal/infrastructure/searchindex"
	"tripspot/internal/infrastructure/storage"
	"tripspot/internal/infrastructure/websocket"
	"tripspot/internal/usecase"
	"tripspot/pkg/config"
	"tripspot/pkg/logger"
)

const (
	jobTimeout      = 5 * time.Minute
	shutdownTimeout = 15 * time.Second
	bucketIdleTTL   = 30 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	logger.Init(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opt, err := credentials(cfg)
	if err != nil {
		fatal("Invalid service account configuration: %v", err)
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		fatal("Failed to initialize Firebase: %v", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		fatal("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opt)
	if err != nil {
		fatal("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, opt)
	if err != nil {
		fatal("Failed to initialize Cloud Storage: %v", err)
	}
	defer storageClient.Close()

	var placeCache cache.Cache = cache.Noop{}
	if cfg.RedisURL != "" {
		redisCache, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			logger.Warn("Redis unavailable, running without cache: %v", err)
		} else {
			defer redisCache.Close()
			placeCache = redisCache
			logger.Info("Using Redis cache")
		}
	}

	placeRepo := repository.NewFirestorePlaceRepository(firestoreClient)
	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	reviewRepo := repository.NewFirestoreReviewRepository(firestoreClient)
	fileMetadataRepo := repository.NewFirestoreFileMetadataRepository(firestoreClient)

	gateway := usecase.NewPlaceGateway(placeRepo, placeCache, usecase.GatewayOptions{
		Placeholder:  cfg.PlaceholderImage,
		QueryTimeout: cfg.QueryTimeout,
		ListTTL:      cfg.CacheTTLList,
		DetailTTL:    cfg.CacheTTLDetail,
		SuggestTTL:   cfg.CacheTTLSuggest,
	})

	// A nil interface selects the scan backend
	var keywordIndex service.KeywordIndex
	if cfg.SuggestBackend == "index" {
		index, err := searchindex.NewKeywordIndex()
		if err != nil {
			fatal("Failed to create keyword index: %v", err)
		}
		defer index.Close()
		keywordIndex = index
	}

	firebaseAuthClient := firebase.NewFirebaseAuthClient(authClient)

	userUseCase := usecase.NewUserUseCase(userRepo)
	reviewUseCase := usecase.NewReviewUseCase(reviewRepo, gateway)
	suggestionUseCase := usecase.NewSuggestionUseCase(placeRepo, gateway, keywordIndex, cfg.SuggestionLimit)
	contributeUseCase := usecase.NewContributeUseCase(gateway, placeRepo, fileMetadataRepo, storageClient, suggestionUseCase, cfg.OrphanTTL)

	limiter := ratelimit.NewRateLimiter(cfg.WriteRateRPS, cfg.WriteRateBurst)
	limiter.SetLimit(ratelimit.ActionReview, ratelimit.Limit{RPS: 0.2, Burst: 3})

	jobs := scheduler.New(jobTimeout)
	mustRegister(jobs, "orphan-cleanup", cfg.OrphanCleanupSchedule, func(ctx context.Context) error {
		removed, err := contributeUseCase.CleanupOrphans(ctx)
		if removed > 0 {
			logger.Info("Removed %d abandoned drafts", removed)
		}
		return err
	})
	if keywordIndex != nil {
		mustRegister(jobs, "keyword-index", cfg.IndexRefreshSchedule, suggestionUseCase.RefreshIndex)
		jobs.RunNow("keyword-index", suggestionUseCase.RefreshIndex)
	}
	mustRegister(jobs, "rate-limit-cleanup", "*/15 * * * *", func(ctx context.Context) error {
		logger.Debug("Dropped %d idle rate limit buckets", limiter.Cleanup(bucketIdleTTL))
		return nil
	})
	jobs.Start()
	defer jobs.Stop()

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	authMiddleware := apimiddleware.NewAuthMiddleware(firebaseAuthClient, userUseCase)
	rateLimitMiddleware := apimiddleware.NewRateLimitMiddleware(limiter)

	handlers := &handler.Handlers{
		Health:     handler.NewHealthHandler(wsManager, keywordIndex),
		Place:      handler.NewPlaceHandler(gateway, userRepo, cfg.PlaceholderImage, cfg.PerPage, cfg.MaxVisiblePages),
		Review:     handler.NewReviewHandler(reviewUseCase, cfg.MaxVisiblePages),
		Contribute: handler.NewContributeHandler(contributeUseCase),
		Suggest:    handler.NewSuggestHandler(suggestionUseCase),
		Wishlist:   handler.NewWishlistHandler(gateway, userRepo, cfg.PerPage, cfg.MaxVisiblePages),
		User:       handler.NewUserHandler(userUseCase),
		WebSocket:  handler.NewWebSocketHandler(ctx, wsManager, authMiddleware, gateway, userRepo, cfg.PerPage, cfg.MaxVisiblePages),
	}

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(apimiddleware.Notices)

	e.Validator = api.NewValidator()

	router.Setup(e, handlers, authMiddleware, rateLimitMiddleware)

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}

// credentials prefers inline JSON (production) over a key file (local development).
func credentials(cfg *config.Config) (option.ClientOption, error) {
	if cfg.ServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.ServiceAccountJSON)), nil
	}

	path := cfg.ServiceAccountPath
	if path == "" {
		path = "./serviceAccountKey.json"
	}
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	logger.Info("Using Firebase service account from file: %s", path)
	return option.WithCredentialsFile(path), nil
}

func mustRegister(s *scheduler.Scheduler, name, spec string, job scheduler.Job) {
	if err := s.Register(name, spec, job); err != nil {
		fatal("Failed to schedule %s: %v", name, err)
	}
}

func fatal(format string, v ...interface{}) {
	logger.Error(format, v...)
	os.Exit(1)
}
