// @title Portfolio Tracker API
// @version 1.0
// @description ETF and SCPI holdings, allocation and base-100 performance dashboard.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/epeers/portfolio-tracker/config"
	_ "github.com/epeers/portfolio-tracker/docs"
	"github.com/epeers/portfolio-tracker/internal/auth"
	"github.com/epeers/portfolio-tracker/internal/cache"
	"github.com/epeers/portfolio-tracker/internal/database"
	"github.com/epeers/portfolio-tracker/internal/handlers"
	"github.com/epeers/portfolio-tracker/internal/marketdata"
	"github.com/epeers/portfolio-tracker/internal/middleware"
	"github.com/epeers/portfolio-tracker/internal/repository"
	"github.com/epeers/portfolio-tracker/internal/services"
	"github.com/epeers/portfolio-tracker/internal/util"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const cacheSweepInterval = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	log.SetLevel(cfg.LogLevel)
	decimal.MarshalJSONWithoutQuotes = true

	// Create context for initialization
	ctx := context.Background()

	// Initialize storage
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open %s storage: %v", cfg.StorageBackend, err)
	}
	defer store.close()
	userStore := store.users

	// Optional Redis for sessions and the shared price cache
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = cache.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
	}

	// Initialize market data
	upstream, err := marketdata.New(cfg.MarketDataProvider, cfg.AVKey)
	if err != nil {
		log.Fatalf("Failed to create market data provider: %v", err)
	}
	memCache := cache.NewMemoryCache()
	sharedCache := store.prices
	if rdb != nil {
		sharedCache = cache.NewRedisCache(rdb, "prices:")
	}
	clock := util.NewMarketClock(cfg.MarketTimezone, 17, 35)
	provider := marketdata.NewCachedProvider(upstream, memCache, sharedCache, clock)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go sweepCache(sweepCtx, memCache)

	// Initialize authentication
	var sessions auth.SessionStore = auth.NewMemorySessionStore()
	if rdb != nil {
		sessions = auth.NewRedisSessionStore(rdb, "session:")
	}
	tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL)
	if err != nil {
		log.Fatalf("Failed to create token issuer: %v", err)
	}
	var authenticator auth.Authenticator
	switch cfg.AuthMode {
	case config.AuthAccounts:
		authenticator = auth.NewAccountAuthenticator(userStore)
	case config.AuthShared:
		authenticator = auth.NewSharedSecretAuthenticator(cfg.SharedPassword)
		userStore = nil
	default:
		authenticator = auth.LocalAuthenticator{}
		userStore = nil
	}

	// Initialize services
	authSvc := services.NewAuthService(userStore, authenticator, tokens, sessions)
	holdingsSvc := services.NewHoldingsService(store.holdings)
	performanceSvc := services.NewPerformanceService(provider, cfg.MaxConcurrentFetches, cfg.FetchTimeout)
	dashboardSvc := services.NewDashboardService(holdingsSvc, performanceSvc, sessions)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authSvc)
	holdingsHandler := handlers.NewHoldingsHandler(holdingsSvc, dashboardSvc)
	dashboardHandler := handlers.NewDashboardHandler(dashboardSvc)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.ValidateSession(authSvc, cfg.AuthMode == config.AuthNone))

	handlers.RegisterRoutes(router, authHandler, holdingsHandler, dashboardHandler)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Infof("Starting server on port %s (storage=%s auth=%s provider=%s)",
			cfg.Port, cfg.StorageBackend, cfg.AuthMode, cfg.MarketDataProvider)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// storage is the opened persistence backend. users is nil for backends
// without an accounts table; prices is nil unless the backend can share a
// price cache.
type storage struct {
	holdings repository.HoldingsStore
	users    repository.UserStore
	prices   marketdata.HistoryCache
	close    func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := database.New(ctx, cfg.PGURL)
		if err != nil {
			return nil, err
		}
		repo := repository.NewPostgresRepository(db.Pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return &storage{
			holdings: repo,
			users:    repo,
			prices:   repository.NewPriceCacheRepository(db.Pool),
			close:    db.Close,
		}, nil

	case config.StorageSQLite:
		repo, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &storage{holdings: repo, users: repo, close: closeLogged("sqlite", repo.Close)}, nil

	case config.StorageFirestore:
		repo, err := repository.OpenFirestore(ctx, cfg.FirestoreProject, cfg.FirestoreCollection)
		if err != nil {
			return nil, err
		}
		return &storage{holdings: repo, close: closeLogged("firestore", repo.Close)}, nil

	default:
		return &storage{holdings: repository.NewFileRepository(cfg.HoldingsFile), close: func() {}}, nil
	}
}

func closeLogged(name string, closeFn func() error) func() {
	return func() {
		if err := closeFn(); err != nil {
			log.Warnf("failed to close %s: %v", name, err)
		}
	}
}

// sweepCache drops expired price series until ctx is done
func sweepCache(ctx context.Context, c *cache.MemoryCache) {
	ticker := time.NewTicker(cacheSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Evict(); n > 0 {
				log.Debugf("evicted %d expired price series", n)
			}
		}
	}
}
