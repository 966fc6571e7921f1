package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/lowstock/internal/cache"
	"github.com/GTDGit/lowstock/internal/config"
	"github.com/GTDGit/lowstock/internal/handler"
	"github.com/GTDGit/lowstock/internal/metrics"
	"github.com/GTDGit/lowstock/internal/middleware"
	"github.com/GTDGit/lowstock/internal/service"
	"github.com/GTDGit/lowstock/internal/web"
	"github.com/GTDGit/lowstock/internal/worker"
	"github.com/GTDGit/lowstock/pkg/wildberries"
)

// main is the entrypoint for the low-stock finder web server.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting lowstock")

	// 3. Response cache: Redis when configured, in-process otherwise
	var responseCache cache.ResponseCache = cache.NewMemoryCache()
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, falling back to in-memory cache")
		} else {
			defer redisClient.Close()
			responseCache = redisClient
			log.Info().Msg("redis connected successfully")
		}
	}

	// 4. Marketplace client
	wbClient := wildberries.NewClient(wildberries.Config{
		SearchURL: cfg.Marketplace.SearchURL,
		DetailURL: cfg.Marketplace.DetailURL,
		Currency:  cfg.Marketplace.Currency,
		Dest:      cfg.Marketplace.Dest,
		Timeout:   cfg.Marketplace.Timeout,
	})

	// 5. Services
	categorySvc := service.NewCategoryService(wbClient, responseCache, cfg.Marketplace.TreeMirrors, cfg.Search.TreeCacheTTL)
	searchSvc := service.NewSearchService(wbClient, cfg.Search.DetailBatchSize, cfg.Marketplace.ProductURLTemplate)

	// 6. Handlers
	handlers := &Handlers{
		Health:   handler.NewHealthHandler(responseCache.Backend()),
		Page:     handler.NewPageHandler(cfg.Search.DefaultThreshold, cfg.Search.DefaultMaxPages),
		Category: handler.NewCategoryHandler(categorySvc),
		Search:   handler.NewSearchHandler(searchSvc, cfg.Search.DefaultMaxPages),
	}

	// 7. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.HTTP.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.SetHTMLTemplate(web.Templates())
	setupRoutes(router, handlers, cfg.HTTP.MetricsEnabled)

	// 8. Create context for graceful shutdown and start workers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Search.TreeRefreshInterval > 0 {
		go worker.NewTreeRefreshWorker(categorySvc, cfg.Search.TreeRefreshInterval).Start(ctx)
	}

	// 9. Start HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 10. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 11. Cancel context to stop workers
	cancel()

	// 12. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health   *handler.HealthHandler
	Page     *handler.PageHandler
	Category *handler.CategoryHandler
	Search   *handler.SearchHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, metricsEnabled bool) {
	router.GET("/", handlers.Page.Index)
	router.GET("/health", handlers.Health.GetHealth)

	router.GET("/categories", handlers.Category.GetCategories)
	router.POST("/search", handlers.Search.Search)
	router.POST("/search/export", handlers.Search.Export)

	if metricsEnabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
