package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/flicky/go-storefront/internal/api"
	"github.com/flicky/go-storefront/internal/config"
	"github.com/flicky/go-storefront/internal/handler"
	"github.com/flicky/go-storefront/internal/middleware"
	"github.com/flicky/go-storefront/internal/service"
	"github.com/flicky/go-storefront/internal/session"
	"github.com/flicky/go-storefront/internal/worker"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis (optional product cache)
	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, caching disabled", "error", err)
			redisClient = nil
		} else {
			log.Info("connected to Redis")
		}
	}

	// Session
	storage, err := session.NewFileStorage(cfg.Session.Path)
	if err != nil {
		log.Error("open session storage", "error", err)
		os.Exit(1)
	}
	store := session.NewStore(storage)
	store.Initialize()
	if user, ok := store.CurrentUser(); ok {
		log.Info("restored session", "username", user.Username)
	}

	// Backend client and services
	client := api.NewClient(cfg.Backend.BaseURL, cfg.Backend.ProbeTimeout, store, log)
	catalogSvc := service.NewCatalogService(client, redisClient)
	cartSvc := service.NewCartService(client, catalogSvc, store)
	authSvc := service.NewAuthService(client, store)

	// Initial connectivity probe: report but keep serving, the status
	// banner surfaces the outcome.
	if err := client.Probe(ctx); err != nil {
		log.Warn("backend probe failed", "error", err)
	} else {
		log.Info("backend reachable", "base_url", cfg.Backend.BaseURL)
	}

	// Handlers
	catalogH := handler.NewCatalogHandler(catalogSvc, cfg.Catalog.PageSize)
	cartH := handler.NewCartHandler(cartSvc, store)
	authH := handler.NewAuthHandler(authSvc, store)
	statusH := handler.NewStatusHandler(client, redisClient)

	// Warmer
	warmer := worker.NewCatalogWarmer(catalogSvc, redisClient, log, cfg.Catalog.LandingPageSize, cfg.Catalog.WarmInterval)

	// Router
	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(log))
	router.GET("/healthz", statusH.Healthz)
	router.GET("/readyz", statusH.Readyz)

	catalog := router.Group("/catalog")
	catalog.GET("", catalogH.Browse)
	catalog.GET("/meta", catalogH.Meta)
	catalog.GET("/:id", catalogH.GetByID)
	catalog.GET("/:id/recommendations", catalogH.Recommendations)
	catalog.POST("", catalogH.Create)
	catalog.PUT("/:id", catalogH.Update)
	catalog.DELETE("/:id", catalogH.Delete)

	cart := router.Group("/cart")
	cart.GET("", cartH.GetCart)
	cart.POST("/items", cartH.AddItem)
	cart.DELETE("/items/:orderID", cartH.RemoveItem)
	cart.DELETE("", cartH.Clear)

	auth := router.Group("/auth")
	auth.POST("/login", authH.Login)
	auth.POST("/register", authH.Register)
	auth.POST("/logout", authH.Logout)
	auth.GET("/me", authH.Me)
	auth.GET("/session", authH.Session)
	auth.POST("/modal/close", authH.CloseAuthModal)

	warmer.Start(ctx)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info("starting storefront", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}

	warmer.Stop()
	cancel()
	log.Info("storefront stopped")
}
