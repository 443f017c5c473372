package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bigsofa/bigsofa-backend/config"
	"github.com/bigsofa/bigsofa-backend/internal/app/controller"
	"github.com/bigsofa/bigsofa-backend/internal/app/model"
	"github.com/bigsofa/bigsofa-backend/internal/app/repository"
	"github.com/bigsofa/bigsofa-backend/internal/app/service"
	"github.com/bigsofa/bigsofa-backend/internal/catalog"
	"github.com/bigsofa/bigsofa-backend/internal/db"
	"github.com/bigsofa/bigsofa-backend/internal/middleware"
	"github.com/bigsofa/bigsofa-backend/internal/router"
	"github.com/bigsofa/bigsofa-backend/internal/scheduler"
	"github.com/bigsofa/bigsofa-backend/internal/session"
	"github.com/bigsofa/bigsofa-backend/internal/storage"
	"github.com/bigsofa/bigsofa-backend/internal/websocket"
	"github.com/bigsofa/bigsofa-backend/pkg/logger"
	"github.com/bigsofa/bigsofa-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting BIGSOFA Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Seed the default categories
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Session store: Redis when enabled, in-process memory otherwise
	var (
		sessionStore session.Store
		sweeper      *scheduler.SessionSweeper
	)
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer redis.Close()
		sessionStore = session.NewRedisStore(redis.GetClient(), cfg.Session.TTL)
	} else {
		memStore := session.NewMemoryStore(cfg.Session.TTL)
		sessionStore = memStore
		sweeper = scheduler.NewSessionSweeper(memStore)
		if err := sweeper.Start(); err != nil {
			logger.Fatal("Failed to start session sweeper", err)
		}
		defer sweeper.Stop()
	}

	// Image storage: S3 when enabled, local disk otherwise
	var imageStore storage.Storage
	if cfg.S3.Enabled {
		imageStore = storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		)
	} else {
		local, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPath)
		if err != nil {
			logger.Fatal("Failed to initialize local storage", err)
		}
		imageStore = local
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	furnitureRepo := repository.NewFurnitureRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())

	// Catalog loader: generation-counted snapshots over the furniture table
	loader := catalog.NewLoader(func(q catalog.Query) ([]model.FurnitureItem, error) {
		if q.CategoryID != 0 {
			return furnitureRepo.FindByCategoryID(q.CategoryID)
		}
		return furnitureRepo.FindAll()
	})

	// Initialize services
	catalogService := service.NewCatalogService(categoryRepo, furnitureRepo, loader)
	furnitureService := service.NewFurnitureService(furnitureRepo, categoryRepo, loader)
	orderService := service.NewOrderService(orderRepo, db.GetDB())
	adminAuthService := service.NewAdminAuthService(
		cfg.Admin.PasswordHash,
		cfg.Admin.TokenSecret,
		cfg.Admin.TokenExpiry,
	)

	// Order event feed for the dashboard
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize controllers
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(catalogService, orderService, hub)
	favoriteController := controller.NewFavoriteController()
	orderController := controller.NewOrderController(orderService, hub)
	adminAuthController := controller.NewAdminAuthController(adminAuthService)
	adminFurnitureController := controller.NewAdminFurnitureController(
		furnitureService,
		imageStore,
		cfg.Uploads.MaxSizeMB*1024*1024,
	)
	adminOrderController := controller.NewAdminOrderController(orderService, hub)

	// Initialize middleware
	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore)
	adminAuthMiddleware := middleware.NewAdminAuthMiddleware(cfg.Admin.TokenSecret)

	// Setup router
	r := router.NewRouter(
		catalogController,
		cartController,
		favoriteController,
		orderController,
		adminAuthController,
		adminFurnitureController,
		adminOrderController,
		sessionMiddleware,
		adminAuthMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
