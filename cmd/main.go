package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/joeylife94/boram-safety/internal/config"
	"github.com/joeylife94/boram-safety/internal/handlers"
	"github.com/joeylife94/boram-safety/internal/middleware"
	"github.com/joeylife94/boram-safety/internal/repository"
)

// @title Boram Safety Catalog API
// @version 1.0.0
// @description Product catalog service for safety equipment with change tracking and search

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8087
// @BasePath /api

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{Addr: "localhost:6379"}
	}
	redisClient := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	catalogRepo := repository.NewCatalogRepository(db, redisClient)

	productsHandler := handlers.NewProductsHandler(catalogRepo, cfg.DefaultPageSize, cfg.MaxPageSize)
	categoriesHandler := handlers.NewCategoriesHandler(catalogRepo, cfg.DefaultPageSize, cfg.MaxPageSize)
	auditHandler := handlers.NewAuditHandler(catalogRepo.Audit(), cfg.DefaultPageSize, cfg.MaxPageSize)
	importHandler := handlers.NewImportHandler(catalogRepo, cfg.DefaultPageSize, cfg.MaxPageSize)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir, cfg.MaxUploadSize)

	if cfg.AdminAPIKey == "" {
		log.Println("WARNING: ADMIN_API_KEY not set, admin routes will reject all requests")
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS())

	// Health and observability endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Uploaded product images
	router.Static("/images", cfg.UploadDir)

	// Public storefront endpoints
	api := router.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productsHandler.GetProducts)
			products.GET("/search", productsHandler.SearchProducts)
			products.GET("/suggestions", productsHandler.GetSuggestions)
			products.GET("/:id", productsHandler.GetProduct)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoriesHandler.GetCategories)
			categories.GET("/:code", categoriesHandler.GetCategory)
			categories.GET("/:code/products", categoriesHandler.GetCategoryProducts)
		}
	}

	// Admin endpoints, guarded by the static API key
	admin := router.Group("/api/admin")
	admin.Use(middleware.APIKeyAuth(cfg.AdminAPIKey))
	{
		admin.GET("/dashboard", productsHandler.GetDashboard)

		products := admin.Group("/products")
		{
			products.POST("", productsHandler.CreateProduct)
			products.PUT("/:id", productsHandler.UpdateProduct)
			products.DELETE("/:id", productsHandler.DeleteProduct)
			products.POST("/bulk-update", productsHandler.BulkUpdateProducts)
			products.POST("/bulk-delete", productsHandler.BulkDeleteProducts)

			products.GET("/import/template", importHandler.GetImportTemplate)
			products.POST("/import", importHandler.ImportProducts)
			products.GET("/export", importHandler.ExportProducts)
		}

		categories := admin.Group("/categories")
		{
			categories.POST("", categoriesHandler.CreateCategory)
			categories.PUT("/:id", categoriesHandler.UpdateCategory)
			categories.DELETE("/:id", categoriesHandler.DeleteCategory)
		}

		auditLogs := admin.Group("/audit-logs")
		{
			auditLogs.GET("", auditHandler.GetAuditLogs)
			auditLogs.GET("/recent", auditHandler.GetRecentActivity)
			auditLogs.GET("/:entityType/:entityId", auditHandler.GetEntityHistory)
		}

		admin.POST("/upload/image", uploadHandler.UploadImage)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Catalog service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down catalog service...")

	if err := redisClient.Close(); err != nil {
		log.Printf("Error closing Redis client: %v", err)
	}

	log.Println("Catalog service stopped")
}
