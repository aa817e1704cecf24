package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"tally/internal/config"
	"tally/internal/database"
	"tally/internal/gateway"
	"tally/internal/handlers"
	"tally/internal/logger"
	"tally/internal/middleware"
	"tally/internal/seed"
	"tally/internal/store"
	"tally/internal/validator"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations (schema plus the seed category rows)
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize gateways and the application store
	db := dbManager.DB()
	categoryGW := gateway.NewCategoryGateway(db)
	appStore := store.New(
		gateway.NewTransactionGateway(db),
		categoryGW,
		store.WithSyncRevertDelays(appConfig.SyncRevertSuccess, appConfig.SyncRevertFailure),
	)

	// Stores provisioned without the seed migration start with no categories
	// at all; backfill the default set before the bootstrap fetch.
	if err := seed.Ensure(context.Background(), categoryGW); err != nil {
		log.Warnf("Category seeding failed: %v", err)
	}

	// Bootstrap the cache. A failed bootstrap is not fatal: the API serves
	// 503s and POST /api/v1/reload retries the fetch.
	if err := appStore.Initialize(context.Background()); err != nil {
		log.Warnf("Bootstrap failed, waiting for manual reload: %v", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize handlers
	transactionHandler := handlers.NewTransactionHandler(appStore)
	categoryHandler := handlers.NewCategoryHandler(appStore)
	statsHandler := handlers.NewStatsHandler(appStore)
	viewHandler := handlers.NewViewHandler(appStore)
	dataHandler := handlers.NewDataHandler(appStore)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group, authenticated with the hosted provider's bearer tokens
	v1 := router.Group("/api/v1")
	v1.Use(middleware.AuthMiddleware())
	{
		v1.GET("/state", viewHandler.GetState)
		v1.POST("/reload", viewHandler.Reload)
		v1.PUT("/view/date", viewHandler.SetCurrentDate)
		v1.PUT("/view/range", viewHandler.SetDateRange)
		v1.PUT("/view/filter", viewHandler.SetSearchFilter)
		v1.DELETE("/view/filter", viewHandler.ClearSearchFilter)

		v1.GET("/transactions", transactionHandler.ListTransactions)
		v1.POST("/transactions", transactionHandler.CreateTransaction)
		v1.PUT("/transactions/:id", transactionHandler.UpdateTransaction)
		v1.DELETE("/transactions/:id", transactionHandler.DeleteTransaction)

		v1.GET("/categories", categoryHandler.ListCategories)
		v1.POST("/categories", categoryHandler.CreateCategory)
		v1.PUT("/categories/:id", categoryHandler.UpdateCategory)
		v1.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		v1.GET("/statistics", statsHandler.GetStatistics)

		v1.GET("/data/export", dataHandler.ExportWorkbook)
		v1.POST("/data/import", dataHandler.ImportWorkbook)
		v1.DELETE("/data", dataHandler.ClearAllData)
	}

	log.Infof("Server listening on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
