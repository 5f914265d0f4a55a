package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/kiranapos/kirana-api/internal/application/service"
	"github.com/kiranapos/kirana-api/internal/config"
	"github.com/kiranapos/kirana-api/internal/infrastructure/database"
	"github.com/kiranapos/kirana-api/internal/infrastructure/repository"
	"github.com/kiranapos/kirana-api/internal/presentation/http/handler"
	"github.com/kiranapos/kirana-api/internal/presentation/http/routes"
	"github.com/kiranapos/kirana-api/pkg/ai"
	"github.com/kiranapos/kirana-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	stockRepo := repository.NewStockReceiptRepository(db)
	expenseRepo := repository.NewExpenseRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Optional advisory text generator; insights fall back to rules only
	// when no API key is configured
	var generator ai.Generator
	if cfg.AI.GeminiAPIKey != "" {
		generator = ai.NewGeminiClient(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel, cfg.AI.RequestTimeout)
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	productService := service.NewProductService(productRepo)
	orderService := service.NewOrderService(orderRepo, productRepo)
	inventoryService := service.NewInventoryService(stockRepo, productRepo)
	expenseService := service.NewExpenseService(expenseRepo)
	dashboardService := service.NewDashboardService(analyticsRepo, orderRepo, productRepo)
	reportService := service.NewReportService(analyticsRepo)
	insightService := service.NewInsightService(analyticsRepo, productRepo, generator)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Product:   handler.NewProductHandler(productService),
		Order:     handler.NewOrderHandler(orderService),
		Stock:     handler.NewStockHandler(inventoryService),
		Expense:   handler.NewExpenseHandler(expenseService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Report:    handler.NewReportHandler(reportService, insightService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
