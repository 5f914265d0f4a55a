package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kiranapos/kirana-api/internal/config"
	domainRepo "github.com/kiranapos/kirana-api/internal/domain/repository"
	"github.com/kiranapos/kirana-api/internal/presentation/http/handler"
	"github.com/kiranapos/kirana-api/internal/presentation/http/middleware"
	"github.com/kiranapos/kirana-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Order     *handler.OrderHandler
	Stock     *handler.StockHandler
	Expense   *handler.ExpenseHandler
	Dashboard *handler.DashboardHandler
	Report    *handler.ReportHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-user rate limiter
		rateLimiter := middleware.NewUserRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Profile
	protected.GET("/auth/me", h.Auth.Me)

	// Registering new cashiers is an admin action
	protected.POST("/auth/register", middleware.RequireRole("admin"), h.Auth.Register)
	protected.GET("/users", middleware.RequireRole("admin"), h.Auth.ListUsers)

	// Dashboard
	protected.GET("/dashboard", h.Dashboard.Get)

	registerProductRoutes(protected, h)
	registerOrderRoutes(protected, h, deps)
	registerStockRoutes(protected, h, deps)
	registerExpenseRoutes(protected, h)
	registerReportRoutes(protected, h)
}

func registerProductRoutes(protected *gin.RouterGroup, h *Handlers) {
	products := protected.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.GET("/categories", h.Product.Categories)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", middleware.RequireRole("admin"), h.Product.Delete)
	}
}

func registerOrderRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	orders := protected.Group("/orders")
	{
		orders.GET("", h.Order.List)
		// Checkout uses idempotency middleware so a retried request cannot
		// ring up the sale twice
		orders.POST("", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Order.Create)
		orders.GET("/number/:number", h.Order.GetByNumber)
		orders.GET("/:id", h.Order.Get)
		orders.POST("/:id/cancel", middleware.RequireRole("admin"), h.Order.Cancel)
		orders.POST("/:id/refund", middleware.RequireRole("admin"), h.Order.Refund)
	}
}

func registerStockRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	stock := protected.Group("/stock")
	{
		stock.GET("/receipts", h.Stock.List)
		stock.POST("/receipts", middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Stock.Receive)
		stock.GET("/receipts/:id", h.Stock.Get)
		stock.GET("/summary", h.Stock.Summary)
		stock.POST("/derive", h.Stock.DeriveField)
		stock.GET("/low", h.Stock.LowStock)
	}
}

func registerExpenseRoutes(protected *gin.RouterGroup, h *Handlers) {
	expenses := protected.Group("/expenses")
	{
		expenses.GET("", h.Expense.List)
		expenses.POST("", h.Expense.Create)
		expenses.GET("/summary", h.Expense.Summary)
		expenses.GET("/categories", h.Expense.Categories)
		expenses.GET("/:id", h.Expense.Get)
		expenses.PUT("/:id", h.Expense.Update)
		expenses.DELETE("/:id", middleware.RequireRole("admin"), h.Expense.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequireRole("admin"))
	{
		reports.GET("/financial", h.Report.Get)
		reports.GET("/insights", h.Report.Insights)
	}
}
