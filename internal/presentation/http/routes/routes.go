package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/viewtouch/settle-api/internal/config"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	domainRepo "github.com/viewtouch/settle-api/internal/domain/repository"
	"github.com/viewtouch/settle-api/internal/presentation/http/handler"
	"github.com/viewtouch/settle-api/internal/presentation/http/middleware"
	"github.com/viewtouch/settle-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth     *handler.AuthHandler
	Check    *handler.CheckHandler
	Discount *handler.DiscountHandler
	Settings *handler.SettingsHandler
	Printer  *handler.PrinterHandler
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

	duration := deps.Cfg.RateLimit.Duration
	if duration <= 0 {
		duration = 1
	}
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(duration),
		BurstSize:         deps.Cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "ok",
			"service":      deps.Cfg.App.Name,
			"rate_limiter": rateLimiter.Stats(),
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h, rateLimiter)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers, rateLimiter *middleware.RateLimiter) {
	auth := v1.Group("/auth")
	auth.Use(rateLimiter.Middleware())
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Auth/Profile routes
	protected.POST("/auth/logout", h.Auth.Logout)
	protected.GET("/profile", h.Auth.GetProfile)
	protected.PUT("/profile/pin", h.Auth.ChangePIN)

	// Tax settings
	protected.GET("/settings", h.Settings.GetSettings)
	protected.PUT("/settings", middleware.RequireRole(entity.RoleManager), h.Settings.UpdateSettings)

	registerCheckRoutes(protected, h)
	registerSubCheckRoutes(protected, h, deps)
	registerDiscountRoutes(protected, h)
	registerEmployeeRoutes(protected, h)
	registerPrinterRoutes(protected, h)
}

func registerCheckRoutes(protected *gin.RouterGroup, h *Handlers) {
	checks := protected.Group("/checks")
	{
		checks.GET("", h.Check.List)
		checks.POST("", h.Check.Open)
		checks.GET("/:id", h.Check.Get)
		checks.POST("/:id/split", h.Check.Split)
		checks.POST("/:id/import", middleware.RequireRole(entity.RoleManager), h.Check.Import)
	}
}

func registerSubCheckRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	manager := middleware.RequireRole(entity.RoleManager)
	// Tender entry replays the stored response when a terminal retries
	idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
		Repo: deps.IdempotencyRepo,
	})

	subchecks := protected.Group("/subchecks")
	{
		subchecks.GET("/:id", h.Check.GetSubCheck)
		subchecks.GET("/:id/export", h.Check.Export)
		subchecks.POST("/:id/recompute", h.Check.Recompute)
		subchecks.POST("/:id/close", idempotent, h.Check.Close)
		subchecks.POST("/:id/void", manager, h.Check.Void)

		subchecks.POST("/:id/orders", h.Check.AddOrder)
		subchecks.POST("/:id/orders/:orderId/modifiers", h.Check.AddModifier)
		subchecks.DELETE("/:id/orders/:orderId", h.Check.RemoveOrder)
		subchecks.POST("/:id/orders/:orderId/comp", manager, h.Check.CompOrder)
		subchecks.DELETE("/:id/orders/:orderId/comp", manager, h.Check.UncompOrder)
		subchecks.POST("/:id/orders/:orderId/void", manager, h.Check.VoidOrder)

		subchecks.POST("/:id/payments", idempotent, h.Check.AddPayment)
		subchecks.DELETE("/:id/payments/:paymentId", h.Check.RemovePayment)
		subchecks.POST("/:id/payments/consolidate", h.Check.ConsolidatePayments)
		subchecks.POST("/:id/finalize-tab", idempotent, h.Check.FinalizeTab)

		subchecks.PUT("/:id/tax-exempt", manager, h.Check.SetTaxExempt)
		subchecks.PUT("/:id/delivery", h.Check.SetDeliveryCharge)
	}
}

func registerDiscountRoutes(protected *gin.RouterGroup, h *Handlers) {
	discounts := protected.Group("/discounts")
	{
		discounts.GET("", h.Discount.List)
		discounts.GET("/:id", h.Discount.Get)
	}

	managed := discounts.Group("")
	managed.Use(middleware.RequireRole(entity.RoleManager))
	{
		managed.POST("", h.Discount.Create)
		managed.PUT("/:id", h.Discount.Update)
		managed.DELETE("/:id", h.Discount.Delete)
	}
}

func registerEmployeeRoutes(protected *gin.RouterGroup, h *Handlers) {
	employees := protected.Group("/employees")
	employees.Use(middleware.RequireRole(entity.RoleManager))
	{
		employees.GET("", h.Auth.ListEmployees)
		employees.POST("", h.Auth.CreateEmployee)
		employees.GET("/:id", h.Auth.GetEmployee)
		employees.PUT("/:id", h.Auth.UpdateEmployee)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printer := protected.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/print", h.Printer.PrintReceipt)
	}
}
