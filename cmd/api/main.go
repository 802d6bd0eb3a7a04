package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/viewtouch/settle-api/internal/application/service"
	"github.com/viewtouch/settle-api/internal/config"
	"github.com/viewtouch/settle-api/internal/domain/entity"
	"github.com/viewtouch/settle-api/internal/infrastructure/database"
	"github.com/viewtouch/settle-api/internal/infrastructure/repository"
	"github.com/viewtouch/settle-api/internal/presentation/http/handler"
	"github.com/viewtouch/settle-api/internal/presentation/http/middleware"
	"github.com/viewtouch/settle-api/internal/presentation/http/routes"
	"github.com/viewtouch/settle-api/pkg/printer"
	"github.com/viewtouch/settle-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db, cfg); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	checkRepo := repository.NewCheckRepository(db)
	discountRepo := repository.NewDiscountRepository(db)
	employeeRepo := repository.NewEmployeeRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize services
	authService := service.NewAuthService(employeeRepo, jwtManager)
	checkService := service.NewCheckService(checkRepo, settingsRepo, discountRepo)
	discountService := service.NewDiscountService(discountRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize receipt printer
	receiptPrinter, err := printer.New(
		cfg.Printer.Type,
		cfg.Printer.DevicePath,
		cfg.Printer.Address,
	)
	if err != nil {
		log.Printf("Warning: Failed to initialize printer: %v", err)
		receiptPrinter = printer.NewMemory()
	}
	printerService := service.NewPrinterService(receiptPrinter, checkService, employeeRepo, entity.ReceiptHeader{
		StoreName: cfg.Printer.StoreName,
		Address:   cfg.Printer.Address1,
		Phone:     cfg.Printer.Phone,
	}, cfg.Printer.Width)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		Check:    handler.NewCheckHandler(checkService),
		Discount: handler.NewDiscountHandler(discountService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(printerService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go middleware.SweepIdempotencyKeys(ctx, idempotencyRepo, time.Hour)

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
