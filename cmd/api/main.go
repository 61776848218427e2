package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/mithaas/sweetshop-api/internal/application/service"
	"github.com/mithaas/sweetshop-api/internal/config"
	"github.com/mithaas/sweetshop-api/internal/infrastructure/database"
	"github.com/mithaas/sweetshop-api/internal/infrastructure/repository"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/handler"
	"github.com/mithaas/sweetshop-api/internal/presentation/http/routes"
	"github.com/mithaas/sweetshop-api/pkg/email"
	"github.com/mithaas/sweetshop-api/pkg/utils"
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

	// Run auto-migrations for the shared tables; per-branch order tables are
	// provisioned lazily on first use
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
	branchTables := repository.NewBranchTables(db)
	orderRepo := repository.NewOrderRepository(db, branchTables)
	branchRepo := repository.NewBranchRepository(db)
	itemRepo := repository.NewItemRepository(db)
	occasionRepo := repository.NewOccasionRepository(db)
	userRepo := repository.NewUserRepository(db)
	changelogRepo := repository.NewChangelogRepository(db)

	// Initialize email service; confirmations are skipped without SMTP
	var mailer service.ConfirmationMailer
	if cfg.Email.SMTPHost != "" {
		mailer = email.NewEmailService(email.EmailConfig{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromName:     cfg.Email.FromName,
			FromEmail:    cfg.Email.FromEmail,
		})
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	orderService := service.NewOrderService(orderRepo, branchRepo, changelogRepo, mailer)
	branchService := service.NewBranchService(branchRepo, branchTables)
	itemService := service.NewItemService(itemRepo)
	occasionService := service.NewOccasionService(occasionRepo)
	userService := service.NewUserService(userRepo, branchRepo)
	changelogService := service.NewChangelogService(changelogRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Order:     handler.NewOrderHandler(orderService),
		Branch:    handler.NewBranchHandler(branchService),
		Item:      handler.NewItemHandler(itemService),
		Occasion:  handler.NewOccasionHandler(occasionService),
		User:      handler.NewUserHandler(userService),
		Changelog: handler.NewChangelogHandler(changelogService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		BranchRepo: branchRepo,
	})

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
