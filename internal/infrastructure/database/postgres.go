package database

import (
	"fmt"
	"log"

	"github.com/mithaas/sweetshop-api/internal/config"
	"github.com/mithaas/sweetshop-api/internal/domain/entity"
	"github.com/mithaas/sweetshop-api/internal/domain/enum"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Warn
	if viper.GetBool("APP_DEBUG") {
		logLevel = logger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for the shared entities. Per-branch
// order tables are migrated lazily on first access by the branch table
// registry, not here.
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	return db.AutoMigrate(
		&entity.User{},
		&entity.Branch{},
		&entity.Item{},
		&entity.Occasion{},
		&entity.ChangelogEntry{},
	)
}

// SeedDefaultData creates the default admin account and the general occasion
// when they do not exist yet.
func SeedDefaultData(db *gorm.DB) error {
	log.Println("Seeding default data...")

	var admin entity.User
	if err := db.Where("username = ?", "admin").First(&admin).Error; err != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash default admin password: %w", err)
		}
		admin = entity.User{
			Username: "admin",
			FullName: "Administrator",
			Password: string(hashed),
			Role:     enum.RoleAdmin,
		}
		if err := db.Create(&admin).Error; err != nil {
			log.Printf("Warning: failed to create default admin user: %v", err)
		} else {
			log.Println("Created default admin user (change the password)")
		}
	}

	var general entity.Occasion
	if err := db.Where("code = ?", "GEN").First(&general).Error; err != nil {
		general = entity.Occasion{Code: "GEN", Name: "General"}
		if err := db.Create(&general).Error; err != nil {
			log.Printf("Warning: failed to create default occasion: %v", err)
		}
	}

	return nil
}
