package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/lipejemjpe-cell/scanmycarbs-backend/models"
)

// Config holds everything the process reads from the environment.
type Config struct {
	Port      string
	LogMode   string
	JWTSecret string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	AWSRegion     string
	S3Bucket      string
	S3Region      string
	CloudFrontURL string
	SESEmail      string
}

// Load reads .env (if present) and the process environment.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:       getenv("PORT", "8080"),
		LogMode:    getenv("LOG_MODE", "development"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		DBHost:     getenv("DB_HOST", "localhost"),
		DBUser:     getenv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getenv("DB_NAME", "scanmycarbs"),
		DBPort:     getenv("DB_PORT", "5432"),

		AWSRegion:     os.Getenv("AWS_REGION"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		S3Region:      os.Getenv("S3_REGION"),
		CloudFrontURL: os.Getenv("CLOUDFRONT_URL"),
		SESEmail:      os.Getenv("SES_EMAIL"),
	}
	if cfg.S3Region == "" {
		cfg.S3Region = cfg.AWSRegion
	}
	return cfg
}

// ConnectDB opens the Postgres connection and migrates the schema. The handle
// is returned to the caller, which owns its lifecycle; nothing here is kept
// as package state.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("auto migrate failed: %w", err)
	}
	return db, nil
}

// AutoMigrate creates/updates all tables. Exposed so tests can reuse it
// against an in-memory database.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Scan{},
		&models.ScanFood{},
		&models.ManualFood{},
		&models.CachedFood{},
	)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
