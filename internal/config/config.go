package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Seed     SeedConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      string
	PublicDir string // Static assets directory; empty disables static serving
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	URL string
}

// RedisConfig holds Redis configuration for the task queue
type RedisConfig struct {
	Address string // Redis address (host:port)
}

// AuthConfig holds authentication configuration
type AuthConfig struct {
	JWTSecret     string // Empty means generate an ephemeral secret at startup
	AdminEmail    string
	AdminPassword string
}

// SeedConfig holds demo-data seeding configuration
type SeedConfig struct {
	File string // Optional YAML catalog seed, empty disables seeding
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return &Config{
		Server: ServerConfig{
			Port:      envOr("PORT", "5000"),
			PublicDir: os.Getenv("PUBLIC_DIR"),
		},
		Database: DatabaseConfig{
			URL: envOr("DATABASE_URL", "forkline.sqlite"),
		},
		Redis: RedisConfig{
			Address: envOr("REDIS_ADDRESS", "localhost:6379"),
		},
		Auth: AuthConfig{
			JWTSecret:     os.Getenv("JWT_SECRET"),
			AdminEmail:    envOr("ADMIN_EMAIL", "admin@forkline.dev"),
			AdminPassword: envOr("ADMIN_PASSWORD", "admin123"),
		},
		Seed: SeedConfig{
			File: os.Getenv("SEED_FILE"),
		},
		Logging: LoggingConfig{
			Level:  envOr("LOG_LEVEL", "info"),
			Format: envOr("LOG_FORMAT", "json"),
		},
	}, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
