package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// All environment variables are read through this package only.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// External sources
	CapWages  CapWagesConfig
	MoneyPuck MoneyPuckConfig
	NHLStats  NHLStatsConfig

	// Model pipeline
	Model ModelConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	URL      string

	// Connection pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// CapWagesConfig holds the contract-data source configuration.
type CapWagesConfig struct {
	BaseURL   string
	UserAgent string
	// Requests per second against the public site.
	RateLimit float64
}

// MoneyPuckConfig holds the season-statistics CSV source configuration.
type MoneyPuckConfig struct {
	BaseURL string
	// Local directory searched before hitting the network.
	DataDir string
}

// NHLStatsConfig holds the league stats API configuration.
type NHLStatsConfig struct {
	BaseURL string
	// Requests per second against the public API.
	RateLimit float64
}

// ModelConfig holds training and serving configuration.
type ModelConfig struct {
	// Directory where fitted models and feature lists are persisted.
	ArtifactsDir string
	// Rows at or below this ice time (seconds) are excluded from features.
	MinIcetimeSeconds float64
	// Season used to convert predicted cap percentage back into dollars.
	PredictSeason int
	// Optional JSON file overriding the built-in salary cap table.
	CapTableFile string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8089"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			Name:            getEnv("DB_NAME", "capcast"),
			User:            getEnv("DB_USER", "capcast"),
			Password:        getEnv("DB_PASSWORD", ""),
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 5),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		CapWages: CapWagesConfig{
			BaseURL:   getEnv("CAPWAGES_BASE_URL", "https://capwages.com"),
			UserAgent: getEnv("CAPWAGES_USER_AGENT", "capcast/1.0 (+github.com/pondmetrics/capcast)"),
			RateLimit: getEnvAsFloat("CAPWAGES_RATE_LIMIT", 2.0),
		},

		MoneyPuck: MoneyPuckConfig{
			BaseURL: getEnv("MONEYPUCK_BASE_URL", "https://moneypuck.com"),
			DataDir: getEnv("MONEYPUCK_DATA_DIR", "data"),
		},

		NHLStats: NHLStatsConfig{
			BaseURL:   getEnv("NHL_STATS_BASE_URL", "https://api.nhle.com/stats/rest/en"),
			RateLimit: getEnvAsFloat("NHL_STATS_RATE_LIMIT", 5.0),
		},

		Model: ModelConfig{
			ArtifactsDir:      getEnv("MODEL_ARTIFACTS_DIR", "artifacts"),
			MinIcetimeSeconds: getEnvAsFloat("MODEL_MIN_ICETIME_SECONDS", 300*60),
			PredictSeason:     getEnvAsInt("MODEL_PREDICT_SEASON", 2025),
			CapTableFile:      getEnv("SALARY_CAP_TABLE_FILE", ""),
		},

		LogLevel:  getEnv("LOG_LEVEL", "debug"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Model.MinIcetimeSeconds < 0 {
		return fmt.Errorf("MODEL_MIN_ICETIME_SECONDS must be non-negative")
	}

	return nil
}

// loadEnvFile tries to load .env from multiple locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
			filepath.Join(exeDir, "..", "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
