package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   Server
	Database Database
	Assets   Assets
	Quotes   Quotes
	Logging  Logging
	CORS     CORS
}

// Server holds server-specific configuration
type Server struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// Database holds database-specific configuration
type Database struct {
	Path string
}

// Assets holds the reporting defaults of the aggregation engine.
type Assets struct {
	// MainCurrency is the default reporting currency for overview queries
	// that do not specify one.
	MainCurrency string
	// FundCurrency is the currency all fund valuations are published in.
	FundCurrency string
	// LoadTimeout bounds one full asset load (all four sources).
	LoadTimeout time.Duration
}

// Quotes holds the quote fetcher and refresh scheduler configuration.
type Quotes struct {
	APIBaseURL      string
	APITimeout      time.Duration
	RefreshSchedule string // cron expression, empty disables the job
}

// Logging holds log output configuration.
type Logging struct {
	Level  string
	Pretty bool
}

// CORS holds CORS-specific configuration
type CORS struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	loadTimeout, err := time.ParseDuration(getEnv("ASSET_LOAD_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid ASSET_LOAD_TIMEOUT: %w", err)
	}

	apiTimeout, err := time.ParseDuration(getEnv("QUOTE_API_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid QUOTE_API_TIMEOUT: %w", err)
	}

	config := &Config{
		Server: Server{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: Database{
			Path: getEnv("DB_PATH", "./data/asset_overview.db"),
		},
		Assets: Assets{
			MainCurrency: getEnv("MAIN_CURRENCY", "JPY"),
			FundCurrency: getEnv("FUND_CURRENCY", "JPY"),
			LoadTimeout:  loadTimeout,
		},
		Quotes: Quotes{
			APIBaseURL:      getEnv("QUOTE_API_URL", "https://query1.finance.yahoo.com"),
			APITimeout:      apiTimeout,
			RefreshSchedule: getEnv("QUOTE_REFRESH_SCHEDULE", "0 */4 * * *"),
		},
		Logging: Logging{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnv("LOG_PRETTY", "false") == "true",
		},
		CORS: CORS{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
