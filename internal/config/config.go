package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"finledger/internal/validator"
)

// Config holds application configuration
type Config struct {
	// Environment
	Env string

	// Storage
	DataDir string
	DBPath  string

	// Budget policy
	EnforcementMode string `validate:"enforcement_mode"`
	GoalLimit       string

	// Session
	SessionSecret string
	SessionTTL    time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Env:             getEnv("FINLEDGER_ENV", "development"),
		DataDir:         getEnv("FINLEDGER_DATA_DIR", "data"),
		DBPath:          getEnv("FINLEDGER_DB_PATH", "data/finledger.db"),
		EnforcementMode: getEnv("FINLEDGER_ENFORCEMENT", "reject"),
		GoalLimit:       getEnv("FINLEDGER_GOAL_LIMIT", "10000"),
		SessionSecret:   getEnv("SESSION_SECRET", "fallback-secret-key-for-dev-only"),
	}

	// Parse session TTL duration
	ttlStr := getEnv("SESSION_TTL", "24h")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		log.Printf("Warning: invalid SESSION_TTL value '%s', falling back to 24h\n", ttlStr)
		ttl = 24 * time.Hour
	}
	config.SessionTTL = ttl

	if err := validator.Get().Struct(config); err != nil {
		return nil, err
	}

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
