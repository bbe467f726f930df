package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	Port string

	// Database configuration
	DBType            string // sqlite, sqlite3, mysql, mariadb, postgres, sqlserver
	DBHost            string
	DBPort            string
	DBDatabase        string
	DBUser            string
	DBPassword        string
	DBConnectionLimit int
	DBLogLevel        string

	// Logging configuration
	LogLevel  string
	LogFormat string

	// Seed reference data (statuses, priorities, privileges, entity and event types) on startup
	SeedLookups bool

	// Cost passed to bcrypt when hashing user passwords
	BcryptCost int
}

var supportedDBTypes = map[string]bool{
	"sqlite":     true,
	"sqlite3":    true,
	"mysql":      true,
	"mariadb":    true,
	"postgres":   true,
	"postgresql": true,
	"sqlserver":  true,
	"mssql":      true,
}

// Load loads configuration from environment variables, after merging in
// DOTENV_FILE (or ./.env) when present. Existing variables always win.
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	limit, err := getEnvAsInt("DB_CONNECTION_LIMIT", 5)
	if err != nil {
		return nil, err
	}
	cost, err := getEnvAsInt("BCRYPT_COST", 10)
	if err != nil {
		return nil, err
	}
	seed, err := getEnvAsBool("SEED_LOOKUPS", true)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:              getEnv("PORT", "3000"),
		DBType:            strings.ToLower(getEnv("DB_TYPE", "sqlite")),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", ""),
		DBDatabase:        getEnv("DB_DATABASE", ""),
		DBUser:            getEnv("DB_USER", ""),
		DBPassword:        getEnv("DB_PASSWORD", ""),
		DBConnectionLimit: limit,
		DBLogLevel:        strings.ToLower(getEnv("DB_LOG_LEVEL", "warn")),
		LogLevel:          strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
		SeedLookups:       seed,
		BcryptCost:        cost,
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks required fields and value ranges
func (c *Config) Validate() error {
	if !supportedDBTypes[c.DBType] {
		return fmt.Errorf("unsupported DB_TYPE: %s", c.DBType)
	}
	if c.DBDatabase == "" {
		return errors.New("DB_DATABASE is required")
	}
	if !c.IsSQLite() && c.DBUser == "" {
		return errors.New("DB_USER is required")
	}
	if c.DBConnectionLimit < 1 {
		return fmt.Errorf("DB_CONNECTION_LIMIT must be positive, got %d", c.DBConnectionLimit)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("LOG_FORMAT must be text or json, got %s", c.LogFormat)
	}
	return nil
}

// IsSQLite reports whether the configured database is a SQLite file
func (c *Config) IsSQLite() bool {
	return c.DBType == "sqlite" || c.DBType == "sqlite3"
}

func loadDotEnv() error {
	if file := os.Getenv("DOTENV_FILE"); file != "" {
		if err := godotenv.Load(file); err != nil {
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
		return nil
	}
	if _, err := os.Stat(".env"); err == nil {
		return godotenv.Load()
	}
	return nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, valueStr)
	}
	return value, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue, nil
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, valueStr)
	}
	return value, nil
}
