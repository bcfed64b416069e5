package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
	PersistUnits     bool

	// Report layout and classification behavior.
	HeaderRows      int
	LegacyUnitCodes bool   // strict 2-4 digit unit codes (old report revisions)
	FlagDevReady    bool   // third hasIssues clause
	ReferenceDate   string // YYYY-MM-DD; empty means today

	MaxConcurrency int
	RateLimitMs    int
	MaxRetries     int

	OutputDir  string
	PresetDir  string
	HTTPPort   string
	CORSOrigin string
	Debug      bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "rentready"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "rentready123"),
		PostgresDB:       getEnv("POSTGRES_DB", "rentready_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
		PersistUnits:     getEnvBool("PERSIST_UNITS", false),

		HeaderRows:      getEnvInt("HEADER_ROWS", 6),
		LegacyUnitCodes: getEnvBool("LEGACY_UNIT_CODES", false),
		FlagDevReady:    getEnvBool("FLAG_DEV_READY", true),
		ReferenceDate:   getEnv("REFERENCE_DATE", ""),

		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 3),
		RateLimitMs:    getEnvInt("RATE_LIMIT_MS", 0),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),

		OutputDir:  getEnv("OUTPUT_DIR", "./output"),
		PresetDir:  getEnv("PRESET_DIR", "./presets"),
		HTTPPort:   getEnv("HTTP_PORT", "8080"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		Debug:      getEnvBool("DEBUG", false),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

// Today resolves the classifier reference date: the configured override,
// or the current wall-clock date.
func (c *Config) Today() time.Time {
	if c.ReferenceDate != "" {
		if t, err := time.Parse("2006-01-02", c.ReferenceDate); err == nil {
			return t
		}
		log.Printf("[config] Invalid REFERENCE_DATE %q, using today", c.ReferenceDate)
	}
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
