package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort      string
	Environment     string
	FirebaseProject string
	StorageBucket   string

	// Service account credentials; JSON wins over the file path.
	ServiceAccountJSON string
	ServiceAccountPath string

	LogLevel  string
	LogFormat string

	RedisURL        string
	CacheTTLList    time.Duration
	CacheTTLDetail  time.Duration
	CacheTTLSuggest time.Duration

	PerPage          int
	MaxVisiblePages  int
	SuggestionLimit  int
	QueryTimeout     time.Duration
	SuggestBackend   string
	PlaceholderImage string

	IndexRefreshSchedule  string
	OrphanCleanupSchedule string
	OrphanTTL             time.Duration

	WriteRateRPS   float64
	WriteRateBurst int
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		FirebaseProject:    getEnv("FIREBASE_PROJECT_ID", ""),
		StorageBucket:      getEnv("STORAGE_BUCKET", ""),
		ServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		ServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		RedisURL:        getEnv("REDIS_URL", ""),
		CacheTTLList:    getEnvAsDuration("CACHE_TTL_LIST", 5*time.Minute),
		CacheTTLDetail:  getEnvAsDuration("CACHE_TTL_DETAIL", 10*time.Minute),
		CacheTTLSuggest: getEnvAsDuration("CACHE_TTL_SUGGEST", 2*time.Minute),

		PerPage:          getEnvAsInt("PER_PAGE", 12),
		MaxVisiblePages:  getEnvAsInt("MAX_VISIBLE_PAGES", 5),
		SuggestionLimit:  getEnvAsInt("SUGGESTION_LIMIT", 5),
		QueryTimeout:     getEnvAsDuration("QUERY_TIMEOUT", 10*time.Second),
		SuggestBackend:   getEnv("SUGGEST_BACKEND", "index"),
		PlaceholderImage: getEnv("PLACEHOLDER_IMAGE", "/img/placeholder.png"),

		IndexRefreshSchedule:  getEnv("INDEX_REFRESH_SCHEDULE", "*/10 * * * *"),
		OrphanCleanupSchedule: getEnv("ORPHAN_CLEANUP_SCHEDULE", "0 4 * * *"),
		OrphanTTL:             getEnvAsDuration("ORPHAN_TTL", 24*time.Hour),

		WriteRateRPS:   getEnvAsFloat("WRITE_RATE_RPS", 2),
		WriteRateBurst: getEnvAsInt("WRITE_RATE_BURST", 10),
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	if c.FirebaseProject == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	if c.StorageBucket == "" {
		return fmt.Errorf("STORAGE_BUCKET is required")
	}
	if c.PerPage <= 0 {
		return fmt.Errorf("PER_PAGE must be positive, got %d", c.PerPage)
	}
	if c.MaxVisiblePages <= 0 {
		return fmt.Errorf("MAX_VISIBLE_PAGES must be positive, got %d", c.MaxVisiblePages)
	}
	if c.SuggestionLimit <= 0 {
		return fmt.Errorf("SUGGESTION_LIMIT must be positive, got %d", c.SuggestionLimit)
	}
	switch c.SuggestBackend {
	case "index", "scan":
	default:
		return fmt.Errorf("SUGGEST_BACKEND must be index or scan, got %q", c.SuggestBackend)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.Atoi(value)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		floatValue, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return defaultValue
}
