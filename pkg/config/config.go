package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds everything the handlers and services read from the
// environment. Loaded once per cold start and cached.
type Config struct {
	Environment string
	Port        string

	// Managed store configuration. Postgres wins over Supabase when both
	// are configured.
	PostgresDSN string
	SupabaseURL string
	SupabaseKey string

	// JWT verification secret shared with the identity provider.
	JWTSecret string

	// Object storage buckets.
	EvidenceBucket string
	AvatarBucket   string

	// CORS configuration.
	AllowedOrigins []string

	Debug bool
}

// LoadConfig reads configuration from the environment, preferring an
// environment-specific .env file when present.
func LoadConfig() *Config {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	switch env {
	case "production":
		_ = godotenv.Load(".env.production")
	default:
		_ = godotenv.Load(".env.local")
	}
	_ = godotenv.Load() // plain .env, lowest priority

	config := &Config{
		Environment:    getEnvWithDefault("ENVIRONMENT", "development"),
		Port:           getEnvWithDefault("PORT", "3000"),
		JWTSecret:      getEnvWithDefault("JWT_SECRET", "your-secret-key-change-in-production"),
		EvidenceBucket: getEnvWithDefault("EVIDENCE_BUCKET", "compliance-files"),
		AvatarBucket:   getEnvWithDefault("AVATAR_BUCKET", "avatars"),
		Debug:          getEnvBool("DEBUG", false),
	}

	// Trim whitespace to avoid trailing spaces/newlines from env sources
	config.PostgresDSN = strings.TrimSpace(os.Getenv("POSTGRES_DSN"))
	config.SupabaseURL = strings.TrimSpace(os.Getenv("SUPABASE_URL"))
	config.SupabaseKey = strings.TrimSpace(os.Getenv("SUPABASE_SERVICE_KEY"))

	allowedOrigins := getEnvWithDefault("ALLOWED_ORIGINS", "*")
	if allowedOrigins == "*" {
		config.AllowedOrigins = []string{"*"}
	} else {
		config.AllowedOrigins = strings.Split(allowedOrigins, ",")
	}

	if config.Environment == "production" {
		config.Debug = false
	}

	return config
}

// Cached config (initialized once per cold start)
var (
	cachedConfig *Config
	configOnce   sync.Once
)

// GetCached returns the process-wide cached Config. On serverless it
// initializes once per cold start and reuses it across warm invocations.
func GetCached() *Config {
	configOnce.Do(func() {
		cachedConfig = LoadConfig()
	})
	return cachedConfig
}

// Validate checks the configuration is complete enough to serve requests.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.JWTSecret == "" || c.JWTSecret == "your-secret-key-change-in-production" {
		if c.Environment == "production" {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
		if c.Environment == "development" {
			fmt.Println("⚠️  Using default JWT secret (not recommended for production)")
		}
	}

	// Development without an external store falls back to the in-memory
	// store; production must configure one.
	if c.PostgresDSN == "" && (c.SupabaseURL == "" || c.SupabaseKey == "") {
		if c.Environment == "production" {
			return fmt.Errorf("store configuration incomplete: set POSTGRES_DSN or SUPABASE_URL+SUPABASE_SERVICE_KEY")
		}
	}

	return nil
}

// IsProduction checks whether the app runs in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment checks whether the app runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// getEnvWithDefault reads an env var, falling back to a default.
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads a boolean env var.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
