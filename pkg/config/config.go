package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const developmentSecret = "dev-secret-change-me"

type AppConfig struct {
	Port        string
	Environment string

	// AuthEnabled=false serves the single-tenant app: no accounts, every
	// todo visible, plus the /show page.
	AuthEnabled bool

	DatabaseDriver string
	DatabasePath   string
	DatabaseURL    string
	DatabaseDebug  bool

	SecretKey  string
	SessionTTL time.Duration
	RedisURL   string
	BcryptCost int

	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS   bool
	AllowedOrigins []string

	OTLPEndpoint string
	MetricsPort  string
	LokiURL      string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		Port:           "10000",
		Environment:    "development",
		AuthEnabled:    true,
		DatabaseDriver: "sqlite",
		DatabasePath:   "todo.db",
		SecretKey:      developmentSecret,
		SessionTTL:     24 * time.Hour,
		BcryptCost:     bcrypt.DefaultCost,

		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"POST /login": {
				Requests: 10,
				Window:   time.Minute,
			},
			"POST /signup": {
				Requests: 5,
				Window:   time.Minute,
			},
		},

		MetricsPort: "9091",
	}
}

// Load overlays environment variables on the defaults.
func Load() *AppConfig {
	config := GetDefaultConfig()

	config.Port = getEnv("PORT", config.Port)
	config.Environment = getEnv("ENVIRONMENT", config.Environment)
	config.AuthEnabled = parseBool(os.Getenv("AUTH_ENABLED"), config.AuthEnabled)

	config.DatabaseDriver = getEnv("DATABASE_DRIVER", config.DatabaseDriver)
	config.DatabasePath = getEnv("DATABASE_PATH", config.DatabasePath)
	config.DatabaseURL = os.Getenv("DATABASE_URL")
	config.DatabaseDebug = parseBool(os.Getenv("DATABASE_DEBUG"), false)

	config.SecretKey = getEnv("SECRET_KEY", config.SecretKey)
	config.SessionTTL = parseDuration(os.Getenv("SESSION_TTL"), config.SessionTTL)
	config.RedisURL = os.Getenv("REDIS_URL")
	config.BcryptCost = parseInt(os.Getenv("BCRYPT_COST"), config.BcryptCost)

	config.RateLimitEnabled = parseBool(os.Getenv("RATE_LIMIT_ENABLED"), config.RateLimitEnabled)
	config.EnforceHTTPS = config.IsProduction() || parseBool(os.Getenv("ENFORCE_HTTPS"), false)
	config.AllowedOrigins = splitList(os.Getenv("ALLOWED_ORIGINS"))

	config.OTLPEndpoint = os.Getenv("OTLP_ENDPOINT")
	config.MetricsPort = getEnv("METRICS_PORT", config.MetricsPort)
	config.LokiURL = os.Getenv("LOKI_URL")

	return config
}

func (c *AppConfig) IsProduction() bool {
	return c.Environment == "production"
}

func (c *AppConfig) UsesDevelopmentSecret() bool {
	return c.SecretKey == developmentSecret
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func parseBool(value string, defaultValue bool) bool {
	parsed, err := strconv.ParseBool(value)

	if err != nil {
		return defaultValue
	}

	return parsed
}

func parseInt(value string, defaultValue int) int {
	parsed, err := strconv.Atoi(value)

	if err != nil {
		return defaultValue
	}

	return parsed
}

func parseDuration(value string, defaultValue time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)

	if err != nil || duration <= 0 {
		return defaultValue
	}

	return duration
}

func splitList(value string) []string {
	var items []string

	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}
