package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// Remote API
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Session persistence
	StateDir string

	// Flash notifications
	FlashTTL time.Duration

	// Observability
	OTLPEndpoint string
	OTLPInsecure bool
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 3000),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 10*time.Second),

		StateDir: getEnv("STATE_DIR", defaultStateDir()),

		FlashTTL: getEnvDuration("FLASH_TTL", time.Minute),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTLPInsecure: getEnv("OTEL_EXPORTER_OTLP_INSECURE", "false") == "true",
	}
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return dir + string(os.PathSeparator) + "mudanca-facil"
	}
	return ".mudanca-facil"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
