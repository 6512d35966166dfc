package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Extraction    ExtractionConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	MaxUploadBytes     int
	RateLimitPerSecond int
	RateLimitBurst     int
}

type ExtractionConfig struct {
	// MaxPages caps pages read per document; 0 means no limit
	MaxPages          int
	CategoryRulesFile string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	LogLevel       string
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Load reads configuration from environment variables, after loading
// envFiles (default ".env") into the environment. Missing env files are
// ignored; variables already set are never overridden.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var errs []error
	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080, &errs),
			MaxUploadBytes:     getEnvAsInt("MAX_UPLOAD_BYTES", 12*1024*1024, &errs),
			RateLimitPerSecond: getEnvAsInt("RATE_LIMIT_PER_SECOND", 5, &errs),
			RateLimitBurst:     getEnvAsInt("RATE_LIMIT_BURST", 10, &errs),
		},
		Extraction: ExtractionConfig{
			MaxPages:          getEnvAsInt("MAX_PAGES", 0, &errs),
			CategoryRulesFile: getEnv("CATEGORY_RULES_FILE", ""),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true, &errs),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
		},
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return nil, fmt.Errorf("SERVER_PORT %d out of range", cfg.Server.Port)
	}
	if cfg.Extraction.MaxPages < 0 {
		return nil, errors.New("MAX_PAGES must not be negative")
	}
	if cfg.Server.RateLimitPerSecond < 0 || cfg.Server.RateLimitBurst < 0 {
		return nil, errors.New("rate limit settings must not be negative")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int, errs *[]error) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool, errs *[]error) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return defaultValue
	}
	return value
}
