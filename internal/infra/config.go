package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv                string
	Port                  string
	ReplicateAPIToken     string
	ReplicateModelVersion string
	ReplicateBaseURL      string
	MockupConfigPath      string
	StoragePath           string
	StaticDir             string
	PollInterval          time.Duration
	PollTimeout           time.Duration
	SubmitInterval        time.Duration
	FailOnEmptyBatch      bool
	HTTPReadTimeout       time.Duration
	HTTPWriteTimeout      time.Duration
	HTTPIdleTimeout       time.Duration
	RateLimitPerMin       int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:                getEnv("APP_ENV", "development"),
		Port:                  getEnv("PORT", "8080"),
		ReplicateAPIToken:     os.Getenv("REPLICATE_API_TOKEN"),
		ReplicateModelVersion: os.Getenv("REPLICATE_MODEL_VERSION"),
		ReplicateBaseURL:      getEnv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
		MockupConfigPath:      getEnv("MOCKUP_CONFIG_PATH", "./mockups.json"),
		StoragePath:           getEnv("STORAGE_PATH", "./storage"),
		StaticDir:             getEnv("STATIC_DIR", "./client/dist"),
		PollInterval:          time.Millisecond * time.Duration(getEnvInt("POLL_INTERVAL_MS", 1200)),
		PollTimeout:           time.Second * time.Duration(getEnvInt("POLL_TIMEOUT_SECONDS", 600)),
		SubmitInterval:        time.Millisecond * time.Duration(getEnvInt("SUBMIT_INTERVAL_MS", 250)),
		FailOnEmptyBatch:      getEnvBool("FAIL_ON_EMPTY_BATCH", false),
		HTTPReadTimeout:       time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:      time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 900)),
		HTTPIdleTimeout:       time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:       getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.ReplicateAPIToken == "" {
		return nil, fmt.Errorf("REPLICATE_API_TOKEN is required")
	}

	if cfg.ReplicateModelVersion == "" {
		return nil, fmt.Errorf("REPLICATE_MODEL_VERSION is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
