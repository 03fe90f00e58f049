package config

import (
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	APIBaseURL     string
	StateDir       string
	PollInterval   time.Duration
	RequestTimeout time.Duration
	// DebugAddr exposes /health and /metrics when set, e.g. "127.0.0.1:9190".
	DebugAddr string
	LogMode   string // "production" or "development"
}

func Load() *Config {
	return &Config{
		APIBaseURL:     getEnv("MALL_API_URL", "http://localhost:8000"),
		StateDir:       getEnv("MALL_STATE_DIR", defaultStateDir()),
		PollInterval:   getDurationEnv("MALL_POLL_INTERVAL", 10*time.Second),
		RequestTimeout: getDurationEnv("MALL_REQUEST_TIMEOUT", 15*time.Second),
		DebugAddr:      getEnv("MALL_DEBUG_ADDR", ""),
		LogMode:        getEnv("MALL_LOG_MODE", "production"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return d
}

func defaultStateDir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ".goldenrose"
	}
	return filepath.Join(base, "goldenrose")
}
