package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env          string
	Port         string
	APIBaseURL   string
	SessionFile  string
	HTTPTimeout  time.Duration
	CacheTTL     time.Duration
	AllowOrigins string
	RateLimitMax int
}

func LoadConfig() *Config {
	cfg := &Config{
		Env:          getEnv("APP_ENV", "production"),
		Port:         getEnv("PORT", "8080"),
		APIBaseURL:   getEnv("GATHERLY_API_URL", "https://api.gatherly.app"),
		SessionFile:  getEnv("SESSION_FILE", ".gatherly/session.json"),
		HTTPTimeout:  getDuration("HTTP_TIMEOUT", 30*time.Second),
		CacheTTL:     getDuration("CACHE_TTL", 60*time.Second),
		AllowOrigins: getEnv("ALLOW_ORIGINS", "http://localhost:5173"),
		RateLimitMax: getInt("RATE_LIMIT_MAX", 60),
	}
	return cfg
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
