// Package config loads and validates service configuration.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server          ServerConfig
	BackendDatabase DatabaseConfig
	PublicDatabase  DatabaseConfig
	Redis           RedisConfig
	JWT             JWTConfig
	Pricing         PricingConfig
	Analysis        AnalysisConfig
	RateLimit       RateLimitConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration time.Duration
}

// PricingConfig carries the subscription plan amounts used by revenue
// aggregation. Injected rather than hardcoded so deployments can reprice
// without a rebuild.
type PricingConfig struct {
	PremiumMonthly   int64
	EnterpriseYearly int64
}

// AnalysisConfig points at the external analysis-result service.
type AnalysisConfig struct {
	APIURL  string
	Timeout time.Duration
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:  getDurationEnv("SERVER_IDLE_TIMEOUT", 120*time.Second),
		},
		BackendDatabase: DatabaseConfig{
			URL:             getEnv("BACKEND_DATABASE_URL", ""),
			MaxOpenConns:    getIntEnv("BACKEND_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("BACKEND_DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("BACKEND_DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		PublicDatabase: DatabaseConfig{
			URL:             getEnv("PUBLIC_DATABASE_URL", ""),
			MaxOpenConns:    getIntEnv("PUBLIC_DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getIntEnv("PUBLIC_DB_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: getDurationEnv("PUBLIC_DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:      normalizeRedisURL(getEnv("REDIS_URL", "localhost:6379")),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "change-this-secret"),
			Expiration: getDurationEnv("JWT_EXPIRATION", 24*time.Hour),
		},
		Pricing: PricingConfig{
			PremiumMonthly:   getInt64Env("PREMIUM_MONTHLY_PRICE", 20),
			EnterpriseYearly: getInt64Env("ENTERPRISE_YEARLY_PRICE", 2000),
		},
		Analysis: AnalysisConfig{
			APIURL:  getEnv("ANALYSIS_API_URL", "http://localhost:8000"),
			Timeout: getDurationEnv("ANALYSIS_API_TIMEOUT", 15*time.Second),
		},
		RateLimit: RateLimitConfig{
			Requests: getIntEnv("RATE_LIMIT_REQUESTS", 100),
			Window:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func normalizeRedisURL(url string) string {
	// Strip redis:// or redis+tls:// scheme if present
	if strings.HasPrefix(url, "redis+tls://") {
		return url[len("redis+tls://"):]
	}
	if strings.HasPrefix(url, "redis://") {
		return url[len("redis://"):]
	}
	return url
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
