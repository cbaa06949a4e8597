package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Env         string
	FrontendURL string
	LogLevel    string

	// Upstream assistant
	AIAPIKey         string
	AIBaseURL        string
	AIModel          string
	AIMaxTokens      int
	AITemperature    float64
	AIRequestTimeout time.Duration

	// Assistant route protection
	AIRateLimitPerMin int
	JWTSecret         string
	RedisURL          string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:        getEnvOrDefault("PORT", "8080"),
		Env:         getEnvOrDefault("ENV", "development"),
		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),

		// The secret is deliberately not required here: a missing key shows up
		// as an upstream authentication failure.
		AIAPIKey:         os.Getenv("DEEPSEEK_API_KEY"),
		AIBaseURL:        getEnvOrDefault("AI_BASE_URL", "https://api.deepseek.com/v1"),
		AIModel:          getEnvOrDefault("AI_MODEL", "deepseek-chat"),
		AIMaxTokens:      getEnvAsIntOrDefault("AI_MAX_TOKENS", 1000),
		AITemperature:    getEnvAsFloatOrDefault("AI_TEMPERATURE", 0.7),
		AIRequestTimeout: getEnvAsDurationOrDefault("AI_REQUEST_TIMEOUT", 30*time.Second),

		AIRateLimitPerMin: getEnvAsIntOrDefault("AI_RATE_LIMIT_PER_MINUTE", 30),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		RedisURL:          os.Getenv("REDIS_URL"),
	}

	return cfg
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}

func getEnvAsFloatOrDefault(key string, defaultVal float64) float64 {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}
	return f
}

// getEnvAsDurationOrDefault accepts Go durations ("45s") or plain seconds ("45").
func getEnvAsDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if n, err := strconv.Atoi(val); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	return defaultVal
}
