package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)
			assert.Equal(t, tc.expected, getEnvOrDefault(tc.key, tc.defaultVal))
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)
			assert.Equal(t, tc.expected, getEnvAsIntOrDefault(tc.key, tc.defaultVal))
		})
	}
}

func TestGetEnvAsFloatOrDefault(t *testing.T) {
	t.Setenv("TEST_FLOAT_1", "0.2")
	t.Setenv("TEST_FLOAT_2", "warm")

	assert.InDelta(t, 0.2, getEnvAsFloatOrDefault("TEST_FLOAT_1", 0.7), 1e-9)
	assert.InDelta(t, 0.7, getEnvAsFloatOrDefault("TEST_FLOAT_2", 0.7), 1e-9)
	assert.InDelta(t, 0.7, getEnvAsFloatOrDefault("TEST_FLOAT_UNSET", 0.7), 1e-9)
}

func TestGetEnvAsDurationOrDefault(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected time.Duration
	}{
		{"go duration", "45s", 45 * time.Second},
		{"plain seconds", "12", 12 * time.Second},
		{"garbage", "soon", 30 * time.Second},
		{"negative", "-5s", 30 * time.Second},
		{"empty", "", 30 * time.Second},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tc.envValue)
			assert.Equal(t, tc.expected, getEnvAsDurationOrDefault("TEST_DURATION", 30*time.Second))
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "ENV", "DEEPSEEK_API_KEY", "AI_BASE_URL", "AI_MODEL", "AI_MAX_TOKENS",
		"AI_TEMPERATURE", "AI_REQUEST_TIMEOUT", "AI_RATE_LIMIT_PER_MINUTE", "JWT_SECRET", "REDIS_URL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.IsDevelopment())
	assert.Empty(t, cfg.AIAPIKey, "missing secret must not fail loading")
	assert.Equal(t, "https://api.deepseek.com/v1", cfg.AIBaseURL)
	assert.Equal(t, "deepseek-chat", cfg.AIModel)
	assert.Equal(t, 1000, cfg.AIMaxTokens)
	assert.InDelta(t, 0.7, cfg.AITemperature, 1e-9)
	assert.Equal(t, 30*time.Second, cfg.AIRequestTimeout)
	assert.Equal(t, 30, cfg.AIRateLimitPerMin)
	assert.Empty(t, cfg.JWTSecret)
	assert.Empty(t, cfg.RedisURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("AI_MODEL", "deepseek-reasoner")
	t.Setenv("AI_REQUEST_TIMEOUT", "5s")
	t.Setenv("ENV", "production")

	cfg := Load()

	assert.Equal(t, "sk-test", cfg.AIAPIKey)
	assert.Equal(t, "deepseek-reasoner", cfg.AIModel)
	assert.Equal(t, 5*time.Second, cfg.AIRequestTimeout)
	assert.False(t, cfg.IsDevelopment())
}
