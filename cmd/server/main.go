package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"studyhub-backend/internal/config"
	"studyhub-backend/internal/database"
	"studyhub-backend/internal/handlers"
	"studyhub-backend/internal/logging"
	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/router"
	"studyhub-backend/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.IsDevelopment(), os.Stderr)
	log.Info().Str("env", cfg.Env).Msg("🚀 Starting StudyHub Backend...")
	log.Info().Msg("✓ Environment variables loaded")

	if cfg.AIAPIKey == "" {
		log.Warn().Msg("DEEPSEEK_API_KEY is not set; assistant requests will fail upstream")
	}

	// ──── Step 2: Initialize Completion Proxy ────
	completionService := services.NewCompletionService(services.CompletionConfig{
		APIKey:      cfg.AIAPIKey,
		BaseURL:     cfg.AIBaseURL,
		Model:       cfg.AIModel,
		MaxTokens:   cfg.AIMaxTokens,
		Temperature: cfg.AITemperature,
		Timeout:     cfg.AIRequestTimeout,
	})
	log.Info().
		Str("model", cfg.AIModel).
		Str("base_url", cfg.AIBaseURL).
		Dur("timeout", cfg.AIRequestTimeout).
		Msg("✓ Completion proxy initialized")

	// ──── Step 3: Initialize Rate Limiter ────
	var limiter middleware.Limiter
	var memLimiter *middleware.RateLimiter
	if cfg.AIRateLimitPerMin > 0 {
		if cfg.RedisURL != "" {
			redisClient, err := database.NewRedisClient(cfg.RedisURL)
			if err != nil {
				log.Fatal().Err(err).Msg("✗ Redis connection failed")
			}
			defer redisClient.Close()
			limiter = middleware.NewRedisRateLimiter(redisClient, "ratelimit:ai", cfg.AIRateLimitPerMin, time.Minute)
			log.Info().Int("per_minute", cfg.AIRateLimitPerMin).Msg("✓ Redis rate limiter connected")
		} else {
			memLimiter = middleware.NewRateLimiter(cfg.AIRateLimitPerMin, time.Minute)
			limiter = memLimiter
			log.Info().Int("per_minute", cfg.AIRateLimitPerMin).Msg("✓ In-memory rate limiter enabled")
		}
	}

	// ──── Step 4: Initialize Auth ────
	var jwtAuth *middleware.JWTAuth
	if cfg.JWTSecret != "" {
		jwtAuth = middleware.NewJWTAuth(cfg.JWTSecret)
		log.Info().Msg("✓ Assistant routes require a bearer token")
	}

	// ──── Step 5: Start HTTP Server ────
	chatHandler := handlers.NewChatHandler(completionService)
	r := router.New(jwtAuth, limiter, chatHandler, cfg.FrontendURL)

	// WriteTimeout must outlast the upstream call so the 500 body can be written.
	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.AIRequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		if memLimiter != nil {
			memLimiter.Close()
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	}()

	log.Info().Msgf("✓ StudyHub Backend ready on http://localhost:%s", cfg.Port)
	log.Info().Msgf("  API: http://localhost:%s/api/ai/chat", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server error")
	}
}
