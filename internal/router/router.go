package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"studyhub-backend/internal/handlers"
	"studyhub-backend/internal/middleware"
)

// New wires the HTTP surface. jwtAuth may be nil, in which case the assistant
// route is open; limiter may be nil to disable rate limiting.
func New(
	jwtAuth *middleware.JWTAuth,
	limiter middleware.Limiter,
	chatHandler *handlers.ChatHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", handlers.Health)

	r.Route("/api", func(r chi.Router) {

		// ──── AI Assistant Routes ────
		r.Route("/ai", func(r chi.Router) {
			if jwtAuth != nil {
				r.Use(jwtAuth.Middleware)
			}
			if limiter != nil {
				r.Use(middleware.RateLimit(limiter))
			}
			r.Post("/chat", chatHandler.Chat)
		})
	})

	return r
}
