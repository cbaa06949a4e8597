package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub-backend/internal/handlers"
	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/models"
)

type echoCompleter struct{}

func (echoCompleter) Complete(ctx context.Context, messages []models.ChatMessage) (string, error) {
	return "echo: " + messages[len(messages)-1].Content, nil
}

const chatBody = `{"messages":[{"role":"user","content":"hi"}]}`

func postChat(h http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/ai/chat", strings.NewReader(chatBody))
	req.Header.Set("Content-Type", "application/json")
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_OpenAssistantRoute(t *testing.T) {
	h := New(nil, nil, handlers.NewChatHandler(echoCompleter{}), "http://localhost:5173")

	rr := postChat(h, "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"echo: hi"}`, rr.Body.String())
	assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_Health(t *testing.T) {
	h := New(nil, nil, handlers.NewChatHandler(echoCompleter{}), "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	h := New(nil, nil, handlers.NewChatHandler(echoCompleter{}), "")

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/ai/chat", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_ProtectedAssistantRoute(t *testing.T) {
	auth := middleware.NewJWTAuth("secret")
	h := New(auth, nil, handlers.NewChatHandler(echoCompleter{}), "")

	assert.Equal(t, http.StatusUnauthorized, postChat(h, "").Code)

	token, err := auth.GenerateAccessToken("student-1", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, postChat(h, "Bearer "+token).Code)
}

func TestRouter_RateLimitedAssistantRoute(t *testing.T) {
	limiter := middleware.NewRateLimiter(2, time.Minute)
	defer limiter.Close()
	h := New(nil, limiter, handlers.NewChatHandler(echoCompleter{}), "")

	assert.Equal(t, http.StatusOK, postChat(h, "").Code)
	assert.Equal(t, http.StatusOK, postChat(h, "").Code)
	assert.Equal(t, http.StatusTooManyRequests, postChat(h, "").Code)
}
