package assistant

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studyhub-backend/internal/models"
)

func TestClient_Complete(t *testing.T) {
	var got models.CompletionRequest
	var auth, path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		auth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"message":"pong"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL+"/", "tok", 5*time.Second)
	reply, err := client.Complete(context.Background(), []models.ChatMessage{{Role: models.RoleUser, Content: "ping"}})

	require.NoError(t, err)
	assert.Equal(t, "pong", reply)
	assert.Equal(t, ChatPath, path)
	assert.Equal(t, "Bearer tok", auth)
	assert.Equal(t, []models.ChatMessage{{Role: models.RoleUser, Content: "ping"}}, got.Messages)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		io.WriteString(w, `{"message":"ok"}`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL, "", 0).Complete(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, auth)
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"Failed to communicate with AI assistant"}`},
		{"unauthorized", http.StatusUnauthorized, `{"error":"Missing authorization header"}`},
		{"malformed body", http.StatusOK, `{"message":`},
		{"missing message", http.StatusOK, `{}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				io.WriteString(w, tc.body)
			}))
			defer server.Close()

			_, err := NewClient(server.URL, "", time.Second).Complete(context.Background(), nil)
			assert.Error(t, err)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	_, err := NewClient(server.URL, "", 50*time.Millisecond).Complete(context.Background(), nil)
	assert.Error(t, err)
}
