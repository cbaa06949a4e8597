package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"studyhub-backend/internal/middleware"
	"studyhub-backend/internal/models"
)

const (
	maxChatBodyBytes = 1 << 20

	msgInvalidBody = "Invalid request body"
	msgInvalidRole = "Messages may only use the user or assistant role"
	msgAIFailure   = "Failed to communicate with AI assistant"
)

type completer interface {
	Complete(ctx context.Context, messages []models.ChatMessage) (string, error)
}

type ChatHandler struct {
	completer completer
}

func NewChatHandler(completer completer) *ChatHandler {
	return &ChatHandler{completer: completer}
}

// Chat proxies a conversation to the upstream assistant. Upstream failure
// detail is logged and never returned to the caller.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBodyBytes)

	var req models.CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidBody))
		return
	}

	for _, msg := range req.Messages {
		if !msg.IsConversational() {
			writeJSON(w, http.StatusBadRequest, errorResp(msgInvalidRole))
			return
		}
	}

	reply, err := h.completer.Complete(r.Context(), req.Messages)
	if err != nil {
		log.Error().
			Err(err).
			Str("request_id", middleware.GetRequestID(r.Context())).
			Int("messages", len(req.Messages)).
			Msg("AI API error")
		writeJSON(w, http.StatusInternalServerError, errorResp(msgAIFailure))
		return
	}

	writeJSON(w, http.StatusOK, models.CompletionResponse{Message: reply})
}
