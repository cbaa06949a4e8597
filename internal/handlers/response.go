package handlers

import (
	"encoding/json"
	"net/http"

	"studyhub-backend/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string) models.CompletionResponse {
	return models.CompletionResponse{Error: message}
}

// Health reports liveness only; it never touches the upstream.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
