package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// envelope mirrors the response shape used by the handlers so middleware
// failures look the same to clients.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(envelope{Success: false, Message: message})
	if err != nil {
		slog.Error("failed to encode middleware response", "error", err)
	}
}
