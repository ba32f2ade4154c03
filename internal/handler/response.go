package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/monohq/mono/internal/service"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func respond(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	err := json.NewEncoder(w).Encode(resp)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func respondSuccess(w http.ResponseWriter, message string, data any) {
	respond(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func respondError(w http.ResponseWriter, status int, message string) {
	respond(w, status, Response{Success: false, Message: message})
}

// respondValidation maps a wrapped service.ErrValidation to a 400 whose
// errors field carries the detail.
func respondValidation(w http.ResponseWriter, err error) {
	detail := strings.TrimPrefix(err.Error(), service.ErrValidation.Error()+": ")
	respond(w, http.StatusBadRequest, Response{
		Success: false,
		Message: "Validation error",
		Errors:  detail,
	})
}

func respondInternal(w http.ResponseWriter, err error, context string) {
	slog.Error(context, "error", err)
	respondError(w, http.StatusInternalServerError, "Internal server error")
}

func decodeJSON(r *http.Request, dst any) error {
	return json.NewDecoder(r.Body).Decode(dst)
}

// isValidation reports whether err is (or wraps) a validation failure.
func isValidation(err error) bool {
	return errors.Is(err, service.ErrValidation)
}
