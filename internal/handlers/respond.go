package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"lfg-site/internal/chat"
	"lfg-site/internal/models"
)

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func errorRespWithFields(code, message string, fields map[string]string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			Fields:    fields,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleChatError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, chat.ErrUnknownProfile):
		writeJSON(w, http.StatusBadRequest, errorResp("UNKNOWN_PROFILE", "Unknown chat profile", r))
	case errors.Is(err, chat.ErrEmptyMessage):
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
			map[string]string{"text": "Message is required"}, r))
	case errors.Is(err, chat.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Chat session not found", r))
	case errors.Is(err, chat.ErrBusy):
		writeJSON(w, http.StatusConflict, errorResp("BUSY", "A reply is still pending", r))
	case errors.Is(err, chat.ErrClosed):
		writeJSON(w, http.StatusGone, errorResp("CLOSED", "Chat session has been closed", r))
	case errors.Is(err, chat.ErrTooManySessions):
		writeJSON(w, http.StatusServiceUnavailable, errorResp("SESSION_LIMIT", "Too many active chat sessions", r))
	default:
		slog.Error("chat request failed", "error", err, "path", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
