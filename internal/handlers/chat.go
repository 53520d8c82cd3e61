package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"lfg-site/internal/chat"
	"lfg-site/internal/models"
)

type tokenIssuer interface {
	Issue(sessionID string) (string, error)
}

// eventStream serves websocket subscribers. Disconnecting them on unmount
// is wired through the registry's OnUnmount hook.
type eventStream interface {
	Serve(w http.ResponseWriter, r *http.Request, sessionID string, hello interface{})
}

type ChatHandler struct {
	registry *chat.Registry
	tokens   tokenIssuer
	events   eventStream
}

func NewChatHandler(registry *chat.Registry, tokens tokenIssuer, events eventStream) *ChatHandler {
	return &ChatHandler{registry: registry, tokens: tokens, events: events}
}

// Start mounts a widget for the requested profile (the demo profile when the
// body is empty) and returns its seeded transcript with the session token.
func (h *ChatHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req models.StartChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if req.Profile == "" {
		req.Profile = chat.ProfileDemo
	}

	widget, err := h.registry.Mount(req.Profile)
	if err != nil {
		handleChatError(w, r, err)
		return
	}

	token, err := h.tokens.Issue(widget.ID())
	if err != nil {
		h.registry.Unmount(widget.ID())
		slog.Error("failed to issue session token", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to start chat session", r))
		return
	}

	session := widget.Snapshot()
	session.Token = token
	writeJSON(w, http.StatusCreated, session)
}

func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	widget, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleChatError(w, r, err)
		return
	}
	session := widget.Snapshot()
	session.Token = h.refresh(widget.ID())
	writeJSON(w, http.StatusOK, session)
}

// Send submits a user turn and blocks until the assistant turn, real or
// fallback, has been appended.
func (h *ChatHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req models.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	widget, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleChatError(w, r, err)
		return
	}

	reply, err := widget.Submit(r.Context(), req.Text)
	if err != nil {
		handleChatError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.SendMessageResponse{
		Reply:    reply,
		State:    string(widget.State()),
		Messages: widget.Messages(),
		Token:    h.refresh(widget.ID()),
	})
}

// refresh issues a token valid for another TTL, so a widget in active use
// never outlives its token. An empty string keeps the caller's token.
func (h *ChatHandler) refresh(sessionID string) string {
	token, err := h.tokens.Issue(sessionID)
	if err != nil {
		slog.Warn("failed to refresh session token", "session", sessionID, "error", err)
		return ""
	}
	return token
}

func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.registry.Unmount(id); err != nil {
		handleChatError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stream upgrades to a websocket that first receives the current snapshot
// and then every message and state event of the widget.
func (h *ChatHandler) Stream(w http.ResponseWriter, r *http.Request) {
	widget, err := h.registry.Get(chi.URLParam(r, "id"))
	if err != nil {
		handleChatError(w, r, err)
		return
	}
	h.events.Serve(w, r, widget.ID(), widget.Snapshot())
}
