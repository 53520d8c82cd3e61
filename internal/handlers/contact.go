package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"lfg-site/internal/components"
	"lfg-site/internal/contact"
	"lfg-site/internal/metrics"
	"lfg-site/internal/models"
	"lfg-site/internal/site"
)

// LeadQueue receives a notification for every relayed submission.
type LeadQueue interface {
	Enqueue(ctx context.Context, lead models.LeadNotification) error
}

type ContactHandler struct {
	sender contact.Sender
	leads  LeadQueue
	site   *site.Site
}

// NewContactHandler wires the relay for submissions. leads may be nil when
// lead notification is disabled.
func NewContactHandler(sender contact.Sender, leads LeadQueue, s *site.Site) *ContactHandler {
	return &ContactHandler{sender: sender, leads: leads, site: s}
}

// Submit is the JSON endpoint used by the enhanced form.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	sub := contact.Submission{Email: req.Email, Message: req.Message}
	if req.Template != "" {
		t, ok := contact.ParseTemplate(req.Template)
		if !ok {
			writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed",
				map[string]string{"template": "Unknown template"}, r))
			return
		}
		sub.Template = &t
	}

	if errs := sub.Validate(); len(errs) > 0 {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", errs, r))
		return
	}

	if err := h.sender.Send(r.Context(), sub); err != nil {
		metrics.ContactSubmissions.WithLabelValues("relay_error").Inc()
		slog.Warn("contact relay failed", "error", err)
		writeJSON(w, http.StatusBadGateway, errorResp("RELAY_ERROR", err.Error(), r))
		return
	}

	metrics.ContactSubmissions.WithLabelValues("sent").Inc()
	h.notify(r.Context(), sub)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// SubmitForm handles the no-script form post. A template button re-renders
// the form with the template text; the send button submits.
func (h *ContactHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, contact.NewForm())
		return
	}

	form := contact.NewForm()
	form.SetField(contact.FieldEmail, r.PostFormValue(contact.FieldEmail))
	form.SetField(contact.FieldMessage, r.PostFormValue(contact.FieldMessage))
	if t, ok := contact.ParseTemplate(r.PostFormValue("template")); ok {
		form.ActiveTemplate = &t
	}

	action := r.PostFormValue("action")
	if name, ok := strings.CutPrefix(action, "template:"); ok {
		if t, ok := contact.ParseTemplate(name); ok {
			form.SelectTemplate(t)
		}
		h.render(w, http.StatusOK, form)
		return
	}

	sub := contact.Submission{Email: form.Email, Message: form.Message, Template: form.ActiveTemplate}
	err := form.Submit(r.Context(), h.sender)
	switch {
	case err == nil:
		metrics.ContactSubmissions.WithLabelValues("sent").Inc()
		h.notify(r.Context(), sub)
		h.render(w, http.StatusOK, form)
	case errors.Is(err, contact.ErrInvalid):
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		h.render(w, http.StatusBadRequest, form)
	default:
		metrics.ContactSubmissions.WithLabelValues("relay_error").Inc()
		slog.Warn("contact relay failed", "error", err)
		h.render(w, http.StatusBadGateway, form)
	}
}

func (h *ContactHandler) notify(ctx context.Context, sub contact.Submission) {
	if h.leads == nil {
		return
	}
	lead := models.LeadNotification{Email: sub.Email, Message: sub.Message}
	if sub.Template != nil {
		lead.Template = string(*sub.Template)
	}
	if err := h.leads.Enqueue(context.WithoutCancel(ctx), lead); err != nil {
		slog.Warn("failed to queue lead notification", "error", err)
	}
}

func (h *ContactHandler) render(w http.ResponseWriter, status int, form *contact.Form) {
	page, _ := site.Lookup("/contact/")
	writeHTML(w, status, components.Page(h.site, page, form.View()))
}
