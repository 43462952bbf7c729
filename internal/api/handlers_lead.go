package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/leadmailer/internal/service/lead"
)

// IngestLead captures a lead by brand slug and fires the generation
// pipeline for it. The lead is persisted even when generation fails;
// the failure is reported alongside the stored lead so the caller can
// retry a preview later.
func (h *Handlers) IngestLead(w http.ResponseWriter, r *http.Request) {
	var input lead.IngestInput
	if !decodeJSON(w, r, &input) {
		return
	}

	l, _, err := h.leads.Ingest(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	email, genErr := h.emails.Generate(r.Context(), l.ID, "")
	if genErr != nil {
		h.log.Error("generation after ingest failed", "lead_id", l.ID, "error", genErr.Error())
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"lead":             l,
			"generation_error": "email generation failed",
		})
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"lead":  l,
		"email": email,
	})
}

// GetLead returns a single lead.
func (h *Handlers) GetLead(w http.ResponseWriter, r *http.Request) {
	l, err := h.leads.Get(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, l)
}

// ListLeadEmails returns a lead's generated emails, newest first.
func (h *Handlers) ListLeadEmails(w http.ResponseWriter, r *http.Request) {
	emails, err := h.emails.ListForLead(r.Context(), chi.URLParam(r, "leadID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"emails": emails})
}

// PreviewLead regenerates an email for a lead, optionally with an
// explicit tone. Each preview persists a fresh draft row.
func (h *Handlers) PreviewLead(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Tone string `json:"tone"`
	}
	if r.ContentLength > 0 && !decodeJSON(w, r, &input) {
		return
	}

	email, err := h.emails.Generate(r.Context(), chi.URLParam(r, "leadID"), input.Tone)
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":      email.ID,
		"subject": email.Subject,
		"body":    email.HTMLBody,
		"tone":    email.Metadata["tone"],
	})
}

// SendEmail dispatches a previously generated email to its lead.
func (h *Handlers) SendEmail(w http.ResponseWriter, r *http.Request) {
	var input struct {
		GeneratedEmailID string `json:"generated_email_id"`
	}
	if !decodeJSON(w, r, &input) {
		return
	}
	if input.GeneratedEmailID == "" {
		respondError(w, http.StatusBadRequest, "generated_email_id is required")
		return
	}

	email, outcome, err := h.emails.Send(r.Context(), input.GeneratedEmailID)
	if err != nil {
		h.respondPipelineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"email":   email,
		"status":  outcome.Status,
		"detail":  outcome.Detail,
		"message": outcome.MessageID,
	})
}
