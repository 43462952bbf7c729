package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/leadmailer/internal/service/template"
)

// CreateTemplate registers an email template for a brand. The body is
// parsed before persisting so broken templates are rejected up front.
func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	var input template.CreateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	t, err := h.templates.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, t)
}

// ListBrandTemplates returns a brand's templates, default first.
func (h *Handlers) ListBrandTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.ListForBrand(r.Context(), chi.URLParam(r, "brandID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"templates": templates})
}

// UpdateTemplate patches a template. New sources go through the same parse
// step as creation.
func (h *Handlers) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var input template.UpdateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	t, err := h.templates.Update(r.Context(), chi.URLParam(r, "templateID"), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}

// DeleteTemplate removes a template.
func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if err := h.templates.Delete(r.Context(), chi.URLParam(r, "templateID")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// SetDefaultTemplate promotes a template to its brand's default,
// displacing any previous default.
func (h *Handlers) SetDefaultTemplate(w http.ResponseWriter, r *http.Request) {
	t, err := h.templates.SetDefault(r.Context(), chi.URLParam(r, "templateID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, t)
}
