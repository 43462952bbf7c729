// Package api exposes the HTTP surface: brand, feature, template and
// campaign management plus lead ingestion, preview and send.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ignite/leadmailer/internal/pkg/logger"
	"github.com/ignite/leadmailer/internal/service/brand"
	"github.com/ignite/leadmailer/internal/service/campaign"
	"github.com/ignite/leadmailer/internal/service/feature"
	"github.com/ignite/leadmailer/internal/service/generation"
	"github.com/ignite/leadmailer/internal/service/lead"
	"github.com/ignite/leadmailer/internal/service/template"
)

// Handlers bundles the services behind the HTTP surface.
type Handlers struct {
	brands    *brand.Service
	features  *feature.Service
	templates *template.Service
	campaigns *campaign.Service
	leads     *lead.Service
	emails    *generation.Service
	log       *logger.Logger
}

// NewHandlers creates the handler set.
func NewHandlers(brands *brand.Service, features *feature.Service, templates *template.Service, campaigns *campaign.Service, leads *lead.Service, emails *generation.Service) *Handlers {
	return &Handlers{
		brands:    brands,
		features:  features,
		templates: templates,
		campaigns: campaigns,
		leads:     leads,
		emails:    emails,
		log:       logger.New("api"),
	}
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Response helpers

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service sentinels to HTTP statuses: not-found
// sentinels to 404, validation sentinels to 400, everything else to a
// sanitized 500. Full errors are logged, never sent to the client.
func (h *Handlers) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case isNotFound(err):
		respondError(w, http.StatusNotFound, err.Error())
	case isValidation(err):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		h.log.Error("internal error", "error", err.Error())
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// respondPipelineError is for copy generation, rendering and dispatch
// failures: upstream trouble surfaces as 502 with a sanitized message.
func (h *Handlers) respondPipelineError(w http.ResponseWriter, err error) {
	if isNotFound(err) || isValidation(err) {
		h.respondServiceError(w, err)
		return
	}
	h.log.Error("pipeline error", "error", err.Error())
	respondError(w, http.StatusBadGateway, "email generation failed")
}

func isNotFound(err error) bool {
	for _, target := range []error{
		brand.ErrNotFound,
		feature.ErrNotFound,
		feature.ErrBrandNotFound,
		feature.ErrAttachmentNotFound,
		template.ErrNotFound,
		template.ErrBrandNotFound,
		campaign.ErrNotFound,
		campaign.ErrFeatureNotFound,
		lead.ErrNotFound,
		lead.ErrBrandNotFound,
		generation.ErrNotFound,
		generation.ErrLeadNotFound,
		generation.ErrBrandNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isValidation(err error) bool {
	for _, target := range []error{
		brand.ErrInvalidSlug,
		brand.ErrSlugTaken,
		brand.ErrInvalidInput,
		brand.ErrInUse,
		feature.ErrNameTaken,
		feature.ErrInvalidInput,
		template.ErrInvalidInput,
		campaign.ErrBrandMismatch,
		campaign.ErrInvalidInput,
		lead.ErrInvalidEmail,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// decodeJSON parses a request body, rejecting malformed JSON with 400.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
