package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/leadmailer/internal/service/feature"
)

// CreateFeature adds a feature to the global catalog.
func (h *Handlers) CreateFeature(w http.ResponseWriter, r *http.Request) {
	var input feature.CreateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	f, err := h.features.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, f)
}

// ListFeatures returns the global feature catalog.
func (h *Handlers) ListFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.features.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"features": features})
}

// AttachBrandFeature links a catalog feature to a brand with asset metadata.
func (h *Handlers) AttachBrandFeature(w http.ResponseWriter, r *http.Request) {
	var input feature.AttachInput
	if !decodeJSON(w, r, &input) {
		return
	}

	bf, err := h.features.Attach(r.Context(), chi.URLParam(r, "brandID"), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, bf)
}

// UpdateBrandFeature patches a brand feature's asset metadata.
func (h *Handlers) UpdateBrandFeature(w http.ResponseWriter, r *http.Request) {
	var input feature.UpdateAttachmentInput
	if !decodeJSON(w, r, &input) {
		return
	}

	bf, err := h.features.UpdateAttachment(r.Context(), chi.URLParam(r, "brandFeatureID"), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bf)
}

// DetachBrandFeature unlinks a feature from its brand. Campaign links that
// reference the attachment go with it.
func (h *Handlers) DetachBrandFeature(w http.ResponseWriter, r *http.Request) {
	if err := h.features.Detach(r.Context(), chi.URLParam(r, "brandFeatureID")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}

// ListBrandFeatures returns a brand's attached features.
func (h *Handlers) ListBrandFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.features.ListForBrand(r.Context(), chi.URLParam(r, "brandID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"features": features})
}
