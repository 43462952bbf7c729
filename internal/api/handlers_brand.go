package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/leadmailer/internal/service/brand"
)

// CreateBrand registers a new brand.
func (h *Handlers) CreateBrand(w http.ResponseWriter, r *http.Request) {
	var input brand.CreateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	b, err := h.brands.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, b)
}

// ListBrands returns all brands.
func (h *Handlers) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brands.List(r.Context())
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"brands": brands})
}

// GetBrand returns a single brand by id.
func (h *Handlers) GetBrand(w http.ResponseWriter, r *http.Request) {
	b, err := h.brands.Get(r.Context(), chi.URLParam(r, "brandID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// UpdateBrand patches a brand's fields.
func (h *Handlers) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	var input brand.UpdateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	b, err := h.brands.Update(r.Context(), chi.URLParam(r, "brandID"), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, b)
}

// DeleteBrand removes a brand. Brands that still own templates, campaigns
// or leads are refused.
func (h *Handlers) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	if err := h.brands.Delete(r.Context(), chi.URLParam(r, "brandID")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true})
}
