package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ignite/leadmailer/internal/service/campaign"
)

// CreateCampaign registers a campaign for a brand. Campaigns start
// inactive; activation goes through UpdateCampaign.
func (h *Handlers) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var input campaign.CreateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	c, err := h.campaigns.Create(r.Context(), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, c)
}

// ListCampaigns returns a brand's campaigns. brand_id is required.
func (h *Handlers) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	brandID := r.URL.Query().Get("brand_id")
	if brandID == "" {
		respondError(w, http.StatusBadRequest, "brand_id query parameter is required")
		return
	}

	campaigns, err := h.campaigns.List(r.Context(), brandID)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"campaigns": campaigns})
}

// UpdateCampaign patches campaign fields. Setting is_active to true
// deactivates any other active campaign on the same brand.
func (h *Handlers) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var input campaign.UpdateInput
	if !decodeJSON(w, r, &input) {
		return
	}

	c, err := h.campaigns.Update(r.Context(), chi.URLParam(r, "campaignID"), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, c)
}

// AddCampaignFeature pins a brand feature to a campaign with ordering
// and an optional highlight. The feature must belong to the campaign's
// brand.
func (h *Handlers) AddCampaignFeature(w http.ResponseWriter, r *http.Request) {
	var input campaign.AddFeatureInput
	if !decodeJSON(w, r, &input) {
		return
	}

	cf, err := h.campaigns.AddFeature(r.Context(), chi.URLParam(r, "campaignID"), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, cf)
}

// ListCampaignFeatures returns a campaign's features in send order.
func (h *Handlers) ListCampaignFeatures(w http.ResponseWriter, r *http.Request) {
	features, err := h.campaigns.ListFeatures(r.Context(), chi.URLParam(r, "campaignID"))
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"features": features})
}

// UpdateCampaignFeature patches a pinned feature's sort order or highlight.
func (h *Handlers) UpdateCampaignFeature(w http.ResponseWriter, r *http.Request) {
	var input campaign.UpdateFeatureInput
	if !decodeJSON(w, r, &input) {
		return
	}

	cf, err := h.campaigns.UpdateFeature(r.Context(), chi.URLParam(r, "campaignFeatureID"), input)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, cf)
}

// RemoveCampaignFeature detaches a feature from its campaign.
func (h *Handlers) RemoveCampaignFeature(w http.ResponseWriter, r *http.Request) {
	if err := h.campaigns.RemoveFeature(r.Context(), chi.URLParam(r, "campaignFeatureID")); err != nil {
		h.respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"removed": true})
}
