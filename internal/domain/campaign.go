package domain

import "time"

// Campaign groups a brand's featured items for confirmation mailings. At most
// one campaign per brand is active at a time; activation deactivates its
// siblings in the same transaction.
type Campaign struct {
	ID           string    `json:"id" db:"id"`
	BrandID      string    `json:"brand_id" db:"brand_id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	ToneOverride string    `json:"tone_override" db:"tone_override"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// CampaignFeature links a campaign to a brand feature with an ordering key
// and an optional highlight override. Features resolve in ascending
// SortOrder; ties keep insertion order.
type CampaignFeature struct {
	ID             string    `json:"id" db:"id"`
	CampaignID     string    `json:"campaign_id" db:"campaign_id"`
	BrandFeatureID string    `json:"brand_feature_id" db:"brand_feature_id"`
	SortOrder      int       `json:"sort_order" db:"sort_order"`
	HighlightText  string    `json:"highlight_text" db:"highlight_text"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`

	// BrandFeature is populated by joined queries.
	BrandFeature *BrandFeature `json:"brand_feature,omitempty" db:"-"`
}

// EffectiveHighlight returns the campaign's override text, falling back to
// the feature's short description.
func (cf *CampaignFeature) EffectiveHighlight() string {
	if cf.HighlightText != "" {
		return cf.HighlightText
	}
	if cf.BrandFeature != nil && cf.BrandFeature.Feature != nil {
		return cf.BrandFeature.Feature.ShortDescription
	}
	return ""
}
