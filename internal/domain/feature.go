package domain

import "time"

// Feature is a reusable product capability shared across brands. Each brand
// customizes its presentation through a BrandFeature link.
type Feature struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	ShortDescription string    `json:"short_description" db:"short_description"`
	LongDescription  string    `json:"long_description" db:"long_description"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// BrandFeature attaches a Feature to a Brand with brand-specific asset
// metadata. A feature may attach to many brands; each attachment is
// customized independently.
type BrandFeature struct {
	ID         string    `json:"id" db:"id"`
	BrandID    string    `json:"brand_id" db:"brand_id"`
	FeatureID  string    `json:"feature_id" db:"feature_id"`
	AssetLabel string    `json:"asset_label" db:"asset_label"`
	AssetURL   string    `json:"asset_url" db:"asset_url"`
	CTAText    string    `json:"cta_text" db:"cta_text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`

	// Feature is the linked feature, populated by joined queries.
	Feature *Feature `json:"feature,omitempty" db:"-"`
}

// ResolvedFeature is a campaign feature flattened for rendering and copy
// generation: the feature's descriptions plus the brand's asset metadata and
// the campaign's effective highlight text.
type ResolvedFeature struct {
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
	AssetLabel       string `json:"asset_label"`
	AssetURL         string `json:"asset_url"`
	CTAText          string `json:"cta_text"`
	HighlightText    string `json:"highlight_text"`
	SortOrder        int    `json:"sort_order"`
}
