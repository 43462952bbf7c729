package campaign

import (
	"context"

	"github.com/ignite/leadmailer/internal/domain"
)

// Repository defines the data access contract for campaigns and their
// feature links. Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new campaign and returns its ID.
	Create(ctx context.Context, c *domain.Campaign) (string, error)

	// Get returns a single campaign. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Campaign, error)

	// List returns campaigns, optionally filtered to one brand, ordered by
	// created_at DESC.
	List(ctx context.Context, brandID string) ([]domain.Campaign, error)

	// Update applies the non-nil fields. Returns ErrNotFound if the campaign
	// doesn't exist.
	Update(ctx context.Context, id string, u UpdateFields) error

	// Activate marks the campaign active and deactivates all other campaigns
	// of the same brand within one transaction.
	Activate(ctx context.Context, id string) error

	// Deactivate clears the campaign's active flag.
	Deactivate(ctx context.Context, id string) error

	// ActiveForBrand returns the brand's active campaign, or nil when the
	// brand has none.
	ActiveForBrand(ctx context.Context, brandID string) (*domain.Campaign, error)

	// AddFeature inserts a campaign feature link and returns its ID.
	AddFeature(ctx context.Context, cf *domain.CampaignFeature) (string, error)

	// ListFeatures returns a campaign's links with brand features and
	// catalog features populated, ordered by sort_order ASC with ties in
	// insertion order.
	ListFeatures(ctx context.Context, campaignID string) ([]domain.CampaignFeature, error)

	// GetFeature returns a single campaign feature link with its brand
	// feature and catalog feature populated. Returns ErrFeatureNotFound if
	// it doesn't exist.
	GetFeature(ctx context.Context, campaignFeatureID string) (*domain.CampaignFeature, error)

	// UpdateFeature applies the non-nil fields to a campaign feature link.
	// Returns ErrFeatureNotFound if it doesn't exist.
	UpdateFeature(ctx context.Context, campaignFeatureID string, u FeatureUpdateFields) error

	// RemoveFeature deletes a campaign feature link. Returns
	// ErrFeatureNotFound if it doesn't exist.
	RemoveFeature(ctx context.Context, campaignFeatureID string) error

	// GetBrandFeature returns a brand feature attachment for validation.
	// Returns ErrFeatureNotFound if it doesn't exist.
	GetBrandFeature(ctx context.Context, id string) (*domain.BrandFeature, error)
}

// UpdateFields holds the mutable fields for a campaign update. Nil fields
// are not applied.
type UpdateFields struct {
	Name         *string
	Description  *string
	ToneOverride *string
}

// FeatureUpdateFields holds the mutable fields for a campaign feature link
// update. Nil fields are not applied.
type FeatureUpdateFields struct {
	SortOrder     *int
	HighlightText *string
}
