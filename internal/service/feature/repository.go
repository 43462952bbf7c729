package feature

import (
	"context"

	"github.com/ignite/leadmailer/internal/domain"
)

// Repository defines the data access contract for features and their brand
// attachments. Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a catalog feature and returns its ID. Returns
	// ErrNameTaken when the name is already in use.
	Create(ctx context.Context, f *domain.Feature) (string, error)

	// Get returns a single feature. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Feature, error)

	// List returns all catalog features ordered by name.
	List(ctx context.Context) ([]domain.Feature, error)

	// Attach links a feature to a brand with asset metadata and returns the
	// attachment ID.
	Attach(ctx context.Context, bf *domain.BrandFeature) (string, error)

	// ListByBrand returns a brand's attachments with their features
	// populated, ordered by creation time.
	ListByBrand(ctx context.Context, brandID string) ([]domain.BrandFeature, error)

	// GetAttachment returns a single attachment with its feature populated.
	// Returns ErrAttachmentNotFound if it doesn't exist.
	GetAttachment(ctx context.Context, id string) (*domain.BrandFeature, error)

	// UpdateAttachment applies the non-nil asset fields. Returns
	// ErrAttachmentNotFound if the attachment doesn't exist.
	UpdateAttachment(ctx context.Context, id string, u AttachmentUpdateFields) error

	// Detach removes a brand's attachment (campaign links to it go with it).
	// Returns ErrAttachmentNotFound if it doesn't exist.
	Detach(ctx context.Context, id string) error
}

// AttachmentUpdateFields holds the mutable attachment fields for a patch.
// Nil fields are not applied.
type AttachmentUpdateFields struct {
	AssetLabel *string
	AssetURL   *string
	CTAText    *string
}
