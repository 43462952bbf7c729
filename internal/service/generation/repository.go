package generation

import (
	"context"
	"time"

	"github.com/ignite/leadmailer/internal/domain"
)

// Repository defines the data access contract for generated emails.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new generated email and returns its ID.
	Create(ctx context.Context, e *domain.GeneratedEmail) (string, error)

	// Get returns a single generated email. Returns ErrNotFound if it
	// doesn't exist.
	Get(ctx context.Context, id string) (*domain.GeneratedEmail, error)

	// ListByLead returns a lead's generated emails ordered by created_at
	// DESC.
	ListByLead(ctx context.Context, leadID string) ([]domain.GeneratedEmail, error)

	// MarkSent flips the email to sent status with the given timestamp.
	// Returns ErrNotFound if it doesn't exist.
	MarkSent(ctx context.Context, id string, sentAt time.Time) error
}

// LeadStore is the slice of the lead service the pipeline needs.
type LeadStore interface {
	Get(ctx context.Context, id string) (*domain.Lead, error)
}

// BrandStore is the slice of the brand service the pipeline needs.
type BrandStore interface {
	Get(ctx context.Context, id string) (*domain.Brand, error)
}

// CampaignStore resolves a brand's active campaign and its features.
type CampaignStore interface {
	ActiveForBrand(ctx context.Context, brandID string) (*domain.Campaign, error)
	ResolveFeatures(ctx context.Context, c *domain.Campaign) ([]domain.ResolvedFeature, error)
}

// TemplateSelector picks the template a brand's emails render with.
type TemplateSelector interface {
	Select(ctx context.Context, b *domain.Brand) (*domain.EmailTemplate, error)
}
