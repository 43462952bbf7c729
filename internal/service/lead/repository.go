package lead

import (
	"context"

	"github.com/ignite/leadmailer/internal/domain"
)

// Repository defines the data access contract for leads.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new lead and returns its ID.
	Create(ctx context.Context, l *domain.Lead) (string, error)

	// Get returns a single lead. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Lead, error)

	// ListByBrand returns a brand's leads ordered by created_at DESC.
	ListByBrand(ctx context.Context, brandID string) ([]domain.Lead, error)
}

// BrandResolver looks brands up by slug during ingestion.
type BrandResolver interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Brand, error)
}
