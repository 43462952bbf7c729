package template

import (
	"context"

	"github.com/ignite/leadmailer/internal/domain"
)

// Repository defines the data access contract for email templates.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new template and returns its ID.
	Create(ctx context.Context, t *domain.EmailTemplate) (string, error)

	// Get returns a single template. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.EmailTemplate, error)

	// ListByBrand returns a brand's templates ordered default-first, then
	// most recently updated.
	ListByBrand(ctx context.Context, brandID string) ([]domain.EmailTemplate, error)

	// SetDefault flags the template as its brand's default and clears the
	// flag on all siblings within one transaction. Returns ErrNotFound if
	// the template doesn't exist.
	SetDefault(ctx context.Context, id string) error

	// Update applies the non-nil fields. Returns ErrNotFound if the
	// template doesn't exist. Promotion to default goes through SetDefault;
	// IsDefault here only clears the flag.
	Update(ctx context.Context, id string, u UpdateFields) error

	// Delete removes the template. Generated emails that rendered with it
	// keep their content; only the reference is cleared. Returns
	// ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error
}

// UpdateFields holds the mutable template fields for a patch. Nil fields
// are not applied.
type UpdateFields struct {
	Name            *string
	SubjectTemplate *string
	HTMLBody        *string
	IsDefault       *bool
}
