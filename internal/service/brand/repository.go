package brand

import (
	"context"

	"github.com/ignite/leadmailer/internal/domain"
)

// Repository defines the data access contract for brands.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new brand and returns its ID. Returns ErrSlugTaken
	// when the slug is already in use.
	Create(ctx context.Context, b *domain.Brand) (string, error)

	// Get returns a single brand. Returns ErrNotFound if it doesn't exist.
	Get(ctx context.Context, id string) (*domain.Brand, error)

	// GetBySlug returns the brand with the given slug. Returns ErrNotFound
	// if it doesn't exist.
	GetBySlug(ctx context.Context, slug string) (*domain.Brand, error)

	// List returns all brands ordered by name.
	List(ctx context.Context) ([]domain.Brand, error)

	// Update applies the non-nil fields. Returns ErrNotFound if the brand
	// doesn't exist, ErrSlugTaken when a slug change collides.
	Update(ctx context.Context, id string, u UpdateFields) error

	// Delete removes the brand. Returns ErrNotFound if it doesn't exist and
	// ErrInUse when dependent records still reference it.
	Delete(ctx context.Context, id string) error
}

// UpdateFields holds the mutable brand fields for a patch. Nil fields are
// not applied.
type UpdateFields struct {
	Name           *string
	Slug           *string
	SenderEmail    *string
	SenderName     *string
	DefaultSubject *string
	DefaultTone    *string
	StyleNotes     *string
}
