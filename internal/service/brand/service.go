package brand

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
)

// Service implements brand business logic. All public methods are safe for
// concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a brand service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields for a new brand.
type CreateInput struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	SenderEmail    string `json:"sender_email"`
	SenderName     string `json:"sender_name"`
	DefaultSubject string `json:"default_subject"`
	DefaultTone    string `json:"default_tone"`
	StyleNotes     string `json:"style_notes"`
}

// Create validates and persists a new brand.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Brand, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	slug := strings.ToLower(strings.TrimSpace(input.Slug))
	if !domain.ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	b := &domain.Brand{
		ID:             uuid.New().String(),
		Name:           input.Name,
		Slug:           slug,
		SenderEmail:    input.SenderEmail,
		SenderName:     input.SenderName,
		DefaultSubject: input.DefaultSubject,
		DefaultTone:    input.DefaultTone,
		StyleNotes:     input.StyleNotes,
	}

	id, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// UpdateInput holds the mutable brand fields for a patch. Nil fields are
// left untouched.
type UpdateInput struct {
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	SenderEmail    *string `json:"sender_email"`
	SenderName     *string `json:"sender_name"`
	DefaultSubject *string `json:"default_subject"`
	DefaultTone    *string `json:"default_tone"`
	StyleNotes     *string `json:"style_notes"`
}

// Update patches a brand. A slug change is normalized and validated the same
// way Create validates it.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Brand, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if input.Slug != nil {
		slug := strings.ToLower(strings.TrimSpace(*input.Slug))
		if !domain.ValidSlug(slug) {
			return nil, ErrInvalidSlug
		}
		input.Slug = &slug
	}

	u := UpdateFields{
		Name:           input.Name,
		Slug:           input.Slug,
		SenderEmail:    input.SenderEmail,
		SenderName:     input.SenderName,
		DefaultSubject: input.DefaultSubject,
		DefaultTone:    input.DefaultTone,
		StyleNotes:     input.StyleNotes,
	}
	if err := s.repo.Update(ctx, id, u); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a brand. Brands with templates, campaigns or leads are
// refused with ErrInUse.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get returns a single brand.
func (s *Service) Get(ctx context.Context, id string) (*domain.Brand, error) {
	return s.repo.Get(ctx, id)
}

// GetBySlug returns the brand with the given slug.
func (s *Service) GetBySlug(ctx context.Context, slug string) (*domain.Brand, error) {
	return s.repo.GetBySlug(ctx, slug)
}

// List returns all brands.
func (s *Service) List(ctx context.Context) ([]domain.Brand, error) {
	return s.repo.List(ctx)
}
