package template

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/mailing"
)

// Service implements template business logic. Template sources are parsed at
// create time so broken Liquid never reaches the render path.
type Service struct {
	repo   Repository
	engine *mailing.Engine
}

// NewService creates a template service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, engine: mailing.NewEngine()}
}

// CreateInput holds the fields for a new template.
type CreateInput struct {
	BrandID         string `json:"brand_id"`
	Name            string `json:"name"`
	SubjectTemplate string `json:"subject_template"`
	HTMLBody        string `json:"html_body"`
	IsDefault       bool   `json:"is_default"`
}

// Create validates, parses and persists a new template. A template created
// with the default flag displaces the brand's current default.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.EmailTemplate, error) {
	if input.BrandID == "" {
		return nil, fmt.Errorf("%w: brand id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.HTMLBody == "" {
		return nil, fmt.Errorf("%w: html body is required", ErrInvalidInput)
	}
	if err := s.engine.Parse(input.HTMLBody); err != nil {
		return nil, fmt.Errorf("%w: body template: %v", ErrInvalidInput, err)
	}
	if input.SubjectTemplate != "" {
		if err := s.engine.Parse(input.SubjectTemplate); err != nil {
			return nil, fmt.Errorf("%w: subject template: %v", ErrInvalidInput, err)
		}
	}

	t := &domain.EmailTemplate{
		ID:              uuid.New().String(),
		BrandID:         input.BrandID,
		Name:            input.Name,
		SubjectTemplate: input.SubjectTemplate,
		HTMLBody:        input.HTMLBody,
	}

	id, err := s.repo.Create(ctx, t)
	if err != nil {
		return nil, err
	}
	if input.IsDefault {
		if err := s.repo.SetDefault(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// UpdateInput holds the fields for a template patch. Nil fields stay
// unchanged.
type UpdateInput struct {
	Name            *string `json:"name"`
	SubjectTemplate *string `json:"subject_template"`
	HTMLBody        *string `json:"html_body"`
	IsDefault       *bool   `json:"is_default"`
}

// Update applies a partial update. New template sources are parsed the same
// way Create parses them. Setting the default flag displaces the brand's
// current default.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.EmailTemplate, error) {
	if input.Name != nil && *input.Name == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", ErrInvalidInput)
	}
	if input.HTMLBody != nil {
		if *input.HTMLBody == "" {
			return nil, fmt.Errorf("%w: html body cannot be empty", ErrInvalidInput)
		}
		if err := s.engine.Parse(*input.HTMLBody); err != nil {
			return nil, fmt.Errorf("%w: body template: %v", ErrInvalidInput, err)
		}
	}
	if input.SubjectTemplate != nil && *input.SubjectTemplate != "" {
		if err := s.engine.Parse(*input.SubjectTemplate); err != nil {
			return nil, fmt.Errorf("%w: subject template: %v", ErrInvalidInput, err)
		}
	}

	u := UpdateFields{
		Name:            input.Name,
		SubjectTemplate: input.SubjectTemplate,
		HTMLBody:        input.HTMLBody,
	}
	promote := input.IsDefault != nil && *input.IsDefault
	if input.IsDefault != nil && !*input.IsDefault {
		u.IsDefault = input.IsDefault
	}
	if err := s.repo.Update(ctx, id, u); err != nil {
		return nil, err
	}
	if promote {
		if err := s.repo.SetDefault(ctx, id); err != nil {
			return nil, err
		}
	}
	return s.repo.Get(ctx, id)
}

// Delete removes a template.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// Get returns a single template.
func (s *Service) Get(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	return s.repo.Get(ctx, id)
}

// ListForBrand returns a brand's templates, default first.
func (s *Service) ListForBrand(ctx context.Context, brandID string) ([]domain.EmailTemplate, error) {
	return s.repo.ListByBrand(ctx, brandID)
}

// SetDefault makes the template its brand's default, displacing any current
// default in the same transaction.
func (s *Service) SetDefault(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	if err := s.repo.SetDefault(ctx, id); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Select picks the template the brand's emails render with: the default when
// one is flagged, else the most recently updated, else the built-in template
// which is persisted for the brand on first use. Never returns nil without
// an error.
func (s *Service) Select(ctx context.Context, b *domain.Brand) (*domain.EmailTemplate, error) {
	tmpls, err := s.repo.ListByBrand(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if len(tmpls) > 0 {
		// Repository order puts the default first, then most recent.
		t := tmpls[0]
		return &t, nil
	}

	t := &domain.EmailTemplate{
		ID:       uuid.New().String(),
		BrandID:  b.ID,
		Name:     mailing.DefaultTemplateName,
		HTMLBody: mailing.DefaultTemplateHTML,
	}
	if _, err := s.repo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("persisting built-in template: %w", err)
	}
	return s.repo.Get(ctx, t.ID)
}
