package feature

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
)

// Service implements feature catalog business logic. All public methods are
// safe for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a feature service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields for a new catalog feature.
type CreateInput struct {
	Name             string `json:"name"`
	ShortDescription string `json:"short_description"`
	LongDescription  string `json:"long_description"`
}

// Create validates and persists a new catalog feature.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Feature, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	f := &domain.Feature{
		ID:               uuid.New().String(),
		Name:             input.Name,
		ShortDescription: input.ShortDescription,
		LongDescription:  input.LongDescription,
	}

	id, err := s.repo.Create(ctx, f)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Get returns a single catalog feature.
func (s *Service) Get(ctx context.Context, id string) (*domain.Feature, error) {
	return s.repo.Get(ctx, id)
}

// List returns all catalog features.
func (s *Service) List(ctx context.Context) ([]domain.Feature, error) {
	return s.repo.List(ctx)
}

// AttachInput holds the fields for attaching a feature to a brand.
type AttachInput struct {
	FeatureID  string `json:"feature_id"`
	AssetLabel string `json:"asset_label"`
	AssetURL   string `json:"asset_url"`
	CTAText    string `json:"cta_text"`
}

// Attach links a catalog feature to a brand with asset metadata. The feature
// must exist; the brand is checked by the repository's foreign keys.
func (s *Service) Attach(ctx context.Context, brandID string, input AttachInput) (*domain.BrandFeature, error) {
	if brandID == "" {
		return nil, fmt.Errorf("%w: brand id is required", ErrInvalidInput)
	}
	if _, err := s.repo.Get(ctx, input.FeatureID); err != nil {
		return nil, err
	}

	bf := &domain.BrandFeature{
		ID:         uuid.New().String(),
		BrandID:    brandID,
		FeatureID:  input.FeatureID,
		AssetLabel: input.AssetLabel,
		AssetURL:   input.AssetURL,
		CTAText:    input.CTAText,
	}

	if _, err := s.repo.Attach(ctx, bf); err != nil {
		return nil, err
	}
	return bf, nil
}

// UpdateAttachmentInput holds the mutable asset fields for a patch. Nil
// fields are left untouched.
type UpdateAttachmentInput struct {
	AssetLabel *string `json:"asset_label"`
	AssetURL   *string `json:"asset_url"`
	CTAText    *string `json:"cta_text"`
}

// UpdateAttachment patches an attachment's asset metadata.
func (s *Service) UpdateAttachment(ctx context.Context, brandFeatureID string, input UpdateAttachmentInput) (*domain.BrandFeature, error) {
	u := AttachmentUpdateFields{
		AssetLabel: input.AssetLabel,
		AssetURL:   input.AssetURL,
		CTAText:    input.CTAText,
	}
	if err := s.repo.UpdateAttachment(ctx, brandFeatureID, u); err != nil {
		return nil, err
	}
	return s.repo.GetAttachment(ctx, brandFeatureID)
}

// Detach removes a feature attachment from its brand.
func (s *Service) Detach(ctx context.Context, brandFeatureID string) error {
	return s.repo.Detach(ctx, brandFeatureID)
}

// ListForBrand returns a brand's feature attachments with their catalog
// features populated.
func (s *Service) ListForBrand(ctx context.Context, brandID string) ([]domain.BrandFeature, error) {
	return s.repo.ListByBrand(ctx, brandID)
}
