package campaign

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
)

// Service implements campaign business logic. All public methods are safe
// for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a campaign service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput holds the fields for a new campaign.
type CreateInput struct {
	BrandID      string `json:"brand_id"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	ToneOverride string `json:"tone_override"`
}

// Create validates and persists a new inactive campaign.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Campaign, error) {
	if input.BrandID == "" {
		return nil, fmt.Errorf("%w: brand id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}

	c := &domain.Campaign{
		ID:           uuid.New().String(),
		BrandID:      input.BrandID,
		Name:         input.Name,
		Description:  input.Description,
		ToneOverride: input.ToneOverride,
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id)
}

// Get returns a single campaign.
func (s *Service) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.Get(ctx, id)
}

// List returns campaigns, optionally filtered to one brand.
func (s *Service) List(ctx context.Context, brandID string) ([]domain.Campaign, error) {
	return s.repo.List(ctx, brandID)
}

// UpdateInput holds the mutable campaign fields for a patch. Nil fields are
// left untouched.
type UpdateInput struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ToneOverride *string `json:"tone_override"`
	IsActive     *bool   `json:"is_active"`
}

// Update patches a campaign. Setting IsActive true activates it and
// deactivates the brand's other campaigns in the same transaction; false
// simply clears the flag.
func (s *Service) Update(ctx context.Context, id string, input UpdateInput) (*domain.Campaign, error) {
	if input.Name != nil || input.Description != nil || input.ToneOverride != nil {
		u := UpdateFields{
			Name:         input.Name,
			Description:  input.Description,
			ToneOverride: input.ToneOverride,
		}
		if err := s.repo.Update(ctx, id, u); err != nil {
			return nil, err
		}
	}

	if input.IsActive != nil {
		var err error
		if *input.IsActive {
			err = s.repo.Activate(ctx, id)
		} else {
			err = s.repo.Deactivate(ctx, id)
		}
		if err != nil {
			return nil, err
		}
	}

	return s.repo.Get(ctx, id)
}

// ActiveForBrand returns the brand's active campaign, or nil when none is
// active.
func (s *Service) ActiveForBrand(ctx context.Context, brandID string) (*domain.Campaign, error) {
	return s.repo.ActiveForBrand(ctx, brandID)
}

// AddFeatureInput holds the fields for linking a brand feature to a
// campaign. CampaignID is optional; when set it must match the campaign
// being linked.
type AddFeatureInput struct {
	CampaignID     string `json:"campaign_id"`
	BrandFeatureID string `json:"brand_feature_id"`
	SortOrder      int    `json:"sort_order"`
	HighlightText  string `json:"highlight_text"`
}

// AddFeature links a brand feature attachment to the campaign. The
// attachment must belong to the campaign's brand.
func (s *Service) AddFeature(ctx context.Context, campaignID string, input AddFeatureInput) (*domain.CampaignFeature, error) {
	if input.CampaignID != "" && input.CampaignID != campaignID {
		return nil, fmt.Errorf("%w: campaign id mismatch", ErrInvalidInput)
	}
	c, err := s.repo.Get(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	bf, err := s.repo.GetBrandFeature(ctx, input.BrandFeatureID)
	if err != nil {
		return nil, err
	}
	if bf.BrandID != c.BrandID {
		return nil, ErrBrandMismatch
	}

	cf := &domain.CampaignFeature{
		ID:             uuid.New().String(),
		CampaignID:     campaignID,
		BrandFeatureID: input.BrandFeatureID,
		SortOrder:      input.SortOrder,
		HighlightText:  input.HighlightText,
	}
	if _, err := s.repo.AddFeature(ctx, cf); err != nil {
		return nil, err
	}
	return cf, nil
}

// ListFeatures returns the campaign's feature links in resolution order.
func (s *Service) ListFeatures(ctx context.Context, campaignID string) ([]domain.CampaignFeature, error) {
	if _, err := s.repo.Get(ctx, campaignID); err != nil {
		return nil, err
	}
	return s.repo.ListFeatures(ctx, campaignID)
}

// UpdateFeatureInput holds the mutable fields for a campaign feature link
// patch. Nil fields are left untouched.
type UpdateFeatureInput struct {
	SortOrder     *int    `json:"sort_order"`
	HighlightText *string `json:"highlight_text"`
}

// UpdateFeature patches a campaign feature link's sort order or highlight.
func (s *Service) UpdateFeature(ctx context.Context, campaignFeatureID string, input UpdateFeatureInput) (*domain.CampaignFeature, error) {
	u := FeatureUpdateFields{
		SortOrder:     input.SortOrder,
		HighlightText: input.HighlightText,
	}
	if err := s.repo.UpdateFeature(ctx, campaignFeatureID, u); err != nil {
		return nil, err
	}
	return s.repo.GetFeature(ctx, campaignFeatureID)
}

// RemoveFeature deletes a campaign feature link.
func (s *Service) RemoveFeature(ctx context.Context, campaignFeatureID string) error {
	return s.repo.RemoveFeature(ctx, campaignFeatureID)
}

// ResolveFeatures flattens the campaign's links into the shape rendering and
// copy generation consume. A nil campaign or a campaign with no links
// resolves to an empty slice. Order is ascending sort key with stable ties.
func (s *Service) ResolveFeatures(ctx context.Context, c *domain.Campaign) ([]domain.ResolvedFeature, error) {
	if c == nil {
		return []domain.ResolvedFeature{}, nil
	}

	links, err := s.repo.ListFeatures(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ResolvedFeature, 0, len(links))
	for _, cf := range links {
		if cf.BrandFeature == nil || cf.BrandFeature.Feature == nil {
			return nil, fmt.Errorf("campaign feature %s has no resolved brand feature", cf.ID)
		}
		bf := cf.BrandFeature
		out = append(out, domain.ResolvedFeature{
			Name:             bf.Feature.Name,
			ShortDescription: bf.Feature.ShortDescription,
			LongDescription:  bf.Feature.LongDescription,
			AssetLabel:       bf.AssetLabel,
			AssetURL:         bf.AssetURL,
			CTAText:          bf.CTAText,
			HighlightText:    cf.EffectiveHighlight(),
			SortOrder:        cf.SortOrder,
		})
	}
	return out, nil
}
