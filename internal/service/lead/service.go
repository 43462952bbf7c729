package lead

import (
	"context"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Service implements lead ingestion. All public methods are safe for
// concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo   Repository
	brands BrandResolver
}

// NewService creates a lead service backed by the given repository and brand
// resolver.
func NewService(repo Repository, brands BrandResolver) *Service {
	return &Service{repo: repo, brands: brands}
}

// IngestInput holds an inbound lead keyed by brand slug.
type IngestInput struct {
	BrandSlug   string          `json:"brand_slug"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Company     string          `json:"company"`
	JobTitle    string          `json:"job_title"`
	PhoneNumber string          `json:"phone_number"`
	Metadata    domain.Metadata `json:"metadata"`
}

// Ingest validates and persists an inbound lead. The brand is resolved by
// slug; an unknown slug is ErrBrandNotFound.
func (s *Service) Ingest(ctx context.Context, input IngestInput) (*domain.Lead, *domain.Brand, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !emailPattern.MatchString(email) {
		return nil, nil, ErrInvalidEmail
	}

	b, err := s.brands.GetBySlug(ctx, strings.ToLower(strings.TrimSpace(input.BrandSlug)))
	if err != nil {
		return nil, nil, ErrBrandNotFound
	}

	l := &domain.Lead{
		ID:          uuid.New().String(),
		BrandID:     b.ID,
		Email:       email,
		FirstName:   strings.TrimSpace(input.FirstName),
		LastName:    strings.TrimSpace(input.LastName),
		Company:     strings.TrimSpace(input.Company),
		JobTitle:    strings.TrimSpace(input.JobTitle),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Metadata:    input.Metadata,
	}

	id, err := s.repo.Create(ctx, l)
	if err != nil {
		return nil, nil, err
	}
	created, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return created, b, nil
}

// Get returns a single lead.
func (s *Service) Get(ctx context.Context, id string) (*domain.Lead, error) {
	return s.repo.Get(ctx, id)
}

// ListForBrand returns a brand's leads, newest first.
func (s *Service) ListForBrand(ctx context.Context, brandID string) ([]domain.Lead, error) {
	return s.repo.ListByBrand(ctx, brandID)
}
