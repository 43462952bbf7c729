package generation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/copygen"
	"github.com/ignite/leadmailer/internal/dispatch"
	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/mailing"
	"github.com/ignite/leadmailer/internal/pkg/logger"
)

// Service runs the generation pipeline and dispatches its output.
type Service struct {
	repo      Repository
	leads     LeadStore
	brands    BrandStore
	campaigns CampaignStore
	templates TemplateSelector
	copyGen   copygen.Generator
	renderer  *mailing.Renderer
	gateway   dispatch.Gateway
	tone      string
	log       *logger.Logger
}

// NewService wires the pipeline. tone is the last-resort tone when neither
// the campaign nor the brand specifies one.
func NewService(repo Repository, leads LeadStore, brands BrandStore, campaigns CampaignStore, templates TemplateSelector, copyGen copygen.Generator, gateway dispatch.Gateway, tone string) *Service {
	if tone == "" {
		tone = "professional"
	}
	return &Service{
		repo:      repo,
		leads:     leads,
		brands:    brands,
		campaigns: campaigns,
		templates: templates,
		copyGen:   copyGen,
		renderer:  mailing.NewRenderer(),
		gateway:   gateway,
		tone:      tone,
		log:       logger.New("generation"),
	}
}

// Generate runs the full pipeline for a lead and persists the result as a
// draft. tone overrides the campaign/brand tone chain when non-empty. Each
// call inserts a new row; previous drafts for the lead are kept.
func (s *Service) Generate(ctx context.Context, leadID, tone string) (*domain.GeneratedEmail, error) {
	l, err := s.leads.Get(ctx, leadID)
	if err != nil {
		return nil, ErrLeadNotFound
	}
	b, err := s.brands.Get(ctx, l.BrandID)
	if err != nil {
		return nil, ErrBrandNotFound
	}

	c, err := s.campaigns.ActiveForBrand(ctx, b.ID)
	if err != nil {
		return nil, fmt.Errorf("resolving active campaign: %w", err)
	}
	features, err := s.campaigns.ResolveFeatures(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("resolving features: %w", err)
	}

	tone = s.effectiveTone(tone, c, b)

	copyResult, err := s.copyGen.Generate(ctx, copygen.Request{
		Lead:     l,
		Brand:    b,
		Campaign: c,
		Features: features,
		Tone:     tone,
	})
	if err != nil {
		return nil, fmt.Errorf("generating copy: %w", err)
	}

	tmpl, err := s.templates.Select(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("selecting template: %w", err)
	}

	email, err := s.renderer.Render(tmpl, mailing.RenderContext{
		Lead:     l,
		Brand:    b,
		Campaign: c,
		Features: features,
		Tone:     tone,
		Copy:     copyResult,
	})
	if err != nil {
		return nil, fmt.Errorf("rendering email: %w", err)
	}

	email.ID = uuid.New().String()
	id, err := s.repo.Create(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("persisting email: %w", err)
	}

	s.log.Info("email generated",
		"email_id", id,
		"lead", l.Email,
		"brand", b.Slug,
		"features", len(features),
		"model", copyResult.ModelUsed)

	return s.repo.Get(ctx, id)
}

// effectiveTone walks the tone chain: explicit request, campaign override,
// brand default, service default.
func (s *Service) effectiveTone(explicit string, c *domain.Campaign, b *domain.Brand) string {
	if explicit != "" {
		return explicit
	}
	if c != nil && c.ToneOverride != "" {
		return c.ToneOverride
	}
	if b.DefaultTone != "" {
		return b.DefaultTone
	}
	return s.tone
}

// Get returns a single generated email.
func (s *Service) Get(ctx context.Context, id string) (*domain.GeneratedEmail, error) {
	return s.repo.Get(ctx, id)
}

// ListForLead returns a lead's generated emails, newest first.
func (s *Service) ListForLead(ctx context.Context, leadID string) ([]domain.GeneratedEmail, error) {
	if _, err := s.leads.Get(ctx, leadID); err != nil {
		return nil, ErrLeadNotFound
	}
	return s.repo.ListByLead(ctx, leadID)
}

// Send dispatches a generated email to its lead. Only a confirmed send flips
// the row to sent status; a skipped dispatch or a gateway error leaves it in
// draft for deliberate re-dispatch.
func (s *Service) Send(ctx context.Context, emailID string) (*domain.GeneratedEmail, *dispatch.Outcome, error) {
	email, err := s.repo.Get(ctx, emailID)
	if err != nil {
		return nil, nil, err
	}
	l, err := s.leads.Get(ctx, email.LeadID)
	if err != nil {
		return nil, nil, ErrLeadNotFound
	}
	b, err := s.brands.Get(ctx, l.BrandID)
	if err != nil {
		return nil, nil, ErrBrandNotFound
	}

	outcome, err := s.gateway.Send(ctx, dispatch.Message{
		To:          l.Email,
		FromAddress: b.FromAddress(),
		FromName:    b.FromName(),
		Subject:     email.Subject,
		HTMLBody:    email.HTMLBody,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("dispatching email: %w", err)
	}

	if outcome.Status == dispatch.StatusSent {
		sentAt := time.Now().UTC()
		if err := s.repo.MarkSent(ctx, email.ID, sentAt); err != nil {
			return nil, nil, fmt.Errorf("marking email sent: %w", err)
		}
		email, err = s.repo.Get(ctx, email.ID)
		if err != nil {
			return nil, nil, err
		}
	}

	return email, outcome, nil
}
