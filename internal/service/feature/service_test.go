package feature_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/service/feature"
)

// memRepo is an in-memory feature repository for unit testing.
type memRepo struct {
	mu          sync.Mutex
	features    map[string]*domain.Feature
	attachments map[string]*domain.BrandFeature
}

func newMemRepo() *memRepo {
	return &memRepo{
		features:    make(map[string]*domain.Feature),
		attachments: make(map[string]*domain.BrandFeature),
	}
}

func (m *memRepo) Create(_ context.Context, f *domain.Feature) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f.ID == "" {
		return "", fmt.Errorf("id required")
	}
	for _, existing := range m.features {
		if existing.Name == f.Name {
			return "", feature.ErrNameTaken
		}
	}
	cp := *f
	m.features[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memRepo) Get(_ context.Context, id string) (*domain.Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.features[id]
	if !ok {
		return nil, feature.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (m *memRepo) List(_ context.Context) ([]domain.Feature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Feature, 0, len(m.features))
	for _, f := range m.features {
		out = append(out, *f)
	}
	return out, nil
}

func (m *memRepo) Attach(_ context.Context, bf *domain.BrandFeature) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *bf
	m.attachments[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memRepo) GetAttachment(_ context.Context, id string) (*domain.BrandFeature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	bf, ok := m.attachments[id]
	if !ok {
		return nil, feature.ErrAttachmentNotFound
	}
	cp := *bf
	if f, ok := m.features[bf.FeatureID]; ok {
		fc := *f
		cp.Feature = &fc
	}
	return &cp, nil
}

func (m *memRepo) UpdateAttachment(_ context.Context, id string, u feature.AttachmentUpdateFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	bf, ok := m.attachments[id]
	if !ok {
		return feature.ErrAttachmentNotFound
	}
	if u.AssetLabel != nil {
		bf.AssetLabel = *u.AssetLabel
	}
	if u.AssetURL != nil {
		bf.AssetURL = *u.AssetURL
	}
	if u.CTAText != nil {
		bf.CTAText = *u.CTAText
	}
	return nil
}

func (m *memRepo) Detach(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.attachments[id]; !ok {
		return feature.ErrAttachmentNotFound
	}
	delete(m.attachments, id)
	return nil
}

func (m *memRepo) ListByBrand(_ context.Context, brandID string) ([]domain.BrandFeature, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.BrandFeature
	for _, bf := range m.attachments {
		if bf.BrandID != brandID {
			continue
		}
		cp := *bf
		if f, ok := m.features[bf.FeatureID]; ok {
			fc := *f
			cp.Feature = &fc
		}
		out = append(out, cp)
	}
	return out, nil
}

func TestCreateAndList(t *testing.T) {
	svc := feature.NewService(newMemRepo())
	ctx := context.Background()

	f, err := svc.Create(ctx, feature.CreateInput{Name: "Speed", ShortDescription: "Fast by default"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if f.ID == "" {
		t.Error("created feature has no id")
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 1 || all[0].Name != "Speed" {
		t.Errorf("List() = %+v", all)
	}
}

func TestCreateDuplicateName(t *testing.T) {
	svc := feature.NewService(newMemRepo())
	ctx := context.Background()

	if _, err := svc.Create(ctx, feature.CreateInput{Name: "Speed"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, err := svc.Create(ctx, feature.CreateInput{Name: "Speed"})
	if !errors.Is(err, feature.ErrNameTaken) {
		t.Errorf("Create() error = %v, want ErrNameTaken", err)
	}
}

func TestAttach(t *testing.T) {
	svc := feature.NewService(newMemRepo())
	ctx := context.Background()

	f, err := svc.Create(ctx, feature.CreateInput{Name: "Security", ShortDescription: "Locked down"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	bf, err := svc.Attach(ctx, "brand-1", feature.AttachInput{
		FeatureID:  f.ID,
		AssetLabel: "Whitepaper",
		AssetURL:   "https://acme.com/security.pdf",
	})
	if err != nil {
		t.Fatalf("Attach() error = %v", err)
	}
	if bf.BrandID != "brand-1" || bf.FeatureID != f.ID {
		t.Errorf("attachment = %+v", bf)
	}

	list, err := svc.ListForBrand(ctx, "brand-1")
	if err != nil {
		t.Fatalf("ListForBrand() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListForBrand() len = %d", len(list))
	}
	if list[0].Feature == nil || list[0].Feature.Name != "Security" {
		t.Errorf("attachment feature = %+v", list[0].Feature)
	}
}

func TestAttachMissingFeature(t *testing.T) {
	svc := feature.NewService(newMemRepo())

	_, err := svc.Attach(context.Background(), "brand-1", feature.AttachInput{FeatureID: "nope"})
	if !errors.Is(err, feature.ErrNotFound) {
		t.Errorf("Attach() error = %v, want ErrNotFound", err)
	}
}

func TestUpdateAttachment(t *testing.T) {
	svc := feature.NewService(newMemRepo())
	ctx := context.Background()

	f, err := svc.Create(ctx, feature.CreateInput{Name: "Security", ShortDescription: "Locked down"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	bf, err := svc.Attach(ctx, "brand-1", feature.AttachInput{FeatureID: f.ID, AssetLabel: "Whitepaper"})
	if err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	label := "Datasheet"
	cta := "Read it"
	got, err := svc.UpdateAttachment(ctx, bf.ID, feature.UpdateAttachmentInput{AssetLabel: &label, CTAText: &cta})
	if err != nil {
		t.Fatalf("UpdateAttachment() error = %v", err)
	}
	if got.AssetLabel != "Datasheet" || got.CTAText != "Read it" {
		t.Errorf("attachment = %+v", got)
	}
	if got.Feature == nil || got.Feature.Name != "Security" {
		t.Errorf("attachment feature = %+v", got.Feature)
	}

	_, err = svc.UpdateAttachment(ctx, "nope", feature.UpdateAttachmentInput{AssetLabel: &label})
	if !errors.Is(err, feature.ErrAttachmentNotFound) {
		t.Errorf("UpdateAttachment() error = %v, want ErrAttachmentNotFound", err)
	}
}

func TestDetach(t *testing.T) {
	svc := feature.NewService(newMemRepo())
	ctx := context.Background()

	f, err := svc.Create(ctx, feature.CreateInput{Name: "Scale"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	bf, err := svc.Attach(ctx, "brand-1", feature.AttachInput{FeatureID: f.ID})
	if err != nil {
		t.Fatalf("Attach() error = %v", err)
	}

	if err := svc.Detach(ctx, bf.ID); err != nil {
		t.Fatalf("Detach() error = %v", err)
	}
	list, err := svc.ListForBrand(ctx, "brand-1")
	if err != nil {
		t.Fatalf("ListForBrand() error = %v", err)
	}
	if len(list) != 0 {
		t.Errorf("ListForBrand() len = %d after detach", len(list))
	}
	if err := svc.Detach(ctx, bf.ID); !errors.Is(err, feature.ErrAttachmentNotFound) {
		t.Errorf("Detach() twice error = %v, want ErrAttachmentNotFound", err)
	}
}
