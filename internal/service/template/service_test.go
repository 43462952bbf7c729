package template_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/mailing"
	"github.com/ignite/leadmailer/internal/service/template"
)

// memRepo is an in-memory template repository for unit testing.
type memRepo struct {
	mu        sync.Mutex
	templates map[string]*domain.EmailTemplate
	now       time.Time
}

func newMemRepo() *memRepo {
	return &memRepo{
		templates: make(map[string]*domain.EmailTemplate),
		now:       time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick advances the clock so successive writes get distinct timestamps.
func (m *memRepo) tick() time.Time {
	m.now = m.now.Add(time.Minute)
	return m.now
}

func (m *memRepo) Create(_ context.Context, t *domain.EmailTemplate) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		return "", fmt.Errorf("id required")
	}
	cp := *t
	cp.CreatedAt = m.tick()
	cp.UpdatedAt = cp.CreatedAt
	m.templates[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memRepo) Get(_ context.Context, id string) (*domain.EmailTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return nil, template.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *memRepo) ListByBrand(_ context.Context, brandID string) ([]domain.EmailTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.EmailTemplate
	for _, t := range m.templates {
		if t.BrandID == brandID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsDefault != out[j].IsDefault {
			return out[i].IsDefault
		}
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (m *memRepo) SetDefault(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	target, ok := m.templates[id]
	if !ok {
		return template.ErrNotFound
	}
	for _, t := range m.templates {
		if t.BrandID == target.BrandID && t.IsDefault {
			t.IsDefault = false
			t.UpdatedAt = m.tick()
		}
	}
	target.IsDefault = true
	target.UpdatedAt = m.tick()
	return nil
}

func (m *memRepo) Update(_ context.Context, id string, u template.UpdateFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.templates[id]
	if !ok {
		return template.ErrNotFound
	}
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.SubjectTemplate != nil {
		t.SubjectTemplate = *u.SubjectTemplate
	}
	if u.HTMLBody != nil {
		t.HTMLBody = *u.HTMLBody
	}
	if u.IsDefault != nil {
		t.IsDefault = *u.IsDefault
	}
	t.UpdatedAt = m.tick()
	return nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.templates[id]; !ok {
		return template.ErrNotFound
	}
	delete(m.templates, id)
	return nil
}

func TestCreateParsesTemplates(t *testing.T) {
	svc := template.NewService(newMemRepo())
	ctx := context.Background()

	tmpl, err := svc.Create(ctx, template.CreateInput{
		BrandID:  "brand-1",
		Name:     "Welcome",
		HTMLBody: "<p>Hi {{ lead.salutation }}</p>",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if tmpl.IsDefault {
		t.Error("template defaulted without the flag")
	}

	_, err = svc.Create(ctx, template.CreateInput{
		BrandID:  "brand-1",
		Name:     "Broken",
		HTMLBody: "{% for x in %}",
	})
	if err == nil {
		t.Fatal("Create() expected parse error for broken body")
	}

	_, err = svc.Create(ctx, template.CreateInput{
		BrandID:         "brand-1",
		Name:            "BrokenSubject",
		HTMLBody:        "<p>ok</p>",
		SubjectTemplate: "{% if %}",
	})
	if err == nil {
		t.Fatal("Create() expected parse error for broken subject")
	}
}

func TestSetDefaultDisplacesSibling(t *testing.T) {
	repo := newMemRepo()
	svc := template.NewService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, template.CreateInput{BrandID: "brand-1", Name: "A", HTMLBody: "<p>a</p>", IsDefault: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !first.IsDefault {
		t.Fatal("first template not default")
	}

	second, err := svc.Create(ctx, template.CreateInput{BrandID: "brand-1", Name: "B", HTMLBody: "<p>b</p>", IsDefault: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if !second.IsDefault {
		t.Fatal("second template not default")
	}

	reloaded, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if reloaded.IsDefault {
		t.Error("first template kept the default flag")
	}
}

func TestSelectPrefersDefault(t *testing.T) {
	svc := template.NewService(newMemRepo())
	ctx := context.Background()
	b := &domain.Brand{ID: "brand-1", Name: "Acme", Slug: "acme"}

	older, _ := svc.Create(ctx, template.CreateInput{BrandID: b.ID, Name: "Old", HTMLBody: "<p>old</p>", IsDefault: true})
	if _, err := svc.Create(ctx, template.CreateInput{BrandID: b.ID, Name: "New", HTMLBody: "<p>new</p>"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Select(ctx, b)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID != older.ID {
		t.Errorf("Select() = %q, want default template %q", got.Name, older.Name)
	}
}

func TestSelectFallsBackToMostRecent(t *testing.T) {
	svc := template.NewService(newMemRepo())
	ctx := context.Background()
	b := &domain.Brand{ID: "brand-1", Name: "Acme", Slug: "acme"}

	if _, err := svc.Create(ctx, template.CreateInput{BrandID: b.ID, Name: "First", HTMLBody: "<p>1</p>"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	latest, err := svc.Create(ctx, template.CreateInput{BrandID: b.ID, Name: "Second", HTMLBody: "<p>2</p>"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.Select(ctx, b)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.ID != latest.ID {
		t.Errorf("Select() = %q, want most recent %q", got.Name, latest.Name)
	}
}

func TestSelectSynthesizesBuiltIn(t *testing.T) {
	repo := newMemRepo()
	svc := template.NewService(repo)
	ctx := context.Background()
	b := &domain.Brand{ID: "brand-1", Name: "Acme", Slug: "acme"}

	got, err := svc.Select(ctx, b)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got.Name != mailing.DefaultTemplateName {
		t.Errorf("Select() name = %q", got.Name)
	}
	if got.HTMLBody != mailing.DefaultTemplateHTML {
		t.Error("Select() body is not the built-in template")
	}

	// Persisted on first use: a second select returns the same row.
	again, err := svc.Select(ctx, b)
	if err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if again.ID != got.ID {
		t.Errorf("second Select() id = %q, want %q", again.ID, got.ID)
	}
}

func TestUpdateReparsesBody(t *testing.T) {
	svc := template.NewService(newMemRepo())
	ctx := context.Background()

	tmpl, err := svc.Create(ctx, template.CreateInput{BrandID: "brand-1", Name: "Welcome", HTMLBody: "<p>hi</p>"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	broken := "{% for x in %}"
	if _, err := svc.Update(ctx, tmpl.ID, template.UpdateInput{HTMLBody: &broken}); !errors.Is(err, template.ErrInvalidInput) {
		t.Fatalf("Update() error = %v, want ErrInvalidInput for broken body", err)
	}

	body := "<p>Hello {{ lead.salutation }}</p>"
	got, err := svc.Update(ctx, tmpl.ID, template.UpdateInput{HTMLBody: &body})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.HTMLBody != body {
		t.Errorf("Update() body = %q, want %q", got.HTMLBody, body)
	}
	if got.Name != "Welcome" {
		t.Errorf("Update() clobbered name: %q", got.Name)
	}
}

func TestUpdatePromotesDefault(t *testing.T) {
	svc := template.NewService(newMemRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, template.CreateInput{BrandID: "brand-1", Name: "A", HTMLBody: "<p>a</p>", IsDefault: true})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	second, err := svc.Create(ctx, template.CreateInput{BrandID: "brand-1", Name: "B", HTMLBody: "<p>b</p>"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	yes := true
	got, err := svc.Update(ctx, second.ID, template.UpdateInput{IsDefault: &yes})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !got.IsDefault {
		t.Fatal("updated template not default")
	}

	reloaded, err := svc.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if reloaded.IsDefault {
		t.Error("previous default kept the flag")
	}
}

func TestDelete(t *testing.T) {
	svc := template.NewService(newMemRepo())
	ctx := context.Background()

	tmpl, err := svc.Create(ctx, template.CreateInput{BrandID: "brand-1", Name: "Gone", HTMLBody: "<p>x</p>"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := svc.Delete(ctx, tmpl.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := svc.Get(ctx, tmpl.ID); !errors.Is(err, template.ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, tmpl.ID); !errors.Is(err, template.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestSetDefaultMissing(t *testing.T) {
	svc := template.NewService(newMemRepo())

	_, err := svc.SetDefault(context.Background(), "nope")
	if !errors.Is(err, template.ErrNotFound) {
		t.Errorf("SetDefault() error = %v, want ErrNotFound", err)
	}
}
