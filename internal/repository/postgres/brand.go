package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/service/brand"
)

// BrandRepo implements brand.Repository against PostgreSQL.
type BrandRepo struct{ db *sql.DB }

// NewBrandRepo creates a Postgres-backed brand repository.
func NewBrandRepo(db *sql.DB) *BrandRepo { return &BrandRepo{db: db} }

const brandColumns = `id, name, slug, COALESCE(sender_email,''), COALESCE(sender_name,''),
	       COALESCE(default_subject,''), COALESCE(default_tone,''), COALESCE(style_notes,''),
	       created_at, updated_at`

func scanBrand(row interface{ Scan(...interface{}) error }, b *domain.Brand) error {
	return row.Scan(
		&b.ID, &b.Name, &b.Slug, &b.SenderEmail, &b.SenderName,
		&b.DefaultSubject, &b.DefaultTone, &b.StyleNotes,
		&b.CreatedAt, &b.UpdatedAt,
	)
}

func (r *BrandRepo) Create(ctx context.Context, b *domain.Brand) (string, error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO brands
			(id, name, slug, sender_email, sender_name, default_subject,
			 default_tone, style_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, b.ID, b.Name, b.Slug, b.SenderEmail, b.SenderName,
		b.DefaultSubject, b.DefaultTone, b.StyleNotes)
	if isPQError(err, codeUniqueViolation) {
		return "", brand.ErrSlugTaken
	}
	if err != nil {
		return "", fmt.Errorf("create brand: %w", err)
	}
	return b.ID, nil
}

func (r *BrandRepo) Get(ctx context.Context, id string) (*domain.Brand, error) {
	b := &domain.Brand{}
	err := scanBrand(r.db.QueryRowContext(ctx,
		`SELECT `+brandColumns+` FROM brands WHERE id = $1`, id), b)
	if err == sql.ErrNoRows {
		return nil, brand.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

func (r *BrandRepo) GetBySlug(ctx context.Context, slug string) (*domain.Brand, error) {
	b := &domain.Brand{}
	err := scanBrand(r.db.QueryRowContext(ctx,
		`SELECT `+brandColumns+` FROM brands WHERE slug = $1`, slug), b)
	if err == sql.ErrNoRows {
		return nil, brand.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get brand by slug: %w", err)
	}
	return b, nil
}

func (r *BrandRepo) Update(ctx context.Context, id string, u brand.UpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Slug != nil {
		add("slug", *u.Slug)
	}
	if u.SenderEmail != nil {
		add("sender_email", *u.SenderEmail)
	}
	if u.SenderName != nil {
		add("sender_name", *u.SenderName)
	}
	if u.DefaultSubject != nil {
		add("default_subject", *u.DefaultSubject)
	}
	if u.DefaultTone != nil {
		add("default_tone", *u.DefaultTone)
	}
	if u.StyleNotes != nil {
		add("style_notes", *u.StyleNotes)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf("UPDATE brands SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if isPQError(err, codeUniqueViolation) {
		return brand.ErrSlugTaken
	}
	if err != nil {
		return fmt.Errorf("update brand: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return brand.ErrNotFound
	}
	return nil
}

// Delete removes a brand. Brands referenced by templates, campaigns, leads
// or features are kept; the foreign key violation maps to ErrInUse.
func (r *BrandRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = $1`, id)
	if isPQError(err, codeForeignKeyViolation) {
		return brand.ErrInUse
	}
	if err != nil {
		return fmt.Errorf("delete brand: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return brand.ErrNotFound
	}
	return nil
}

func (r *BrandRepo) List(ctx context.Context) ([]domain.Brand, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+brandColumns+` FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list brands: %w", err)
	}
	defer rows.Close()

	var out []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := scanBrand(rows, &b); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
