package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/service/template"
)

// TemplateRepo implements template.Repository against PostgreSQL.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template repository.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

const templateColumns = `id, brand_id, name, COALESCE(subject_template,''), html_body,
	       is_default, created_at, updated_at`

func scanTemplate(row interface{ Scan(...interface{}) error }, t *domain.EmailTemplate) error {
	return row.Scan(
		&t.ID, &t.BrandID, &t.Name, &t.SubjectTemplate, &t.HTMLBody,
		&t.IsDefault, &t.CreatedAt, &t.UpdatedAt,
	)
}

func (r *TemplateRepo) Create(ctx context.Context, t *domain.EmailTemplate) (string, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO email_templates
			(id, brand_id, name, subject_template, html_body, is_default, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, t.ID, t.BrandID, t.Name, t.SubjectTemplate, t.HTMLBody, t.IsDefault)
	if isPQError(err, codeForeignKeyViolation) {
		return "", template.ErrBrandNotFound
	}
	if err != nil {
		return "", fmt.Errorf("create template: %w", err)
	}
	return t.ID, nil
}

func (r *TemplateRepo) Get(ctx context.Context, id string) (*domain.EmailTemplate, error) {
	t := &domain.EmailTemplate{}
	err := scanTemplate(r.db.QueryRowContext(ctx,
		`SELECT `+templateColumns+` FROM email_templates WHERE id = $1`, id), t)
	if err == sql.ErrNoRows {
		return nil, template.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) ListByBrand(ctx context.Context, brandID string) ([]domain.EmailTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM email_templates
		WHERE brand_id = $1
		ORDER BY is_default DESC, updated_at DESC`, brandID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []domain.EmailTemplate
	for rows.Next() {
		var t domain.EmailTemplate
		if err := scanTemplate(rows, &t); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TemplateRepo) Update(ctx context.Context, id string, u template.UpdateFields) error {
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
	if u.SubjectTemplate != nil {
		add("subject_template", *u.SubjectTemplate)
	}
	if u.HTMLBody != nil {
		add("html_body", *u.HTMLBody)
	}
	if u.IsDefault != nil {
		add("is_default", *u.IsDefault)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf("UPDATE email_templates SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return template.ErrNotFound
	}
	return nil
}

func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM email_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return template.ErrNotFound
	}
	return nil
}

// SetDefault flags one template as its brand's default. The sibling clear
// and the target set run in one transaction so a crash between them cannot
// leave a brand with two defaults.
func (r *TemplateRepo) SetDefault(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin set default: %w", err)
	}
	defer tx.Rollback()

	var brandID string
	err = tx.QueryRowContext(ctx,
		`SELECT brand_id FROM email_templates WHERE id = $1`, id).Scan(&brandID)
	if err == sql.ErrNoRows {
		return template.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve template brand: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE email_templates SET is_default = FALSE, updated_at = NOW()
		WHERE brand_id = $1 AND is_default = TRUE AND id <> $2
	`, brandID, id); err != nil {
		return fmt.Errorf("clear default templates: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE email_templates SET is_default = TRUE, updated_at = NOW()
		WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("set default template: %w", err)
	}

	return tx.Commit()
}
