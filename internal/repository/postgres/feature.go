package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/service/feature"
)

// FeatureRepo implements feature.Repository against PostgreSQL.
type FeatureRepo struct{ db *sql.DB }

// NewFeatureRepo creates a Postgres-backed feature repository.
func NewFeatureRepo(db *sql.DB) *FeatureRepo { return &FeatureRepo{db: db} }

func (r *FeatureRepo) Create(ctx context.Context, f *domain.Feature) (string, error) {
	if f.ID == "" {
		f.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO features
			(id, name, short_description, long_description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
	`, f.ID, f.Name, f.ShortDescription, f.LongDescription)
	if isPQError(err, codeUniqueViolation) {
		return "", feature.ErrNameTaken
	}
	if err != nil {
		return "", fmt.Errorf("create feature: %w", err)
	}
	return f.ID, nil
}

func (r *FeatureRepo) Get(ctx context.Context, id string) (*domain.Feature, error) {
	f := &domain.Feature{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, COALESCE(short_description,''), COALESCE(long_description,''),
		       created_at, updated_at
		FROM features WHERE id = $1
	`, id).Scan(&f.ID, &f.Name, &f.ShortDescription, &f.LongDescription, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, feature.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get feature: %w", err)
	}
	return f, nil
}

func (r *FeatureRepo) List(ctx context.Context) ([]domain.Feature, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, COALESCE(short_description,''), COALESCE(long_description,''),
		       created_at, updated_at
		FROM features ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list features: %w", err)
	}
	defer rows.Close()

	var out []domain.Feature
	for rows.Next() {
		var f domain.Feature
		if err := rows.Scan(&f.ID, &f.Name, &f.ShortDescription, &f.LongDescription,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan feature: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FeatureRepo) Attach(ctx context.Context, bf *domain.BrandFeature) (string, error) {
	if bf.ID == "" {
		bf.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO brand_features
			(id, brand_id, feature_id, asset_label, asset_url, cta_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, bf.ID, bf.BrandID, bf.FeatureID, bf.AssetLabel, bf.AssetURL, bf.CTAText)
	if isPQError(err, codeForeignKeyViolation) {
		return "", feature.ErrBrandNotFound
	}
	if err != nil {
		return "", fmt.Errorf("attach feature: %w", err)
	}
	return bf.ID, nil
}

func (r *FeatureRepo) GetAttachment(ctx context.Context, id string) (*domain.BrandFeature, error) {
	var bf domain.BrandFeature
	var f domain.Feature
	err := r.db.QueryRowContext(ctx, `
		SELECT bf.id, bf.brand_id, bf.feature_id,
		       COALESCE(bf.asset_label,''), COALESCE(bf.asset_url,''), COALESCE(bf.cta_text,''),
		       bf.created_at, bf.updated_at,
		       f.id, f.name, COALESCE(f.short_description,''), COALESCE(f.long_description,''),
		       f.created_at, f.updated_at
		FROM brand_features bf
		JOIN features f ON f.id = bf.feature_id
		WHERE bf.id = $1
	`, id).Scan(
		&bf.ID, &bf.BrandID, &bf.FeatureID,
		&bf.AssetLabel, &bf.AssetURL, &bf.CTAText,
		&bf.CreatedAt, &bf.UpdatedAt,
		&f.ID, &f.Name, &f.ShortDescription, &f.LongDescription,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, feature.ErrAttachmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get brand feature: %w", err)
	}
	bf.Feature = &f
	return &bf, nil
}

func (r *FeatureRepo) UpdateAttachment(ctx context.Context, id string, u feature.AttachmentUpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.AssetLabel != nil {
		add("asset_label", *u.AssetLabel)
	}
	if u.AssetURL != nil {
		add("asset_url", *u.AssetURL)
	}
	if u.CTAText != nil {
		add("cta_text", *u.CTAText)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf("UPDATE brand_features SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update brand feature: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return feature.ErrAttachmentNotFound
	}
	return nil
}

// Detach removes a brand feature. Campaign links that reference it cascade
// away with it.
func (r *FeatureRepo) Detach(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM brand_features WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("detach feature: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return feature.ErrAttachmentNotFound
	}
	return nil
}

func (r *FeatureRepo) ListByBrand(ctx context.Context, brandID string) ([]domain.BrandFeature, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT bf.id, bf.brand_id, bf.feature_id,
		       COALESCE(bf.asset_label,''), COALESCE(bf.asset_url,''), COALESCE(bf.cta_text,''),
		       bf.created_at, bf.updated_at,
		       f.id, f.name, COALESCE(f.short_description,''), COALESCE(f.long_description,''),
		       f.created_at, f.updated_at
		FROM brand_features bf
		JOIN features f ON f.id = bf.feature_id
		WHERE bf.brand_id = $1
		ORDER BY bf.created_at
	`, brandID)
	if err != nil {
		return nil, fmt.Errorf("list brand features: %w", err)
	}
	defer rows.Close()

	var out []domain.BrandFeature
	for rows.Next() {
		var bf domain.BrandFeature
		var f domain.Feature
		if err := rows.Scan(
			&bf.ID, &bf.BrandID, &bf.FeatureID,
			&bf.AssetLabel, &bf.AssetURL, &bf.CTAText,
			&bf.CreatedAt, &bf.UpdatedAt,
			&f.ID, &f.Name, &f.ShortDescription, &f.LongDescription,
			&f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan brand feature: %w", err)
		}
		bf.Feature = &f
		out = append(out, bf)
	}
	return out, rows.Err()
}
