package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository against PostgreSQL.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

const campaignColumns = `id, brand_id, name, COALESCE(description,''), COALESCE(tone_override,''),
	       is_active, created_at, updated_at`

func scanCampaign(row interface{ Scan(...interface{}) error }, c *domain.Campaign) error {
	return row.Scan(
		&c.ID, &c.BrandID, &c.Name, &c.Description, &c.ToneOverride,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
}

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO campaigns
			(id, brand_id, name, description, tone_override, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW(), NOW())
	`, c.ID, c.BrandID, c.Name, c.Description, c.ToneOverride)
	if err != nil {
		return "", fmt.Errorf("create campaign: %w", err)
	}
	return c.ID, nil
}

func (r *CampaignRepo) Get(ctx context.Context, id string) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := scanCampaign(r.db.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns WHERE id = $1`, id), c)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) List(ctx context.Context, brandID string) ([]domain.Campaign, error) {
	q := `SELECT ` + campaignColumns + ` FROM campaigns`
	args := []interface{}{}
	if brandID != "" {
		q += ` WHERE brand_id = $1`
		args = append(args, brandID)
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := scanCampaign(rows, &c); err != nil {
			return nil, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *CampaignRepo) Update(ctx context.Context, id string, u campaign.UpdateFields) error {
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
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.ToneOverride != nil {
		add("tone_override", *u.ToneOverride)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, id)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

// Activate flips the campaign active and deactivates its brand siblings.
// Both writes run in one transaction so readers never observe two active
// campaigns for a brand.
func (r *CampaignRepo) Activate(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin activate: %w", err)
	}
	defer tx.Rollback()

	var brandID string
	err = tx.QueryRowContext(ctx,
		`SELECT brand_id FROM campaigns WHERE id = $1`, id).Scan(&brandID)
	if err == sql.ErrNoRows {
		return campaign.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("resolve campaign brand: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE campaigns SET is_active = FALSE, updated_at = NOW()
		WHERE brand_id = $1 AND is_active = TRUE AND id <> $2
	`, brandID, id); err != nil {
		return fmt.Errorf("deactivate sibling campaigns: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE campaigns SET is_active = TRUE, updated_at = NOW()
		WHERE id = $1
	`, id); err != nil {
		return fmt.Errorf("activate campaign: %w", err)
	}

	return tx.Commit()
}

func (r *CampaignRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaigns SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return fmt.Errorf("deactivate campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) ActiveForBrand(ctx context.Context, brandID string) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := scanCampaign(r.db.QueryRowContext(ctx,
		`SELECT `+campaignColumns+` FROM campaigns
		WHERE brand_id = $1 AND is_active = TRUE`, brandID), c)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get active campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) AddFeature(ctx context.Context, cf *domain.CampaignFeature) (string, error) {
	if cf.ID == "" {
		cf.ID = uuid.New().String()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO campaign_features
			(id, campaign_id, brand_feature_id, sort_order, highlight_text, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`, cf.ID, cf.CampaignID, cf.BrandFeatureID, cf.SortOrder, cf.HighlightText)
	if isPQError(err, codeForeignKeyViolation) {
		return "", campaign.ErrFeatureNotFound
	}
	if err != nil {
		return "", fmt.Errorf("add campaign feature: %w", err)
	}
	return cf.ID, nil
}

func (r *CampaignRepo) ListFeatures(ctx context.Context, campaignID string) ([]domain.CampaignFeature, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cf.id, cf.campaign_id, cf.brand_feature_id, cf.sort_order,
		       COALESCE(cf.highlight_text,''), cf.created_at, cf.updated_at,
		       bf.id, bf.brand_id, bf.feature_id,
		       COALESCE(bf.asset_label,''), COALESCE(bf.asset_url,''), COALESCE(bf.cta_text,''),
		       bf.created_at, bf.updated_at,
		       f.id, f.name, COALESCE(f.short_description,''), COALESCE(f.long_description,''),
		       f.created_at, f.updated_at
		FROM campaign_features cf
		JOIN brand_features bf ON bf.id = cf.brand_feature_id
		JOIN features f ON f.id = bf.feature_id
		WHERE cf.campaign_id = $1
		ORDER BY cf.sort_order ASC, cf.created_at ASC
	`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list campaign features: %w", err)
	}
	defer rows.Close()

	var out []domain.CampaignFeature
	for rows.Next() {
		var cf domain.CampaignFeature
		var bf domain.BrandFeature
		var f domain.Feature
		if err := rows.Scan(
			&cf.ID, &cf.CampaignID, &cf.BrandFeatureID, &cf.SortOrder,
			&cf.HighlightText, &cf.CreatedAt, &cf.UpdatedAt,
			&bf.ID, &bf.BrandID, &bf.FeatureID,
			&bf.AssetLabel, &bf.AssetURL, &bf.CTAText,
			&bf.CreatedAt, &bf.UpdatedAt,
			&f.ID, &f.Name, &f.ShortDescription, &f.LongDescription,
			&f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan campaign feature: %w", err)
		}
		bf.Feature = &f
		cf.BrandFeature = &bf
		out = append(out, cf)
	}
	return out, rows.Err()
}

func (r *CampaignRepo) GetFeature(ctx context.Context, campaignFeatureID string) (*domain.CampaignFeature, error) {
	var cf domain.CampaignFeature
	var bf domain.BrandFeature
	var f domain.Feature
	err := r.db.QueryRowContext(ctx, `
		SELECT cf.id, cf.campaign_id, cf.brand_feature_id, cf.sort_order,
		       COALESCE(cf.highlight_text,''), cf.created_at, cf.updated_at,
		       bf.id, bf.brand_id, bf.feature_id,
		       COALESCE(bf.asset_label,''), COALESCE(bf.asset_url,''), COALESCE(bf.cta_text,''),
		       bf.created_at, bf.updated_at,
		       f.id, f.name, COALESCE(f.short_description,''), COALESCE(f.long_description,''),
		       f.created_at, f.updated_at
		FROM campaign_features cf
		JOIN brand_features bf ON bf.id = cf.brand_feature_id
		JOIN features f ON f.id = bf.feature_id
		WHERE cf.id = $1
	`, campaignFeatureID).Scan(
		&cf.ID, &cf.CampaignID, &cf.BrandFeatureID, &cf.SortOrder,
		&cf.HighlightText, &cf.CreatedAt, &cf.UpdatedAt,
		&bf.ID, &bf.BrandID, &bf.FeatureID,
		&bf.AssetLabel, &bf.AssetURL, &bf.CTAText,
		&bf.CreatedAt, &bf.UpdatedAt,
		&f.ID, &f.Name, &f.ShortDescription, &f.LongDescription,
		&f.CreatedAt, &f.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrFeatureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign feature: %w", err)
	}
	bf.Feature = &f
	cf.BrandFeature = &bf
	return &cf, nil
}

func (r *CampaignRepo) UpdateFeature(ctx context.Context, campaignFeatureID string, u campaign.FeatureUpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.SortOrder != nil {
		add("sort_order", *u.SortOrder)
	}
	if u.HighlightText != nil {
		add("highlight_text", *u.HighlightText)
	}
	if len(sets) == 0 {
		return nil
	}
	sets = append(sets, "updated_at = NOW()")

	q := fmt.Sprintf("UPDATE campaign_features SET %s WHERE id = $%d", strings.Join(sets, ", "), idx)
	args = append(args, campaignFeatureID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update campaign feature: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrFeatureNotFound
	}
	return nil
}

func (r *CampaignRepo) RemoveFeature(ctx context.Context, campaignFeatureID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM campaign_features WHERE id = $1`, campaignFeatureID)
	if err != nil {
		return fmt.Errorf("remove campaign feature: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrFeatureNotFound
	}
	return nil
}

func (r *CampaignRepo) GetBrandFeature(ctx context.Context, id string) (*domain.BrandFeature, error) {
	bf := &domain.BrandFeature{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, brand_id, feature_id, COALESCE(asset_label,''), COALESCE(asset_url,''),
		       COALESCE(cta_text,''), created_at, updated_at
		FROM brand_features WHERE id = $1
	`, id).Scan(
		&bf.ID, &bf.BrandID, &bf.FeatureID, &bf.AssetLabel, &bf.AssetURL,
		&bf.CTAText, &bf.CreatedAt, &bf.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrFeatureNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get brand feature: %w", err)
	}
	return bf, nil
}
