package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/service/lead"
)

// LeadRepo implements lead.Repository against PostgreSQL. Lead metadata is
// stored as JSONB.
type LeadRepo struct{ db *sql.DB }

// NewLeadRepo creates a Postgres-backed lead repository.
func NewLeadRepo(db *sql.DB) *LeadRepo { return &LeadRepo{db: db} }

func (r *LeadRepo) Create(ctx context.Context, l *domain.Lead) (string, error) {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	meta, err := marshalMetadata(l.Metadata)
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO leads
			(id, brand_id, email, first_name, last_name, company, job_title,
			 phone_number, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
	`, l.ID, l.BrandID, l.Email, l.FirstName, l.LastName, l.Company, l.JobTitle,
		l.PhoneNumber, meta)
	if isPQError(err, codeForeignKeyViolation) {
		return "", lead.ErrBrandNotFound
	}
	if err != nil {
		return "", fmt.Errorf("create lead: %w", err)
	}
	return l.ID, nil
}

func (r *LeadRepo) Get(ctx context.Context, id string) (*domain.Lead, error) {
	l := &domain.Lead{}
	var meta []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, brand_id, email, COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(company,''), COALESCE(job_title,''), COALESCE(phone_number,''),
		       metadata, created_at, updated_at
		FROM leads WHERE id = $1
	`, id).Scan(
		&l.ID, &l.BrandID, &l.Email, &l.FirstName, &l.LastName,
		&l.Company, &l.JobTitle, &l.PhoneNumber,
		&meta, &l.CreatedAt, &l.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, lead.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	if l.Metadata, err = unmarshalMetadata(meta); err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return l, nil
}

func (r *LeadRepo) ListByBrand(ctx context.Context, brandID string) ([]domain.Lead, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, brand_id, email, COALESCE(first_name,''), COALESCE(last_name,''),
		       COALESCE(company,''), COALESCE(job_title,''), COALESCE(phone_number,''),
		       metadata, created_at, updated_at
		FROM leads WHERE brand_id = $1 ORDER BY created_at DESC
	`, brandID)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer rows.Close()

	var out []domain.Lead
	for rows.Next() {
		var l domain.Lead
		var meta []byte
		if err := rows.Scan(
			&l.ID, &l.BrandID, &l.Email, &l.FirstName, &l.LastName,
			&l.Company, &l.JobTitle, &l.PhoneNumber,
			&meta, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		if l.Metadata, err = unmarshalMetadata(meta); err != nil {
			return nil, fmt.Errorf("scan lead: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func marshalMetadata(m domain.Metadata) ([]byte, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}
	return b, nil
}

func unmarshalMetadata(b []byte) (domain.Metadata, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var m domain.Metadata
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("unmarshal metadata: %w", err)
	}
	if len(m) == 0 {
		return nil, nil
	}
	return m, nil
}
