package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/leadmailer/internal/domain"
	"github.com/ignite/leadmailer/internal/service/generation"
)

// EmailRepo implements generation.Repository against PostgreSQL. Copy and
// tone metadata is stored as JSONB alongside the rendered content.
type EmailRepo struct{ db *sql.DB }

// NewEmailRepo creates a Postgres-backed generated-email repository.
func NewEmailRepo(db *sql.DB) *EmailRepo { return &EmailRepo{db: db} }

func (r *EmailRepo) Create(ctx context.Context, e *domain.GeneratedEmail) (string, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	meta, err := marshalMetadata(e.Metadata)
	if err != nil {
		return "", err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO generated_emails
			(id, lead_id, campaign_id, template_id, subject, html_body,
			 status, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, e.ID, e.LeadID, e.CampaignID, e.TemplateID, e.Subject, e.HTMLBody,
		e.Status, meta)
	if err != nil {
		return "", fmt.Errorf("create generated email: %w", err)
	}
	return e.ID, nil
}

func (r *EmailRepo) Get(ctx context.Context, id string) (*domain.GeneratedEmail, error) {
	e := &domain.GeneratedEmail{}
	var meta []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT id, lead_id, campaign_id, template_id, subject, html_body,
		       status, sent_at, metadata, created_at, updated_at
		FROM generated_emails WHERE id = $1
	`, id).Scan(
		&e.ID, &e.LeadID, &e.CampaignID, &e.TemplateID, &e.Subject, &e.HTMLBody,
		&e.Status, &e.SentAt, &meta, &e.CreatedAt, &e.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, generation.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get generated email: %w", err)
	}
	if e.Metadata, err = unmarshalMetadata(meta); err != nil {
		return nil, fmt.Errorf("get generated email: %w", err)
	}
	return e, nil
}

func (r *EmailRepo) ListByLead(ctx context.Context, leadID string) ([]domain.GeneratedEmail, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, lead_id, campaign_id, template_id, subject, html_body,
		       status, sent_at, metadata, created_at, updated_at
		FROM generated_emails WHERE lead_id = $1 ORDER BY created_at DESC
	`, leadID)
	if err != nil {
		return nil, fmt.Errorf("list generated emails: %w", err)
	}
	defer rows.Close()

	var out []domain.GeneratedEmail
	for rows.Next() {
		var e domain.GeneratedEmail
		var meta []byte
		if err := rows.Scan(
			&e.ID, &e.LeadID, &e.CampaignID, &e.TemplateID, &e.Subject, &e.HTMLBody,
			&e.Status, &e.SentAt, &meta, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan generated email: %w", err)
		}
		if e.Metadata, err = unmarshalMetadata(meta); err != nil {
			return nil, fmt.Errorf("scan generated email: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *EmailRepo) MarkSent(ctx context.Context, id string, sentAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE generated_emails
		SET status = $1, sent_at = $2, updated_at = NOW()
		WHERE id = $3
	`, domain.EmailSent, sentAt, id)
	if err != nil {
		return fmt.Errorf("mark email sent: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return generation.ErrNotFound
	}
	return nil
}
