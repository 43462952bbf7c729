package domain

import "time"

// EmailStatus enumerates the delivery states of a generated email.
type EmailStatus string

const (
	EmailDraft EmailStatus = "draft"
	EmailSent  EmailStatus = "sent"
)

// EmailTemplate holds a brand's Liquid template source. At most one template
// per brand is marked default; marking a template default clears the flag on
// its siblings in the same transaction.
type EmailTemplate struct {
	ID              string    `json:"id" db:"id"`
	BrandID         string    `json:"brand_id" db:"brand_id"`
	Name            string    `json:"name" db:"name"`
	SubjectTemplate string    `json:"subject_template" db:"subject_template"`
	HTMLBody        string    `json:"html_body" db:"html_body"`
	IsDefault       bool      `json:"is_default" db:"is_default"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// GeneratedEmail is a rendered email persisted for a lead. It is created in
// draft status by the generation pipeline and mutated only to flip status to
// sent after confirmed dispatch. Metadata records the tone used and the copy
// provider's output for audit.
type GeneratedEmail struct {
	ID         string      `json:"id" db:"id"`
	LeadID     string      `json:"lead_id" db:"lead_id"`
	CampaignID *string     `json:"campaign_id" db:"campaign_id"`
	TemplateID *string     `json:"template_id" db:"template_id"`
	Subject    string      `json:"subject" db:"subject"`
	HTMLBody   string      `json:"html_body" db:"html_body"`
	Status     EmailStatus `json:"status" db:"status"`
	SentAt     *time.Time  `json:"sent_at" db:"sent_at"`
	Metadata   Metadata    `json:"metadata,omitempty" db:"metadata"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}
