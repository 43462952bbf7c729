package domain

import "time"

// Metadata is a schema-less JSON object carried on leads and generated
// emails. It is validated only loosely at the boundary and stored as JSONB.
type Metadata map[string]interface{}

// Lead is a contact record ingested for a brand. Ingestion triggers email
// generation; the record itself is immutable afterwards apart from timestamp
// bookkeeping.
type Lead struct {
	ID          string    `json:"id" db:"id"`
	BrandID     string    `json:"brand_id" db:"brand_id"`
	Email       string    `json:"email" db:"email"`
	FirstName   string    `json:"first_name" db:"first_name"`
	LastName    string    `json:"last_name" db:"last_name"`
	Company     string    `json:"company" db:"company"`
	JobTitle    string    `json:"job_title" db:"job_title"`
	PhoneNumber string    `json:"phone_number" db:"phone_number"`
	Metadata    Metadata  `json:"metadata,omitempty" db:"metadata"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Salutation returns the name to greet the lead with: first name when
// present, otherwise the email address.
func (l *Lead) Salutation() string {
	if l.FirstName != "" {
		return l.FirstName
	}
	return l.Email
}
