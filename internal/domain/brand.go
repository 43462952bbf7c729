package domain

import (
	"strings"
	"time"
)

// Brand represents a client whose identity and senders the system mails on
// behalf of. The slug is globally unique and is the external lookup key used
// by lead ingestion.
type Brand struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	SenderEmail    string    `json:"sender_email" db:"sender_email"`
	SenderName     string    `json:"sender_name" db:"sender_name"`
	DefaultSubject string    `json:"default_subject" db:"default_subject"`
	DefaultTone    string    `json:"default_tone" db:"default_tone"`
	StyleNotes     string    `json:"style_notes" db:"style_notes"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// FromAddress returns the address emails are sent from, falling back to a
// slug-derived address when no sender email is configured.
func (b *Brand) FromAddress() string {
	if b.SenderEmail != "" {
		return b.SenderEmail
	}
	return "info@" + b.Slug + ".com"
}

// FromName returns the display name for the sender, falling back to the
// brand name.
func (b *Brand) FromName() string {
	if b.SenderName != "" {
		return b.SenderName
	}
	return b.Name
}

// ValidSlug reports whether s is usable as a brand slug: non-empty,
// lowercase letters, digits, and hyphens only.
func ValidSlug(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return !strings.HasPrefix(s, "-") && !strings.HasSuffix(s, "-")
}
