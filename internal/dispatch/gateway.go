package dispatch

import "context"

// Status is the outcome classification of a dispatch attempt.
type Status string

const (
	// StatusSent means the provider accepted the message.
	StatusSent Status = "sent"
	// StatusSkipped means no provider was configured and nothing was sent.
	StatusSkipped Status = "skipped"
)

// Message is a fully rendered email ready for delivery.
type Message struct {
	To          string
	FromAddress string
	FromName    string
	Subject     string
	HTMLBody    string
}

// Outcome reports what happened to a dispatched message. MessageID is set
// only when the provider accepted the message.
type Outcome struct {
	Status    Status
	MessageID string
	Detail    string
}

// Gateway delivers messages. Implementations return an error only for actual
// delivery failures; a gateway that cannot send at all reports skipped.
type Gateway interface {
	Send(ctx context.Context, msg Message) (*Outcome, error)
}
