package ports

import (
	"context"
	"errors"

	"ContactOutreach/internal/domain"
)

// ErrLedgerNotFound reports that the ledger file does not exist yet.
// Ingestion starts an empty ledger on this; merge and dispatch abort.
var ErrLedgerNotFound = errors.New("ledger file not found")

// InteractionSource pulls canvassing interactions and their sub-resources
// from the upstream field-organizing API.
type InteractionSource interface {
	ListInteractions(ctx context.Context) ([]domain.Interaction, error)
	GetContact(ctx context.Context, id int64) (domain.CanvassContact, error)
	GetHouse(ctx context.Context, id int64) (domain.House, error)
	GetUser(ctx context.Context, id int64) (domain.User, error)
}

// LedgerStore persists the contact ledger. Load reads the whole file,
// Append adds new rows without touching existing ones, and Rewrite replaces
// the file atomically.
type LedgerStore interface {
	Load(ctx context.Context) ([]domain.Contact, error)
	Append(ctx context.Context, contacts []domain.Contact) error
	Rewrite(ctx context.Context, contacts []domain.Contact) error
}

// PhoneSource loads the secondary property-data export as a mapping from
// normalized address key to the phone values found for that address, in
// fixed field order.
type PhoneSource interface {
	Load(ctx context.Context) (map[string][]string, error)
}

// EmailValidator checks deliverability of a single address against the
// external validation service and returns its raw status string.
type EmailValidator interface {
	Validate(ctx context.Context, email string) (string, error)
}

// EmailSender submits one email through the delivery service.
type EmailSender interface {
	Send(ctx context.Context, msg domain.EmailMessage) error
}

// SMSSender submits one text message through the SMS service.
type SMSSender interface {
	Send(ctx context.Context, msg domain.SMSMessage) error
}

// AuditWriter records the validation verdicts of a dispatch run.
type AuditWriter interface {
	Write(records []domain.ValidationRecord) (string, error)
}
