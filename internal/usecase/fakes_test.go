package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeLedger keeps the ledger in memory and mimics the CSV store contract:
// Load returns a copy, Append accumulates, Rewrite replaces.
type fakeLedger struct {
	contacts []domain.Contact
	loadErr  error
	appends  int
	rewrites int
}

var _ ports.LedgerStore = (*fakeLedger)(nil)

func (f *fakeLedger) Load(ctx context.Context) ([]domain.Contact, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	out := make([]domain.Contact, len(f.contacts))
	copy(out, f.contacts)
	return out, nil
}

func (f *fakeLedger) Append(ctx context.Context, contacts []domain.Contact) error {
	f.appends++
	f.contacts = append(f.contacts, contacts...)
	return nil
}

func (f *fakeLedger) Rewrite(ctx context.Context, contacts []domain.Contact) error {
	f.rewrites++
	f.contacts = make([]domain.Contact, len(contacts))
	copy(f.contacts, contacts)
	return nil
}

// fakeValidator returns canned statuses or errors per address.
type fakeValidator struct {
	statuses map[string]string
	errs     map[string]error
	calls    []string
}

var _ ports.EmailValidator = (*fakeValidator)(nil)

func (f *fakeValidator) Validate(ctx context.Context, email string) (string, error) {
	f.calls = append(f.calls, email)
	if err, ok := f.errs[email]; ok {
		return "", err
	}
	if status, ok := f.statuses[email]; ok {
		return status, nil
	}
	return "unknown", nil
}

// fakeEmailSender fails a configured number of times per recipient before
// succeeding.
type fakeEmailSender struct {
	failuresLeft map[string]int
	sent         []domain.EmailMessage
	calls        int
}

var _ ports.EmailSender = (*fakeEmailSender)(nil)

func (f *fakeEmailSender) Send(ctx context.Context, msg domain.EmailMessage) error {
	f.calls++
	if f.failuresLeft[msg.To] > 0 {
		f.failuresLeft[msg.To]--
		return errors.New("delivery unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeSMSSender struct {
	failuresLeft map[string]int
	sent         []domain.SMSMessage
	calls        int
}

var _ ports.SMSSender = (*fakeSMSSender)(nil)

func (f *fakeSMSSender) Send(ctx context.Context, msg domain.SMSMessage) error {
	f.calls++
	if f.failuresLeft[msg.To] > 0 {
		f.failuresLeft[msg.To]--
		return errors.New("delivery unavailable")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeAudit struct {
	records []domain.ValidationRecord
	writes  int
}

var _ ports.AuditWriter = (*fakeAudit)(nil)

func (f *fakeAudit) Write(records []domain.ValidationRecord) (string, error) {
	f.writes++
	f.records = append(f.records, records...)
	if len(records) == 0 {
		return "", nil
	}
	return "email_validation_test.csv", nil
}

// fakeSource serves canned interactions and sub-resources, recording call
// counts and failing on demand.
type fakeSource struct {
	interactions []domain.Interaction
	contacts     map[int64]domain.CanvassContact
	houses       map[int64]domain.House
	users        map[int64]domain.User
	contactErrs  map[int64]error
	contactCalls map[int64]int
}

var _ ports.InteractionSource = (*fakeSource)(nil)

func (f *fakeSource) ListInteractions(ctx context.Context) ([]domain.Interaction, error) {
	return f.interactions, nil
}

func (f *fakeSource) GetContact(ctx context.Context, id int64) (domain.CanvassContact, error) {
	if f.contactCalls == nil {
		f.contactCalls = map[int64]int{}
	}
	f.contactCalls[id]++
	if err, ok := f.contactErrs[id]; ok {
		return domain.CanvassContact{}, err
	}
	if contact, ok := f.contacts[id]; ok {
		return contact, nil
	}
	return domain.CanvassContact{}, fmt.Errorf("contact %d not found", id)
}

func (f *fakeSource) GetHouse(ctx context.Context, id int64) (domain.House, error) {
	if house, ok := f.houses[id]; ok {
		return house, nil
	}
	return domain.House{}, fmt.Errorf("house %d not found", id)
}

func (f *fakeSource) GetUser(ctx context.Context, id int64) (domain.User, error) {
	if user, ok := f.users[id]; ok {
		return user, nil
	}
	return domain.User{}, fmt.Errorf("user %d not found", id)
}

// fakePhones serves a fixed address lookup.
type fakePhones struct {
	lookup map[string][]string
	err    error
}

var _ ports.PhoneSource = (*fakePhones)(nil)

func (f *fakePhones) Load(ctx context.Context) (map[string][]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lookup, nil
}
