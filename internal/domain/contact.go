package domain

import (
	"strings"

	"ContactOutreach/internal/format"
)

// Slot widths of the ledger schema. The tabular layout is fixed so the
// exported file stays stable for downstream spreadsheet users.
const (
	PhoneSlots = 5
	EmailSlots = 3
)

// Address holds the structured location fields of a ledger row.
type Address struct {
	Unit        string
	HouseName   string
	HouseNumber string
	StreetName  string
	City        string
	State       string
}

// Key returns the normalized "{house number} {street name}" used to match
// rows against the secondary phone export. Empty when either part is blank.
func (a Address) Key() string {
	return format.AddressKey(a.HouseNumber, a.StreetName)
}

// Contact is one ledger row: a canvassed household plus its contact methods
// and dispatch state. InteractionID is the unique external key; Contacted is
// the sole idempotency guard for outreach.
type Contact struct {
	FirstName       string
	Surname         string
	Address         Address
	InteractionID   string
	Status          string
	Rating          int
	InteractionDate string
	Organizer       string
	Phones          [PhoneSlots]string
	Emails          [EmailSlots]string
	BB              string
	Contacted       bool
}

// DisplayName joins the raw name fields for log and audit output.
func (c Contact) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.Surname)
}

// CandidateEmails collects distinct, trimmed, lower-cased addresses from the
// email slots. Requiring an "@" is a coarse syntactic filter only; real
// validation happens against the validation service.
func (c Contact) CandidateEmails() []string {
	var emails []string
	for _, slot := range c.Emails {
		email := strings.ToLower(strings.TrimSpace(slot))
		if email == "" || !strings.Contains(email, "@") {
			continue
		}
		if !contains(emails, email) {
			emails = append(emails, email)
		}
	}
	return emails
}

// CandidatePhones collects distinct phone numbers from the phone slots,
// normalized to E.164. Numbers too short to normalize are dropped.
func (c Contact) CandidatePhones() []string {
	var phones []string
	for _, slot := range c.Phones {
		phone, ok := format.PhoneE164(slot)
		if !ok {
			continue
		}
		if !contains(phones, phone) {
			phones = append(phones, phone)
		}
	}
	return phones
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
