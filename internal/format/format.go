// Package format holds the pure string-normalization rules shared by
// ingestion and dispatch: name extraction, E.164 phone formatting, and
// address keys. No state, no I/O.
package format

import (
	"regexp"
	"strings"
)

const (
	// FallbackFirstName is used when no usable first name can be derived.
	FallbackFirstName = "Friend"
	// FallbackOrganizer is used when the organizer field is blank.
	FallbackOrganizer = "The Team"
)

var (
	nonLetterHyphen = regexp.MustCompile(`[^a-zA-Z\-]`)
	nonDigit        = regexp.MustCompile(`\D`)
)

// FirstName derives a display first name from a raw ledger name field, which
// may cover several parties ("RICHARD M U & RACHEL Y"). It takes the first
// token before any "&" or "/", keeps letters and hyphens only, and
// title-cases the result.
func FirstName(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return FallbackFirstName
	}

	if idx := strings.Index(name, "&"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	if idx := strings.Index(name, "/"); idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}

	fields := strings.Fields(name)
	if len(fields) > 0 {
		name = fields[0]
	}

	name = nonLetterHyphen.ReplaceAllString(name, "")
	name = titleCase(name)
	if name == "" {
		return FallbackFirstName
	}
	return name
}

// OrganizerFirstName derives the staff member's first name from their full
// display name ("Ferdy Salmons" -> "Ferdy").
func OrganizerFirstName(raw string) string {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return FallbackOrganizer
	}
	return titleCase(fields[0])
}

// PhoneE164 normalizes a raw phone string to E.164. Ten digits get the US
// country code, eleven digits starting with 1 get a plus, anything else of
// at least ten digits is taken as already international. Shorter input is
// rejected.
func PhoneE164(raw string) (string, bool) {
	digits := nonDigit.ReplaceAllString(raw, "")
	switch {
	case len(digits) == 10:
		return "+1" + digits, true
	case len(digits) == 11 && digits[0] == '1':
		return "+" + digits, true
	case len(digits) >= 10:
		return "+" + digits, true
	default:
		return "", false
	}
}

// AddressKey builds the "{house number} {street name}" key used to match
// ledger rows against the secondary phone export. Returns "" when either
// part is blank, meaning the row cannot be matched.
func AddressKey(houseNumber, streetName string) string {
	houseNumber = strings.TrimSpace(houseNumber)
	streetName = strings.TrimSpace(streetName)
	if houseNumber == "" || streetName == "" {
		return ""
	}
	return houseNumber + " " + streetName
}

// titleCase upper-cases the first letter of every hyphen- or space-separated
// part and lower-cases the rest, so "MARY-JANE" becomes "Mary-Jane".
// strings.Title is deprecated and cases.Title does not split on hyphens.
func titleCase(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		switch {
		case r == '-' || r == ' ':
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteString(strings.ToUpper(string(r)))
			startOfWord = false
		default:
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}
