// Package ledger persists the contact ledger as a CSV file. The column set
// is an external contract shared with spreadsheet users, so the header is
// validated field-for-field at load time.
package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

// utf8BOM is written at the start of the file and tolerated on read; the
// export consumers open the ledger in Excel.
const utf8BOM = "\xef\xbb\xbf"

var header = []string{
	"First Name", "Surname", "House Unit", "House Name", "House Number",
	"Street Name", "City", "State", "Interaction ID", "Interaction Status",
	"Rating", "Interaction Date", "Organizer", "Phone_1", "Phone_2",
	"Phone_3", "Phone_4", "Phone_5", "Email_1", "Email_2", "Email_3",
	"BB", "contacted?",
}

// CSVStore implements ports.LedgerStore on a single CSV file.
type CSVStore struct {
	path string
}

var _ ports.LedgerStore = (*CSVStore)(nil)

// NewCSVStore wires a store for the given file path.
func NewCSVStore(path string) *CSVStore {
	return &CSVStore{path: path}
}

// Load reads the whole ledger into memory. A missing file yields
// ports.ErrLedgerNotFound; a header that does not match the contract is an error so
// schema drift surfaces at load time instead of as silently empty fields.
func (s *CSVStore) Load(ctx context.Context) ([]domain.Contact, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ports.ErrLedgerNotFound, s.path)
		}
		return nil, fmt.Errorf("read ledger %s: %w", s.path, err)
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), utf8BOM)))
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", s.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("ledger %s: missing header", s.path)
	}

	if err := validateHeader(records[0]); err != nil {
		return nil, fmt.Errorf("ledger %s: %w", s.path, err)
	}

	contacts := make([]domain.Contact, 0, len(records)-1)
	for i, record := range records[1:] {
		contact, err := fromRecord(record)
		if err != nil {
			return nil, fmt.Errorf("ledger %s row %d: %w", s.path, i+2, err)
		}
		contacts = append(contacts, contact)
	}

	return contacts, nil
}

// Append adds rows to the end of the file without touching existing ones.
// The header (and BOM) is written only when the file is created.
func (s *CSVStore) Append(ctx context.Context, contacts []domain.Contact) error {
	if len(contacts) == 0 {
		return nil
	}

	_, statErr := os.Stat(s.path)
	creating := os.IsNotExist(statErr)
	if statErr != nil && !creating {
		return fmt.Errorf("stat ledger %s: %w", s.path, statErr)
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger %s: %w", s.path, err)
	}

	if creating {
		if _, err := file.WriteString(utf8BOM); err != nil {
			_ = file.Close()
			return fmt.Errorf("write bom: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	if creating {
		if err := writer.Write(header); err != nil {
			_ = file.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, contact := range contacts {
		if err := writer.Write(toRecord(contact)); err != nil {
			_ = file.Close()
			return fmt.Errorf("write row %s: %w", contact.InteractionID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return fmt.Errorf("flush ledger: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}

	return nil
}

// Rewrite replaces the whole file via a temp file and rename in the same
// directory, so a crash mid-write never leaves a truncated ledger.
func (s *CSVStore) Rewrite(ctx context.Context, contacts []domain.Contact) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.WriteString(utf8BOM); err != nil {
		cleanup()
		return fmt.Errorf("write bom: %w", err)
	}

	writer := csv.NewWriter(tmp)
	if err := writer.Write(header); err != nil {
		cleanup()
		return fmt.Errorf("write header: %w", err)
	}
	for _, contact := range contacts {
		if err := writer.Write(toRecord(contact)); err != nil {
			cleanup()
			return fmt.Errorf("write row %s: %w", contact.InteractionID, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		cleanup()
		return fmt.Errorf("flush ledger: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp ledger: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace ledger %s: %w", s.path, err)
	}

	return nil
}

func validateHeader(got []string) error {
	if len(got) != len(header) {
		return fmt.Errorf("header has %d columns, want %d", len(got), len(header))
	}
	for i, name := range header {
		if strings.TrimSpace(got[i]) != name {
			return fmt.Errorf("header column %d is %q, want %q", i+1, got[i], name)
		}
	}
	return nil
}

func fromRecord(record []string) (domain.Contact, error) {
	if len(record) != len(header) {
		return domain.Contact{}, fmt.Errorf("row has %d columns, want %d", len(record), len(header))
	}

	contact := domain.Contact{
		FirstName: record[0],
		Surname:   record[1],
		Address: domain.Address{
			Unit:        record[2],
			HouseName:   record[3],
			HouseNumber: record[4],
			StreetName:  record[5],
			City:        record[6],
			State:       record[7],
		},
		InteractionID:   record[8],
		Status:          record[9],
		Rating:          parseRating(record[10]),
		InteractionDate: record[11],
		Organizer:       record[12],
		BB:              record[21],
	}

	copy(contact.Phones[:], record[13:18])
	copy(contact.Emails[:], record[18:21])

	switch strings.ToLower(strings.TrimSpace(record[22])) {
	case "yes":
		contact.Contacted = true
	case "no", "":
		contact.Contacted = false
	default:
		return domain.Contact{}, fmt.Errorf("contacted? value %q is not yes/no", record[22])
	}

	return contact, nil
}

func toRecord(contact domain.Contact) []string {
	contacted := "no"
	if contact.Contacted {
		contacted = "yes"
	}

	record := []string{
		contact.FirstName,
		contact.Surname,
		contact.Address.Unit,
		contact.Address.HouseName,
		contact.Address.HouseNumber,
		contact.Address.StreetName,
		contact.Address.City,
		contact.Address.State,
		contact.InteractionID,
		contact.Status,
		ratingString(contact.Rating),
		contact.InteractionDate,
		contact.Organizer,
	}
	record = append(record, contact.Phones[:]...)
	record = append(record, contact.Emails[:]...)
	record = append(record, contact.BB, contacted)
	return record
}

// parseRating is lenient: the upstream export leaves the column blank or
// carries junk for unrated interactions, which counts as zero.
func parseRating(raw string) int {
	rating, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return rating
}

func ratingString(rating int) string {
	if rating == 0 {
		return ""
	}
	return strconv.Itoa(rating)
}
