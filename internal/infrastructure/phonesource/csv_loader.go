// Package phonesource loads the secondary property-data export that
// backfills phone numbers into the ledger by street address.
package phonesource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"ContactOutreach/internal/ports"
)

// phoneColumns is the fixed priority order in which the export's phone
// fields fill ledger slots.
var phoneColumns = []string{
	"Primary Phone1",
	"Primary Mobile Phone1",
	"Secondary Phone1",
	"Secondary Mobile Phone1",
}

const addressColumn = "Address"

// providerWatermark marks trailing branding rows in the export that carry
// no address data.
const providerWatermark = "PropertyRadar"

// CSVLoader implements ports.PhoneSource on the property export file. The
// export carries many columns beyond the ones used here, so the header is
// searched by name rather than validated positionally.
type CSVLoader struct {
	path string
}

var _ ports.PhoneSource = (*CSVLoader)(nil)

// NewCSVLoader wires a loader for the given file path.
func NewCSVLoader(path string) *CSVLoader {
	return &CSVLoader{path: path}
}

// Load builds the address-key to phone-values mapping. Values keep the
// fixed column order and are deduplicated per address; blank and watermark
// rows are skipped.
func (l *CSVLoader) Load(ctx context.Context) (map[string][]string, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read phone source %s: %w", l.path, err)
	}

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xef\xbb\xbf")))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse phone source %s: %w", l.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("phone source %s: missing header", l.path)
	}

	columns := map[string]int{}
	for i, name := range records[0] {
		columns[strings.TrimSpace(name)] = i
	}
	addressIdx, ok := columns[addressColumn]
	if !ok {
		return nil, fmt.Errorf("phone source %s: missing %q column", l.path, addressColumn)
	}

	lookup := make(map[string][]string)
	for _, record := range records[1:] {
		if addressIdx >= len(record) {
			continue
		}
		address := strings.TrimSpace(record[addressIdx])
		if address == "" || strings.Contains(address, providerWatermark) {
			continue
		}

		var phones []string
		for _, column := range phoneColumns {
			idx, ok := columns[column]
			if !ok || idx >= len(record) {
				continue
			}
			phone := strings.TrimSpace(record[idx])
			if phone == "" || containsString(phones, phone) {
				continue
			}
			phones = append(phones, phone)
		}

		lookup[address] = phones
	}

	return lookup, nil
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
