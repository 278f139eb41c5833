// Package audit writes the per-run email validation results file.
package audit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"ContactOutreach/internal/domain"
	"ContactOutreach/internal/ports"
)

var header = []string{"contact_name", "email", "is_valid"}

// CSVWriter writes one audit file per run, named by run date (DDMM), into
// a configured directory.
type CSVWriter struct {
	dir string
	now func() time.Time
}

var _ ports.AuditWriter = (*CSVWriter)(nil)

// NewCSVWriter wires a writer for the given output directory.
func NewCSVWriter(dir string) *CSVWriter {
	return &CSVWriter{dir: dir, now: time.Now}
}

// Write persists the records and returns the file path. Nothing is written
// when there are no records.
func (w *CSVWriter) Write(records []domain.ValidationRecord) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	name := fmt.Sprintf("email_validation_%s.csv", w.now().Format("0201"))
	path := filepath.Join(w.dir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create audit file %s: %w", path, err)
	}

	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, record := range records {
		verdict := "Invalid"
		if record.Valid {
			verdict = "Valid"
		}
		if err := writer.Write([]string{record.ContactName, record.Email, verdict}); err != nil {
			_ = file.Close()
			return "", fmt.Errorf("write record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("flush audit file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close audit file: %w", err)
	}

	return path, nil
}
