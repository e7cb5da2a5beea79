package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
)

// Row represents a single CSV row with column name to value mapping.
type Row map[string]string

// Sheet is a parsed CSV file. Headers keeps the file's column order, which
// maps cannot.
type Sheet struct {
	Source  string
	Headers []string
	Rows    []Row
}

// LoadCSV reads a CSV file. The first row is treated as headers (column names).
func LoadCSV(path string) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	return ParseCSV(f, path)
}

// ParseCSV reads CSV data from r. source names the data in error messages.
func ParseCSV(r io.Reader, source string) (*Sheet, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %s: %w", source, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("csv: %s is empty (no header row)", source)
	}

	headers := make([]string, len(records[0]))
	for i, h := range records[0] {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		headers[i] = strings.TrimSpace(h)
	}
	if dup := firstDuplicate(headers); dup != "" {
		return nil, fmt.Errorf("csv: %s has duplicate column %q", source, dup)
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if len(record) != len(headers) {
			return nil, fmt.Errorf("csv: row %d has %d columns, expected %d", i+2, len(record), len(headers))
		}
		row := make(Row, len(headers))
		for j, h := range headers {
			row[h] = record[j]
		}
		rows = append(rows, row)
	}

	return &Sheet{Source: source, Headers: headers, Rows: rows}, nil
}

func firstDuplicate(values []string) string {
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if seen[v] {
			return v
		}
		seen[v] = true
	}
	return ""
}
